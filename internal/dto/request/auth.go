package request

type PhoneRequest struct {
	Phone string `json:"phone" validate:"required,min=7,max=20"`
}

type VerifyRequest struct {
	Code string `json:"code" validate:"required,numeric"`
	Name string `json:"name,omitempty" validate:"omitempty,max=80"`
}

type NameRequest struct {
	Name string `json:"name" validate:"required,min=2,max=80"`
}
