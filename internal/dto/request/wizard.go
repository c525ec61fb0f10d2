package request

type ModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=login book cancel"`
}

type MonthRequest struct {
	Direction string `json:"direction" validate:"required,oneof=previous next"`
}

type ServiceRequest struct {
	ServiceID string `json:"service_id" validate:"required"`
}

type DateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type SlotRequest struct {
	Time string `json:"time" validate:"required,datetime=15:04"`
}

type CancelRequest struct {
	AppointmentID int64 `json:"id" validate:"required,gt=0"`
}

type ConfirmRequest struct {
	Accept bool `json:"accept"`
}
