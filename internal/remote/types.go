package remote

// User is the identity payload returned by /api/me and /api/auth/verify.
type User struct {
	ID    int64  `json:"id"`
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Service is one bookable service from the catalog.
type Service struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

// Catalog bundles the service list with the business working-day set, both
// served by GET /api/services.
type Catalog struct {
	Services    []Service `json:"services"`
	WorkingDays []string  `json:"working_days"`
}

// Appointment is one cancellable appointment from /api/cancel/list.
type Appointment struct {
	ID          int64  `json:"id"`
	Start       string `json:"start"` // RFC3339
	ServiceName string `json:"service_name,omitempty"`
}

// BookingRequest is the POST /api/book payload.
type BookingRequest struct {
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes"`
	ServiceName     string `json:"service_name"`
}

// APIError is a remote rejection: the API answered but refused the operation
// (ok:false / success:false). Its message is meant for the user verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "request rejected"
}
