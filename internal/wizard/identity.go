package wizard

// Identity is the server-reported user behind the session. A nil *Identity
// means the wizard is unauthenticated.
type Identity struct {
	ID    int64
	Phone string
	Name  string
	Email string
}

// NeedsDetails reports whether the identity still lacks a display name and
// must pass through the details step before booking.
func (id *Identity) NeedsDetails() bool {
	return id != nil && id.Name == ""
}
