// File: internal/entry/modal.go
package entry

// URIPlaceholder is the hint inside the empty URI field.
const URIPlaceholder = "Enter a valid PostgreSQL URI"

// guestWarning is shown when login was declined upstream.
const guestWarning = "Could not verify user, continue as a guest."

// Modal is the render model of the connection dialog.
type Modal struct {
	Error        string `form:"error"`
	Message      string `form:"message"`
	Instructions string `form:"instructions"`
	URI          string `form:"uri"`
}

// GuestWarning returns the warning line, empty unless access was denied.
func (m Modal) GuestWarning() string {
	if m.Error == "access_denied" {
		return guestWarning
	}
	return ""
}

// MessageIsError reports whether the status line renders as an error.
func (m Modal) MessageIsError() bool {
	return m.Message == "error"
}

// SubmitDisabled reports whether the Enter button is disabled.
func (m Modal) SubmitDisabled() bool {
	return len(m.URI) < 1
}
