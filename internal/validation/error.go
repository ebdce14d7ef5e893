package validation

// Error is a field-specific validation failure. Handlers match it with
// errors.As and surface the message as a 400.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
