package errors

// ErrorUnknown is returned to clients in place of server errors.
type ErrorUnknown struct{}

func (eu *ErrorUnknown) Error() string {
	return "unknown server error"
}
