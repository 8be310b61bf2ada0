package bridge

// backendUnavailableError signals a missing generation backend, e.g. a
// binary built without the 'llama' tag asked to run real inference.
// The bridge folds it into the reply contract like any engine error;
// IsBackendUnavailable lets engine callers distinguish it first.
type backendUnavailableError struct{ msg string }

func (e backendUnavailableError) Error() string { return e.msg }

// ErrBackendUnavailable constructs a backendUnavailableError.
func ErrBackendUnavailable(msg string) error { return backendUnavailableError{msg: msg} }

// IsBackendUnavailable reports whether err indicates a missing/failed
// generation backend.
func IsBackendUnavailable(err error) bool {
	_, ok := err.(backendUnavailableError)
	return ok
}
