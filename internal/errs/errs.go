// Package errs defines the error taxonomy shared by every component: a
// small closed set of machine-readable codes, each carrying an HTTP status
// class and a retryability hint, plus an Error type that pairs a code with
// a human-readable message and optional structured details.
package errs

// Code is a member of the error taxonomy. Codes are values, not ad hoc
// strings, so callers can switch on them exhaustively.
type Code string

const (
	// Parsing
	CodeParsingError      Code = "PARSING_ERROR"
	CodeUnknownAction     Code = "UNKNOWN_ACTION"
	CodeAmbiguousCommand  Code = "AMBIGUOUS_COMMAND"

	// Validation
	CodeInvalidRequest        Code = "INVALID_REQUEST"
	CodeParameterMissing      Code = "PARAMETER_MISSING"
	CodeParameterOutOfRange   Code = "PARAMETER_OUT_OF_RANGE"
	CodeConflictingParameters Code = "CONFLICTING_PARAMETERS"

	// Preconditions
	CodeDroneNotFound                      Code = "DRONE_NOT_FOUND"
	CodeDroneDisconnected                  Code = "DRONE_DISCONNECTED"
	CodeDroneErrorState                    Code = "DRONE_ERROR_STATE"
	CodeDroneNotReady                      Code = "DRONE_NOT_READY"
	CodeDroneAlreadyConnected              Code = "DRONE_ALREADY_CONNECTED"
	CodeLowBattery                         Code = "LOW_BATTERY"
	CodeDangerousCommandConfirmationNeeded Code = "DANGEROUS_COMMAND_CONFIRMATION_REQUIRED"

	// Execution
	CodeCommandFailed      Code = "COMMAND_FAILED"
	CodeCommandTimeout     Code = "COMMAND_TIMEOUT"
	CodeBackendUnavailable Code = "BACKEND_UNAVAILABLE"

	// Batch
	CodeBatchPlanCycle   Code = "BATCH_PLAN_CYCLE"
	CodeCancelled        Code = "CANCELLED"
	CodeSkippedDependency Code = "SKIPPED_DEPENDENCY"

	// System
	CodeInternalError Code = "INTERNAL_ERROR"
)

// Retryable reports whether a caller may reasonably retry a failure with
// this code. Transient backend failures (timeout, 5xx, connection refused)
// are retryable; validation and precondition failures are not — retrying
// without changing the request would just fail again.
func (c Code) Retryable() bool {
	switch c {
	case CodeCommandTimeout, CodeBackendUnavailable:
		return true
	default:
		return false
	}
}

// Error is the concrete error value produced by every component. It
// implements the standard error interface so it composes with errors.Is
// and fmt.Errorf's %w, while still carrying the taxonomy code callers need.
type Error struct {
	Code    Code
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return e.Message
}

// New constructs an Error with no details.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf constructs an Error carrying structured details.
func Newf(code Code, message string, details map[string]any) *Error {
	return &Error{Code: code, Message: message, Details: details}
}

// CodeOf extracts the taxonomy Code from err, if err is (or wraps) an
// *Error. Returns CodeInternalError for anything else, since an
// un-coded failure is, by definition, a bug rather than an expected
// outcome.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if ok := asError(err, &e); ok {
		return e.Code
	}
	return CodeInternalError
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
