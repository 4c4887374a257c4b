package errs

// Sentinel errors shared by the usecase and handler layers.
// Lower layers attach them with Mark so callers can branch with Is.
var (
	ErrNotFound               = New("not found")
	ErrForbidden              = New("forbidden")
	ErrValidation             = New("validation error")
	ErrInvalidStateTransition = New("invalid state transition")

	// Payment errors
	ErrPaymentInitiationFailed = New("payment initiation failed")
	ErrTransientGateway        = New("transient payment gateway error")

	// Operation errors
	ErrDatabaseOperationFailed = New("database operation failed")
)
