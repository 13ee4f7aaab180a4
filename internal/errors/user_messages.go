package errors

// User-friendly error messages
const (
	MsgInvalidDates       = "Check-out must be after check-in. Please pick different dates."
	MsgServiceUnavailable = "We're unable to load listings right now. Please try again in a few minutes."
	MsgRateLimited        = "You're searching too quickly! Please wait a moment and try again."
	MsgInvalidParameters  = "The provided parameters are invalid. Please check your input and try again."
	MsgInternalError      = "Something went wrong on our end. Please try again later."
)
