package handler

const (
	errInternalServer  = "Internal server error"
	errCodeInvalid     = "Code is invalid or expired"
	errGoogleToken     = "Google token is invalid"
	errDeliveryFailed  = "Could not send the sign-in code"
	errProductNotFound = "Product not found"
	errNotFound        = "Not found"
	errBadCursor       = "Invalid cursor"
)
