package common

// AppName is used as the mail sender display name and the log namespace.
const AppName = "RetailMediaAI"

// AuthorizationHeaderName carries the bearer session token on outbound
// requests to the RetailMediaAI server.
const AuthorizationHeaderName = "Authorization"

// Error messages returned in API response bodies. Clients match on some of
// them, so they are part of the wire format.
const (
	MsgEmailRequired     = "Email is required"
	MsgReportEmail       = "Email required"
	MsgEmailDoesNotExist = "This email address does not exist."
	MsgMailUnavailable   = "Email service unavailable"
	MsgOTPSendFailed     = "Failed to send verification email. Please check the address."
	MsgSendFailed        = "Failed to send email"
	MsgInternal          = "Internal server error"
	MsgPhoneSignIn       = "Sign in with the email linked to this phone number"
	MsgInvalidRequest    = "Invalid request body"
	MsgUnauthorized      = "Unauthorized"
	MsgInvalidImage      = "Creative image must be a base64 data URI"
)
