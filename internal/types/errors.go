package types

const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeUnknownRegister = "UNKNOWN_REGISTER"
	CodeNoSuchDevice    = "NO_SUCH_DEVICE"
	CodeValueRange      = "VALUE_OUT_OF_RANGE"
	CodeWriteFailed     = "WRITE_FAILED"
	CodeNotConnected    = "NOT_CONNECTED"
	CodeDeviceError     = "DEVICE_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// NewErrorResponse builds a consistent API error payload.
// details can be string, map, struct, etc.
func NewErrorResponse(code, message string, details any) ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
