package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	FlowNotFoundCode        = 2001
	FlowNotFoundMessage     = "flow not found"
	FlowNotVerifiedCode     = 2002
	FlowNotVerifiedMessage  = "flow not verified"
	FlowInvalidStateCode    = 2003
	FlowInvalidStateMessage = "operation not allowed in current flow state"
	FlowInvalidIDCode       = 2004
	FlowInvalidIDMessage    = "invalid flow id"

	CodeInvalidEmailCode    = 3001
	CodeInvalidEmailMessage = "Email is required"
	CodeCooldownCode        = 3002
	CodeCooldownMessage     = "verification code requested too often"
	CodeSendFailedCode      = 3003
	CodeSendFailedMessage   = "verification code could not be sent"
	ValidationErrorCode     = 6000
	ValidationErrorMessage  = "Validation error"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
}

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

var errorMessages = map[ErrorCode]ErrorMessage{
	FlowNotFoundCode:     FlowNotFoundMessage,
	FlowNotVerifiedCode:  FlowNotVerifiedMessage,
	FlowInvalidStateCode: FlowInvalidStateMessage,
	FlowInvalidIDCode:    FlowInvalidIDMessage,
	CodeInvalidEmailCode: CodeInvalidEmailMessage,
	CodeCooldownCode:     CodeCooldownMessage,
	CodeSendFailedCode:   CodeSendFailedMessage,
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	errorStruct := &ErrorStruct{
		ErrorCode:    UnknownErrorCode,
		ErrorMessage: UnknownErrorMessage,
	}

	if msg, ok := errorMessages[code]; ok {
		errorStruct.ErrorCode = code
		errorStruct.ErrorMessage = msg
	}

	return errorStruct
}
