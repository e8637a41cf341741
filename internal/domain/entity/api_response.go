package entity

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Warning string      `json:"warning,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewSuccessResponse(data interface{}, message string) *APIResponse {
	return &APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewWarningResponse is a success response carrying a non-fatal notice, e.g.
// when the vocabulary degraded to defaults.
func NewWarningResponse(data interface{}, message, warning string) *APIResponse {
	return &APIResponse{
		Success: true,
		Message: message,
		Warning: warning,
		Data:    data,
	}
}

func NewErrorResponse(code string, message string) *APIResponse {
	return &APIResponse{
		Success: false,
		Message: message,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
	}
}
