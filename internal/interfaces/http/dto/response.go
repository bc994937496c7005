package dto

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorInfo `json:"error"`
}

// ErrorInfo describes what went wrong
type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"requestId,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail names a rejected field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorInfo{Code: code, Message: message},
	}
}

// NewValidationErrorResponse creates a 400 body listing the rejected fields
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) ErrorResponse {
	resp := NewErrorResponse(ErrCodeValidation, message)
	resp.Error.RequestID = requestID
	resp.Error.Details = details
	return resp
}

// IDResponse is returned by create endpoints
type IDResponse struct {
	ID string `json:"id"`
}

// InquiryCreatedResponse is returned by POST /api/inquiries
type InquiryCreatedResponse struct {
	InquiryID string `json:"inquiryId"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
