package dto

// Response is the envelope every API endpoint answers with
type Response struct {
	Success    bool               `json:"success"`
	Data       any                `json:"data,omitempty"`
	Error      string             `json:"error,omitempty"`
	Code       string             `json:"code,omitempty"`
	Message    string             `json:"message,omitempty"`
	Details    []ValidationDetail `json:"details,omitempty"`
	RequestID  string             `json:"requestId,omitempty"`
	Pagination *Pagination        `json:"pagination,omitempty"`
}

// Pagination describes the page returned by a listing endpoint
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ValidationDetail describes one invalid request field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// NewPagedResponse creates a success response carrying pagination
func NewPagedResponse(data any, p Pagination) Response {
	return Response{Success: true, Data: data, Pagination: &p}
}

// NewMessageResponse creates a success response with a human readable message
func NewMessageResponse(data any, message string) Response {
	return Response{Success: true, Data: data, Message: message}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message, requestID string) Response {
	return Response{
		Success:   false,
		Error:     message,
		Code:      code,
		RequestID: requestID,
	}
}

// NewValidationErrorResponse creates a 400 response listing field errors
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	return Response{
		Success:   false,
		Error:     message,
		Code:      ErrCodeValidation,
		Details:   details,
		RequestID: requestID,
	}
}
