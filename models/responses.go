package models

// MessageResponse is the generic JSON body used for acknowledgements and
// error descriptions.
type MessageResponse struct {
	Message string `json:"message"`
}

// SuccessResponse acknowledges an operation that dispatched an email.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
