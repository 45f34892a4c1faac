package dto

// ErrorResponse represents a standard error response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse represents a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// RootResponse is returned by the API root.
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// PaymentOrderResponse represents a created mock payment order.
type PaymentOrderResponse struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Status   string  `json:"status"`
}

// PaymentVerificationResponse represents a mock verification result.
type PaymentVerificationResponse struct {
	Status    string `json:"status"`
	PaymentID string `json:"payment_id"`
}
