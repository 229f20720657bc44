package dto

// ErrorResponse HTTP error body. Code is the machine-readable kind.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse body of acknowledgements (e.g. deletion).
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse body of GET /api/health.
type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}
