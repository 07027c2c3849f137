package responses

// SuccessEnvelope wraps every successful payload as {"data": ...}.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// ErrorEnvelope wraps failures as {"error": {...}}.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}
