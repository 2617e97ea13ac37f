package handler

// errorResponse mirrors the envelope produced by the central error handler.
// Declared here so the API doc annotations can reference it.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
