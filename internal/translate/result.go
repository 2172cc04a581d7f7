// Package translate converts failed-request errors into client-safe result
// envelopes and severity-tagged log records.
package translate

// Result is the envelope returned to clients.
// Results built by this package always have Success false and nil Data.
type Result struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Success bool   `json:"success"`
}

func failed(code int, message string) Result {
	return Result{Code: code, Message: message}
}
