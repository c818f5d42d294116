package common

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope wrapped around every reply. Field order is fixed so the
// same (code, data, message) always encodes to the same bytes.
type Response struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"message"`
}

func Success(code int, data any, message string) *Response {
	return &Response{
		Success:    code < http.StatusBadRequest,
		StatusCode: code,
		Data:       data,
		Message:    message,
	}
}

func Failure(code int, message string) *Response {
	return &Response{
		Success:    false,
		StatusCode: code,
		Message:    message,
	}
}

func (resp *Response) Send(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(resp.StatusCode)
	json.NewEncoder(w).Encode(resp)
}

// JSON is shorthand for Success(code, data, message).Send(w).
func JSON(w http.ResponseWriter, code int, data any, message string) {
	Success(code, data, message).Send(w)
}
