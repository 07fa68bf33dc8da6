package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform JSON shape of every API response
type Envelope struct {
	OK        bool   `json:"ok"`
	Data      any    `json:"data,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
	Message   string `json:"message,omitempty"`
}

// JSON writes a successful response wrapping data in the envelope
func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, Envelope{OK: true, Data: data})
}

// Error writes a failed response with an error code and message
func Error(w http.ResponseWriter, status int, code, message string) {
	write(w, status, Envelope{OK: false, ErrorCode: code, Message: message})
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
