package server

import (
	"encoding/json"
	"net/http"
)

// Response messages.
const (
	MsgCreated  = "Card created successfully"
	MsgUpdated  = "Card updated successfully"
	MsgDeleted  = "Card deleted successfully"
	MsgNotFound = "Card not found"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Error: message})
}
