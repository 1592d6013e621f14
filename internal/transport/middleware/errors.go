package middleware

import (
	"encoding/json"
	"net/http"
)

// errorBody matches the error records written by the REST handlers.
type errorBody struct {
	Error   bool   `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: true, Code: code, Message: message})
}
