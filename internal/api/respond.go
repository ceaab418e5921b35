package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrMessageInternal is the generic message for 500 responses. Server-side
// detail stays in the logs.
const ErrMessageInternal = "Internal Server Error"

// Envelope is the uniform response body: every endpoint answers with an
// error flag and a message alongside any payload fields.
type Envelope map[string]interface{}

// Write sends an envelope with the given status code.
func Write(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Success sends a 200 envelope with error:false, merging any payload fields.
func Success(w http.ResponseWriter, message string, payload Envelope) {
	body := Envelope{"error": false, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	Write(w, http.StatusOK, body)
}

// Error sends an {error:true, message} envelope with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, Envelope{"error": true, "message": message})
}

// Internal logs the original error and answers with the genericized 500.
func Internal(w http.ResponseWriter, err error) {
	log.Printf("internal error: %v", err)
	Error(w, http.StatusInternalServerError, ErrMessageInternal)
}
