package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// Envelope is the uniform success payload: the data plus a server-side
// millisecond timestamp.
type Envelope struct {
	Data       any   `json:"data"`
	Timestamps int64 `json:"timestamps"`
}

// WriteEnvelope writes a JSON success envelope with the given status code.
func WriteEnvelope(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(&Envelope{
		Data:       data,
		Timestamps: time.Now().UnixMilli(),
	})
}

// WriteEnvelopeOK writes a 200 OK envelope.
func WriteEnvelopeOK(w http.ResponseWriter, data any) {
	WriteEnvelope(w, http.StatusOK, data)
}

// WriteEnvelopeCreated writes a 201 Created envelope.
func WriteEnvelopeCreated(w http.ResponseWriter, data any) {
	WriteEnvelope(w, http.StatusCreated, data)
}

// WriteNoContent writes a 204 No Content response.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
