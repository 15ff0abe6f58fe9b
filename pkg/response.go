package pkg

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var ContentType = struct {
	JSON string
	Text string
}{
	JSON: "application/json",
	Text: "text/plain; charset=utf-8",
}

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteResponseBytes(w http.ResponseWriter, contentType string, body []byte, statusCode int) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(statusCode)

	if _, err := w.Write(body); err != nil {
		log.Errorf("write response (status %d): %s", statusCode, err)
	}
}

// WriteJSON marshals v and writes it with the given status.
func WriteJSON(w http.ResponseWriter, v any, statusCode int) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal response: %s", err)
		WriteError(w, "internal error", http.StatusInternalServerError)
		return
	}
	WriteResponseBytes(w, ContentType.JSON, body, statusCode)
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	body, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		body = []byte(`{"error":"internal error"}`)
	}
	WriteResponseBytes(w, ContentType.JSON, body, statusCode)
}
