package util

import (
	"encoding/json"
	"log"
	"net/http"
)

// WriteJSON encodes v as the JSON body of a 200 response. Encoding failures
// are logged, not surfaced, since the response is already committed.
func WriteJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("util: write json:", err)
	}
}
