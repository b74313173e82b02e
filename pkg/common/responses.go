package common

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes data as the JSON body; graph views are sent unwrapped
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// ExtractRequestID returns the request id assigned by middleware, falling back to the inbound header
func ExtractRequestID(r *http.Request) string {
	if id, ok := GetRequestID(r.Context()); ok && id != "" {
		return id
	}
	return r.Header.Get("X-Request-ID")
}
