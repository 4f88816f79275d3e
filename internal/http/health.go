package http

import "net/http"

// HandleHealth answers liveness probes with an empty 204 response.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
