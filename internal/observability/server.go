package observability

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// NewMetricsServer builds the optional HTTP listener exposing /metrics
// and /healthz. The caller runs ListenAndServe and shuts it down; the
// display loop never depends on it.
func NewMetricsServer(addr string) *http.Server {
	router := mux.NewRouter()
	router.Handle("/metrics", MetricsHandler()).Methods("GET")
	router.HandleFunc("/healthz", handleHealthz).Methods("GET")

	return &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
