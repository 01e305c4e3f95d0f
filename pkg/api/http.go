package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"convstore/pkg/api/handlers"
	"convstore/pkg/conversation"
)

// NewRouter builds the versioned HTTP router over the conversation store.
// The presentation layer is the only intended consumer; there is no
// client-to-client wire protocol behind this surface.
func NewRouter(store *conversation.Store) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.Use(handlers.MutationLimiter())
	handlers.RegisterThreads(v1, store)
	handlers.RegisterMessages(v1, store)
	handlers.RegisterMedia(v1, store)
	handlers.RegisterNotices(v1, store)
	return r
}
