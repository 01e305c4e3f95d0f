package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"convstore/pkg/conversation"
	"convstore/pkg/utils"
)

// RegisterNotices registers the transient-notice endpoint consumed by the
// presentation layer's toast area.
func RegisterNotices(r *mux.Router, store *conversation.Store) {
	r.HandleFunc("/notices", func(w http.ResponseWriter, req *http.Request) {
		notices := store.Notices().Active()
		_ = utils.JSONWrite(w, http.StatusOK, struct {
			Notices []conversation.Notice `json:"notices"`
		}{Notices: notices})
	}).Methods(http.MethodGet)
}
