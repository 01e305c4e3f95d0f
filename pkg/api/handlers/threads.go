package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"convstore/pkg/conversation"
	"convstore/pkg/models"
	"convstore/pkg/utils"
)

// RegisterThreads registers HTTP handlers for thread-level endpoints.
func RegisterThreads(r *mux.Router, store *conversation.Store) {
	// /v1/threads
	r.HandleFunc("/threads", func(w http.ResponseWriter, req *http.Request) {
		listThreads(w, store)
	}).Methods(http.MethodGet)

	// /v1/threads/active
	r.HandleFunc("/threads/active", func(w http.ResponseWriter, req *http.Request) {
		getActiveThread(w, store)
	}).Methods(http.MethodGet)

	// /v1/threads/{id}
	r.HandleFunc("/threads/{id}", func(w http.ResponseWriter, req *http.Request) {
		getThread(w, req, store)
	}).Methods(http.MethodGet)

	// /v1/threads/{id}/select
	r.HandleFunc("/threads/{id}/select", func(w http.ResponseWriter, req *http.Request) {
		selectThread(w, req, store)
	}).Methods(http.MethodPost)

	// /v1/threads/{id}/pinned
	r.HandleFunc("/threads/{id}/pinned", func(w http.ResponseWriter, req *http.Request) {
		getPinned(w, req, store)
	}).Methods(http.MethodGet)
}

func listThreads(w http.ResponseWriter, store *conversation.Store) {
	threads := store.Threads()
	_ = utils.JSONWrite(w, http.StatusOK, struct {
		Threads []models.Thread `json:"threads"`
		Active  string          `json:"active,omitempty"`
	}{Threads: threads, Active: store.ActiveThreadID()})
}

func getActiveThread(w http.ResponseWriter, store *conversation.Store) {
	id := store.ActiveThreadID()
	if id == "" {
		utils.JSONError(w, http.StatusNotFound, "no thread selected")
		return
	}
	th, ok := store.Thread(id)
	if !ok {
		// stale pointer; render-time contract is "no thread selected"
		utils.JSONError(w, http.StatusNotFound, "no thread selected")
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, th)
}

func getThread(w http.ResponseWriter, req *http.Request, store *conversation.Store) {
	id := mux.Vars(req)["id"]
	th, ok := store.Thread(id)
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "thread not found")
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, th)
}

func selectThread(w http.ResponseWriter, req *http.Request, store *conversation.Store) {
	id := mux.Vars(req)["id"]
	if !store.SelectThread(id) {
		utils.JSONError(w, http.StatusNotFound, "thread not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func getPinned(w http.ResponseWriter, req *http.Request, store *conversation.Store) {
	id := mux.Vars(req)["id"]
	m, ok := store.PinnedMessage(id)
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "no pinned message")
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, m)
}
