package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"convstore/pkg/conversation"
	"convstore/pkg/models"
	"convstore/pkg/utils"
)

// RegisterMessages registers HTTP handlers for message-level endpoints.
// All mutations resolve stale references to 404; the store itself treats
// them as silent no-ops.
func RegisterMessages(r *mux.Router, store *conversation.Store) {
	// /v1/threads/{id}/messages
	r.HandleFunc("/threads/{id}/messages", func(w http.ResponseWriter, req *http.Request) {
		listMessages(w, req, store)
	}).Methods(http.MethodGet)
	r.HandleFunc("/threads/{id}/messages", func(w http.ResponseWriter, req *http.Request) {
		sendMessage(w, req, store)
	}).Methods(http.MethodPost)

	// /v1/threads/{id}/messages/{msg}
	r.HandleFunc("/threads/{id}/messages/{msg}", func(w http.ResponseWriter, req *http.Request) {
		editMessage(w, req, store)
	}).Methods(http.MethodPut)
	r.HandleFunc("/threads/{id}/messages/{msg}", func(w http.ResponseWriter, req *http.Request) {
		deleteMessage(w, req, store)
	}).Methods(http.MethodDelete)

	// /v1/threads/{id}/messages/{msg}/pin
	r.HandleFunc("/threads/{id}/messages/{msg}/pin", func(w http.ResponseWriter, req *http.Request) {
		pinMessage(w, req, store)
	}).Methods(http.MethodPost)

	// /v1/threads/{id}/messages/{msg}/reactions
	r.HandleFunc("/threads/{id}/messages/{msg}/reactions", func(w http.ResponseWriter, req *http.Request) {
		reactToMessage(w, req, store)
	}).Methods(http.MethodPost)

	// /v1/threads/{id}/messages/{msg}/forward
	r.HandleFunc("/threads/{id}/messages/{msg}/forward", func(w http.ResponseWriter, req *http.Request) {
		forwardMessage(w, req, store)
	}).Methods(http.MethodPost)
}

func listMessages(w http.ResponseWriter, req *http.Request, store *conversation.Store) {
	id := mux.Vars(req)["id"]
	if _, ok := store.Thread(id); !ok {
		utils.JSONError(w, http.StatusNotFound, "thread not found")
		return
	}
	msgs := store.VisibleMessages(id)
	_ = utils.JSONWrite(w, http.StatusOK, struct {
		Thread   string           `json:"thread"`
		Messages []models.Message `json:"messages"`
	}{Thread: id, Messages: msgs})
}

func sendMessage(w http.ResponseWriter, req *http.Request, store *conversation.Store) {
	id := mux.Vars(req)["id"]
	var body struct {
		Content string `json:"content"`
		ReplyTo string `json:"reply_to"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.Content == "" {
		utils.JSONError(w, http.StatusBadRequest, "content is required")
		return
	}
	msgID := store.SendMessage(id, body.Content, nil, body.ReplyTo)
	if msgID == "" {
		utils.JSONError(w, http.StatusNotFound, "thread not found")
		return
	}
	_ = utils.JSONWrite(w, http.StatusCreated, map[string]string{"id": msgID})
}

func editMessage(w http.ResponseWriter, req *http.Request, store *conversation.Store) {
	vars := mux.Vars(req)
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if !store.EditMessage(vars["id"], vars["msg"], body.Content) {
		utils.JSONError(w, http.StatusNotFound, "message not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func deleteMessage(w http.ResponseWriter, req *http.Request, store *conversation.Store) {
	vars := mux.Vars(req)
	scope := conversation.DeleteScope(req.URL.Query().Get("scope"))
	if scope == "" {
		scope = conversation.DeleteForMe
	}
	if scope != conversation.DeleteForMe && scope != conversation.DeleteForEveryone {
		utils.JSONError(w, http.StatusBadRequest, "scope must be me or everyone")
		return
	}
	if !store.DeleteMessage(vars["id"], vars["msg"], scope) {
		utils.JSONError(w, http.StatusNotFound, "message not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pinMessage(w http.ResponseWriter, req *http.Request, store *conversation.Store) {
	vars := mux.Vars(req)
	if !store.PinMessage(vars["id"], vars["msg"]) {
		utils.JSONError(w, http.StatusNotFound, "message not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func reactToMessage(w http.ResponseWriter, req *http.Request, store *conversation.Store) {
	vars := mux.Vars(req)
	var body struct {
		Emoji string `json:"emoji"`
		Actor string `json:"actor"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.Actor == "" {
		body.Actor = req.Header.Get("X-Identity")
	}
	if body.Emoji == "" || body.Actor == "" {
		utils.JSONError(w, http.StatusBadRequest, "missing emoji or actor")
		return
	}
	if !store.ReactToMessage(vars["id"], vars["msg"], body.Emoji, body.Actor) {
		utils.JSONError(w, http.StatusNotFound, "message not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func forwardMessage(w http.ResponseWriter, req *http.Request, store *conversation.Store) {
	vars := mux.Vars(req)
	var body struct {
		TargetThread string `json:"target_thread"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.TargetThread == "" {
		utils.JSONError(w, http.StatusBadRequest, "target_thread is required")
		return
	}
	fwdID := store.ForwardMessage(vars["id"], vars["msg"], body.TargetThread)
	if fwdID == "" {
		utils.JSONError(w, http.StatusNotFound, "thread or message not found")
		return
	}
	_ = utils.JSONWrite(w, http.StatusCreated, map[string]string{"id": fwdID})
}
