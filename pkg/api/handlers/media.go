package handlers

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"convstore/pkg/conversation"
	"convstore/pkg/media"
	"convstore/pkg/utils"
)

// maxUploadBytes bounds multipart media uploads.
const maxUploadBytes = 32 << 20

// RegisterMedia registers the media upload endpoint.
func RegisterMedia(r *mux.Router, store *conversation.Store) {
	// /v1/threads/{id}/media
	r.HandleFunc("/threads/{id}/media", func(w http.ResponseWriter, req *http.Request) {
		uploadMedia(w, req, store)
	}).Methods(http.MethodPost)
}

func uploadMedia(w http.ResponseWriter, req *http.Request, store *conversation.Store) {
	threadID := mux.Vars(req)["id"]
	req.Body = http.MaxBytesReader(w, req.Body, maxUploadBytes)
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	f, hdr, err := req.FormFile("file")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "file part is required")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "failed to read file")
		return
	}
	att, err := media.Process(media.File{
		Name:        hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		// decode failure abandons the attach; no message is created
		utils.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	msgID := store.AttachMedia(threadID, att, req.FormValue("reply_to"))
	if msgID == "" {
		utils.JSONError(w, http.StatusNotFound, "thread not found")
		return
	}
	_ = utils.JSONWrite(w, http.StatusCreated, map[string]string{"id": msgID})
}
