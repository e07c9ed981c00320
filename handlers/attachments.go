package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"p9e.in/mtmaterial/config"
	"p9e.in/mtmaterial/models"
)

// GetAttachment serves the stored bytes of one attachment inline. A record
// whose file went missing is a 404, not a broken response.
func GetAttachment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var attachment models.Attachment
	if err := config.DB.Where("id = ?", id).First(&attachment).Error; err != nil {
		writeError(w, http.StatusNotFound, "attachment not found")
		return
	}

	var (
		data []byte
		err  error
	)
	if useGCS() {
		data, err = readGCS(r.Context(), attachment.StorageKey)
	} else {
		data, err = readLocal(attachment.StorageKey)
	}
	if err != nil {
		config.LogError(config.GetLogger(), "handlers", "GetAttachment",
			"read stored file", map[string]string{"storageKey": attachment.StorageKey}, err)
		writeError(w, http.StatusNotFound, "file not found")
		return
	}

	w.Header().Set("Content-Type", attachment.Mime)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("inline; filename*=UTF-8''%s", url.PathEscape(attachment.Filename)))
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
