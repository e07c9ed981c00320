package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/mtmaterial/config"
	"p9e.in/mtmaterial/models"
)

// ListNotifications returns duplicate notifications, newest first.
// ?status=open|closed filters, ?countOnly=true feeds the sidebar badge.
func ListNotifications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := config.DB.Model(&models.Notification{})
	switch q.Get("status") {
	case "open":
		query = query.Where("is_closed = ?", false)
	case "closed":
		query = query.Where("is_closed = ?", true)
	}

	if q.Get("countOnly") == "true" {
		var count int64
		if err := query.Count(&count).Error; err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]int64{"count": count})
		return
	}

	var notifications []models.Notification
	if err := query.Order("first_triggered_at desc").Find(&notifications).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": notifications})
}

type updateNotificationReq struct {
	IsClosed *bool `json:"isClosed"`
}

// UpdateNotification closes (default) or reopens a notification.
func UpdateNotification(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var notification models.Notification
	if err := config.DB.Where("id = ?", id).First(&notification).Error; err != nil {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}

	var req updateNotificationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	closed := true
	if req.IsClosed != nil {
		closed = *req.IsClosed
	}

	if err := SetNotificationClosed(config.DB, &notification, closed); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, notification)
}
