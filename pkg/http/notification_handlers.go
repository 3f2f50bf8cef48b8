package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"liyu1981.xyz/cct-cloud-service/pkg/cct"
	"liyu1981.xyz/cct-cloud-service/pkg/models"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

func (rs *RestfulServer) ListNotifications(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		var err error
		if limit, err = strconv.Atoi(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit, should be an int value"})
			return
		}
	}
	unreadOnly, ok := boolQuery(c, "unread_only", false)
	if !ok {
		return
	}

	notifications, err := rs.Cct.Notifier.ListNotifications(currentUser(c).ID, limit, unreadOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (rs *RestfulServer) MarkNotificationRead(c *gin.Context) {
	notificationID, ok := uintParam(c, "notification_id")
	if !ok {
		return
	}

	notification, err := rs.Cct.Notifier.MarkAsRead(notificationID, currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (rs *RestfulServer) MarkAllNotificationsRead(c *gin.Context) {
	count, err := rs.Cct.Notifier.MarkAllAsRead(currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Marked %d notifications as read", count), "count": count})
}

type TestNotificationRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

var testNotificationRequestSchema = z.Struct(z.Shape{
	"title":   z.String().Required(),
	"message": z.String().Required(),
})

func (rs *RestfulServer) SendTestNotification(c *gin.Context) {
	var req TestNotificationRequest
	if err := testNotificationRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	results, err := rs.Cct.Notifier.SendNotification(&cct.NotificationRequest{
		UserID:  currentUser(c).ID,
		Title:   req.Title,
		Message: req.Message,
		Type:    models.NotificationTypeTest,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Test notification sent", "results": results})
}
