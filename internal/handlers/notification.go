package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/giahoa6/crm/internal/notify"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NotificationHTTPHandler streams notifications published to redis channel
type NotificationHTTPHandler struct {
	client  *redis.Client
	channel string
}

// NewNotificationHTTPHandler builds new NotificationHTTPHandler, nil client disables stream
func NewNotificationHTTPHandler(client *redis.Client, channel string) *NotificationHTTPHandler {
	return &NotificationHTTPHandler{client: client, channel: channel}
}

// Stream streams notifications
// @Summary     Notifications stream
// @Description Server-sent events with notifications such as new customer, stream lasts until client disconnects
// @Tags        notifications
// @Security	ApiKeyAuth
// @Produce     text/event-stream
// @Success     200    {object} notify.Notification
// @Failure     503    {object} echo.HTTPError
// @Router      /api/notifications [get]
func (h *NotificationHTTPHandler) Stream(c echo.Context) error {
	if h.client == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "notifications are not configured")
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	err := notify.Listen(c.Request().Context(), h.client, h.channel, func(n notify.Notification) {
		data, err := json.Marshal(&n)
		if err != nil {
			logrus.Warnf("failed to encode notification - %v", err)
			return
		}

		if _, err := fmt.Fprintf(res, "event: notification\ndata: %s\n\n", data); err != nil {
			logrus.Debugf("failed to write notification - %v", err)
			return
		}
		res.Flush()
	})
	if err != nil {
		logrus.Warnf("notifications stream stopped - %v", err)
	}
	return nil
}
