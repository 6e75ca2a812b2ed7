package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/campuskart/app/services"
	"github.com/shashiranjanraj/campuskart/pkg/ctx"
	"github.com/shashiranjanraj/campuskart/pkg/logger"
	"github.com/shashiranjanraj/campuskart/pkg/middleware"
	"github.com/shashiranjanraj/campuskart/pkg/ws"
)

type NotificationController struct {
	service *services.NotificationService
}

func NewNotificationController() *NotificationController {
	return &NotificationController{service: services.NewNotificationService()}
}

func (nc *NotificationController) List(c *ctx.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	p, l := page(c)
	notifications, err := nc.service.List(c.Context(), userID, p, l)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(notifications)
}

func (nc *NotificationController) UnreadCount(c *ctx.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	count, err := nc.service.UnreadCount(c.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]int64{"unread": count})
}

func (nc *NotificationController) MarkRead(c *ctx.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := nc.service.MarkRead(c.Context(), userID, id); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]bool{"read": true})
}

func (nc *NotificationController) MarkAllRead(c *ctx.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := nc.service.MarkAllRead(c.Context(), userID); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]bool{"read": true})
}

func (nc *NotificationController) Delete(c *ctx.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := nc.service.Delete(c.Context(), userID, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stream upgrades to a WebSocket so new notifications arrive live.
func (nc *NotificationController) Stream(c *ctx.Context) {
	userID, ok := middleware.UserIDFromCtx(c.R)
	if !ok {
		c.Unauthorized()
		return
	}

	if err := ws.Upgrade(c.W, c.R, userID); err != nil {
		logger.WithCtx(c.Context()).Error("notifications: ws upgrade failed", "error", err)
	}
}
