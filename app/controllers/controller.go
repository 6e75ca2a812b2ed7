// Package controllers holds the HTTP handlers. Controllers bind and
// validate the request, call one service method, and translate the result
// into the JSON envelope. No business rules live here.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/campuskart/app/services"
	"github.com/shashiranjanraj/campuskart/pkg/ctx"
	"github.com/shashiranjanraj/campuskart/pkg/logger"
	"github.com/shashiranjanraj/campuskart/pkg/middleware"
)

// fail converts a service error into the right HTTP response. Anything
// outside the taxonomy is a 500 with a generic message; the detail goes to
// the log, not the client.
func fail(c *ctx.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrValidation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrPaymentVerification):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logger.WithCtx(c.Context()).Error("request failed", "error", err)
		c.Error(status, "Something went wrong")
		return
	}
	c.Error(status, services.Message(err))
}

// callerID returns the authenticated user's ObjectID. The auth middleware
// guarantees a valid hex ID is present on protected routes.
func callerID(c *ctx.Context) (primitive.ObjectID, bool) {
	idHex, ok := middleware.UserIDFromCtx(c.R)
	if !ok {
		c.Unauthorized()
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		c.Unauthorized()
		return primitive.NilObjectID, false
	}
	return id, true
}

// pathID parses an {id} path parameter as an ObjectID.
func pathID(c *ctx.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.Error(http.StatusUnprocessableEntity, "invalid "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}

// page reads ?page= and ?limit= with defaults.
func page(c *ctx.Context) (int64, int64) {
	p := int64(1)
	l := int64(20)
	if v := c.Query("page"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			p = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			l = n
		}
	}
	return p, l
}
