package controllers

import (
	"github.com/shashiranjanraj/campuskart/app/services"
	"github.com/shashiranjanraj/campuskart/pkg/ctx"
	"github.com/shashiranjanraj/campuskart/pkg/middleware"
)

type ModerationController struct {
	service *services.ModerationService
}

func NewModerationController() *ModerationController {
	return &ModerationController{service: services.NewModerationService()}
}

// SubmitRequest files a product request (seller).
func (mc *ModerationController) SubmitRequest(c *ctx.Context) {
	sellerID, ok := callerID(c)
	if !ok {
		return
	}

	var in services.RequestInput
	if !c.BindJSON(&in) {
		return
	}

	req, err := mc.service.SubmitRequest(c.Context(), sellerID, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(req)
}

// Requests lists product requests (admin sees all, seller their own).
func (mc *ModerationController) Requests(c *ctx.Context) {
	viewerID, ok := callerID(c)
	if !ok {
		return
	}
	role, _ := middleware.RoleFromCtx(c.R)

	requests, err := mc.service.Requests(c.Context(), viewerID, role, c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(requests)
}

// Approve accepts a pending request (admin).
func (mc *ModerationController) Approve(c *ctx.Context) {
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := mc.service.Approve(c.Context(), requestID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(product)
}

// Reject declines a pending request (admin).
func (mc *ModerationController) Reject(c *ctx.Context) {
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in struct {
		Reason string `json:"reason"`
	}
	if !c.BindJSON(&in) {
		return
	}

	if err := mc.service.Reject(c.Context(), requestID, in.Reason); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"status": "rejected"})
}

// Ban blocks a user account (admin).
func (mc *ModerationController) Ban(c *ctx.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := mc.service.SetBanned(c.Context(), userID, true); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]bool{"banned": true})
}

// Unban restores a user account (admin).
func (mc *ModerationController) Unban(c *ctx.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := mc.service.SetBanned(c.Context(), userID, false); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]bool{"banned": false})
}

// VerifySeller marks a seller account as verified (admin).
func (mc *ModerationController) VerifySeller(c *ctx.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := mc.service.VerifySeller(c.Context(), userID); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"seller_status": "verified"})
}
