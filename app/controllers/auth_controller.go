package controllers

import (
	"github.com/shashiranjanraj/campuskart/app/services"
	"github.com/shashiranjanraj/campuskart/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

func (ac *AuthController) Signup(c *ctx.Context) {
	var in services.SignupInput
	if !c.BindJSON(&in) {
		return
	}

	pair, err := ac.service.Signup(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(pair)
}

func (ac *AuthController) Login(c *ctx.Context) {
	var in struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if !c.BindJSON(&in) {
		return
	}

	pair, err := ac.service.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(pair)
}

func (ac *AuthController) Refresh(c *ctx.Context) {
	var in struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if !c.BindJSON(&in) {
		return
	}

	pair, err := ac.service.Refresh(c.Context(), in.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(pair)
}

func (ac *AuthController) Profile(c *ctx.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}

	user, err := ac.service.Profile(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(user)
}
