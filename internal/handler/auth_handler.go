package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/auth の認証API
type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/api/auth")

	g.POST("/signup", h.signup)
	g.POST("/login", h.login)
	g.GET("/verify", h.verify, auth)
}

func (h *AuthHandler) signup(c echo.Context) error {
	var req usecase.SignupInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	out, err := h.uc.Signup(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req usecase.LoginInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	out, err := h.uc.Login(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// トークンが有効ならclaimsの中身をそのまま返す
func (h *AuthHandler) verify(c echo.Context) error {
	id, _ := c.Get(middleware.CtxUserIDKey).(int64)
	email, _ := c.Get(middleware.CtxUserEmailKey).(string)
	name, _ := c.Get(middleware.CtxUserNameKey).(string)
	role, _ := c.Get(middleware.CtxUserRoleKey).(string)

	return c.JSON(http.StatusOK, usecase.UserDTO{
		ID:    id,
		Name:  name,
		Email: email,
		Role:  role,
	})
}
