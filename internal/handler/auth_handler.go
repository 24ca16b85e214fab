package handler

import (
	"net/http"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/auth の認証API
type AuthHandler struct {
	uc *usecase.UserUsecase
}

// DI
func NewAuthHandler(uc *usecase.UserUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// 認証ルートを登録
func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/auth")

	g.POST("/signup", h.signup)
	g.POST("/login", h.login)
	g.POST("/create-admin", h.createAdmin)
}

// /auth/signup・/auth/create-admin のリクエストボディ。
type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// /auth/login のリクエストボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// passwordは絶対にレスポンスに含めない。
type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}

func (h *AuthHandler) signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	user, err := h.uc.Signup(c.Request().Context(), usecase.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *AuthHandler) createAdmin(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	user, err := h.uc.CreateAdmin(c.Request().Context(), usecase.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	user, ok, err := h.uc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	if !ok {
		// 認証失敗はプレーンテキストで返す
		return c.String(http.StatusUnauthorized, "Invalid email or password")
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}
