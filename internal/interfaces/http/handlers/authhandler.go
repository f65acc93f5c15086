package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	staffdto "f3manager/internal/application/staff/dto"
	staffUsecases "f3manager/internal/application/staff/usecases"
	"f3manager/internal/shared/config"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

// AuthHandler covers staff login and staff account management.
type AuthHandler struct {
	loginUC      loginUseCase
	registerUC   registerStaffUseCase
	getStaffUC   getStaffUseCase
	cookieConfig config.CookieConfig
	logger       logger.Interface
}

func NewAuthHandler(
	loginUC loginUseCase,
	registerUC registerStaffUseCase,
	getStaffUC getStaffUseCase,
	cookieConfig config.CookieConfig,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		loginUC:      loginUC,
		registerUC:   registerUC,
		getStaffUC:   getStaffUC,
		cookieConfig: cookieConfig,
		logger:       logger,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required"`
}

type RegisterStaffRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required,max=100"`
	Role     string `json:"role" binding:"omitempty,oneof=admin operator"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginResponse struct {
	User        *staffdto.StaffDTO `json:"user"`
	AccessToken string             `json:"access_token"`
	TokenType   string             `json:"token_type"`
	ExpiresIn   int64              `json:"expires_in"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), staffUsecases.LoginCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetAccessTokenCookie(c, h.cookieConfig, result.AccessToken, int(result.ExpiresIn))

	utils.SuccessResponse(c, http.StatusOK, "login successful", LoginResponse{
		User:        result.User,
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		ExpiresIn:   result.ExpiresIn,
	})
}

// Logout drops the browser cookie. Bearer tokens simply expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.ClearAccessTokenCookie(c, h.cookieConfig)
	utils.SuccessResponse(c, http.StatusOK, "logout successful", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	actor, err := utils.MustGetActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	me, err := h.getStaffUC.Me(c.Request.Context(), actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", me)
}

func (h *AuthHandler) RegisterStaff(c *gin.Context) {
	actor, err := utils.MustGetActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RegisterStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register staff", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	created, err := h.registerUC.Execute(c.Request.Context(), staffUsecases.RegisterStaffCommand{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
		Password: req.Password,
		Actor:    actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, created, "Staff account created")
}

func (h *AuthHandler) ListStaff(c *gin.Context) {
	actor, err := utils.MustGetActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	users, err := h.getStaffUC.List(c.Request.Context(), actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", users)
}
