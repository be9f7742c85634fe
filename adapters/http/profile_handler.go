package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/khoahotran/me-api/internal/application/usecase/profile"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile", err))
		return
	}

	output, err := h.profileUseCase.Create(c.Request.Context(), profileUC.CreateProfileInput{
		Name:      *req.Name,
		Email:     *req.Email,
		Education: *req.Education,
		Github:    req.Github,
		Linkedin:  req.Linkedin,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToProfileDTO(output))
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	output, err := h.profileUseCase.Get(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(output))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile update", err))
		return
	}

	output, err := h.profileUseCase.Update(c.Request.Context(), req.ToDomain())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(output))
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	if err := h.profileUseCase.Delete(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
