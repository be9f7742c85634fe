package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	skillUC "github.com/khoahotran/me-api/internal/application/usecase/skill"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/logger"
)

type SkillHandler struct {
	skillUseCase *skillUC.SkillUseCase
	logger       logger.Logger
}

func NewSkillHandler(uc *skillUC.SkillUseCase, log logger.Logger) *SkillHandler {
	return &SkillHandler{skillUseCase: uc, logger: log}
}

func (h *SkillHandler) CreateSkill(c *gin.Context) {
	var req CreateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	s, err := h.skillUseCase.Create(c.Request.Context(), skillUC.CreateSkillInput{
		Name:        *req.Name,
		Proficiency: *req.Proficiency,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToSkillDTO(s))
}

func (h *SkillHandler) ListSkills(c *gin.Context) {
	limit, offset, err := pagination(c)
	if err != nil {
		c.Error(err)
		return
	}

	skills, err := h.skillUseCase.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToSkillDTOs(skills))
}

func (h *SkillHandler) TopSkills(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		c.Error(err)
		return
	}

	skills, err := h.skillUseCase.Top(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToSkillDTOs(skills))
}

func (h *SkillHandler) GetSkill(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	s, err := h.skillUseCase.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToSkillDTO(s))
}

func (h *SkillHandler) UpdateSkill(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req UpdateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	s, err := h.skillUseCase.Update(c.Request.Context(), id, req.ToDomain())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToSkillDTO(s))
}

func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.skillUseCase.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
