package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	workUC "github.com/khoahotran/me-api/internal/application/usecase/work"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/logger"
)

type WorkHandler struct {
	workUseCase *workUC.WorkUseCase
	logger      logger.Logger
}

func NewWorkHandler(uc *workUC.WorkUseCase, log logger.Logger) *WorkHandler {
	return &WorkHandler{workUseCase: uc, logger: log}
}

func (h *WorkHandler) CreateWork(c *gin.Context) {
	var req CreateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	w, err := h.workUseCase.Create(c.Request.Context(), workUC.CreateWorkInput{
		Company:     *req.Company,
		Role:        *req.Role,
		StartDate:   *req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToWorkDTO(w))
}

func (h *WorkHandler) ListWork(c *gin.Context) {
	limit, offset, err := pagination(c)
	if err != nil {
		c.Error(err)
		return
	}

	items, err := h.workUseCase.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToWorkDTOs(items))
}

func (h *WorkHandler) GetWork(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	w, err := h.workUseCase.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToWorkDTO(w))
}

func (h *WorkHandler) UpdateWork(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req UpdateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	w, err := h.workUseCase.Update(c.Request.Context(), id, req.ToDomain())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToWorkDTO(w))
}

func (h *WorkHandler) DeleteWork(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.workUseCase.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
