package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	projectUC "github.com/khoahotran/me-api/internal/application/usecase/project"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/logger"
)

type ProjectHandler struct {
	projectUseCase *projectUC.ProjectUseCase
	feedUseCase    *projectUC.FeedUseCase
	logger         logger.Logger
}

func NewProjectHandler(uc *projectUC.ProjectUseCase, feedUC *projectUC.FeedUseCase, log logger.Logger) *ProjectHandler {
	return &ProjectHandler{projectUseCase: uc, feedUseCase: feedUC, logger: log}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	p, err := h.projectUseCase.Create(c.Request.Context(), projectUC.CreateProjectInput{
		Title:       *req.Title,
		Description: *req.Description,
		Links:       req.Links,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToProjectDTO(p))
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	limit, offset, err := pagination(c)
	if err != nil {
		c.Error(err)
		return
	}

	projects, err := h.projectUseCase.List(c.Request.Context(), projectUC.ListProjectsInput{
		Skill:  c.Query("skill"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProjectDTOs(projects))
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	p, err := h.projectUseCase.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProjectDTO(p))
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	p, err := h.projectUseCase.Update(c.Request.Context(), id, req.ToDomain())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProjectDTO(p))
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.projectUseCase.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ProjectHandler) Feed(c *gin.Context) {
	feed, err := h.feedUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(apperror.NewInternal("failed to generate RSS feed", err))
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	if err := feed.WriteRss(c.Writer); err != nil {
		h.logger.Error("Failed to write RSS feed to response", err)
	}
}
