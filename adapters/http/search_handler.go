package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	searchUC "github.com/khoahotran/me-api/internal/application/usecase/search"
	"github.com/khoahotran/me-api/pkg/logger"
)

type SearchHandler struct {
	searchUseCase *searchUC.SearchUseCase
	logger        logger.Logger
}

func NewSearchHandler(uc *searchUC.SearchUseCase, log logger.Logger) *SearchHandler {
	return &SearchHandler{
		searchUseCase: uc,
		logger:        log,
	}
}

func (h *SearchHandler) Search(c *gin.Context) {
	results, err := h.searchUseCase.Execute(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToSearchResultsDTO(results))
}
