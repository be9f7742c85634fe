package search

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/me-api/internal/domain/project"
	"github.com/khoahotran/me-api/internal/domain/search"
	"github.com/khoahotran/me-api/internal/domain/skill"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/logger"
)

var tracer = otel.Tracer("search_usecase")

type SearchUseCase struct {
	searchRepo search.Repository
	logger     logger.Logger
}

func NewSearchUseCase(sr search.Repository, log logger.Logger) *SearchUseCase {
	return &SearchUseCase{
		searchRepo: sr,
		logger:     log,
	}
}

// Execute matches skills by name and projects by title or description.
// An empty query yields two empty lists.
func (uc *SearchUseCase) Execute(ctx context.Context, query string) (*search.Results, error) {
	if query == "" {
		return &search.Results{Skills: []*skill.Skill{}, Projects: []*project.Project{}}, nil
	}

	ctx, span := tracer.Start(ctx, "Execute")
	defer span.End()
	span.SetAttributes(attribute.String("query", query))

	results, err := uc.searchRepo.Search(ctx, query)
	if err != nil {
		uc.logger.Error("Search execution failed", err, zap.String("query", query))
		span.RecordError(err)
		return nil, apperror.NewInternal("search failed", err)
	}

	if results.Skills == nil {
		results.Skills = []*skill.Skill{}
	}
	if results.Projects == nil {
		results.Projects = []*project.Project{}
	}
	return results, nil
}
