package sitemeta

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/khoahotran/me-api/internal/application/service"
	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/internal/domain/project"
	"github.com/khoahotran/me-api/internal/domain/skill"
	"github.com/khoahotran/me-api/pkg/htmlmeta"
	"github.com/khoahotran/me-api/pkg/logger"
)

var tracer = otel.Tracer("sitemeta_usecase")

// ReaderFactory returns a reader for the API rooted at apiBase.
type ReaderFactory func(apiBase string) service.PortfolioReader

type SiteMetaUseCase struct {
	newReader ReaderFactory
	logger    logger.Logger
}

func NewSiteMetaUseCase(newReader ReaderFactory, log logger.Logger) *SiteMetaUseCase {
	return &SiteMetaUseCase{newReader: newReader, logger: log}
}

type RewriteInput struct {
	HTMLPath string
	APIBase  string
	SiteURL  string
}

type RewriteOutput struct {
	// Updated is false when no API base could be resolved; the file is untouched.
	Updated bool
	APIBase string
}

// Execute rewrites the page's metadata from the live API. Fetch failures
// degrade to empty data instead of failing the run.
func (uc *SiteMetaUseCase) Execute(ctx context.Context, in RewriteInput) (*RewriteOutput, error) {
	ctx, span := tracer.Start(ctx, "Execute")
	defer span.End()

	raw, err := os.ReadFile(in.HTMLPath)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("read %s: %w", in.HTMLPath, err)
	}
	doc := string(raw)

	apiBase := in.APIBase
	if apiBase == "" {
		apiBase, _ = htmlmeta.MetaContent(doc, "name", "api-base")
	}
	apiBase = strings.TrimRight(strings.TrimSpace(apiBase), "/")
	if apiBase == "" {
		return &RewriteOutput{Updated: false}, nil
	}

	siteURL := in.SiteURL
	if siteURL == "" {
		siteURL, _ = htmlmeta.MetaContent(doc, "property", "og:url")
	}

	reader := uc.newReader(apiBase)

	p, err := reader.Profile(ctx)
	if err != nil {
		uc.logger.Warn("Profile fetch failed, using defaults", zap.Error(err))
		p = &profile.Profile{}
	}
	skills, err := reader.Skills(ctx)
	if err != nil {
		uc.logger.Warn("Skills fetch failed, using defaults", zap.Error(err))
		skills = []*skill.Skill{}
	}
	projects, err := reader.Projects(ctx)
	if err != nil {
		uc.logger.Warn("Projects fetch failed, using defaults", zap.Error(err))
		projects = []*project.Project{}
	}

	out, err := Apply(doc, BuildMetadata(p, skills, projects, siteURL))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := atomic.WriteFile(in.HTMLPath, bytes.NewBufferString(out)); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("write %s: %w", in.HTMLPath, err)
	}

	uc.logger.Info("Metadata updated", zap.String("file", in.HTMLPath), zap.String("api_base", apiBase))
	return &RewriteOutput{Updated: true, APIBase: apiBase}, nil
}
