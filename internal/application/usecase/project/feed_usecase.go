package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/me-api/internal/domain/page"
	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/internal/domain/project"
	"github.com/khoahotran/me-api/pkg/logger"
)

const feedItemLimit = 20

type FeedUseCase struct {
	projectRepo project.Repository
	profileRepo profile.Repository
	siteURL     string
	logger      logger.Logger
	now         func() time.Time
}

func NewFeedUseCase(projects project.Repository, profiles profile.Repository, siteURL string, log logger.Logger) *FeedUseCase {
	return &FeedUseCase{
		projectRepo: projects,
		profileRepo: profiles,
		siteURL:     strings.TrimRight(siteURL, "/"),
		logger:      log,
		now:         time.Now,
	}
}

// Execute builds an RSS feed of the most recent projects, newest first. The owner's name is
// used as the author when a profile exists.
func (uc *FeedUseCase) Execute(ctx context.Context) (*feeds.Feed, error) {
	ctx, span := tracer.Start(ctx, "Feed")
	defer span.End()

	feed := &feeds.Feed{
		Title:       "Me-API Playground - Projects",
		Link:        &feeds.Link{Href: uc.siteURL},
		Description: "Projects from the portfolio.",
		Created:     uc.now(),
	}
	if p, err := uc.profileRepo.First(ctx); err == nil {
		feed.Title = fmt.Sprintf("%s - Projects", p.Name)
		feed.Author = &feeds.Author{Name: p.Name, Email: p.Email}
	}

	limit := feedItemLimit
	projects, err := uc.projectRepo.List(ctx, project.Filter{NewestFirst: true, Page: page.List(&limit, 0)})
	if err != nil {
		uc.logger.Error("Failed to list projects for RSS", err)
		span.RecordError(err)
		return nil, err
	}

	feed.Items = make([]*feeds.Item, 0, len(projects))
	for _, p := range projects {
		link := p.URL()
		if link == "" && uc.siteURL != "" {
			link = fmt.Sprintf("%s/#project-%d", uc.siteURL, p.ID)
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          fmt.Sprintf("project-%d", p.ID),
			Title:       p.Title,
			Link:        &feeds.Link{Href: link},
			Description: p.Description,
			Created:     feed.Created,
		})
	}

	uc.logger.Debug("RSS feed generated", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}
