package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/khoahotran/me-api/adapters/persistence"
	"github.com/khoahotran/me-api/adapters/persistence/memory"
	"github.com/khoahotran/me-api/internal/config"
	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/internal/domain/project"
	"github.com/khoahotran/me-api/internal/domain/skill"
	"github.com/khoahotran/me-api/internal/domain/work"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/dburl"
	"github.com/khoahotran/me-api/pkg/logger"
)

type seedRepos struct {
	profiles profile.Repository
	skills   skill.Repository
	projects project.Repository
	work     work.Repository
}

var demoSkills = []struct{ name, proficiency string }{
	{"Python", "Advanced"},
	{"FastAPI", "Medium"},
	{"SQL", "Medium"},
	{"Docker", "Beginner"},
	{"LLM", "Beginner"},
}

func main() {
	fmt.Println("seeding demo portfolio...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	appLogger := logger.NewZapLogger(cfg.App.Env)
	ctx := context.Background()

	if !dburl.IsPostgres(cfg.DB.DSN) {
		if !dburl.IsMemory(cfg.DB.DSN) && cfg.DB.DSN != "" {
			log.Fatalf("DATABASE_URL must point to Postgres")
		}
		// Seeding the memory store only proves the data is valid.
		store := memory.NewStore()
		if err := seed(ctx, seedRepos{store.Profiles(), store.Skills(), store.Projects(), store.Work()}); err != nil {
			log.Fatalf("cannot seed: %v", err)
		}
		fmt.Println("Database seeded successfully (in-memory, nothing persisted)")
		return
	}

	if err := persistence.RunMigrations(cfg.DB.DSN, appLogger); err != nil {
		log.Fatalf("cannot migrate: %v", err)
	}
	pool, err := persistence.NewPostgresPool(ctx, cfg.DB.DSN, appLogger)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	repos := seedRepos{
		profiles: persistence.NewPostgresProfileRepo(pool, appLogger),
		skills:   persistence.NewPostgresSkillRepo(pool, appLogger),
		projects: persistence.NewPostgresProjectRepo(pool, appLogger),
		work:     persistence.NewPostgresWorkRepo(pool, appLogger),
	}
	if err := seed(ctx, repos); err != nil {
		log.Fatalf("cannot seed: %v", err)
	}
	fmt.Println("Database seeded successfully")
}

// seed creates the demo portfolio. Rows that already exist are left alone, so
// running it twice changes nothing.
func seed(ctx context.Context, r seedRepos) error {
	owner, err := r.profiles.First(ctx)
	if errors.Is(err, apperror.ErrNotFound) {
		github := "https://github.com/Dracula-5"
		linkedin := "https://www.linkedin.com/in/k-v-dheeraj-reddy-727075303/"
		owner = &profile.Profile{
			Name:      "K V Dheeraj Reddy",
			Email:     "dheerajsmile236@gmail.com",
			Education: "B.Tech in Engineering Physics at IIT Mandi",
			Github:    &github,
			Linkedin:  &linkedin,
		}
		err = r.profiles.Create(ctx, owner)
	}
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}

	existing, err := r.skills.ListByProfile(ctx, owner.ID)
	if err != nil {
		return fmt.Errorf("list skills: %w", err)
	}
	for _, s := range demoSkills {
		if slices.ContainsFunc(existing, func(e *skill.Skill) bool { return e.Name == s.name }) {
			continue
		}
		if err := r.skills.Create(ctx, &skill.Skill{Name: s.name, Proficiency: s.proficiency, ProfileID: owner.ID}); err != nil {
			return fmt.Errorf("skill %s: %w", s.name, err)
		}
	}

	projects, err := r.projects.ListByProfile(ctx, owner.ID)
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}
	if !slices.ContainsFunc(projects, func(p *project.Project) bool { return p.Title == "Sample Project" }) {
		err := r.projects.Create(ctx, &project.Project{
			Title:       "Sample Project",
			Description: "This is a sample project description",
			Links:       map[string]any{project.LinkKey: "https://example.com"},
			ProfileID:   owner.ID,
		})
		if err != nil {
			return fmt.Errorf("project: %w", err)
		}
	}

	items, err := r.work.ListByProfile(ctx, owner.ID)
	if err != nil {
		return fmt.Errorf("list work: %w", err)
	}
	if !slices.ContainsFunc(items, func(w *work.Work) bool { return w.Company == "Example Company" }) {
		desc := "Built APIs and internal tooling."
		err := r.work.Create(ctx, &work.Work{
			Company:     "Example Company",
			Role:        "Software Engineer",
			StartDate:   "2023-01",
			Description: &desc,
			ProfileID:   owner.ID,
		})
		if err != nil {
			return fmt.Errorf("work: %w", err)
		}
	}
	return nil
}
