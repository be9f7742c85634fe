package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/me-api/pkg/auth"
	"github.com/khoahotran/me-api/pkg/logger"
	"github.com/khoahotran/me-api/pkg/ratelimit"
)

type Handlers struct {
	Profile *ProfileHandler
	Skill   *SkillHandler
	Project *ProjectHandler
	Work    *WorkHandler
	Search  *SearchHandler
}

type RouterOptions struct {
	TrustedProxies []string
	CORSOrigins    []string
	Limiter        ratelimit.Limiter
	Gate           *auth.AdminGate
}

// NewRouter wires middleware in the order request log, error rendering, CORS,
// rate limiting, then the routes. Preflights end at CORS and are not counted.
func NewRouter(h Handlers, opts RouterOptions, log logger.Logger) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, err
	}

	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))
	router.Use(ErrorMiddleware(log))
	router.Use(CORSMiddleware(opts.CORSOrigins))
	if opts.Limiter != nil {
		router.Use(RateLimitMiddleware(opts.Limiter, log))
	}

	admin := AdminMiddleware(opts.Gate)

	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	profile := router.Group("/profile")
	{
		profile.POST("", h.Profile.CreateProfile)
		profile.GET("", h.Profile.GetProfile)
		profile.PATCH("", admin, h.Profile.UpdateProfile)
		profile.DELETE("", admin, h.Profile.DeleteProfile)
	}

	skills := router.Group("/skills")
	{
		skills.GET("", h.Skill.ListSkills)
		skills.GET("/top", h.Skill.TopSkills)
		skills.GET("/:id", h.Skill.GetSkill)
		skills.POST("", admin, h.Skill.CreateSkill)
		skills.PUT("/:id", admin, h.Skill.UpdateSkill)
		skills.DELETE("/:id", admin, h.Skill.DeleteSkill)
	}

	projects := router.Group("/projects")
	{
		projects.GET("", h.Project.ListProjects)
		projects.GET("/feed.xml", h.Project.Feed)
		projects.GET("/:id", h.Project.GetProject)
		projects.POST("", admin, h.Project.CreateProject)
		projects.PUT("/:id", admin, h.Project.UpdateProject)
		projects.DELETE("/:id", admin, h.Project.DeleteProject)
	}

	work := router.Group("/work")
	{
		work.GET("", h.Work.ListWork)
		work.GET("/:id", h.Work.GetWork)
		work.POST("", admin, h.Work.CreateWork)
		work.PUT("/:id", admin, h.Work.UpdateWork)
		work.DELETE("/:id", admin, h.Work.DeleteWork)
	}

	router.GET("/search", h.Search.Search)

	return router, nil
}
