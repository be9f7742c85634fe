package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/me-api/adapters/persistence/memory"
	"github.com/khoahotran/me-api/internal/application/service"
	profileUC "github.com/khoahotran/me-api/internal/application/usecase/profile"
	projectUC "github.com/khoahotran/me-api/internal/application/usecase/project"
	searchUC "github.com/khoahotran/me-api/internal/application/usecase/search"
	skillUC "github.com/khoahotran/me-api/internal/application/usecase/skill"
	workUC "github.com/khoahotran/me-api/internal/application/usecase/work"
	"github.com/khoahotran/me-api/pkg/auth"
	"github.com/khoahotran/me-api/pkg/logger"
	"github.com/khoahotran/me-api/pkg/ratelimit"
)

const testAdminKey = "s3cret"

func newTestRouter(t *testing.T, adminKey string, limiter ratelimit.Limiter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	store := memory.NewStore()
	events := service.NewNopPublisher()

	h := Handlers{
		Profile: NewProfileHandler(profileUC.NewProfileUseCase(store.Profiles(), store.Skills(), store.Projects(), store.Work(), events, log), log),
		Skill:   NewSkillHandler(skillUC.NewSkillUseCase(store.Skills(), store.Profiles(), events, log), log),
		Project: NewProjectHandler(
			projectUC.NewProjectUseCase(store.Projects(), store.Profiles(), events, log),
			projectUC.NewFeedUseCase(store.Projects(), store.Profiles(), "https://example.com", log),
			log,
		),
		Work:   NewWorkHandler(workUC.NewWorkUseCase(store.Work(), store.Profiles(), events, log), log),
		Search: NewSearchHandler(searchUC.NewSearchUseCase(store.Search(), log), log),
	}

	router, err := NewRouter(h, RouterOptions{
		CORSOrigins: []string{"*"},
		Limiter:     limiter,
		Gate:        auth.NewAdminGate(adminKey),
	}, log)
	require.NoError(t, err)
	return router
}

type RouterTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	s.router = newTestRouter(s.T(), testAdminKey, nil)
}

func (s *RouterTestSuite) do(method, path, body string, admin bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set(auth.HeaderAPIKey, testAdminKey)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *RouterTestSuite) createProfile() ProfileDTO {
	w := s.do(http.MethodPost, "/profile",
		`{"name":"Ada","email":"ada@example.com","education":"BSc","github":"https://github.com/ada"}`, false)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var p ProfileDTO
	s.decode(w, &p)
	return p
}

func (s *RouterTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", false)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())
	s.NotEmpty(w.Header().Get(HeaderRequestID))
}

func (s *RouterTestSuite) TestProfile_CreateTwiceIsRejected() {
	p := s.createProfile()
	s.Equal("Ada", p.Name)
	s.Empty(p.Skills)

	w := s.do(http.MethodPost, "/profile", `{"name":"Bob","email":"b@example.com","education":"MSc"}`, false)
	s.Equal(http.StatusBadRequest, w.Code)

	var body map[string]string
	s.decode(w, &body)
	s.Equal("Profile already exists", body["message"])
}

func (s *RouterTestSuite) TestProfile_MissingRequiredField() {
	w := s.do(http.MethodPost, "/profile", `{"name":"Ada","email":"ada@example.com"}`, false)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/profile", `{"name":null,"email":"ada@example.com","education":"BSc"}`, false)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) TestProfile_GetBeforeCreate() {
	w := s.do(http.MethodGet, "/profile", "", false)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterTestSuite) TestProfile_PatchIsPartial() {
	s.createProfile()

	w := s.do(http.MethodPatch, "/profile", `{"education":"PhD","github":null}`, true)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var p ProfileDTO
	s.decode(w, &p)
	s.Equal("Ada", p.Name)
	s.Equal("ada@example.com", p.Email)
	s.Equal("PhD", p.Education)
	s.Nil(p.Github)
}

func (s *RouterTestSuite) TestProfile_PatchNullOnRequiredField() {
	s.createProfile()

	w := s.do(http.MethodPatch, "/profile", `{"name":null}`, true)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/profile", "", false)
	var p ProfileDTO
	s.decode(w, &p)
	s.Equal("Ada", p.Name)
}

func (s *RouterTestSuite) TestAdminGate() {
	s.createProfile()

	w := s.do(http.MethodPost, "/skills", `{"name":"Go","proficiency":"Advanced"}`, false)
	s.Equal(http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/skills", strings.NewReader(`{"name":"Go","proficiency":"Advanced"}`))
	req.Header.Set(auth.HeaderAPIKey, "wrong")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusUnauthorized, rec.Code)

	w = s.do(http.MethodPatch, "/profile", `{"name":"Eve"}`, false)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterTestSuite) TestChildBeforeProfile() {
	for _, tc := range []struct{ path, body string }{
		{"/skills", `{"name":"Go","proficiency":"Advanced"}`},
		{"/projects", `{"title":"X","description":"Y"}`},
		{"/work", `{"company":"Acme","role":"Dev","start_date":"2020-01"}`},
	} {
		w := s.do(http.MethodPost, tc.path, tc.body, true)
		s.Equal(http.StatusBadRequest, w.Code, tc.path)

		var body map[string]string
		s.decode(w, &body)
		s.Equal("Create profile first", body["message"], tc.path)
	}
}

func (s *RouterTestSuite) TestSkills_CRUDAndTop() {
	s.createProfile()
	for _, name := range []string{"Python", "Docker", "SQL"} {
		w := s.do(http.MethodPost, "/skills", fmt.Sprintf(`{"name":%q,"proficiency":"Medium"}`, name), true)
		s.Require().Equal(http.StatusCreated, w.Code)
	}

	w := s.do(http.MethodGet, "/skills/top?limit=2", "", false)
	s.Require().Equal(http.StatusOK, w.Code)
	var top []SkillDTO
	s.decode(w, &top)
	s.Require().Len(top, 2)
	s.Equal("Docker", top[0].Name)
	s.Equal("Python", top[1].Name)

	w = s.do(http.MethodPut, "/skills/1", `{"proficiency":"Advanced"}`, true)
	s.Require().Equal(http.StatusOK, w.Code)
	var updated SkillDTO
	s.decode(w, &updated)
	s.Equal("Python", updated.Name)
	s.Equal("Advanced", updated.Proficiency)

	w = s.do(http.MethodDelete, "/skills/1", "", true)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"ok":true}`, w.Body.String())

	w = s.do(http.MethodGet, "/skills/1", "", false)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/skills/abc", "", false)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) TestSkills_LimitIsClamped() {
	s.createProfile()
	for i := range 105 {
		w := s.do(http.MethodPost, "/skills", fmt.Sprintf(`{"name":"skill-%03d","proficiency":"Beginner"}`, i), true)
		s.Require().Equal(http.StatusCreated, w.Code)
	}

	w := s.do(http.MethodGet, "/skills?limit=500", "", false)
	s.Require().Equal(http.StatusOK, w.Code)
	var skills []SkillDTO
	s.decode(w, &skills)
	s.Len(skills, 100)

	w = s.do(http.MethodGet, "/skills?offset=100", "", false)
	s.decode(w, &skills)
	s.Len(skills, 5)

	w = s.do(http.MethodGet, "/skills?limit=ten", "", false)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) TestProjects_SkillFilterAndFeed() {
	s.createProfile()
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/skills", `{"name":"Python","proficiency":"Advanced"}`, true).Code)

	w := s.do(http.MethodPost, "/projects",
		`{"title":"Sample Project","description":"A demo","links":{"repo":"https://github.com/ada/sample"}}`, true)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created ProjectDTO
	s.decode(w, &created)
	s.Equal("https://github.com/ada/sample", created.Links["repo"])

	var projects []ProjectDTO
	w = s.do(http.MethodGet, "/projects?skill=pyth", "", false)
	s.decode(w, &projects)
	s.Len(projects, 1)

	w = s.do(http.MethodGet, "/projects?skill=rust", "", false)
	s.decode(w, &projects)
	s.Empty(projects)

	w = s.do(http.MethodGet, "/projects/feed.xml", "", false)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Header().Get("Content-Type"), "application/rss+xml")
	s.Contains(w.Body.String(), "Sample Project")
}

func (s *RouterTestSuite) TestWork_CRUD() {
	s.createProfile()

	w := s.do(http.MethodPost, "/work", `{"company":"Acme","role":"Engineer","start_date":"2021-06"}`, true)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPut, "/work/1", `{"end_date":"2023-01"}`, true)
	s.Require().Equal(http.StatusOK, w.Code)
	var item WorkDTO
	s.decode(w, &item)
	s.Equal("Acme", item.Company)
	s.Require().NotNil(item.EndDate)
	s.Equal("2023-01", *item.EndDate)

	w = s.do(http.MethodPut, "/work/99", `{"role":"CTO"}`, true)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterTestSuite) TestDeleteProfileCascades() {
	s.createProfile()
	s.do(http.MethodPost, "/skills", `{"name":"Go","proficiency":"Advanced"}`, true)
	s.do(http.MethodPost, "/projects", `{"title":"T","description":"D"}`, true)
	s.do(http.MethodPost, "/work", `{"company":"Acme","role":"Dev","start_date":"2020"}`, true)

	w := s.do(http.MethodDelete, "/profile", "", true)
	s.Require().Equal(http.StatusOK, w.Code)

	for _, path := range []string{"/skills", "/projects", "/work"} {
		w = s.do(http.MethodGet, path, "", false)
		s.Equal("[]", strings.TrimSpace(w.Body.String()), path)
	}
}

func (s *RouterTestSuite) TestSearch() {
	w := s.do(http.MethodGet, "/search", "", false)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"skills":[],"projects":[]}`, w.Body.String())

	s.createProfile()
	s.do(http.MethodPost, "/skills", `{"name":"PostgreSQL","proficiency":"Medium"}`, true)
	s.do(http.MethodPost, "/projects", `{"title":"Ledger","description":"Runs on postgres"}`, true)

	w = s.do(http.MethodGet, "/search?q=POSTGRES", "", false)
	var res SearchResultsDTO
	s.decode(w, &res)
	s.Len(res.Skills, 1)
	s.Len(res.Projects, 1)
}

func TestRouter_EmptyAdminKeyRejectsEverything(t *testing.T) {
	router := newTestRouter(t, "", nil)

	req := httptest.NewRequest(http.MethodDelete, "/profile", nil)
	req.Header.Set(auth.HeaderAPIKey, "anything")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := ratelimit.NewMemoryLimiter(
		ratelimit.Config{Limit: 2, Window: time.Minute},
		ratelimit.WithClock(func() time.Time { return now }),
	)
	router := newTestRouter(t, testAdminKey, limiter)

	get := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, get().Code)
	assert.Equal(t, http.StatusOK, get().Code)

	w := get()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	now = now.Add(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, get().Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(t, testAdminKey, nil)

	req := httptest.NewRequest(http.MethodOptions, "/skills", bytes.NewReader(nil))
	req.Header.Set("Origin", "https://portfolio.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RateLimitedResponseKeepsCORSHeaders(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := ratelimit.NewMemoryLimiter(
		ratelimit.Config{Limit: 1, Window: time.Minute},
		ratelimit.WithClock(func() time.Time { return now }),
	)
	router := newTestRouter(t, testAdminKey, limiter)

	send := func(method string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/skills", nil)
		req.RemoteAddr = "203.0.113.9:5555"
		req.Header.Set("Origin", "https://portfolio.example")
		if method == http.MethodOptions {
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// Preflights do not use up the window.
	for range 3 {
		assert.Equal(t, http.StatusNoContent, send(http.MethodOptions).Code)
	}
	assert.Equal(t, http.StatusOK, send(http.MethodGet).Code)

	w := send(http.MethodGet)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
