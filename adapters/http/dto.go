package http

import (
	profileUC "github.com/khoahotran/me-api/internal/application/usecase/profile"
	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/internal/domain/project"
	"github.com/khoahotran/me-api/internal/domain/search"
	"github.com/khoahotran/me-api/internal/domain/skill"
	"github.com/khoahotran/me-api/internal/domain/work"
	"github.com/khoahotran/me-api/pkg/optional"
)

// Required fields are pointers so that a missing key and an explicit null are
// both rejected by binding:"required", while "" is accepted.

// Profile DTOs
type CreateProfileRequest struct {
	Name      *string `json:"name" binding:"required"`
	Email     *string `json:"email" binding:"required"`
	Education *string `json:"education" binding:"required"`
	Github    *string `json:"github"`
	Linkedin  *string `json:"linkedin"`
}

type UpdateProfileRequest struct {
	Name      optional.Value[string]  `json:"name"`
	Email     optional.Value[string]  `json:"email"`
	Education optional.Value[string]  `json:"education"`
	Github    optional.Value[*string] `json:"github"`
	Linkedin  optional.Value[*string] `json:"linkedin"`
}

func (r UpdateProfileRequest) ToDomain() profile.Update {
	return profile.Update{
		Name:      r.Name,
		Email:     r.Email,
		Education: r.Education,
		Github:    r.Github,
		Linkedin:  r.Linkedin,
	}
}

type ProfileDTO struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Education string       `json:"education"`
	Github    *string      `json:"github"`
	Linkedin  *string      `json:"linkedin"`
	Skills    []SkillDTO   `json:"skills"`
	Projects  []ProjectDTO `json:"projects"`
	Work      []WorkDTO    `json:"work"`
}

func ToProfileDTO(d *profileUC.ProfileDetail) ProfileDTO {
	return ProfileDTO{
		ID:        d.Profile.ID,
		Name:      d.Profile.Name,
		Email:     d.Profile.Email,
		Education: d.Profile.Education,
		Github:    d.Profile.Github,
		Linkedin:  d.Profile.Linkedin,
		Skills:    ToSkillDTOs(d.Skills),
		Projects:  ToProjectDTOs(d.Projects),
		Work:      ToWorkDTOs(d.Work),
	}
}

// Skill DTOs
type CreateSkillRequest struct {
	Name        *string `json:"name" binding:"required"`
	Proficiency *string `json:"proficiency" binding:"required"`
}

type UpdateSkillRequest struct {
	Name        optional.Value[string] `json:"name"`
	Proficiency optional.Value[string] `json:"proficiency"`
}

func (r UpdateSkillRequest) ToDomain() skill.Update {
	return skill.Update{Name: r.Name, Proficiency: r.Proficiency}
}

type SkillDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

func ToSkillDTO(s *skill.Skill) SkillDTO {
	return SkillDTO{ID: s.ID, Name: s.Name, Proficiency: s.Proficiency}
}

func ToSkillDTOs(skills []*skill.Skill) []SkillDTO {
	dtos := make([]SkillDTO, len(skills))
	for i, s := range skills {
		dtos[i] = ToSkillDTO(s)
	}
	return dtos
}

// Project DTOs
type CreateProjectRequest struct {
	Title       *string        `json:"title" binding:"required"`
	Description *string        `json:"description" binding:"required"`
	Links       map[string]any `json:"links"`
}

type UpdateProjectRequest struct {
	Title       optional.Value[string]         `json:"title"`
	Description optional.Value[string]         `json:"description"`
	Links       optional.Value[map[string]any] `json:"links"`
}

func (r UpdateProjectRequest) ToDomain() project.Update {
	return project.Update{Title: r.Title, Description: r.Description, Links: r.Links}
}

type ProjectDTO struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Links       map[string]any `json:"links"`
}

func ToProjectDTO(p *project.Project) ProjectDTO {
	return ProjectDTO{ID: p.ID, Title: p.Title, Description: p.Description, Links: p.Links}
}

func ToProjectDTOs(projects []*project.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}

// Work DTOs
type CreateWorkRequest struct {
	Company     *string `json:"company" binding:"required"`
	Role        *string `json:"role" binding:"required"`
	StartDate   *string `json:"start_date" binding:"required"`
	EndDate     *string `json:"end_date"`
	Description *string `json:"description"`
}

type UpdateWorkRequest struct {
	Company     optional.Value[string]  `json:"company"`
	Role        optional.Value[string]  `json:"role"`
	StartDate   optional.Value[string]  `json:"start_date"`
	EndDate     optional.Value[*string] `json:"end_date"`
	Description optional.Value[*string] `json:"description"`
}

func (r UpdateWorkRequest) ToDomain() work.Update {
	return work.Update{
		Company:     r.Company,
		Role:        r.Role,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Description: r.Description,
	}
}

type WorkDTO struct {
	ID          int64   `json:"id"`
	Company     string  `json:"company"`
	Role        string  `json:"role"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description *string `json:"description"`
}

func ToWorkDTO(w *work.Work) WorkDTO {
	return WorkDTO{
		ID:          w.ID,
		Company:     w.Company,
		Role:        w.Role,
		StartDate:   w.StartDate,
		EndDate:     w.EndDate,
		Description: w.Description,
	}
}

func ToWorkDTOs(items []*work.Work) []WorkDTO {
	dtos := make([]WorkDTO, len(items))
	for i, w := range items {
		dtos[i] = ToWorkDTO(w)
	}
	return dtos
}

// Search DTOs
type SearchResultsDTO struct {
	Skills   []SkillDTO   `json:"skills"`
	Projects []ProjectDTO `json:"projects"`
}

func ToSearchResultsDTO(r *search.Results) SearchResultsDTO {
	return SearchResultsDTO{Skills: ToSkillDTOs(r.Skills), Projects: ToProjectDTOs(r.Projects)}
}
