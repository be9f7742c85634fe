package sitemeta

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/internal/domain/project"
	"github.com/khoahotran/me-api/internal/domain/skill"
	"github.com/khoahotran/me-api/pkg/htmlmeta"
)

const (
	defaultName       = "Me-API Playground"
	defaultEducation  = "Portfolio"
	defaultSkillsText = "Profile, skills, projects"
	jsonLDScriptID    = "meapi-jsonld"

	descriptionMax  = 220
	previewSkills   = 8
	previewProjects = 3
	keywordSkills   = 12
	knowsAboutMax   = 20
	subjectOfMax    = 10
)

// Metadata is everything written into the page head.
type Metadata struct {
	Title       string
	Author      string
	Description string
	Keywords    string
	SiteURL     string
	JSONLD      Person
}

type Person struct {
	Context    string         `json:"@context"`
	Type       string         `json:"@type"`
	Name       string         `json:"name"`
	Email      *string        `json:"email"`
	URL        *string        `json:"url"`
	SameAs     []string       `json:"sameAs"`
	KnowsAbout []string       `json:"knowsAbout"`
	SubjectOf  []CreativeWork `json:"subjectOf"`
}

type CreativeWork struct {
	Type        string  `json:"@type"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
}

// BuildMetadata derives page metadata. Any of p, skills or projects may be
// empty when the API could not be reached.
func BuildMetadata(p *profile.Profile, skills []*skill.Skill, projects []*project.Project, siteURL string) Metadata {
	if p == nil {
		p = &profile.Profile{}
	}

	name := p.Name
	if name == "" {
		name = defaultName
	}

	skillNames := make([]string, 0, len(skills))
	for _, s := range skills {
		if s != nil && s.Name != "" {
			skillNames = append(skillNames, s.Name)
		}
	}

	titled := make([]*project.Project, 0, len(projects))
	for _, pr := range projects {
		if pr != nil && pr.Title != "" {
			titled = append(titled, pr)
		}
	}

	education := p.Education
	if education == "" {
		education = defaultEducation
	}
	skillsText := defaultSkillsText
	if len(skillNames) > 0 {
		skillsText = strings.Join(head(skillNames, previewSkills), ", ")
	}

	description := fmt.Sprintf("%s — %s. Skills: %s.", name, education, skillsText)
	if len(titled) > 0 {
		titles := make([]string, 0, previewProjects)
		for _, pr := range head(titled, previewProjects) {
			titles = append(titles, pr.Title)
		}
		description += fmt.Sprintf(" Projects: %s.", strings.Join(titles, ", "))
	}

	person := Person{
		Context:    "https://schema.org",
		Type:       "Person",
		Name:       name,
		Email:      nonEmpty(p.Email),
		URL:        nonEmpty(siteURL),
		SameAs:     make([]string, 0, 2),
		KnowsAbout: head(skillNames, knowsAboutMax),
		SubjectOf:  make([]CreativeWork, 0, subjectOfMax),
	}
	for _, link := range []*string{p.Github, p.Linkedin} {
		if link != nil && *link != "" {
			person.SameAs = append(person.SameAs, *link)
		}
	}
	for _, pr := range head(titled, subjectOfMax) {
		person.SubjectOf = append(person.SubjectOf, CreativeWork{
			Type:        "CreativeWork",
			Name:        pr.Title,
			Description: nonEmpty(pr.Description),
			URL:         nonEmpty(pr.URL()),
		})
	}

	return Metadata{
		Title:       fmt.Sprintf("%s | %s", name, defaultName),
		Author:      name,
		Description: htmlmeta.Truncate(description, descriptionMax),
		Keywords:    strings.Join(head(skillNames, keywordSkills), ", "),
		SiteURL:     siteURL,
		JSONLD:      person,
	}
}

// Apply writes m into doc.
func Apply(doc string, m Metadata) (string, error) {
	doc = htmlmeta.SetTitle(doc, m.Title)
	doc = htmlmeta.SetMeta(doc, "name", "description", m.Description)
	doc = htmlmeta.SetMeta(doc, "name", "author", m.Author)
	doc = htmlmeta.SetMeta(doc, "name", "keywords", m.Keywords)

	doc = htmlmeta.SetMeta(doc, "property", "og:title", m.Title)
	doc = htmlmeta.SetMeta(doc, "property", "og:description", m.Description)
	if m.SiteURL != "" {
		doc = htmlmeta.SetMeta(doc, "property", "og:url", m.SiteURL)
	}

	doc = htmlmeta.SetMeta(doc, "name", "twitter:title", m.Title)
	doc = htmlmeta.SetMeta(doc, "name", "twitter:description", m.Description)

	// json.Marshal escapes <, > and &, so the payload cannot close the script tag.
	body, err := json.Marshal(m.JSONLD)
	if err != nil {
		return "", fmt.Errorf("encode json-ld: %w", err)
	}
	return htmlmeta.SetScript(doc, jsonLDScriptID, "application/ld+json", string(body)), nil
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
