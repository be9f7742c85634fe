package sitemeta

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/me-api/internal/domain/project"
	"github.com/khoahotran/me-api/internal/domain/skill"
)

func TestBuildMetadata_CapsLists(t *testing.T) {
	skills := make([]*skill.Skill, 0, 25)
	for i := range 25 {
		skills = append(skills, &skill.Skill{ID: int64(i + 1), Name: fmt.Sprintf("skill-%02d", i)})
	}
	projects := make([]*project.Project, 0, 15)
	for i := range 15 {
		projects = append(projects, &project.Project{ID: int64(i + 1), Title: fmt.Sprintf("project-%02d", i)})
	}

	m := BuildMetadata(nil, skills, projects, "")

	require.Len(t, m.JSONLD.SubjectOf, 10)
	assert.Equal(t, "project-00", m.JSONLD.SubjectOf[0].Name)
	assert.Equal(t, "project-09", m.JSONLD.SubjectOf[9].Name)

	require.Len(t, m.JSONLD.KnowsAbout, 20)
	assert.Equal(t, "skill-19", m.JSONLD.KnowsAbout[19])

	assert.Len(t, strings.Split(m.Keywords, ", "), 12)
}

func TestBuildMetadata_SkipsUntitledProjects(t *testing.T) {
	projects := []*project.Project{{ID: 1, Title: ""}, {ID: 2, Title: "Ledger"}}

	m := BuildMetadata(nil, nil, projects, "")

	require.Len(t, m.JSONLD.SubjectOf, 1)
	assert.Equal(t, "Ledger", m.JSONLD.SubjectOf[0].Name)
	assert.Empty(t, m.JSONLD.KnowsAbout)
}
