package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/me-api/adapters/persistence/memory"
	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/internal/domain/project"
	"github.com/khoahotran/me-api/internal/domain/search"
	"github.com/khoahotran/me-api/internal/domain/skill"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/logger"
)

type failingRepo struct{}

func (failingRepo) Search(context.Context, string) (*search.Results, error) {
	return nil, errors.New("db down")
}

func TestExecute_EmptyQuery(t *testing.T) {
	uc := NewSearchUseCase(failingRepo{}, logger.NewNop())

	res, err := uc.Execute(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, res.Skills)
	assert.NotNil(t, res.Projects)
	assert.Empty(t, res.Skills)
	assert.Empty(t, res.Projects)
}

func TestExecute_Matches(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	p := &profile.Profile{Name: "Ada", Email: "ada@example.com", Education: "Cambridge"}
	require.NoError(t, store.Profiles().Create(ctx, p))
	require.NoError(t, store.Skills().Create(ctx, &skill.Skill{Name: "Python", Proficiency: "expert", ProfileID: p.ID}))
	require.NoError(t, store.Projects().Create(ctx, &project.Project{Title: "Bot", Description: "python chat bot", ProfileID: p.ID}))

	uc := NewSearchUseCase(store.Search(), logger.NewNop())
	res, err := uc.Execute(ctx, "PyThOn")
	require.NoError(t, err)
	assert.Len(t, res.Skills, 1)
	assert.Len(t, res.Projects, 1)
}

func TestExecute_RepoError(t *testing.T) {
	uc := NewSearchUseCase(failingRepo{}, logger.NewNop())
	_, err := uc.Execute(context.Background(), "go")
	assert.ErrorIs(t, err, apperror.ErrInternal)
}
