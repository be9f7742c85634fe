package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/me-api/adapters/persistence/memory"
)

func TestSeed_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := seedRepos{store.Profiles(), store.Skills(), store.Projects(), store.Work()}

	require.NoError(t, seed(ctx, repos))
	require.NoError(t, seed(ctx, repos))

	owner, err := store.Profiles().First(ctx)
	require.NoError(t, err)
	assert.Equal(t, "K V Dheeraj Reddy", owner.Name)

	skills, err := store.Skills().ListByProfile(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, skills, 5)

	projects, err := store.Projects().ListByProfile(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "https://example.com", projects[0].Links["link"])

	items, err := store.Work().ListByProfile(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].EndDate)
}
