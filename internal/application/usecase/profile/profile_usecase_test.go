package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/me-api/adapters/persistence/memory"
	"github.com/khoahotran/me-api/internal/domain/portfolio"
	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/internal/domain/skill"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/logger"
	"github.com/khoahotran/me-api/pkg/optional"
)

type recordingPublisher struct {
	events []portfolio.ChangeEvent
}

func (r *recordingPublisher) Publish(_ context.Context, e portfolio.ChangeEvent) error {
	r.events = append(r.events, e)
	return nil
}

func newUseCase() (*ProfileUseCase, *memory.Store, *recordingPublisher) {
	store := memory.NewStore()
	pub := &recordingPublisher{}
	uc := NewProfileUseCase(store.Profiles(), store.Skills(), store.Projects(), store.Work(), pub, logger.NewNop())
	return uc, store, pub
}

func adaInput() CreateProfileInput {
	gh := "https://github.com/ada"
	return CreateProfileInput{Name: "Ada", Email: "ada@example.com", Education: "Cambridge", Github: &gh}
}

func TestCreate_OnlyOnce(t *testing.T) {
	uc, _, pub := newUseCase()
	ctx := context.Background()

	d, err := uc.Create(ctx, adaInput())
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.Profile.ID)
	assert.Empty(t, d.Skills)

	_, err = uc.Create(ctx, adaInput())
	assert.ErrorIs(t, err, apperror.ErrAlreadyExists)

	require.Len(t, pub.events, 1)
	assert.Equal(t, portfolio.EventCreated, pub.events[0].EventType)
}

func TestGet_NoProfile(t *testing.T) {
	uc, _, _ := newUseCase()

	_, err := uc.Get(context.Background())
	require.ErrorIs(t, err, apperror.ErrNotFound)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Create profile first", appErr.Message)
}

func TestGet_EmbedsChildren(t *testing.T) {
	uc, store, _ := newUseCase()
	ctx := context.Background()

	d, err := uc.Create(ctx, adaInput())
	require.NoError(t, err)
	require.NoError(t, store.Skills().Create(ctx, &skill.Skill{Name: "Go", Proficiency: "expert", ProfileID: d.Profile.ID}))

	got, err := uc.Get(ctx)
	require.NoError(t, err)
	require.Len(t, got.Skills, 1)
	assert.Equal(t, "Go", got.Skills[0].Name)
	assert.Empty(t, got.Projects)
	assert.Empty(t, got.Work)
}

func TestUpdate_Partial(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, adaInput())
	require.NoError(t, err)

	got, err := uc.Update(ctx, profile.Update{
		Education: optional.Of("Oxford"),
		Github:    optional.Null[*string](),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Profile.Name)
	assert.Equal(t, "ada@example.com", got.Profile.Email)
	assert.Equal(t, "Oxford", got.Profile.Education)
	assert.Nil(t, got.Profile.Github)
}

func TestUpdate_RejectsNullRequired(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, adaInput())
	require.NoError(t, err)

	_, err = uc.Update(ctx, profile.Update{Name: optional.Null[string]()})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestUpdate_NoProfile(t *testing.T) {
	uc, _, _ := newUseCase()
	_, err := uc.Update(context.Background(), profile.Update{Name: optional.Of("x")})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDelete_Cascades(t *testing.T) {
	uc, store, pub := newUseCase()
	ctx := context.Background()

	d, err := uc.Create(ctx, adaInput())
	require.NoError(t, err)
	require.NoError(t, store.Skills().Create(ctx, &skill.Skill{Name: "Go", Proficiency: "expert", ProfileID: d.Profile.ID}))

	require.NoError(t, uc.Delete(ctx))

	left, err := store.Skills().ListByProfile(ctx, d.Profile.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
	assert.Equal(t, portfolio.EventDeleted, pub.events[len(pub.events)-1].EventType)

	assert.ErrorIs(t, uc.Delete(ctx), apperror.ErrNotFound)
}
