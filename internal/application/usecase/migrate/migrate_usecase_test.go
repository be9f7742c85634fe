package migrate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/me-api/internal/domain/portfolio"
	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/internal/domain/skill"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/logger"
)

type fakeSource struct {
	snap   *portfolio.Snapshot
	closed bool
}

func (f *fakeSource) Snapshot(context.Context) (*portfolio.Snapshot, error) { return f.snap, nil }
func (f *fakeSource) Close() error                                       { f.closed = true; return nil }

type fakeTarget struct {
	existing portfolio.Counts
	calls    []string
	loaded   *portfolio.Snapshot
	loadErr  error
}

func (f *fakeTarget) EnsureSchema(context.Context) error {
	f.calls = append(f.calls, "schema")
	return nil
}

func (f *fakeTarget) Reset(context.Context) error {
	f.calls = append(f.calls, "reset")
	f.existing = portfolio.Counts{}
	return nil
}

func (f *fakeTarget) Counts(context.Context) (portfolio.Counts, error) {
	f.calls = append(f.calls, "counts")
	return f.existing, nil
}

func (f *fakeTarget) Load(_ context.Context, s *portfolio.Snapshot) error {
	f.calls = append(f.calls, "load")
	if f.loadErr != nil {
		return f.loadErr
	}
	f.loaded = s
	return nil
}

func (f *fakeTarget) ResyncSequences(context.Context) error {
	f.calls = append(f.calls, "resync")
	return nil
}

func (f *fakeTarget) Close() error { return nil }

func sampleSnapshot() *portfolio.Snapshot {
	return &portfolio.Snapshot{
		Profiles: []*profile.Profile{{ID: 1, Name: "Ada"}},
		Skills:   []*skill.Skill{{ID: 1, Name: "Go", ProfileID: 1}, {ID: 2, Name: "SQL", ProfileID: 1}},
	}
}

func newUseCase(src *fakeSource, dst *fakeTarget) (*MigrateUseCase, *string) {
	var sourceURL string
	uc := NewMigrateUseCase(
		func(_ context.Context, url string) (portfolio.Source, error) { sourceURL = url; return src, nil },
		func(context.Context, string) (portfolio.Target, error) { return dst, nil },
		logger.NewNop(),
	)
	return uc, &sourceURL
}

func TestRun_CopiesIntoEmptyTarget(t *testing.T) {
	src := &fakeSource{snap: sampleSnapshot()}
	dst := &fakeTarget{}
	uc, sourceURL := newUseCase(src, dst)

	counts, err := uc.Run(context.Background(), RunInput{TargetURL: "postgres://u@h/db"})
	require.NoError(t, err)
	assert.Equal(t, portfolio.Counts{Profiles: 1, Skills: 2}, counts)
	assert.Equal(t, []string{"schema", "counts", "load", "resync"}, dst.calls)
	assert.Equal(t, "sqlite:///./meapi.db", *sourceURL)
	assert.True(t, src.closed)
}

func TestRun_RefusesNonEmptyTarget(t *testing.T) {
	dst := &fakeTarget{existing: portfolio.Counts{Work: 1}}
	uc, _ := newUseCase(&fakeSource{snap: sampleSnapshot()}, dst)

	_, err := uc.Run(context.Background(), RunInput{TargetURL: "postgresql://u@h/db"})
	assert.ErrorIs(t, err, apperror.ErrTargetNotEmpty)
	assert.Nil(t, dst.loaded)
}

func TestRun_ResetWipesFirst(t *testing.T) {
	dst := &fakeTarget{existing: portfolio.Counts{Profiles: 1, Skills: 4}}
	uc, _ := newUseCase(&fakeSource{snap: sampleSnapshot()}, dst)

	_, err := uc.Run(context.Background(), RunInput{TargetURL: "postgresql://u@h/db", Reset: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"schema", "reset", "load", "resync"}, dst.calls)
}

func TestRun_InvalidTargets(t *testing.T) {
	uc, _ := newUseCase(&fakeSource{}, &fakeTarget{})

	for _, url := range []string{"", "sqlite:///./other.db", "mysql://h/db"} {
		_, err := uc.Run(context.Background(), RunInput{TargetURL: url})
		assert.ErrorIs(t, err, apperror.ErrInvalidTarget, url)
	}
}

func TestRun_LoadFailureSkipsResync(t *testing.T) {
	dst := &fakeTarget{loadErr: errors.New("copy failed")}
	uc, _ := newUseCase(&fakeSource{snap: sampleSnapshot()}, dst)

	_, err := uc.Run(context.Background(), RunInput{TargetURL: "postgresql://u@h/db"})
	require.Error(t, err)
	assert.NotContains(t, dst.calls, "resync")
}
