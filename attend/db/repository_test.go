package db

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yogansh2008/AutoAttendDevArc/attend"
	logpkg "github.com/yogansh2008/AutoAttendDevArc/attend/logger"
	"gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "links.db")

	base := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	gormLogger := logpkg.NewGormLogger(base, logger.Silent)

	repo, err := NewSQLiteRepository(path, gormLogger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func meetRecord(code string) *attend.MeetingRecord {
	return &attend.MeetingRecord{
		Platform:     "meet",
		Kind:         "code",
		ExternalID:   code,
		CanonicalURL: "https://meet.google.com/" + code,
		RawInput:     code,
		Source:       "test",
	}
}

func TestRepositoryCRUD(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	record := meetRecord("abc-defg-hij")
	created, err := repo.Save(ctx, record)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())

	loaded, err := repo.FindByURL(ctx, "meet", "https://meet.google.com/abc-defg-hij")
	require.NoError(t, err)
	assert.Equal(t, record.ID, loaded.ID)
	assert.Equal(t, "code", loaded.Kind)
	assert.Equal(t, "abc-defg-hij", loaded.ExternalID)
	assert.Equal(t, "test", loaded.Source)

	require.NoError(t, repo.Delete(ctx, record.ID))
	_, err = repo.FindByURL(ctx, "meet", "https://meet.google.com/abc-defg-hij")
	assert.ErrorIs(t, err, attend.ErrNotFound)

	err = repo.Delete(ctx, record.ID)
	assert.ErrorIs(t, err, attend.ErrNotFound)

	created, err = repo.Save(ctx, meetRecord("abc-defg-hij"))
	require.NoError(t, err)
	assert.True(t, created, "a deleted link can be saved again")
}

func TestRepositorySaveIsUniquePerPlatformURL(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := meetRecord("abc-defg-hij")
	created, err := repo.Save(ctx, first)
	require.NoError(t, err)
	require.True(t, created)

	dup := meetRecord("abc-defg-hij")
	dup.RawInput = "ABC-DEFG-HIJ"
	created, err = repo.Save(ctx, dup)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, dup.ID, "duplicate is filled with the stored ID")

	other := meetRecord("abc-defg-hij")
	other.Platform = "other"
	created, err = repo.Save(ctx, other)
	require.NoError(t, err)
	assert.True(t, created, "same URL on another platform is distinct")

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	stored, err := repo.FindByURL(ctx, "meet", first.CanonicalURL)
	require.NoError(t, err)
	assert.Equal(t, "abc-defg-hij", stored.RawInput, "duplicate must not overwrite")
}

func TestRepositorySaveValidation(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Save(ctx, nil)
	assert.Error(t, err)

	_, err = repo.Save(ctx, &attend.MeetingRecord{Platform: "meet"})
	assert.Error(t, err)
}

func TestRepositoryList(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, code := range []string{"aaa-aaaa-aaa", "bbb-bbbb-bbb"} {
		_, err := repo.Save(ctx, meetRecord(code))
		require.NoError(t, err)
	}
	_, err := repo.Save(ctx, &attend.MeetingRecord{
		Platform:     "whatsapp",
		Kind:         "invite",
		ExternalID:   "AbCdEfGhIj1234",
		CanonicalURL: "https://chat.whatsapp.com/AbCdEfGhIj1234",
	})
	require.NoError(t, err)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "aaa-aaaa-aaa", all[0].ExternalID)
	assert.Equal(t, "whatsapp", all[2].Platform)

	meet, err := repo.List(ctx, "meet")
	require.NoError(t, err)
	assert.Len(t, meet, 2)

	none, err := repo.List(ctx, "zoom")
	require.NoError(t, err)
	assert.Empty(t, none)

	counts, err := repo.CountByPlatform(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"meet": 2, "whatsapp": 1}, counts)
}

func TestRepositoryConfigurePool(t *testing.T) {
	repo := newTestRepository(t)
	require.NoError(t, repo.ConfigurePool(2, 1, 30*time.Minute))

	var nilRepo *Repository
	assert.Error(t, nilRepo.ConfigurePool(1, 1, time.Minute))
	assert.NoError(t, nilRepo.Close())
}

func TestNewSQLiteRepositoryRequiresDSN(t *testing.T) {
	_, err := NewSQLiteRepository("", nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, attend.ErrNotFound))
}
