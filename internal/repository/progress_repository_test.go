package repository

import (
	"testing"
	"time"

	"github.com/riaz37/portfolio-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Each pooled connection gets its own :memory: database; pin the pool to
	// one connection so every statement sees the migrated schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.ProgressSnapshot{},
		&model.CompletionRecord{},
		&model.StreakState{},
	))
	return db
}

func TestCreateDefault_SingleRowAcrossCalls(t *testing.T) {
	repo := NewProgressRepository(testDB(t))
	at := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	first, err := repo.CreateDefault(7, "path-1", at)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := repo.CreateDefault(7, "path-1", at.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "repeat create must return the existing row")

	var count int64
	require.NoError(t, repo.DB.Model(&model.ProgressSnapshot{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFindSnapshot_MissingIsNilNil(t *testing.T) {
	repo := NewProgressRepository(testDB(t))

	snap, err := repo.FindSnapshot(7, "path-1")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestAddCompletion_Idempotent(t *testing.T) {
	repo := NewProgressRepository(testDB(t))

	inserted, err := repo.AddCompletion(7, "path-1", "res-1", "skill-1")
	require.NoError(t, err)
	assert.True(t, inserted)

	recs, err := repo.ListCompletions(7, "path-1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	originalAt := recs[0].CompletedAt

	inserted, err = repo.AddCompletion(7, "path-1", "res-1", "skill-1")
	require.NoError(t, err)
	assert.False(t, inserted, "second insert of the same pair must be a no-op")

	recs, err = repo.ListCompletions(7, "path-1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, originalAt, recs[0].CompletedAt, "CompletedAt must survive a duplicate insert")
}

func TestAddCompletion_DistinctPairsInsert(t *testing.T) {
	repo := NewProgressRepository(testDB(t))

	cases := []struct {
		userID     uint
		pathID     string
		resourceID string
		skillID    string
	}{
		{7, "path-1", "res-1", "skill-1"},
		{7, "path-1", "res-2", "skill-1"},
		{7, "path-1", "res-1", "skill-2"},
		{7, "path-2", "res-1", "skill-1"},
		{8, "path-1", "res-1", "skill-1"},
	}
	for _, c := range cases {
		inserted, err := repo.AddCompletion(c.userID, c.pathID, c.resourceID, c.skillID)
		require.NoError(t, err)
		assert.True(t, inserted)
	}

	recs, err := repo.ListCompletions(7, "path-1")
	require.NoError(t, err)
	assert.Len(t, recs, 3, "listing is scoped to one (user, path)")
}

func TestRemoveCompletion(t *testing.T) {
	repo := NewProgressRepository(testDB(t))

	// Removing something that was never added is not an error.
	require.NoError(t, repo.RemoveCompletion(7, "path-1", "res-1", "skill-1"))

	_, err := repo.AddCompletion(7, "path-1", "res-1", "skill-1")
	require.NoError(t, err)
	require.NoError(t, repo.RemoveCompletion(7, "path-1", "res-1", "skill-1"))

	recs, err := repo.ListCompletions(7, "path-1")
	require.NoError(t, err)
	assert.Empty(t, recs)

	// The row is gone, so completing again counts as a fresh insert.
	inserted, err := repo.AddCompletion(7, "path-1", "res-1", "skill-1")
	require.NoError(t, err)
	assert.True(t, inserted)
}

func TestTouchLastAccessed(t *testing.T) {
	repo := NewProgressRepository(testDB(t))
	base := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

	_, err := repo.CreateDefault(7, "path-1", base)
	require.NoError(t, err)

	at := base.Add(2 * time.Hour)
	require.NoError(t, repo.TouchLastAccessed(7, "path-1", "res-2", at))

	snap, err := repo.FindSnapshot(7, "path-1")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "res-2", snap.LastResourceID)
	assert.WithinDuration(t, at, snap.LastAccessed, time.Second)
}

func TestTouchLastAccessed_NeverRegresses(t *testing.T) {
	repo := NewProgressRepository(testDB(t))
	base := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

	_, err := repo.CreateDefault(7, "path-1", base)
	require.NoError(t, err)

	newer := base.Add(2 * time.Hour)
	require.NoError(t, repo.TouchLastAccessed(7, "path-1", "res-new", newer))

	// A touch carrying an older timestamp lands second; the marker must not
	// move backwards and the resource id must stay with the newer touch.
	older := base.Add(time.Hour)
	require.NoError(t, repo.TouchLastAccessed(7, "path-1", "res-old", older))

	snap, err := repo.FindSnapshot(7, "path-1")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.WithinDuration(t, newer, snap.LastAccessed, time.Second)
	assert.Equal(t, "res-new", snap.LastResourceID)

	// A genuinely newer touch still advances it.
	newest := base.Add(3 * time.Hour)
	require.NoError(t, repo.TouchLastAccessed(7, "path-1", "res-newest", newest))

	snap, err = repo.FindSnapshot(7, "path-1")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.WithinDuration(t, newest, snap.LastAccessed, time.Second)
	assert.Equal(t, "res-newest", snap.LastResourceID)
}

func TestLatestSnapshot_Ordering(t *testing.T) {
	repo := NewProgressRepository(testDB(t))
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	snap, err := repo.LatestSnapshot(7)
	require.NoError(t, err)
	assert.Nil(t, snap, "no snapshots yet")

	_, err = repo.CreateDefault(7, "path-1", base.Add(-time.Hour))
	require.NoError(t, err)
	_, err = repo.CreateDefault(7, "path-2", base.Add(-time.Hour))
	require.NoError(t, err)

	require.NoError(t, repo.TouchLastAccessed(7, "path-2", "res-1", base))
	require.NoError(t, repo.TouchLastAccessed(7, "path-1", "res-2", base.Add(time.Hour)))

	snap, err = repo.LatestSnapshot(7)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "path-1", snap.LearningPathID)

	require.NoError(t, repo.TouchLastAccessed(7, "path-2", "res-3", base.Add(2*time.Hour)))

	snap, err = repo.LatestSnapshot(7)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "path-2", snap.LearningPathID)
}

func TestStreakRepository_GetAndUpsert(t *testing.T) {
	repo := NewStreakRepository(testDB(t))

	state, err := repo.Get(7)
	require.NoError(t, err)
	assert.Nil(t, state, "no streak until the first completion")

	require.NoError(t, repo.Upsert(7, 1, "2024-03-10"))

	state, err = repo.Get(7)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, 1, state.CurrentStreak)
	assert.Equal(t, "2024-03-10", state.LastCompletedDate)

	require.NoError(t, repo.Upsert(7, 2, "2024-03-11"))

	state, err = repo.Get(7)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, 2, state.CurrentStreak)
	assert.Equal(t, "2024-03-11", state.LastCompletedDate)

	var count int64
	require.NoError(t, repo.DB.Model(&model.StreakState{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "upsert must not grow the table")
}
