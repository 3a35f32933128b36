package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/riaz37/portfolio-backend/internal/model"
	"github.com/riaz37/portfolio-backend/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProgressStore is an in-memory ProgressStore with the same idempotency
// semantics as the gorm implementation.
type fakeProgressStore struct {
	snapshots   map[string]*model.ProgressSnapshot
	completions map[string]model.CompletionRecord
	createCalls int
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{
		snapshots:   make(map[string]*model.ProgressSnapshot),
		completions: make(map[string]model.CompletionRecord),
	}
}

func snapKey(userID uint, pathID string) string {
	return fmt.Sprintf("%d|%s", userID, pathID)
}

func completionKey(userID uint, pathID, resourceID, skillID string) string {
	return fmt.Sprintf("%d|%s|%s|%s", userID, pathID, resourceID, skillID)
}

func (f *fakeProgressStore) FindSnapshot(userID uint, pathID string) (*model.ProgressSnapshot, error) {
	snap, ok := f.snapshots[snapKey(userID, pathID)]
	if !ok {
		return nil, nil
	}
	return snap, nil
}

func (f *fakeProgressStore) CreateDefault(userID uint, pathID string, at time.Time) (*model.ProgressSnapshot, error) {
	key := snapKey(userID, pathID)
	if snap, ok := f.snapshots[key]; ok {
		return snap, nil
	}
	f.createCalls++
	snap := &model.ProgressSnapshot{UserID: userID, LearningPathID: pathID, LastAccessed: at}
	f.snapshots[key] = snap
	return snap, nil
}

func (f *fakeProgressStore) AddCompletion(userID uint, pathID, resourceID, skillID string) (bool, error) {
	key := completionKey(userID, pathID, resourceID, skillID)
	if _, ok := f.completions[key]; ok {
		return false, nil
	}
	f.completions[key] = model.CompletionRecord{
		UserID:         userID,
		LearningPathID: pathID,
		ResourceID:     resourceID,
		SkillID:        skillID,
		CompletedAt:    time.Now(),
	}
	return true, nil
}

func (f *fakeProgressStore) RemoveCompletion(userID uint, pathID, resourceID, skillID string) error {
	delete(f.completions, completionKey(userID, pathID, resourceID, skillID))
	return nil
}

func (f *fakeProgressStore) ListCompletions(userID uint, pathID string) ([]model.CompletionRecord, error) {
	var recs []model.CompletionRecord
	for _, rec := range f.completions {
		if rec.UserID == userID && rec.LearningPathID == pathID {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func (f *fakeProgressStore) TouchLastAccessed(userID uint, pathID, resourceID string, at time.Time) error {
	if snap, ok := f.snapshots[snapKey(userID, pathID)]; ok && at.After(snap.LastAccessed) {
		snap.LastAccessed = at
		snap.LastResourceID = resourceID
	}
	return nil
}

func (f *fakeProgressStore) LatestSnapshot(userID uint) (*model.ProgressSnapshot, error) {
	var latest *model.ProgressSnapshot
	for _, snap := range f.snapshots {
		if snap.UserID != userID {
			continue
		}
		if latest == nil || snap.LastAccessed.After(latest.LastAccessed) {
			latest = snap
		}
	}
	return latest, nil
}

type fakeStreakStore struct {
	states map[uint]*model.StreakState
}

func newFakeStreakStore() *fakeStreakStore {
	return &fakeStreakStore{states: make(map[uint]*model.StreakState)}
}

func (f *fakeStreakStore) Get(userID uint) (*model.StreakState, error) {
	state, ok := f.states[userID]
	if !ok {
		return nil, nil
	}
	return state, nil
}

func (f *fakeStreakStore) Upsert(userID uint, currentStreak int, lastCompletedDate string) error {
	f.states[userID] = &model.StreakState{
		UserID:            userID,
		CurrentStreak:     currentStreak,
		LastCompletedDate: lastCompletedDate,
	}
	return nil
}

type fakeCurriculum struct {
	paths   map[string]*model.LearningPath
	careers map[string]*model.CareerPath
}

func (f *fakeCurriculum) FindLearningPath(id string) (*model.LearningPath, error) {
	path, ok := f.paths[id]
	if !ok {
		return nil, util.ErrPathNotFound
	}
	return path, nil
}

func (f *fakeCurriculum) GetCareerPath(id string) (*model.CareerPath, error) {
	career, ok := f.careers[id]
	if !ok {
		return nil, util.ErrCareerPathNotFound
	}
	return career, nil
}

// testPath builds the canonical fixture: two skills with two resources each,
// skill-2 gated on skill-1.
func testPath(id string) *model.LearningPath {
	return &model.LearningPath{
		UUIDBase: model.UUIDBase{ID: id},
		Title:    "Test Path",
		Skills: []model.Skill{
			{
				UUIDBase: model.UUIDBase{ID: "skill-1"},
				Name:     "Skill One",
				Resources: []model.Resource{
					{UUIDBase: model.UUIDBase{ID: "res-1"}, SkillID: "skill-1"},
					{UUIDBase: model.UUIDBase{ID: "res-2"}, SkillID: "skill-1"},
				},
			},
			{
				UUIDBase:      model.UUIDBase{ID: "skill-2"},
				Name:          "Skill Two",
				Prerequisites: model.NewStringSet("skill-1"),
				Resources: []model.Resource{
					{UUIDBase: model.UUIDBase{ID: "res-3"}, SkillID: "skill-2"},
					{UUIDBase: model.UUIDBase{ID: "res-4"}, SkillID: "skill-2"},
				},
			},
		},
	}
}

func newTestService(paths ...*model.LearningPath) (*ProgressService, *fakeProgressStore, *fakeStreakStore) {
	store := newFakeProgressStore()
	streaks := newFakeStreakStore()
	curriculum := &fakeCurriculum{
		paths:   make(map[string]*model.LearningPath),
		careers: make(map[string]*model.CareerPath),
	}
	for _, p := range paths {
		curriculum.paths[p.ID] = p
	}

	svc := NewProgressService(store, streaks, curriculum, time.UTC)
	return svc, store, streaks
}

func addCareer(svc *ProgressService, id string, paths ...*model.LearningPath) {
	career := &model.CareerPath{UUIDBase: model.UUIDBase{ID: id}, Title: "Test Career"}
	for _, p := range paths {
		career.LearningPaths = append(career.LearningPaths, *p)
	}
	svc.Curriculum.(*fakeCurriculum).careers[id] = career
}

func TestGetUserProgress_EmptyState(t *testing.T) {
	svc, store, _ := newTestService(testPath("path-1"))

	stats, err := svc.GetUserProgress(7, "path-1")
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalResources)
	assert.Equal(t, 0, stats.CompletedResources)
	assert.Equal(t, 0, stats.PercentageComplete)
	assert.Equal(t, 1, store.createCalls, "first read must create exactly one snapshot")

	_, err = svc.GetUserProgress(7, "path-1")
	require.NoError(t, err)
	assert.Equal(t, 1, store.createCalls, "second read must reuse the snapshot")
}

func TestGetUserProgress_UnknownPath(t *testing.T) {
	svc, _, _ := newTestService(testPath("path-1"))

	_, err := svc.GetUserProgress(7, "no-such-path")
	assert.ErrorIs(t, err, util.ErrPathNotFound)
}

func TestMarkResourceComplete_EndToEnd(t *testing.T) {
	svc, _, _ := newTestService(testPath("path-1"))

	stats, err := svc.MarkResourceComplete(7, "path-1", "res-1", "skill-1", true)
	require.NoError(t, err)
	assert.Equal(t, 25, stats.PercentageComplete)
	assert.Equal(t, 1, stats.CompletedResources)
	assert.Equal(t, "res-1", stats.LastAccessedResource)

	skills, err := svc.GetSkillProgress(7, "path-1")
	require.NoError(t, err)
	require.Len(t, skills, 2)
	assert.False(t, skills[0].Completed)
	assert.True(t, skills[0].Available, "skill without prerequisites is always available")
	assert.False(t, skills[1].Available, "skill-2 gated until skill-1 is fully complete")

	stats, err = svc.MarkResourceComplete(7, "path-1", "res-2", "skill-1", true)
	require.NoError(t, err)
	assert.Equal(t, 50, stats.PercentageComplete)

	skills, err = svc.GetSkillProgress(7, "path-1")
	require.NoError(t, err)
	assert.True(t, skills[0].Completed)
	assert.Equal(t, 100, skills[0].PercentageComplete)
	assert.True(t, skills[1].Available, "completing skill-1 must unlock skill-2")
}

func TestMarkResourceComplete_Idempotent(t *testing.T) {
	svc, store, streaks := newTestService(testPath("path-1"))

	first, err := svc.MarkResourceComplete(7, "path-1", "res-1", "skill-1", true)
	require.NoError(t, err)

	recordedAt := store.completions[completionKey(7, "path-1", "res-1", "skill-1")].CompletedAt

	second, err := svc.MarkResourceComplete(7, "path-1", "res-1", "skill-1", true)
	require.NoError(t, err)

	assert.Equal(t, first, second, "repeating the same completion must not change the stats")
	assert.Len(t, store.completions, 1, "exactly one record for the pair")
	assert.Equal(t, recordedAt, store.completions[completionKey(7, "path-1", "res-1", "skill-1")].CompletedAt,
		"duplicate completion must not touch CompletedAt")
	assert.Equal(t, 1, streaks.states[7].CurrentStreak, "duplicate completion is not a streak event")
}

func TestMarkResourceComplete_ToggleSymmetry(t *testing.T) {
	svc, store, _ := newTestService(testPath("path-1"))

	_, err := svc.MarkResourceComplete(7, "path-1", "res-1", "skill-1", true)
	require.NoError(t, err)

	stats, err := svc.MarkResourceComplete(7, "path-1", "res-1", "skill-1", false)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.CompletedResources)
	assert.Equal(t, 0, stats.PercentageComplete)
	assert.Empty(t, store.completions, "un-marking must remove the record entirely")
}

func TestMarkResourceComplete_StreakNeverDecrements(t *testing.T) {
	svc, _, streaks := newTestService(testPath("path-1"))

	_, err := svc.MarkResourceComplete(7, "path-1", "res-1", "skill-1", true)
	require.NoError(t, err)
	require.Equal(t, 1, streaks.states[7].CurrentStreak)

	// Known quirk: reverting a completion leaves the streak untouched, and
	// re-completing on the same day does not double count.
	_, err = svc.MarkResourceComplete(7, "path-1", "res-1", "skill-1", false)
	require.NoError(t, err)
	assert.Equal(t, 1, streaks.states[7].CurrentStreak)

	_, err = svc.MarkResourceComplete(7, "path-1", "res-1", "skill-1", true)
	require.NoError(t, err)
	assert.Equal(t, 1, streaks.states[7].CurrentStreak)
}

func TestMarkResourceComplete_StreakContinuity(t *testing.T) {
	svc, _, streaks := newTestService(testPath("path-1"))

	clock := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	_, err := svc.MarkResourceComplete(7, "path-1", "res-1", "skill-1", true)
	require.NoError(t, err)

	clock = clock.AddDate(0, 0, 1)
	_, err = svc.MarkResourceComplete(7, "path-1", "res-2", "skill-1", true)
	require.NoError(t, err)

	clock = clock.AddDate(0, 0, 1)
	_, err = svc.MarkResourceComplete(7, "path-1", "res-3", "skill-2", true)
	require.NoError(t, err)

	assert.Equal(t, 3, streaks.states[7].CurrentStreak)
	assert.Equal(t, "2024-03-12", streaks.states[7].LastCompletedDate)

	streak, err := svc.GetStreak(7)
	require.NoError(t, err)
	assert.Equal(t, 3, streak.CurrentStreak)
}

func TestMarkResourceComplete_Validation(t *testing.T) {
	svc, _, _ := newTestService(testPath("path-1"))

	_, err := svc.MarkResourceComplete(0, "path-1", "res-1", "skill-1", true)
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = svc.MarkResourceComplete(7, "", "res-1", "skill-1", true)
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = svc.MarkResourceComplete(7, "path-1", "", "skill-1", true)
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = svc.MarkResourceComplete(7, "no-such-path", "res-1", "skill-1", true)
	assert.ErrorIs(t, err, util.ErrPathNotFound)

	_, err = svc.MarkResourceComplete(7, "path-1", "res-1", "skill-2", true)
	assert.ErrorIs(t, err, util.ErrResourceNotFound, "resource must belong to the named skill")
}

func TestGetLastAccessedPath(t *testing.T) {
	svc, _, _ := newTestService(testPath("path-1"), testPath("path-2"))

	pathID, err := svc.GetLastAccessedPath(7)
	require.NoError(t, err)
	assert.Empty(t, pathID, "no snapshots yet")

	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := base
	svc.now = func() time.Time { return clock }

	_, err = svc.MarkResourceComplete(7, "path-1", "res-1", "skill-1", true)
	require.NoError(t, err)

	clock = base.Add(time.Hour)
	_, err = svc.MarkResourceComplete(7, "path-2", "res-1", "skill-1", true)
	require.NoError(t, err)

	pathID, err = svc.GetLastAccessedPath(7)
	require.NoError(t, err)
	assert.Equal(t, "path-2", pathID)
}

func TestGetCareerPathProgress(t *testing.T) {
	pathA := testPath("path-1")
	pathB := &model.LearningPath{
		UUIDBase: model.UUIDBase{ID: "path-2"},
		Title:    "Second Path",
		Skills: []model.Skill{
			{
				UUIDBase: model.UUIDBase{ID: "skill-3"},
				Name:     "Skill Three",
				Resources: []model.Resource{
					{UUIDBase: model.UUIDBase{ID: "res-5"}, SkillID: "skill-3"},
					{UUIDBase: model.UUIDBase{ID: "res-6"}, SkillID: "skill-3"},
				},
			},
		},
	}
	svc, _, _ := newTestService(pathA, pathB)
	addCareer(svc, "career-1", pathA, pathB)

	cp, err := svc.GetCareerPathProgress(7, "career-1")
	require.NoError(t, err)
	assert.Equal(t, "career-1", cp.CareerPathID)
	assert.Equal(t, 6, cp.TotalResources)
	assert.Equal(t, 0, cp.CompletedResources)
	assert.Equal(t, 0, cp.PercentageComplete)

	_, err = svc.MarkResourceComplete(7, "path-1", "res-1", "skill-1", true)
	require.NoError(t, err)
	_, err = svc.MarkResourceComplete(7, "path-2", "res-5", "skill-3", true)
	require.NoError(t, err)

	cp, err = svc.GetCareerPathProgress(7, "career-1")
	require.NoError(t, err)
	assert.Equal(t, 2, cp.CompletedResources)
	assert.Equal(t, 33, cp.PercentageComplete)
}

func TestGetCareerPathProgress_SharedResourcesCountOnce(t *testing.T) {
	// Both paths carry the same resource ids; the career aggregate is a
	// union, so the shared resources count once and completing one under
	// either path covers the career total.
	pathA := testPath("path-1")
	pathB := testPath("path-2")
	svc, _, _ := newTestService(pathA, pathB)
	addCareer(svc, "career-1", pathA, pathB)

	_, err := svc.MarkResourceComplete(7, "path-1", "res-1", "skill-1", true)
	require.NoError(t, err)

	cp, err := svc.GetCareerPathProgress(7, "career-1")
	require.NoError(t, err)
	assert.Equal(t, 4, cp.TotalResources)
	assert.Equal(t, 1, cp.CompletedResources)
	assert.Equal(t, 25, cp.PercentageComplete)
}

func TestGetCareerPathProgress_Validation(t *testing.T) {
	svc, _, _ := newTestService(testPath("path-1"))

	_, err := svc.GetCareerPathProgress(0, "career-1")
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = svc.GetCareerPathProgress(7, "")
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = svc.GetCareerPathProgress(7, "no-such-career")
	assert.ErrorIs(t, err, util.ErrCareerPathNotFound)
}

func TestGetUserProgress_IgnoresRemovedResources(t *testing.T) {
	path := testPath("path-1")
	svc, _, _ := newTestService(path)

	_, err := svc.MarkResourceComplete(7, "path-1", "res-1", "skill-1", true)
	require.NoError(t, err)

	// The curriculum drops res-1; the stale completion must not count.
	path.Skills[0].Resources = path.Skills[0].Resources[1:]

	stats, err := svc.GetUserProgress(7, "path-1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalResources)
	assert.Equal(t, 0, stats.CompletedResources)
	assert.Equal(t, 0, stats.PercentageComplete)
}
