package service

import (
	"fmt"
	"time"

	"github.com/riaz37/portfolio-backend/internal/model"
	"github.com/riaz37/portfolio-backend/internal/progress"
	"github.com/riaz37/portfolio-backend/internal/util"
)

// ProgressStore is the durable completion-state contract consumed by the
// progress service. repository.ProgressRepository is the gorm implementation;
// tests plug in an in-memory fake. The service never retries a failed store
// call — retry policy belongs to the caller.
type ProgressStore interface {
	FindSnapshot(userID uint, pathID string) (*model.ProgressSnapshot, error)
	CreateDefault(userID uint, pathID string, at time.Time) (*model.ProgressSnapshot, error)
	AddCompletion(userID uint, pathID, resourceID, skillID string) (bool, error)
	RemoveCompletion(userID uint, pathID, resourceID, skillID string) error
	ListCompletions(userID uint, pathID string) ([]model.CompletionRecord, error)
	TouchLastAccessed(userID uint, pathID, resourceID string, at time.Time) error
	LatestSnapshot(userID uint) (*model.ProgressSnapshot, error)
}

// StreakStore persists per-user streak state.
type StreakStore interface {
	Get(userID uint) (*model.StreakState, error)
	Upsert(userID uint, currentStreak int, lastCompletedDate string) error
}

// CurriculumProvider supplies the read-only curriculum structure used to
// compute totals.
type CurriculumProvider interface {
	FindLearningPath(id string) (*model.LearningPath, error)
	GetCareerPath(id string) (*model.CareerPath, error)
}

// ProgressStats is the per-(user, path) aggregate returned to the client.
// swagger:model ProgressStats
type ProgressStats struct {
	TotalResources       int    `json:"totalResources"`
	CompletedResources   int    `json:"completedResources"`
	PercentageComplete   int    `json:"percentageComplete"`
	LastAccessedResource string `json:"lastAccessedResource,omitempty"`
}

// SkillProgress is the per-skill breakdown, including prerequisite gating.
// swagger:model SkillProgress
type SkillProgress struct {
	SkillID            string `json:"skillId"`
	Name               string `json:"name"`
	PercentageComplete int    `json:"percentageComplete"`
	Completed          bool   `json:"completed"`
	Available          bool   `json:"available"`
}

// CareerProgress is the aggregate over every learning path in a career path.
// swagger:model CareerProgress
type CareerProgress struct {
	CareerPathID       string `json:"careerPathId"`
	TotalResources     int    `json:"totalResources"`
	CompletedResources int    `json:"completedResources"`
	PercentageComplete int    `json:"percentageComplete"`
}

// StreakInfo mirrors the stored streak state.
// swagger:model StreakInfo
type StreakInfo struct {
	CurrentStreak     int    `json:"currentStreak"`
	LastCompletedDate string `json:"lastCompletedDate,omitempty"`
}

// ProgressService orchestrates the store, the aggregator, the streak
// calculator and the prerequisite gate.
type ProgressService struct {
	Store      ProgressStore
	Streaks    StreakStore
	Curriculum CurriculumProvider
	Location   *time.Location

	// now is swappable in tests; defaults to time.Now.
	now func() time.Time
}

func NewProgressService(store ProgressStore, streaks StreakStore, curriculum CurriculumProvider, loc *time.Location) *ProgressService {
	if loc == nil {
		loc = time.UTC
	}
	return &ProgressService{
		Store:      store,
		Streaks:    streaks,
		Curriculum: curriculum,
		Location:   loc,
		now:        time.Now,
	}
}

// GetUserProgress returns the aggregate stats for (userID, pathID), creating
// an empty snapshot on first access.
func (s *ProgressService) GetUserProgress(userID uint, pathID string) (*ProgressStats, error) {
	if userID == 0 || pathID == "" {
		return nil, fmt.Errorf("%w: userId and learningPathId are required", util.ErrInvalidInput)
	}

	path, err := s.Curriculum.FindLearningPath(pathID)
	if err != nil {
		return nil, err
	}

	snap, err := s.Store.FindSnapshot(userID, pathID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		snap, err = s.Store.CreateDefault(userID, pathID, s.now())
		if err != nil {
			return nil, err
		}
	}

	return s.computeStats(userID, path, snap.LastResourceID)
}

// MarkResourceComplete toggles one (resource, skill) completion and returns
// freshly recomputed stats. Marking complete twice is idempotent: one stored
// record, one streak event, unchanged CompletedAt. Un-marking removes the
// record and never touches the streak.
func (s *ProgressService) MarkResourceComplete(userID uint, pathID, resourceID, skillID string, completed bool) (*ProgressStats, error) {
	if userID == 0 || pathID == "" || resourceID == "" || skillID == "" {
		return nil, fmt.Errorf("%w: userId, learningPathId, resourceId and skillId are required", util.ErrInvalidInput)
	}

	path, err := s.Curriculum.FindLearningPath(pathID)
	if err != nil {
		return nil, err
	}
	if !pathContains(path, skillID, resourceID) {
		return nil, util.ErrResourceNotFound
	}

	if _, err := s.Store.CreateDefault(userID, pathID, s.now()); err != nil {
		return nil, err
	}

	if completed {
		inserted, err := s.Store.AddCompletion(userID, pathID, resourceID, skillID)
		if err != nil {
			return nil, err
		}
		// Only a genuinely new completion counts as a streak event.
		if inserted {
			if err := s.advanceStreak(userID); err != nil {
				return nil, err
			}
		}
	} else {
		if err := s.Store.RemoveCompletion(userID, pathID, resourceID, skillID); err != nil {
			return nil, err
		}
	}

	if err := s.Store.TouchLastAccessed(userID, pathID, resourceID, s.now()); err != nil {
		return nil, err
	}

	return s.computeStats(userID, path, resourceID)
}

// GetLastAccessedPath returns the id of the user's most recently touched
// learning path, or "" when the user has no snapshots.
func (s *ProgressService) GetLastAccessedPath(userID uint) (string, error) {
	if userID == 0 {
		return "", fmt.Errorf("%w: userId is required", util.ErrInvalidInput)
	}
	snap, err := s.Store.LatestSnapshot(userID)
	if err != nil {
		return "", err
	}
	if snap == nil {
		return "", nil
	}
	return snap.LearningPathID, nil
}

// GetCareerPathProgress aggregates completion across every learning path in
// the career path. Totals and completions are unioned, so a resource shared
// by two paths counts once and completing it under either path covers both.
func (s *ProgressService) GetCareerPathProgress(userID uint, careerPathID string) (*CareerProgress, error) {
	if userID == 0 || careerPathID == "" {
		return nil, fmt.Errorf("%w: userId and careerPathId are required", util.ErrInvalidInput)
	}

	career, err := s.Curriculum.GetCareerPath(careerPathID)
	if err != nil {
		return nil, err
	}

	total := progress.NewSet()
	completed := progress.NewSet()
	for i := range career.LearningPaths {
		path := &career.LearningPaths[i]

		pathTotal := progress.NewSet()
		for j := range path.Skills {
			for _, id := range path.Skills[j].ResourceIDs() {
				pathTotal.Add(id)
			}
		}

		recs, err := s.Store.ListCompletions(userID, path.ID)
		if err != nil {
			return nil, err
		}
		pathDone := progress.NewSet()
		for _, rec := range recs {
			if pathTotal.Contains(rec.ResourceID) {
				pathDone.Add(rec.ResourceID)
			}
		}

		total = total.Union(pathTotal)
		completed = completed.Union(pathDone)
	}

	return &CareerProgress{
		CareerPathID:       career.ID,
		TotalResources:     len(total),
		CompletedResources: progress.CompletedCount(total, completed),
		PercentageComplete: progress.PercentComplete(total, completed),
	}, nil
}

// GetStreak reports the user's current completion streak.
func (s *ProgressService) GetStreak(userID uint) (*StreakInfo, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: userId is required", util.ErrInvalidInput)
	}
	state, err := s.Streaks.Get(userID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return &StreakInfo{}, nil
	}
	return &StreakInfo{
		CurrentStreak:     state.CurrentStreak,
		LastCompletedDate: state.LastCompletedDate,
	}, nil
}

// GetSkillProgress returns the per-skill completion and availability
// breakdown for (userID, pathID).
func (s *ProgressService) GetSkillProgress(userID uint, pathID string) ([]SkillProgress, error) {
	if userID == 0 || pathID == "" {
		return nil, fmt.Errorf("%w: userId and learningPathId are required", util.ErrInvalidInput)
	}

	path, err := s.Curriculum.FindLearningPath(pathID)
	if err != nil {
		return nil, err
	}

	recs, err := s.Store.ListCompletions(userID, pathID)
	if err != nil {
		return nil, err
	}
	doneBySkill := make(map[string]progress.Set)
	for _, rec := range recs {
		if doneBySkill[rec.SkillID] == nil {
			doneBySkill[rec.SkillID] = progress.NewSet()
		}
		doneBySkill[rec.SkillID].Add(rec.ResourceID)
	}

	completedSkills := progress.NewSet()
	for i := range path.Skills {
		if skillCompleted(&path.Skills[i], doneBySkill[path.Skills[i].ID]) {
			completedSkills.Add(path.Skills[i].ID)
		}
	}

	out := make([]SkillProgress, 0, len(path.Skills))
	for i := range path.Skills {
		skill := &path.Skills[i]
		total := progress.NewSet(skill.ResourceIDs()...)
		out = append(out, SkillProgress{
			SkillID:            skill.ID,
			Name:               skill.Name,
			PercentageComplete: progress.PercentComplete(total, doneBySkill[skill.ID]),
			Completed:          completedSkills.Contains(skill.ID),
			Available:          progress.IsAvailable(skill.Prerequisites, completedSkills),
		})
	}
	return out, nil
}

func (s *ProgressService) advanceStreak(userID uint) error {
	state, err := s.Streaks.Get(userID)
	if err != nil {
		return err
	}

	prev := progress.Streak{}
	if state != nil {
		prev = progress.Streak{Current: state.CurrentStreak, LastCompleted: state.LastCompletedDate}
	}

	next := progress.Advance(prev, s.now(), s.Location)
	if next == prev {
		return nil
	}
	return s.Streaks.Upsert(userID, next.Current, next.LastCompleted)
}

// computeStats aggregates bottom-up over the path structure. Aggregation is
// over sets of resource ids: a resource repeated across skills counts once,
// and completions referring to resources no longer in the path are ignored.
func (s *ProgressService) computeStats(userID uint, path *model.LearningPath, lastResourceID string) (*ProgressStats, error) {
	recs, err := s.Store.ListCompletions(userID, path.ID)
	if err != nil {
		return nil, err
	}

	total := progress.NewSet()
	for i := range path.Skills {
		for _, id := range path.Skills[i].ResourceIDs() {
			total.Add(id)
		}
	}

	completed := progress.NewSet()
	for _, rec := range recs {
		if total.Contains(rec.ResourceID) {
			completed.Add(rec.ResourceID)
		}
	}

	return &ProgressStats{
		TotalResources:       len(total),
		CompletedResources:   progress.CompletedCount(total, completed),
		PercentageComplete:   progress.PercentComplete(total, completed),
		LastAccessedResource: lastResourceID,
	}, nil
}

// skillCompleted reports whether every resource of the skill has a completion
// recorded against that skill. A skill with no resources is trivially
// complete, matching the behavior of checking "all resources done" over an
// empty list.
func skillCompleted(skill *model.Skill, done progress.Set) bool {
	for _, id := range skill.ResourceIDs() {
		if !done.Contains(id) {
			return false
		}
	}
	return true
}

func pathContains(path *model.LearningPath, skillID, resourceID string) bool {
	for i := range path.Skills {
		if path.Skills[i].ID != skillID {
			continue
		}
		for _, r := range path.Skills[i].Resources {
			if r.ID == resourceID {
				return true
			}
		}
	}
	return false
}
