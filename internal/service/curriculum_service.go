package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/riaz37/portfolio-backend/internal/model"
	"github.com/riaz37/portfolio-backend/internal/repository"
	"github.com/riaz37/portfolio-backend/pkg/logger"
	"go.uber.org/zap"
)

const curriculumCacheTTL = 5 * time.Minute

// CurriculumService exposes the read-only career path → learning path →
// skill → resource tree. Trees are immutable between deployments, so reads
// are served through a short-TTL redis cache.
type CurriculumService struct {
	Repo  *repository.CurriculumRepository
	Redis *redis.Client
}

func NewCurriculumService(repo *repository.CurriculumRepository, rdb *redis.Client) *CurriculumService {
	return &CurriculumService{Repo: repo, Redis: rdb}
}

func (s *CurriculumService) ListCareerPaths() ([]model.CareerPath, error) {
	var paths []model.CareerPath
	if s.cacheGet("curriculum:career-paths", &paths) {
		return paths, nil
	}

	paths, err := s.Repo.ListCareerPaths()
	if err != nil {
		return nil, err
	}
	s.cacheSet("curriculum:career-paths", paths)
	return paths, nil
}

func (s *CurriculumService) GetCareerPath(id string) (*model.CareerPath, error) {
	key := "curriculum:career-path:" + id
	var path model.CareerPath
	if s.cacheGet(key, &path) {
		return &path, nil
	}

	p, err := s.Repo.FindCareerPath(id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(key, p)
	return p, nil
}

// FindLearningPath implements CurriculumProvider for the progress service.
func (s *CurriculumService) FindLearningPath(id string) (*model.LearningPath, error) {
	key := "curriculum:learning-path:" + id
	var path model.LearningPath
	if s.cacheGet(key, &path) {
		return &path, nil
	}

	p, err := s.Repo.FindLearningPath(id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(key, p)
	return p, nil
}

// cacheGet fills dst from redis and reports a hit. Cache failures degrade to
// a repository read.
func (s *CurriculumService) cacheGet(key string, dst interface{}) bool {
	if s.Redis == nil {
		return false
	}
	val, err := s.Redis.Get(context.Background(), key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), dst); err != nil {
		logger.Log.Warn("corrupt curriculum cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *CurriculumService) cacheSet(key string, v interface{}) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.Redis.Set(context.Background(), key, data, curriculumCacheTTL).Err(); err != nil {
		logger.Log.Warn(fmt.Sprintf("failed to cache %s", key), zap.Error(err))
	}
}
