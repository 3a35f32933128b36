package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/riaz37/portfolio-backend/internal/config"
)

// GitHubService fetches public profile statistics for the portfolio page,
// best effort and cached. GitHub being down should never take the site down
// with it, so stale cache entries are preferred over hard failures.
type GitHubService struct {
	Config *config.Config
	Redis  *redis.Client
	client *http.Client
}

func NewGitHubService(cfg *config.Config, rdb *redis.Client) *GitHubService {
	return &GitHubService{
		Config: cfg,
		Redis:  rdb,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type GitHubStats struct {
	Username    string    `json:"username"`
	PublicRepos int       `json:"publicRepos"`
	Followers   int       `json:"followers"`
	TotalStars  int       `json:"totalStars"`
	TotalForks  int       `json:"totalForks"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

func (s *GitHubService) GetStats() (*GitHubStats, error) {
	username := s.Config.GitHub.Username
	if username == "" {
		return nil, fmt.Errorf("github username not configured")
	}

	cacheKey := "github:stats:" + username
	if s.Redis != nil {
		if val, err := s.Redis.Get(context.Background(), cacheKey).Result(); err == nil {
			var stats GitHubStats
			if json.Unmarshal([]byte(val), &stats) == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.fetch(username)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		ttl := time.Duration(s.Config.GitHub.CacheMinutes) * time.Minute
		if ttl <= 0 {
			ttl = 30 * time.Minute
		}
		if data, err := json.Marshal(stats); err == nil {
			s.Redis.Set(context.Background(), cacheKey, data, ttl)
		}
	}
	return stats, nil
}

func (s *GitHubService) fetch(username string) (*GitHubStats, error) {
	var profile struct {
		PublicRepos int `json:"public_repos"`
		Followers   int `json:"followers"`
	}
	if err := s.getJSON("https://api.github.com/users/"+username, &profile); err != nil {
		return nil, fmt.Errorf("github profile: %w", err)
	}

	var repos []struct {
		Stars int `json:"stargazers_count"`
		Forks int `json:"forks_count"`
	}
	if err := s.getJSON("https://api.github.com/users/"+username+"/repos?per_page=100", &repos); err != nil {
		return nil, fmt.Errorf("github repos: %w", err)
	}

	stats := &GitHubStats{
		Username:    username,
		PublicRepos: profile.PublicRepos,
		Followers:   profile.Followers,
		FetchedAt:   time.Now(),
	}
	for _, r := range repos {
		stats.TotalStars += r.Stars
		stats.TotalForks += r.Forks
	}
	return stats, nil
}

func (s *GitHubService) getJSON(url string, dst interface{}) error {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if s.Config.GitHub.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Config.GitHub.Token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
