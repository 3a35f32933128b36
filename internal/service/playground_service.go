package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/riaz37/portfolio-backend/internal/config"
	"github.com/riaz37/portfolio-backend/internal/util"
)

// PlaygroundService is a thin proxy in front of the Piston code-execution
// API. Sandboxing, limits and language toolchains all live on the Piston
// side; this service only shuttles requests through.
type PlaygroundService struct {
	Config *config.Config
	Redis  *redis.Client
	client *http.Client
}

func NewPlaygroundService(cfg *config.Config, rdb *redis.Client) *PlaygroundService {
	return &PlaygroundService{
		Config: cfg,
		Redis:  rdb,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type ExecuteRequest struct {
	Language string `json:"language" binding:"required"`
	Version  string `json:"version"`
	Code     string `json:"code" binding:"required"`
	Stdin    string `json:"stdin"`
}

type ExecuteResult struct {
	Language string `json:"language"`
	Version  string `json:"version"`
	Run      struct {
		Stdout string `json:"stdout"`
		Stderr string `json:"stderr"`
		Code   int    `json:"code"`
		Output string `json:"output"`
	} `json:"run"`
}

func (s *PlaygroundService) Execute(req ExecuteRequest) (*ExecuteResult, error) {
	if req.Language == "" || req.Code == "" {
		return nil, fmt.Errorf("%w: language and code are required", util.ErrInvalidInput)
	}

	version := req.Version
	if version == "" {
		version = "*"
	}

	payload := map[string]interface{}{
		"language": req.Language,
		"version":  version,
		"files":    []map[string]string{{"content": req.Code}},
		"stdin":    req.Stdin,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest("POST", s.Config.Playground.PistonURL+"/api/v2/execute", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("piston execute: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("piston execute: unexpected status %d", resp.StatusCode)
	}

	var result ExecuteResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("piston execute: decode response: %w", err)
	}
	return &result, nil
}

type Runtime struct {
	Language string   `json:"language"`
	Version  string   `json:"version"`
	Aliases  []string `json:"aliases"`
}

// Runtimes lists the languages Piston can execute, cached for an hour since
// the list only changes when the sandbox is redeployed.
func (s *PlaygroundService) Runtimes() ([]Runtime, error) {
	const cacheKey = "playground:runtimes"

	if s.Redis != nil {
		if val, err := s.Redis.Get(context.Background(), cacheKey).Result(); err == nil {
			var runtimes []Runtime
			if json.Unmarshal([]byte(val), &runtimes) == nil {
				return runtimes, nil
			}
		}
	}

	resp, err := s.client.Get(s.Config.Playground.PistonURL + "/api/v2/runtimes")
	if err != nil {
		return nil, fmt.Errorf("piston runtimes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("piston runtimes: unexpected status %d", resp.StatusCode)
	}

	var runtimes []Runtime
	if err := json.NewDecoder(resp.Body).Decode(&runtimes); err != nil {
		return nil, fmt.Errorf("piston runtimes: decode response: %w", err)
	}

	if s.Redis != nil {
		if data, err := json.Marshal(runtimes); err == nil {
			s.Redis.Set(context.Background(), cacheKey, data, time.Hour)
		}
	}
	return runtimes, nil
}
