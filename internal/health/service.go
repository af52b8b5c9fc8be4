// Package health aggregates dependency checks into a single cached report.
package health

import (
	"context"
	"sync"
	"time"
)

type Status string

const (
	StatusHealthy   Status = "Healthy"
	StatusDegraded  Status = "Degraded"
	StatusUnhealthy Status = "Unhealthy"
)

type CheckFunc func(ctx context.Context) error

// Check is a named dependency check. A failing critical check makes the whole
// service Unhealthy, any other failure only Degraded.
type Check struct {
	Name     string
	Fn       CheckFunc
	Critical bool
}

type Service struct {
	mu sync.Mutex

	checks []Check
	ttl    time.Duration

	nextCheckAt time.Time
	lastResult  Result
}

type Result struct {
	At     time.Time         `json:"checkedAt"`
	Status Status            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func NewService(ttl time.Duration, checks ...Check) *Service {
	return &Service{ttl: ttl, checks: checks, lastResult: Result{Checks: map[string]string{}}}
}

func (s *Service) Check(ctx context.Context) Result {
	s.mu.Lock()
	if time.Now().Before(s.nextCheckAt) {
		res := s.lastResult
		s.mu.Unlock()
		return res
	}
	s.mu.Unlock()

	res := Result{At: time.Now().UTC(), Status: StatusHealthy, Checks: make(map[string]string, len(s.checks))}
	for _, c := range s.checks {
		err := errInvalidCheck
		if c.Fn != nil {
			err = c.Fn(ctx)
		}
		if err == nil {
			res.Checks[c.Name] = "ok"
			continue
		}

		res.Checks[c.Name] = err.Error()
		if c.Critical {
			res.Status = StatusUnhealthy
		} else if res.Status == StatusHealthy {
			res.Status = StatusDegraded
		}
	}

	s.mu.Lock()
	s.lastResult = res
	s.nextCheckAt = time.Now().Add(s.ttl)
	s.mu.Unlock()

	return res
}
