package reference

import (
	"context"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/sitelog/sitelog/internal/event_bus"
)

// Fetcher retrieves the current roster from the backend workflow.
type Fetcher interface {
	FetchReferenceData(ctx context.Context) (Data, error)
}

type Service interface {
	Current(ctx context.Context) (Data, error)
	Refresh(ctx context.Context) (Data, error)
	IsAdmin(ctx context.Context, name string) bool
}

// ServiceImpl caches the last successful fetch. A refresh replaces the
// cache wholesale and announces the reload on the event bus so dependent
// state (stored drafts) can be dropped.
type ServiceImpl struct {
	mu      sync.RWMutex
	fetcher Fetcher
	bus     *event_bus.EventBus
	cache   Data
	loaded  bool
}

func NewServiceImpl(fetcher Fetcher, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{fetcher: fetcher, bus: bus}
}

// Current returns the cached roster, fetching it first if this is the
// initial call.
func (s *ServiceImpl) Current(ctx context.Context) (Data, error) {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		return s.cache, nil
	}
	s.mu.RUnlock()

	return s.Refresh(ctx)
}

// Refresh fetches a fresh roster, deduplicates it, swaps the cache, and
// publishes ReferenceReloaded. On fetch failure the old cache is kept.
func (s *ServiceImpl) Refresh(ctx context.Context) (Data, error) {
	fetched, err := s.fetcher.FetchReferenceData(ctx)
	if err != nil {
		return Data{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	data := Data{
		Employees: dedupe(fetched.Employees),
		Plant:     dedupe(fetched.Plant),
		Sites:     dedupe(fetched.Sites),
		Admins:    dedupe(fetched.Admins),
	}

	s.mu.Lock()
	s.cache = data
	s.loaded = true
	s.mu.Unlock()

	log.Infof("reference data reloaded: %d employees, %d plant items, %d sites",
		len(data.Employees), len(data.Plant), len(data.Sites))

	if publishErr := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.ReferenceReloaded, event_bus.ReferenceReloadedData{
		Employees: len(data.Employees),
		Plant:     len(data.Plant),
		Sites:     len(data.Sites),
	})); publishErr != nil {
		log.Warnf("reference reload notification failed: %v", publishErr)
	}

	return data, nil
}

// IsAdmin reports whether name is on the admin list. Comparison ignores
// case and surrounding whitespace.
func (s *ServiceImpl) IsAdmin(ctx context.Context, name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, admin := range s.cache.Admins {
		if strings.EqualFold(strings.TrimSpace(admin), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// dedupe removes blank entries and duplicates, keeping first-seen order.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
