// Package dashboard holds the in-memory state behind the interactive views:
// the last fetched log set, the active filter criteria, and the derived
// views recomputed from them.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/nchandra/callscope/pkg/aggregate"
	"github.com/nchandra/callscope/pkg/filter"
	"github.com/nchandra/callscope/pkg/models"
)

// Fetcher is the slice of the API client the session needs.
type Fetcher interface {
	Snapshot(ctx context.Context) ([]models.CallLog, uint64, error)
}

// Session owns one fetched log set and the criteria applied to it. Views are
// always derived from the full set, so loosening a filter never needs a
// refetch.
type Session struct {
	mu         sync.Mutex
	fetcher    Fetcher
	criteria   filter.Criteria
	all        []models.CallLog
	digest     uint64
	loadedAt   time.Time
	refreshing bool
	lastErr    error
}

// NewSession creates a session around a fetcher with the given starting
// criteria.
func NewSession(f Fetcher, criteria filter.Criteria) *Session {
	return &Session{fetcher: f, criteria: criteria}
}

// Refresh fetches the full log set. Overlapping calls coalesce: while one
// refresh is in flight, further calls return immediately with changed=false
// and the in-flight refresh's outcome lands via its own call.
func (s *Session) Refresh(ctx context.Context) (changed bool, err error) {
	s.mu.Lock()
	if s.refreshing {
		s.mu.Unlock()
		return false, nil
	}
	s.refreshing = true
	prevDigest := s.digest
	s.mu.Unlock()

	logs, digest, err := s.fetcher.Snapshot(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshing = false
	if err != nil {
		// Keep the previous good data; record the failure for Status.
		s.lastErr = err
		return false, err
	}
	s.lastErr = nil
	firstLoad := s.loadedAt.IsZero()
	s.all = logs
	s.digest = digest
	s.loadedAt = time.Now()
	return firstLoad || digest != prevDigest, nil
}

// SetCriteria replaces the active filter criteria.
func (s *Session) SetCriteria(c filter.Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = c
}

// Criteria returns the active filter criteria.
func (s *Session) Criteria() filter.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// View returns the filtered log set in most-recent-first order. The slice is
// a fresh copy; callers may not mutate session state through it.
func (s *Session) View() []models.CallLog {
	s.mu.Lock()
	all := s.all
	criteria := s.criteria
	s.mu.Unlock()

	view := filter.Apply(all, criteria)
	models.SortLogs(view)
	return view
}

// All returns every fetched log in most-recent-first order, ignoring the
// active criteria. The detail view resolves keys against this set.
func (s *Session) All() []models.CallLog {
	s.mu.Lock()
	all := make([]models.CallLog, len(s.all))
	copy(all, s.all)
	s.mu.Unlock()

	models.SortLogs(all)
	return all
}

// Find resolves a record key against the full fetched set.
func (s *Session) Find(key string) (models.CallLog, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.all {
		if s.all[i].Key() == key {
			return s.all[i], true
		}
	}
	return models.CallLog{}, false
}

// Summary aggregates the current view.
func (s *Session) Summary() aggregate.Summary {
	return aggregate.Summarize(s.View())
}

// ByScale partitions the current view by native score scale.
func (s *Session) ByScale() map[int]aggregate.Summary {
	return aggregate.SummarizeByScale(s.View())
}

// StaffAverages aggregates the current view per staff member.
func (s *Session) StaffAverages() []aggregate.StaffScore {
	return aggregate.StaffAverages(s.View())
}

// Status reports when data was last loaded and the last refresh failure, if
// any.
func (s *Session) Status() (loadedAt time.Time, digest uint64, lastErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadedAt, s.digest, s.lastErr
}
