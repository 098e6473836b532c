// FilePath: internal/monitoring/monitoring.go
package monitoring

import (
	"sync"
	"time"

	nuts "github.com/vaudience/go-nuts"
)

// Service records lifecycle events emitted by the hub. Counters are kept in
// memory and surfaced through the actuator endpoint.
type Service struct {
	mu      sync.Mutex
	counts  map[string]int64
	started time.Time
}

// NewService creates a new monitoring service
func NewService() *Service {
	return &Service{
		counts:  make(map[string]int64),
		started: time.Now(),
	}
}

// RecordEvent records a monitored event with labels
func (s *Service) RecordEvent(eventName string, labels map[string]string) {
	s.mu.Lock()
	s.counts[eventName]++
	s.mu.Unlock()

	nuts.L.Infof("[Monitoring] Event %s recorded with labels: %v", eventName, labels)
}

// EventCounts returns a snapshot of all recorded event counters.
func (s *Service) EventCounts() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string]int64, len(s.counts))
	for name, count := range s.counts {
		snapshot[name] = count
	}
	return snapshot
}

// Uptime reports how long the service has been running.
func (s *Service) Uptime() time.Duration {
	return time.Since(s.started)
}
