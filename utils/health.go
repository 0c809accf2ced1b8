package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Firestore bool      `json:"firestore"`
	Redis     *bool     `json:"redis,omitempty"` // nil when the reminder queue is disabled
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every monitored dependency answered.
func (h HealthStatus) Healthy() bool {
	if !h.Firestore {
		return false
	}
	return h.Redis == nil || *h.Redis
}

// HealthMonitor keeps the latest health snapshot.
type HealthMonitor struct {
	mu      sync.RWMutex
	current HealthStatus

	firestorePing func(ctx context.Context) error
	redisClient   *redis.Client
}

// NewHealthMonitor checks Firestore through firestorePing and, when redisClient
// is not nil, Redis.
func NewHealthMonitor(firestorePing func(ctx context.Context) error, redisClient *redis.Client) *HealthMonitor {
	return &HealthMonitor{firestorePing: firestorePing, redisClient: redisClient}
}

// GetHealthStatus returns latest stored health snapshot.
func (m *HealthMonitor) GetHealthStatus() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Check probes every dependency once and stores the result.
func (m *HealthMonitor) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	status := HealthStatus{CheckedAt: time.Now()}
	if m.firestorePing != nil {
		status.Firestore = m.firestorePing(ctx) == nil
	}
	if m.redisClient != nil {
		ok := m.redisClient.Ping(ctx).Err() == nil
		status.Redis = &ok
	}

	m.mu.Lock()
	m.current = status
	m.mu.Unlock()
	return status
}

// Start performs periodic health checks until ctx ends.
func (m *HealthMonitor) Start(ctx context.Context, every time.Duration) {
	go func() {
		m.Check(ctx)
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Check(ctx)
			}
		}
	}()
}
