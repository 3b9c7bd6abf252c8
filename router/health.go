package router

import (
	"context"
	"sync"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/interview-boot/llm"
	"go.uber.org/zap"
)

type healthEntry struct {
	healthy   bool
	checkedAt time.Time
}

// HealthMonitor wraps provider liveness probes with a short-TTL cache so
// the router does not probe on every orchestration call. The cache is the
// only shared mutable state in the core and is guarded accordingly.
type HealthMonitor struct {
	ttl          time.Duration
	probeTimeout time.Duration
	loadTimeout  time.Duration

	mu    sync.RWMutex
	cache map[string]healthEntry
}

func NewHealthMonitor(ttl, probeTimeout, loadTimeout time.Duration) *HealthMonitor {
	return &HealthMonitor{
		ttl:          ttl,
		probeTimeout: probeTimeout,
		loadTimeout:  loadTimeout,
		cache:        make(map[string]healthEntry),
	}
}

// Healthy reports whether the provider can serve requests right now.
// Results are cached for the TTL window; staleness up to the TTL is
// intentional. Probe failures are false, never an error.
func (m *HealthMonitor) Healthy(ctx context.Context, provider llm.ProviderClient) bool {
	name := provider.Name()

	m.mu.RLock()
	entry, ok := m.cache[name]
	m.mu.RUnlock()

	if ok && time.Since(entry.checkedAt) < m.ttl {
		return entry.healthy
	}

	healthy := m.probe(ctx, provider)

	m.mu.Lock()
	m.cache[name] = healthEntry{healthy: healthy, checkedAt: time.Now()}
	m.mu.Unlock()

	return healthy
}

func (m *HealthMonitor) probe(ctx context.Context, provider llm.ProviderClient) bool {
	probeCtx, cancel := context.WithTimeout(ctx, m.probeTimeout)
	status := provider.Health(probeCtx)
	cancel()

	if !status.Reachable {
		return false
	}
	if status.ModelLoaded {
		return true
	}

	// Reachable but cold: trigger a one-shot load with the longer timeout
	// and re-probe once.
	loadCtx, cancel := context.WithTimeout(ctx, m.loadTimeout)
	err := provider.LoadModel(loadCtx)
	cancel()
	if err != nil {
		logger.Error("Failed to load provider model",
			zap.String("provider", provider.Name()), zap.Error(err))
		return false
	}

	probeCtx, cancel = context.WithTimeout(ctx, m.probeTimeout)
	status = provider.Health(probeCtx)
	cancel()

	return status.Reachable && status.ModelLoaded
}
