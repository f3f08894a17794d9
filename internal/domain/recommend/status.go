package recommend

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"gift-server/internal/domain/gift"
	"gift-server/internal/infrastructure/metrics"
)

// State is the lifecycle phase of one background generation.
type State string

const (
	// StatePending is returned for unknown request ids: either the job was
	// never registered or its terminal state was already consumed.
	StatePending    State = "pending"
	StateGenerating State = "generating"
	StateCompleted  State = "completed"
	StateError      State = "error"
)

// Terminal reports whether the state will not change further.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateError
}

// Snapshot is one observable point of a background generation.
type Snapshot struct {
	State     State
	Gifts     []*gift.Gift
	Total     int
	Completed int
	Error     string
}

type statusEntry struct {
	snapshot  Snapshot
	updatedAt time.Time
}

// StatusRegistry is the process-wide table of background generation progress,
// keyed by request id. Each key has a single writer (the generator invocation
// that owns it); the polling endpoint performs the sole delete. Terminal
// states are consumed on first read; a TTL sweep reclaims entries abandoned
// by their poller.
type StatusRegistry struct {
	mu      sync.RWMutex
	entries map[string]*statusEntry

	terminalTTL   time.Duration
	generatingTTL time.Duration
	now           func() time.Time
	log           zerolog.Logger
}

// NewStatusRegistry constructs a registry. terminalTTL bounds how long an
// unconsumed terminal result is kept; generatingTTL bounds entries whose
// writer died without reaching a terminal state.
func NewStatusRegistry(terminalTTL, generatingTTL time.Duration, log zerolog.Logger) *StatusRegistry {
	return &StatusRegistry{
		entries:       make(map[string]*statusEntry),
		terminalTTL:   terminalTTL,
		generatingTTL: generatingTTL,
		now:           time.Now,
		log:           log,
	}
}

// Begin registers a new generation in the generating state.
func (r *StatusRegistry) Begin(requestID string, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[requestID] = &statusEntry{
		snapshot: Snapshot{
			State: StateGenerating,
			Gifts: []*gift.Gift{},
			Total: total,
		},
		updatedAt: r.now(),
	}
}

// AppendGift publishes one successfully persisted gift and advances the
// completed counter, making partial progress visible to pollers.
func (r *StatusRegistry) AppendGift(requestID string, g *gift.Gift) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[requestID]
	if !ok || entry.snapshot.State.Terminal() {
		return
	}
	entry.snapshot.Gifts = append(entry.snapshot.Gifts, g)
	entry.snapshot.Completed++
	entry.updatedAt = r.now()
}

// Complete transitions the entry to its terminal completed state.
func (r *StatusRegistry) Complete(requestID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[requestID]
	if !ok || entry.snapshot.State.Terminal() {
		return
	}
	entry.snapshot.State = StateCompleted
	entry.updatedAt = r.now()
}

// Fail transitions the entry to its terminal error state.
func (r *StatusRegistry) Fail(requestID string, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[requestID]
	if !ok || entry.snapshot.State.Terminal() {
		return
	}
	entry.snapshot.State = StateError
	entry.snapshot.Error = message
	entry.updatedAt = r.now()
}

// Poll returns the current snapshot for the request id. Unknown ids yield a
// pending snapshot. A terminal snapshot is returned exactly once: the read
// deletes the entry, so a second poll for the same id reports pending.
func (r *StatusRegistry) Poll(requestID string) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[requestID]
	if !ok {
		return Snapshot{State: StatePending}
	}

	snapshot := entry.snapshot
	if snapshot.State.Terminal() {
		delete(r.entries, requestID)
	}
	return snapshot
}

// Sweep evicts entries whose poller abandoned them: terminal entries older
// than terminalTTL and generating entries older than generatingTTL. It
// returns the number of evicted entries.
func (r *StatusRegistry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	evicted := 0
	for key, entry := range r.entries {
		age := now.Sub(entry.updatedAt)
		stale := (entry.snapshot.State.Terminal() && age > r.terminalTTL) ||
			(!entry.snapshot.State.Terminal() && age > r.generatingTTL)
		if stale {
			delete(r.entries, key)
			evicted++
		}
	}

	if evicted > 0 {
		metrics.StatusEntriesSweptTotal.Add(float64(evicted))
		r.log.Info().Int("evicted", evicted).Msg("swept abandoned status entries")
	}
	return evicted
}

// Len reports the number of live entries.
func (r *StatusRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
