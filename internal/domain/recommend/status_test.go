package recommend

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"gift-server/internal/domain/gift"
)

func newTestRegistry() *StatusRegistry {
	return NewStatusRegistry(10*time.Minute, time.Hour, zerolog.Nop())
}

func TestStatusRegistryUnknownIsPending(t *testing.T) {
	registry := newTestRegistry()

	snapshot := registry.Poll("req_unknown")

	assert.Equal(t, StatePending, snapshot.State)
	assert.Empty(t, snapshot.Gifts)
}

func TestStatusRegistryProgressVisibleToPollers(t *testing.T) {
	registry := newTestRegistry()
	registry.Begin("req_a", 3)

	registry.AppendGift("req_a", &gift.Gift{Name: "Плед"})

	snapshot := registry.Poll("req_a")
	assert.Equal(t, StateGenerating, snapshot.State)
	assert.Equal(t, 3, snapshot.Total)
	assert.Equal(t, 1, snapshot.Completed)
	assert.Len(t, snapshot.Gifts, 1)

	// A non-terminal read does not consume the entry.
	again := registry.Poll("req_a")
	assert.Equal(t, StateGenerating, again.State)
	assert.Len(t, again.Gifts, 1)
}

func TestStatusRegistryTerminalReadConsumes(t *testing.T) {
	registry := newTestRegistry()
	registry.Begin("req_b", 2)
	registry.AppendGift("req_b", &gift.Gift{Name: "Кружка"})
	registry.AppendGift("req_b", &gift.Gift{Name: "Книга"})
	registry.Complete("req_b")

	first := registry.Poll("req_b")
	assert.Equal(t, StateCompleted, first.State)
	assert.Len(t, first.Gifts, 2)

	second := registry.Poll("req_b")
	assert.Equal(t, StatePending, second.State)
	assert.Empty(t, second.Gifts)
}

func TestStatusRegistryErrorReadConsumes(t *testing.T) {
	registry := newTestRegistry()
	registry.Begin("req_c", 3)
	registry.Fail("req_c", "completion provider unavailable")

	first := registry.Poll("req_c")
	assert.Equal(t, StateError, first.State)
	assert.Equal(t, "completion provider unavailable", first.Error)

	second := registry.Poll("req_c")
	assert.Equal(t, StatePending, second.State)
}

func TestStatusRegistryTerminalStateIsFinal(t *testing.T) {
	registry := newTestRegistry()
	registry.Begin("req_d", 1)
	registry.Fail("req_d", "boom")

	// Late writes from the owning goroutine must not resurrect the entry.
	registry.AppendGift("req_d", &gift.Gift{Name: "Шарф"})
	registry.Complete("req_d")

	snapshot := registry.Poll("req_d")
	assert.Equal(t, StateError, snapshot.State)
	assert.Empty(t, snapshot.Gifts)
	assert.Equal(t, 0, snapshot.Completed)
}

func TestStatusRegistrySweep(t *testing.T) {
	registry := newTestRegistry()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	registry.now = func() time.Time { return base }

	registry.Begin("req_fresh", 1)

	registry.Begin("req_done", 1)
	registry.Complete("req_done")

	registry.Begin("req_dead", 1)

	// Unconsumed terminal entries fall out after the terminal TTL.
	registry.now = func() time.Time { return base.Add(11 * time.Minute) }
	assert.Equal(t, 1, registry.Sweep())
	assert.Equal(t, StatePending, registry.Poll("req_done").State)
	assert.Equal(t, StateGenerating, registry.Poll("req_fresh").State)

	// Stale generating entries survive longer but are also reclaimed.
	registry.now = func() time.Time { return base.Add(61 * time.Minute) }
	assert.Equal(t, 2, registry.Sweep())
	assert.Equal(t, 0, registry.Len())
}
