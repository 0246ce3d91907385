package managed

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// The debug registry tracks live managed objects by kind. It is process-global
// and guarded by its own lock; everything else in this package follows the
// single-goroutine discipline of the owning M-text.

type registryEntry struct {
	ID   string
	Kind string
}

var registry struct {
	mu      sync.Mutex
	enabled bool
	live    map[*Object]registryEntry
}

// EnableDebug turns the registry on. Objects registered before the call are
// not tracked retroactively.
func EnableDebug() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.enabled = true
	if registry.live == nil {
		registry.live = make(map[*Object]registryEntry)
	}
}

// DisableDebug turns the registry off and forgets all tracked objects.
func DisableDebug() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.enabled = false
	registry.live = nil
}

// Register records a live object under a kind label ("plist", "property",
// "mtext", ...). No-op when the registry is disabled.
func Register(o *Object, kind string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if !registry.enabled {
		return
	}
	registry.live[o] = registryEntry{ID: uuid.NewString(), Kind: kind}
}

func unregister(o *Object) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if registry.enabled {
		delete(registry.live, o)
	}
}

// LiveCount returns the number of tracked objects of the given kind, or of
// all kinds when kind is empty.
func LiveCount(kind string) int {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if kind == "" {
		return len(registry.live)
	}
	n := 0
	for _, e := range registry.live {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// LiveKinds returns the distinct kinds with live objects, sorted.
func LiveKinds() []string {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	seen := make(map[string]bool)
	for _, e := range registry.live {
		seen[e.Kind] = true
	}
	kinds := make([]string, 0, len(seen))
	for k := range seen {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
