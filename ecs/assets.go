package ecs

import "sync"

// AssetId is an opaque handle to a host-side asset. The simulation never
// looks inside one; the rendering host resolves it back to a path.
type AssetId uint32

// Assets memoizes path to handle lookups. Load is safe to call from parallel
// query iteration, but callers should still hoist lookups out of hot loops.
type Assets struct {
	mu     sync.Mutex
	byPath map[string]AssetId
	paths  []string
}

func NewAssets() *Assets {
	return &Assets{byPath: make(map[string]AssetId)}
}

// Load returns the handle for path, assigning one on first use.
func (a *Assets) Load(path string) AssetId {
	a.mu.Lock()
	defer a.mu.Unlock()

	if id, ok := a.byPath[path]; ok {
		return id
	}

	id := AssetId(len(a.paths))
	a.paths = append(a.paths, path)
	a.byPath[path] = id
	return id
}

// Path resolves a handle back to the path it was loaded from.
func (a *Assets) Path(id AssetId) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if int(id) >= len(a.paths) {
		return ""
	}
	return a.paths[id]
}

// Count returns the number of distinct assets loaded so far.
func (a *Assets) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.paths)
}
