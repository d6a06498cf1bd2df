package chart

import (
	"sort"
	"sync"
)

// Component names understood by the chart.
const (
	ScaleLinear    = "linear"
	ScaleCategory  = "category"
	ControllerLine = "line"
	ElementPoint   = "point"
	ElementLine    = "line-element"
)

var (
	setupOnce sync.Once

	regMu      sync.RWMutex
	registered = make(map[string]struct{})
)

// Setup registers the components every line chart needs.
// It runs once per process; later calls are no-ops.
func Setup() {
	setupOnce.Do(func() {
		Register(ScaleLinear, ScaleCategory, ControllerLine, ElementPoint, ElementLine)
	})
}

// Register adds components to the process-wide registry.
func Register(names ...string) {
	regMu.Lock()
	defer regMu.Unlock()
	for _, name := range names {
		registered[name] = struct{}{}
	}
}

// IsRegistered reports whether a component has been registered.
func IsRegistered(name string) bool {
	regMu.RLock()
	defer regMu.RUnlock()
	_, ok := registered[name]
	return ok
}

// Registered returns the registered component names, sorted.
func Registered() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	names := make([]string, 0, len(registered))
	for name := range registered {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
