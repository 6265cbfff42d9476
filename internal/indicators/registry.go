// Package indicators holds the indicator registry and the static dashboard
// definitions.
package indicators

import (
	"fmt"
	"strings"
)

// IndexMarker is the naming convention marking survey index series.
const IndexMarker = "Index_"

// Kind classifies an indicator by the unit of its values.
type Kind int

const (
	// Level series carry absolute units such as euros or headcount.
	Level Kind = iota
	// Index series carry normalized survey scores, conventionally in [-100, 100].
	Index
)

func (k Kind) String() string {
	switch k {
	case Level:
		return "level"
	case Index:
		return "index"
	default:
		return "unknown"
	}
}

// ParseKind parses "level" or "index".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "level":
		return Level, nil
	case "index":
		return Index, nil
	default:
		return 0, fmt.Errorf("unknown indicator kind %q", s)
	}
}

// ClassifyName applies the lexical rule: any name containing IndexMarker is
// an index series, everything else a level series.
func ClassifyName(name string) Kind {
	if strings.Contains(name, IndexMarker) {
		return Index
	}
	return Level
}

// Registry maps indicator names to their kind. Names that are not
// registered are classified with ClassifyName.
type Registry struct {
	kinds map[string]Kind
}

// NewRegistry creates a registry from explicit entries.
func NewRegistry(entries map[string]Kind) *Registry {
	kinds := make(map[string]Kind, len(entries))
	for name, kind := range entries {
		kinds[name] = kind
	}
	return &Registry{kinds: kinds}
}

// Kind returns the registered kind, falling back to the naming convention.
func (r *Registry) Kind(name string) Kind {
	if r != nil {
		if kind, ok := r.kinds[name]; ok {
			return kind
		}
	}
	return ClassifyName(name)
}

// Registered reports whether name has an explicit registry entry.
func (r *Registry) Registered(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.kinds[name]
	return ok
}

// Len returns the number of registered indicators.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.kinds)
}

// Partition splits names into level and index series, keeping the relative
// order of each group. Every input name lands in exactly one group.
func (r *Registry) Partition(names []string) (levels, indices []string) {
	for _, name := range names {
		if r.Kind(name) == Index {
			indices = append(indices, name)
		} else {
			levels = append(levels, name)
		}
	}
	return levels, indices
}
