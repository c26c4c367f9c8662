package leveldata

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type rawLevel struct {
	Name *string `json:"name"`
	Map  *string `json:"map"`
	Next *string `json:"next"`
}

// Registry is the ordered, immutable set of levels from the manifest.
type Registry struct {
	levels []LevelDescriptor
	byName map[string]int
}

// ParseManifest decodes the level manifest, a JSON array of {name, map, next?}.
// "next" may name any level, including an earlier one, so chains can loop.
func ParseManifest(data []byte) (*Registry, error) {
	const op = "parse manifest"

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, malformed(op, "", "expected a JSON array")
	}

	var raw []rawLevel
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &Error{Kind: ErrMalformedDocument, Op: op, Err: err}
	}
	if len(raw) == 0 {
		return nil, malformed(op, "", "manifest lists no levels")
	}

	reg := &Registry{
		levels: make([]LevelDescriptor, 0, len(raw)),
		byName: make(map[string]int, len(raw)),
	}
	for i, l := range raw {
		at := fmt.Sprintf("[%d]", i)
		if l.Name == nil || *l.Name == "" {
			return nil, malformed(op, at+".name", "missing required field")
		}
		if l.Map == nil || *l.Map == "" {
			return nil, malformed(op, at+".map", "missing required field")
		}
		if _, dup := reg.byName[*l.Name]; dup {
			return nil, malformed(op, at+".name", "duplicate level name %q", *l.Name)
		}

		level := LevelDescriptor{Name: *l.Name, Map: *l.Map}
		if l.Next != nil {
			level.Next = *l.Next
		}
		reg.byName[level.Name] = len(reg.levels)
		reg.levels = append(reg.levels, level)
	}

	return reg, nil
}

// First is the level play starts on.
func (r *Registry) First() LevelDescriptor {
	return r.levels[0]
}

// Lookup returns a copy of the named level.
func (r *Registry) Lookup(name string) (LevelDescriptor, error) {
	i, ok := r.byName[name]
	if !ok {
		return LevelDescriptor{}, unresolved("lookup level", name, "no level named %q in manifest", name)
	}
	return r.levels[i], nil
}

// Levels returns the manifest entries in order.
func (r *Registry) Levels() []LevelDescriptor {
	out := make([]LevelDescriptor, len(r.levels))
	copy(out, r.levels)
	return out
}

func (r *Registry) Len() int {
	return len(r.levels)
}

// DanglingNext lists levels whose "next" names no manifest entry. Those references only
// fail when the transition reaches them.
func (r *Registry) DanglingNext() []LevelDescriptor {
	var out []LevelDescriptor
	for _, l := range r.levels {
		if !l.HasNext() {
			continue
		}
		if _, ok := r.byName[l.Next]; !ok {
			out = append(out, l)
		}
	}
	return out
}
