// Package catalog loads the card-template sets that back each game type.
// Templates are immutable once loaded; draw weights are computed exactly
// once, at load time.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrCatalogNotFound indicates no backing data exists for the game type.
	ErrCatalogNotFound = errors.New("catalog: not found")

	// ErrCorruptCatalog indicates backing data exists but cannot be used.
	ErrCorruptCatalog = errors.New("catalog: corrupt data")
)

// rarityWeights maps a rarity tier to a draw weight when a template does
// not carry an explicit weight.
var rarityWeights = map[string]int{
	"common":   5,
	"uncommon": 3,
	"rare":     1,
}

// Template is a single catalog entry. Point values may be negative.
type Template struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Team        string `json:"team,omitempty"`
	Points      int    `json:"points"`
	Rarity      string `json:"rarity,omitempty"`
	Weight      int    `json:"weight,omitempty"`
}

// EffectiveWeight resolves the template's draw weight: an explicit positive
// weight wins, then the rarity table, then 1. Never below 1.
func (t Template) EffectiveWeight() int {
	if t.Weight > 0 {
		return t.Weight
	}
	if w, ok := rarityWeights[strings.ToLower(t.Rarity)]; ok {
		return w
	}
	return 1
}

// Set is a loaded template set for one game type. TotalWeight is the sum of
// effective weights, precomputed for the draw engine's cumulative scan.
type Set struct {
	GameType    string
	Templates   []Template
	TotalWeight int
}

// NewSet builds a Set from raw templates, resolving weights.
func NewSet(gameType string, templates []Template) *Set {
	s := &Set{GameType: gameType, Templates: templates}
	for _, t := range templates {
		s.TotalWeight += t.EffectiveWeight()
	}
	return s
}

// Loader resolves a game-type string to a template set.
type Loader interface {
	Load(gameType string) (*Set, error)
}

// DirLoader reads <dir>/<gameType>.json. When FallbackBuiltin is set and the
// file is absent, the embedded set for that game type is used instead.
type DirLoader struct {
	Dir             string
	FallbackBuiltin bool
}

func (l DirLoader) Load(gameType string) (*Set, error) {
	path := filepath.Join(l.Dir, gameType+".json")
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if l.FallbackBuiltin {
			return Builtin().Load(gameType)
		}
		return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, gameType)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	var templates []Template
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptCatalog, path, err)
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("%w: %s: no templates", ErrCorruptCatalog, path)
	}
	return NewSet(gameType, templates), nil
}

// builtinLoader serves the embedded sets.
type builtinLoader struct {
	sets map[string][]Template
}

// Builtin returns a loader backed by the embedded football and baseball
// sets, so a server runs without any catalog directory configured.
func Builtin() Loader {
	return builtinLoader{sets: builtinSets}
}

func (l builtinLoader) Load(gameType string) (*Set, error) {
	templates, ok := l.sets[gameType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, gameType)
	}
	return NewSet(gameType, templates), nil
}
