package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jnycolej/GamesApp/internal/fileutil"
)

// BuiltinTypes returns the game types with embedded template sets, sorted.
func BuiltinTypes() []string {
	types := make([]string, 0, len(builtinSets))
	for gameType := range builtinSets {
		types = append(types, gameType)
	}
	sort.Strings(types)
	return types
}

// Export writes the embedded template set for the game type to
// <dir>/<gameType>.json in the format DirLoader reads, so operators can
// seed a catalog directory and edit from there. The write is atomic; a
// concurrent server reading the directory never sees a partial file.
func Export(dir, gameType string) error {
	templates, ok := builtinSets[gameType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCatalogNotFound, gameType)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("catalog: create %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(templates, "", "  ")
	if err != nil {
		return fmt.Errorf("catalog: encode %s: %w", gameType, err)
	}
	data = append(data, '\n')

	path := filepath.Join(dir, gameType+".json")
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("catalog: write %s: %w", path, err)
	}
	return nil
}
