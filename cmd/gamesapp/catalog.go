package main

import (
	"fmt"

	"github.com/jnycolej/GamesApp/internal/catalog"
)

// CatalogCmd works with card catalog files
type CatalogCmd struct {
	List   CatalogListCmd   `cmd:"" help:"List built-in game types"`
	Export CatalogExportCmd `cmd:"" help:"Write built-in catalogs to a directory for editing"`
}

type CatalogListCmd struct{}

func (c *CatalogListCmd) Run() error {
	for _, gameType := range catalog.BuiltinTypes() {
		set, err := catalog.Builtin().Load(gameType)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%d templates\n", gameType, len(set.Templates))
	}
	return nil
}

type CatalogExportCmd struct {
	Dir   string   `arg:"" help:"Target directory for catalog JSON files"`
	Types []string `help:"Game types to export (default: all built-ins)"`
}

func (c *CatalogExportCmd) Run() error {
	types := c.Types
	if len(types) == 0 {
		types = catalog.BuiltinTypes()
	}
	for _, gameType := range types {
		if err := catalog.Export(c.Dir, gameType); err != nil {
			return err
		}
		fmt.Printf("wrote %s/%s.json\n", c.Dir, gameType)
	}
	return nil
}
