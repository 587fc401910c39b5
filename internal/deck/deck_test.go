package deck

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jnycolej/GamesApp/internal/catalog"
	"github.com/jnycolej/GamesApp/internal/randutil"
)

func TestDrawEmptyCatalog(t *testing.T) {
	d := NewDrawer(catalog.NewSet("football", nil), randutil.New(1))
	_, err := d.Draw()
	require.ErrorIs(t, err, ErrEmptyCatalog)

	noSet := &Drawer{rng: randutil.New(1)}
	_, err = noSet.Draw()
	require.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestDrawStampsFreshInstanceIDs(t *testing.T) {
	set := catalog.NewSet("football", []catalog.Template{
		{ID: "only", Label: "Only Card", Points: 2},
	})
	d := NewDrawer(set, randutil.New(7))

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		card, err := d.Draw()
		require.NoError(t, err)
		require.Equal(t, "only", card.TemplateID)
		require.Equal(t, "Only Card", card.Label)
		require.Equal(t, 2, card.Points)
		require.False(t, seen[card.InstanceID], "instance id reused: %s", card.InstanceID)
		seen[card.InstanceID] = true
	}
}

func TestDrawIsWithReplacement(t *testing.T) {
	set := catalog.NewSet("football", []catalog.Template{
		{ID: "a"}, {ID: "b"},
	})
	d := NewDrawer(set, randutil.New(3))

	// Far more draws than templates; a finite deck would exhaust.
	for i := 0; i < 1000; i++ {
		if _, err := d.Draw(); err != nil {
			t.Fatalf("draw %d failed: %v", i, err)
		}
	}
}

func TestDrawWeightedFrequency(t *testing.T) {
	set := catalog.NewSet("football", []catalog.Template{
		{ID: "common", Rarity: "common"},     // weight 5
		{ID: "uncommon", Rarity: "uncommon"}, // weight 3
		{ID: "rare", Rarity: "rare"},         // weight 1
	})
	d := NewDrawer(set, randutil.New(42))

	const n = 90_000
	counts := make(map[string]int)
	for i := 0; i < n; i++ {
		card, err := d.Draw()
		require.NoError(t, err)
		counts[card.TemplateID]++
	}

	expected := map[string]float64{
		"common":   5.0 / 9.0,
		"uncommon": 3.0 / 9.0,
		"rare":     1.0 / 9.0,
	}
	for id, want := range expected {
		got := float64(counts[id]) / n
		if math.Abs(got-want) > 0.01 {
			t.Errorf("template %s: frequency %.4f, want %.4f ± 0.01", id, got, want)
		}
	}
}

func TestDrawN(t *testing.T) {
	set := catalog.NewSet("baseball", []catalog.Template{
		{ID: "a", Points: 1}, {ID: "b", Points: 2},
	})
	d := NewDrawer(set, randutil.New(9))

	hand, err := d.DrawN(5)
	require.NoError(t, err)
	require.Len(t, hand, 5)

	_, err = NewDrawer(catalog.NewSet("x", nil), randutil.New(9)).DrawN(5)
	require.ErrorIs(t, err, ErrEmptyCatalog)
}
