// Package deck produces card instances from a catalog set by weighted
// random selection. Draws are independent and with replacement: the deck
// never runs out, so a hand slot can always be refilled.
package deck

import (
	"errors"
	rand "math/rand/v2"

	"github.com/google/uuid"

	"github.com/jnycolej/GamesApp/internal/catalog"
)

// ErrEmptyCatalog indicates a draw was attempted against a set with no
// templates.
var ErrEmptyCatalog = errors.New("deck: empty catalog")

// Instance is a freshly drawn copy of a template. InstanceID is unique per
// draw so identical templates can coexist in multiple hands; TemplateID
// records the source entry.
type Instance struct {
	InstanceID  string `json:"id"`
	TemplateID  string `json:"templateId"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Team        string `json:"team,omitempty"`
	Points      int    `json:"points"`
}

// newInstance copies the template fields and tags the copy with a fresh id.
func newInstance(t catalog.Template) Instance {
	return Instance{
		InstanceID:  uuid.NewString(),
		TemplateID:  t.ID,
		Label:       t.Label,
		Description: t.Description,
		Team:        t.Team,
		Points:      t.Points,
	}
}

// Drawer draws instances from a single catalog set. It is not safe for
// concurrent use; each room owns one drawer and serializes access to it.
type Drawer struct {
	set *catalog.Set
	rng *rand.Rand
}

// NewDrawer pairs a catalog set with a random source.
func NewDrawer(set *catalog.Set, rng *rand.Rand) *Drawer {
	return &Drawer{set: set, rng: rng}
}

// Draw selects a template with probability proportional to its effective
// weight and stamps a new instance.
func (d *Drawer) Draw() (Instance, error) {
	if d.set == nil || len(d.set.Templates) == 0 {
		return Instance{}, ErrEmptyCatalog
	}

	pick := d.rng.IntN(d.set.TotalWeight)
	for _, t := range d.set.Templates {
		pick -= t.EffectiveWeight()
		if pick < 0 {
			return newInstance(t), nil
		}
	}

	// Unreachable while TotalWeight matches the templates.
	return newInstance(d.set.Templates[len(d.set.Templates)-1]), nil
}

// DrawN draws n instances, used when dealing a full hand.
func (d *Drawer) DrawN(n int) ([]Instance, error) {
	hand := make([]Instance, 0, n)
	for i := 0; i < n; i++ {
		card, err := d.Draw()
		if err != nil {
			return nil, err
		}
		hand = append(hand, card)
	}
	return hand, nil
}
