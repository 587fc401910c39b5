package catalog

// Embedded template sets for the stock game types. Weights lean on the
// rarity table; a handful carry explicit weights where the rarity tiers
// were too coarse.
var builtinSets = map[string][]Template{
	"football": {
		{ID: "fb-td-pass", Label: "Touchdown Pass", Points: 6, Rarity: "rare"},
		{ID: "fb-td-rush", Label: "Rushing Touchdown", Points: 6, Rarity: "rare"},
		{ID: "fb-field-goal", Label: "Field Goal", Points: 3, Rarity: "uncommon"},
		{ID: "fb-extra-point", Label: "Extra Point", Points: 1, Rarity: "common"},
		{ID: "fb-two-point", Label: "Two-Point Conversion", Points: 2, Rarity: "rare"},
		{ID: "fb-safety", Label: "Safety", Points: 2, Weight: 1},
		{ID: "fb-first-down", Label: "First Down", Points: 1, Rarity: "common"},
		{ID: "fb-big-run", Label: "Breakaway Run", Points: 2, Rarity: "uncommon"},
		{ID: "fb-sack", Label: "Sack", Points: 1, Rarity: "common"},
		{ID: "fb-interception", Label: "Interception Thrown", Points: -2, Rarity: "uncommon"},
		{ID: "fb-fumble", Label: "Fumble", Points: -2, Rarity: "uncommon"},
		{ID: "fb-penalty", Label: "Holding Penalty", Points: -1, Rarity: "common"},
	},
	"baseball": {
		{ID: "bb-home-run", Label: "Home Run", Points: 4, Rarity: "rare"},
		{ID: "bb-grand-slam", Label: "Grand Slam", Points: 8, Weight: 1},
		{ID: "bb-triple", Label: "Triple", Points: 3, Rarity: "uncommon"},
		{ID: "bb-double", Label: "Double", Points: 2, Rarity: "uncommon"},
		{ID: "bb-single", Label: "Single", Points: 1, Rarity: "common"},
		{ID: "bb-walk", Label: "Walk", Points: 1, Rarity: "common"},
		{ID: "bb-stolen-base", Label: "Stolen Base", Points: 2, Rarity: "uncommon"},
		{ID: "bb-strikeout", Label: "Strikeout", Points: -1, Rarity: "common"},
		{ID: "bb-double-play", Label: "Grounded Into Double Play", Points: -2, Rarity: "uncommon"},
		{ID: "bb-error", Label: "Fielding Error", Points: -1, Rarity: "common"},
	},
}
