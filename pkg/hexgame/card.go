package hexgame

// Element is both a tile type and an essence bucket.
type Element string

const (
	Neutral Element = "neutral"
	Fire    Element = "fire"
	Water   Element = "water"
)

// CardKind discriminates the three card shapes.
type CardKind string

const (
	KindUnit      CardKind = "unit"
	KindBlitz     CardKind = "blitz"
	KindStructure CardKind = "structure"
)

// Timing controls when a blitz card may be played.
type Timing string

const (
	TimingSlow     Timing = "slow"
	TimingReaction Timing = "reaction"
	TimingInstant  Timing = "instant"
)

// Size classes for units. Tiny units may share a tile with another unit.
type Size string

const (
	SizeTiny   Size = "tiny"
	SizeNormal Size = "normal"
	SizeLarge  Size = "large"
	SizeXL     Size = "xl"
)

// Ability ids the engine implements. The Ability text on a card is
// informational; only the id has rules meaning.
const (
	AbilityNone      = ""
	AbilityTerraform = "terraform"
	AbilityStealth   = "stealth"
)

// Blitz behavior ids.
const (
	BehaviorFirebolt     = "firebolt"
	BehaviorTidalSurge   = "tidal_surge"
	BehaviorMend         = "mend"
	BehaviorHurricane    = "hurricane"
	BehaviorScorch       = "scorch"
	BehaviorQuicken      = "quicken"
	BehaviorStoneskin    = "stoneskin"
	BehaviorScry         = "scry"
	BehaviorEssenceSurge = "essence_surge"
	BehaviorNegate       = "negate"
)

// Structure effect ids.
const (
	EffectNone           = ""
	EffectRevealAdjacent = "reveal_adjacent"
)

// UnitCard holds the unit-specific stats.
type UnitCard struct {
	HP          int    `json:"hp"`
	Defense     int    `json:"defense"` // die roll must exceed this to hit
	Melee       int    `json:"melee"`
	Ranged      int    `json:"ranged"`
	RangedRange int    `json:"rangedRange"` // 0 = no ranged attack
	Speed       int    `json:"speed"`
	Size        Size   `json:"size"`
	AbilityID   string `json:"abilityId,omitempty"`
	Ability     string `json:"ability,omitempty"` // free-form descriptor
}

// BlitzCard holds the blitz-specific fields.
type BlitzCard struct {
	Timing     Timing `json:"timing"`
	BehaviorID string `json:"behaviorId"`
}

// StructureCard holds the structure-specific fields.
type StructureCard struct {
	EffectID  string  `json:"effectId,omitempty"`
	Placement Element `json:"placement"` // tile element required for placement
}

// Card is the catalog entry: a discriminated union over the three
// shapes. Exactly one of Unit/Blitz/Structure is non-nil, matching Kind.
type Card struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Kind    CardKind `json:"kind"`
	Cost    int      `json:"cost"`
	Element Element  `json:"element"`

	Unit      *UnitCard      `json:"unit,omitempty"`
	Blitz     *BlitzCard     `json:"blitz,omitempty"`
	Structure *StructureCard `json:"structure,omitempty"`
}

var catalog = buildCatalog()

func buildCatalog() map[string]Card {
	m := make(map[string]Card, len(cardDefs))
	for _, c := range cardDefs {
		if _, dup := m[c.ID]; dup {
			panic("duplicate card id: " + c.ID)
		}
		m[c.ID] = c
	}
	return m
}

// Lookup returns the catalog entry for a card id.
func Lookup(id string) (Card, bool) {
	c, ok := catalog[id]
	return c, ok
}

// MustLookup returns the catalog entry or panics. For use on card ids
// that have already been validated against the catalog.
func MustLookup(id string) Card {
	c, ok := catalog[id]
	if !ok {
		panic("unknown card id: " + id)
	}
	return c
}

// CatalogSize returns the number of registered cards.
func CatalogSize() int {
	return len(catalog)
}
