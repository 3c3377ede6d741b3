package hexgame

// Card definitions. The catalog is process-wide and read-only after
// init; matches reference entries by id only.

var cardDefs = []Card{
	// Neutral units
	{ID: "u_scout", Name: "Ash Scout", Kind: KindUnit, Cost: 1, Element: Neutral,
		Unit: &UnitCard{HP: 2, Defense: 6, Melee: 1, Speed: 3, Size: SizeTiny,
			AbilityID: AbilityStealth, Ability: "Slips past watchers; cannot be targeted by ranged attacks."}},
	{ID: "u_militia", Name: "Border Militia", Kind: KindUnit, Cost: 2, Element: Neutral,
		Unit: &UnitCard{HP: 4, Defense: 4, Melee: 2, Speed: 2, Size: SizeNormal}},
	{ID: "u_pikeman", Name: "Pike Line", Kind: KindUnit, Cost: 3, Element: Neutral,
		Unit: &UnitCard{HP: 5, Defense: 5, Melee: 3, Speed: 1, Size: SizeNormal}},
	{ID: "u_terraformer", Name: "Terraformer", Kind: KindUnit, Cost: 3, Element: Neutral,
		Unit: &UnitCard{HP: 3, Defense: 3, Melee: 1, Speed: 2, Size: SizeNormal,
			AbilityID: AbilityTerraform, Ability: "Once per game: strip the land it stands on back to neutral."}},
	{ID: "u_golem", Name: "Basalt Golem", Kind: KindUnit, Cost: 5, Element: Neutral,
		Unit: &UnitCard{HP: 8, Defense: 6, Melee: 4, Speed: 1, Size: SizeLarge}},

	// Fire units
	{ID: "u_emberling", Name: "Emberling", Kind: KindUnit, Cost: 1, Element: Fire,
		Unit: &UnitCard{HP: 2, Defense: 3, Melee: 2, Speed: 2, Size: SizeTiny}},
	{ID: "u_flame_archer", Name: "Flame Archer", Kind: KindUnit, Cost: 3, Element: Fire,
		Unit: &UnitCard{HP: 3, Defense: 4, Melee: 1, Ranged: 2, RangedRange: 3, Speed: 2, Size: SizeNormal}},
	{ID: "u_cinder_knight", Name: "Cinder Knight", Kind: KindUnit, Cost: 4, Element: Fire,
		Unit: &UnitCard{HP: 6, Defense: 5, Melee: 4, Speed: 2, Size: SizeNormal}},
	{ID: "u_magma_colossus", Name: "Magma Colossus", Kind: KindUnit, Cost: 7, Element: Fire,
		Unit: &UnitCard{HP: 12, Defense: 7, Melee: 5, Speed: 1, Size: SizeXL}},

	// Water units
	{ID: "u_tideling", Name: "Tideling", Kind: KindUnit, Cost: 1, Element: Water,
		Unit: &UnitCard{HP: 3, Defense: 4, Melee: 1, Speed: 2, Size: SizeTiny}},
	{ID: "u_wave_caller", Name: "Wave Caller", Kind: KindUnit, Cost: 3, Element: Water,
		Unit: &UnitCard{HP: 4, Defense: 4, Melee: 1, Ranged: 2, RangedRange: 2, Speed: 2, Size: SizeNormal}},
	{ID: "u_depth_guard", Name: "Depth Guard", Kind: KindUnit, Cost: 4, Element: Water,
		Unit: &UnitCard{HP: 7, Defense: 6, Melee: 3, Speed: 1, Size: SizeNormal}},
	{ID: "u_leviathan", Name: "Leviathan", Kind: KindUnit, Cost: 7, Element: Water,
		Unit: &UnitCard{HP: 11, Defense: 6, Melee: 5, Speed: 2, Size: SizeXL}},

	// Blitz cards
	{ID: "b_firebolt", Name: "Firebolt", Kind: KindBlitz, Cost: 2, Element: Fire,
		Blitz: &BlitzCard{Timing: TimingInstant, BehaviorID: BehaviorFirebolt}},
	{ID: "b_tidal_surge", Name: "Tidal Surge", Kind: KindBlitz, Cost: 2, Element: Water,
		Blitz: &BlitzCard{Timing: TimingInstant, BehaviorID: BehaviorTidalSurge}},
	{ID: "b_mend", Name: "Mending Rain", Kind: KindBlitz, Cost: 2, Element: Water,
		Blitz: &BlitzCard{Timing: TimingSlow, BehaviorID: BehaviorMend}},
	{ID: "b_hurricane", Name: "Hurricane", Kind: KindBlitz, Cost: 5, Element: Water,
		Blitz: &BlitzCard{Timing: TimingSlow, BehaviorID: BehaviorHurricane}},
	{ID: "b_scorch", Name: "Scorch", Kind: KindBlitz, Cost: 3, Element: Fire,
		Blitz: &BlitzCard{Timing: TimingSlow, BehaviorID: BehaviorScorch}},
	{ID: "b_quicken", Name: "Quicken", Kind: KindBlitz, Cost: 1, Element: Neutral,
		Blitz: &BlitzCard{Timing: TimingInstant, BehaviorID: BehaviorQuicken}},
	{ID: "b_stoneskin", Name: "Stoneskin", Kind: KindBlitz, Cost: 1, Element: Neutral,
		Blitz: &BlitzCard{Timing: TimingReaction, BehaviorID: BehaviorStoneskin}},
	{ID: "b_scry", Name: "Scrying Wind", Kind: KindBlitz, Cost: 1, Element: Neutral,
		Blitz: &BlitzCard{Timing: TimingInstant, BehaviorID: BehaviorScry}},
	{ID: "b_essence_surge", Name: "Essence Surge", Kind: KindBlitz, Cost: 0, Element: Neutral,
		Blitz: &BlitzCard{Timing: TimingSlow, BehaviorID: BehaviorEssenceSurge}},
	{ID: "b_negate", Name: "Null Ward", Kind: KindBlitz, Cost: 2, Element: Neutral,
		Blitz: &BlitzCard{Timing: TimingReaction, BehaviorID: BehaviorNegate}},

	// Structures
	{ID: "s_watchtower", Name: "Watchtower", Kind: KindStructure, Cost: 3, Element: Neutral,
		Structure: &StructureCard{EffectID: EffectRevealAdjacent, Placement: Neutral}},
	{ID: "s_flame_shrine", Name: "Flame Shrine", Kind: KindStructure, Cost: 4, Element: Fire,
		Structure: &StructureCard{Placement: Fire}},
	{ID: "s_tide_shrine", Name: "Tide Shrine", Kind: KindStructure, Cost: 4, Element: Water,
		Structure: &StructureCard{Placement: Water}},
}

// Default deck lists. Deck building is an external concern; every
// match deals both seats the same stock decks, shuffled per match.

var defaultUnitDeck = []string{
	"u_scout", "u_scout", "u_militia", "u_militia", "u_pikeman", "u_pikeman",
	"u_terraformer", "u_golem",
	"u_emberling", "u_emberling", "u_flame_archer", "u_cinder_knight", "u_magma_colossus",
	"u_tideling", "u_tideling", "u_wave_caller", "u_depth_guard", "u_leviathan",
}

var defaultBlitzDeck = []string{
	"b_firebolt", "b_firebolt", "b_tidal_surge", "b_tidal_surge",
	"b_mend", "b_mend", "b_hurricane", "b_scorch",
	"b_quicken", "b_quicken", "b_stoneskin", "b_stoneskin",
	"b_scry", "b_scry", "b_essence_surge", "b_negate", "b_negate",
}

var defaultExtraDeck = []string{
	"s_watchtower", "s_watchtower", "s_flame_shrine", "s_tide_shrine",
}
