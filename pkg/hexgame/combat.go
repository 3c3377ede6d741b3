package hexgame

// AttackKind selects which attack profile is used.
type AttackKind string

const (
	AttackMelee  AttackKind = "melee"
	AttackRanged AttackKind = "ranged"
)

// CombatResult reports one resolved attack.
type CombatResult struct {
	AttackerID string     `json:"attackerId"`
	TargetID   string     `json:"targetId"`
	Kind       AttackKind `json:"kind"`
	Roll       int        `json:"roll"`
	Defense    int        `json:"defense"`
	Hit        bool       `json:"hit"`
	Damage     int        `json:"damage"`
	Killed     bool       `json:"killed"`
}

// ResolveAttack validates the attack against the current valid-target
// set, rolls the die, applies damage, and removes destroyed pieces.
// A unit kill credits the attacker's owner with 1 neutral essence.
func ResolveAttack(st *MatchState, attackerID, targetID string, kind AttackKind, roller Roller) (CombatResult, error) {
	attacker, ok := st.Units[attackerID]
	if !ok {
		return CombatResult{}, ruleErr(CodeNoSuchInstance, "unknown unit %s", attackerID)
	}

	var targets []TargetRef
	var err error
	if kind == AttackRanged {
		targets, err = ValidRangedTargets(st, attackerID)
	} else {
		targets, err = ValidMeleeTargets(st, attackerID)
	}
	if err != nil {
		return CombatResult{}, err
	}
	target, ok := pickTarget(targets, targetID)
	if !ok {
		if attacker.DevelopmentRest {
			return CombatResult{}, ruleErr(CodeDevelopmentRest, "unit %s is in development rest", attackerID)
		}
		if attacker.HasAttacked {
			return CombatResult{}, ruleErr(CodeAlreadyAttacked, "unit %s has already attacked", attackerID)
		}
		return CombatResult{}, ruleErr(CodeInvalidTarget, "%s is not a valid %s target", targetID, kind)
	}

	card := MustLookup(attacker.CardID)
	damage := card.Unit.Ranged
	if kind == AttackMelee {
		damage = card.Unit.Melee + attacker.MeleeBonus
	}

	res := CombatResult{
		AttackerID: attackerID,
		TargetID:   targetID,
		Kind:       kind,
		Damage:     damage,
	}

	switch target.Kind {
	case "unit":
		tu := st.Units[targetID]
		tcard := MustLookup(tu.CardID)
		res.Defense = tcard.Unit.Defense + tu.DefenseBonus
		res.Roll = roller.Roll()
		res.Hit = res.Roll > res.Defense
		if res.Hit {
			tu.HP -= damage
			if tu.HP <= 0 {
				st.RemoveUnit(targetID)
				GainNeutral(st, attacker.Owner, 1)
				res.Killed = true
			}
		} else {
			res.Damage = 0
		}
	case "structure":
		// Structures have no defense; a hit is automatic.
		res.Roll = 10
		res.Hit = true
		ts := st.Structures[targetID]
		ts.HP -= damage
		if ts.HP <= 0 {
			st.RemoveStructure(targetID)
			res.Killed = true
		}
	case "empire":
		res.Roll = 10
		res.Hit = true
		seat, _ := ParseEmpireToken(targetID)
		st.Empires[seat].HP -= damage
	}

	attacker.HasAttacked = true
	return res, nil
}

func pickTarget(targets []TargetRef, targetID string) (TargetRef, bool) {
	for _, t := range targets {
		if t.ID == targetID {
			return t, true
		}
	}
	return TargetRef{}, false
}
