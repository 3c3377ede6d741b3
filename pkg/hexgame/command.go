package hexgame

import (
	"encoding/json"
	"fmt"
)

// CommandType discriminates client commands.
type CommandType string

const (
	CmdPlaceTile           CommandType = "place_tile"
	CmdEndTilePlacement    CommandType = "end_tile_placement"
	CmdPlaceEmpire         CommandType = "place_empire"
	CmdDrawCard            CommandType = "draw_card"
	CmdMoveUnit            CommandType = "move_unit"
	CmdRequestValidMoves   CommandType = "request_valid_moves"
	CmdMeleeAttack         CommandType = "melee_attack"
	CmdRangedAttack        CommandType = "ranged_attack"
	CmdRequestValidTargets CommandType = "request_valid_targets"
	CmdPlayUnit            CommandType = "play_unit"
	CmdPlayBlitz           CommandType = "play_blitz"
	CmdPlayStructure       CommandType = "play_structure"
	CmdPlaceBuilder        CommandType = "place_builder"
	CmdUseTerraform        CommandType = "use_terraform"
	CmdReactBlitz          CommandType = "react_blitz"
	CmdPassReaction        CommandType = "pass_reaction"
	CmdEndTurn             CommandType = "end_turn"
	CmdConcede             CommandType = "concede"
	CmdChat                CommandType = "chat"
)

// Command is a decoded client command. Type selects which fields are
// meaningful; Seat is stamped by the transport, never trusted from the
// wire.
type Command struct {
	Type CommandType `json:"type"`
	Seat Seat        `json:"-"`

	TileID         string  `json:"tileId,omitempty"`
	TileType       Element `json:"tileType,omitempty"`
	Deck           string  `json:"deck,omitempty"` // "unit" or "blitz"
	UnitID         string  `json:"unitId,omitempty"`
	TargetTileID   string  `json:"targetTileId,omitempty"`
	AttackerUnitID string  `json:"attackerUnitId,omitempty"`
	TargetID       string  `json:"targetId,omitempty"`
	AttackType     string  `json:"attackType,omitempty"` // "melee" or "ranged"
	CardID         string  `json:"cardId,omitempty"`
	SpawnTileID    string  `json:"spawnTileId,omitempty"`
	Text           string  `json:"text,omitempty"`
}

// Mutating reports whether the command may change match state.
// Info requests and chat are read-only.
func (c *Command) Mutating() bool {
	switch c.Type {
	case CmdRequestValidMoves, CmdRequestValidTargets, CmdChat:
		return false
	}
	return true
}

type commandEnvelope struct {
	Type    CommandType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// DecodeCommand parses a wire message into a Command. Unknown types
// and malformed payloads are protocol errors; callers drop them.
func DecodeCommand(data []byte) (Command, error) {
	var env commandEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Command{}, fmt.Errorf("decode envelope: %w", err)
	}
	if !knownCommand(env.Type) {
		return Command{}, fmt.Errorf("unknown command type %q", env.Type)
	}
	cmd := Command{Type: env.Type}
	if len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, &cmd); err != nil {
			return Command{}, fmt.Errorf("decode %s payload: %w", env.Type, err)
		}
		cmd.Type = env.Type
	}
	return cmd, nil
}

func knownCommand(t CommandType) bool {
	switch t {
	case CmdPlaceTile, CmdEndTilePlacement, CmdPlaceEmpire, CmdDrawCard,
		CmdMoveUnit, CmdRequestValidMoves, CmdMeleeAttack, CmdRangedAttack,
		CmdRequestValidTargets, CmdPlayUnit, CmdPlayBlitz, CmdPlayStructure,
		CmdPlaceBuilder, CmdUseTerraform, CmdReactBlitz, CmdPassReaction,
		CmdEndTurn, CmdConcede, CmdChat:
		return true
	}
	return false
}
