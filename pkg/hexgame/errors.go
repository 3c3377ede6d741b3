package hexgame

import "fmt"

// Rule violation codes sent back to the offending seat.
const (
	CodeUnknownCard         = "unknown_card"
	CodeNotInHand           = "not_in_hand"
	CodeInsufficientEssence = "insufficient_essence"
	CodeInvalidTile         = "invalid_tile"
	CodeTileOccupied        = "tile_occupied"
	CodeInvalidTarget       = "invalid_target"
	CodeNoSuchInstance      = "no_such_instance"
	CodeNotOwner            = "not_owner"
	CodeDevelopmentRest     = "development_rest"
	CodeAlreadyMoved        = "already_moved"
	CodeAlreadyAttacked     = "already_attacked"
	CodeDeckEmpty           = "deck_empty"
	CodeInvalidSpawn        = "invalid_spawn"
	CodeInvalidPlacement    = "invalid_placement"
	CodeNoTilesLeft         = "no_tiles_left"
	CodeAbilityUnavailable  = "ability_unavailable"
	CodeBadTiming           = "bad_timing"
)

// RuleError describes why a command violated the rules. It is the only
// error shape that crosses back to a client.
type RuleError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func ruleErr(code, format string, args ...any) *RuleError {
	return &RuleError{Code: code, Message: fmt.Sprintf(format, args...)}
}
