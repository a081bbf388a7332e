package model

// GameType identifies one of the fixed game variants. The set is closed:
// new variants are added here, not at runtime.
type GameType string

const (
	GameTypeCard     GameType = "CARD_GAME"
	GameTypeSequence GameType = "SEQUENCE_GAME"
	GameTypeChimp    GameType = "CHIMP_TEST"
)

// AllGameTypes lists every valid game type.
var AllGameTypes = []GameType{GameTypeCard, GameTypeSequence, GameTypeChimp}

// Valid reports whether t is one of the known game types.
func (t GameType) Valid() bool {
	switch t {
	case GameTypeCard, GameTypeSequence, GameTypeChimp:
		return true
	}
	return false
}

// DisplayName returns a human-readable name for the game type.
func (t GameType) DisplayName() string {
	switch t {
	case GameTypeCard:
		return "Card matching"
	case GameTypeSequence:
		return "Sequence memory"
	case GameTypeChimp:
		return "Chimp test"
	}
	return string(t)
}

// ParseGameType converts a wire string into a GameType.
func ParseGameType(s string) (GameType, error) {
	t := GameType(s)
	if !t.Valid() {
		return "", ErrInvalidGameType
	}
	return t, nil
}
