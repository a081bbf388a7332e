package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"memorymatch/internal/model"
)

func TestParseGameType(t *testing.T) {
	for _, gt := range model.AllGameTypes {
		parsed, err := model.ParseGameType(string(gt))
		assert.NoError(t, err)
		assert.Equal(t, gt, parsed)
	}

	_, err := model.ParseGameType("TIC_TAC_TOE")
	assert.ErrorIs(t, err, model.ErrInvalidGameType)

	_, err = model.ParseGameType("")
	assert.ErrorIs(t, err, model.ErrInvalidGameType)

	// Lookup is case-sensitive
	_, err = model.ParseGameType("card_game")
	assert.ErrorIs(t, err, model.ErrInvalidGameType)
}

func TestGameTypeDisplayName(t *testing.T) {
	assert.Equal(t, "Card matching", model.GameTypeCard.DisplayName())
	assert.Equal(t, "Sequence memory", model.GameTypeSequence.DisplayName())
	assert.Equal(t, "Chimp test", model.GameTypeChimp.DisplayName())
}
