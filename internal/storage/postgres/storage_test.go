package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memorymatch/internal/model"
)

func TestCardListRoundTrip(t *testing.T) {
	cards := []string{"cat", "dog", "cat", "dog"}

	decoded, err := decodeCards(encodeCards(cards))
	require.NoError(t, err)
	assert.Equal(t, cards, decoded)
}

func TestCardListEmptyAndNil(t *testing.T) {
	decoded, err := decodeCards(encodeCards(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{}, decoded)

	decoded, err = decodeCards("")
	require.NoError(t, err)
	assert.Equal(t, []string{}, decoded)
}

func TestProgressAssignmentsOnlySuppliedFields(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	score := 42
	assignments := progressAssignments(model.ProgressUpdate{Score: &score}, now)

	assert.Equal(t, map[string]any{
		"updated_at": now,
		"score":      42,
	}, assignments)
}

func TestProgressAssignmentsAllFields(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	level := 2
	score := 10
	assignments := progressAssignments(model.ProgressUpdate{
		CurrentLevel: &level,
		Score:        &score,
		CardImages:   []string{"a"},
		FlippedCards: []string{},
		MatchedCards: []string{"a", "b"},
	}, now)

	assert.Len(t, assignments, 6)
	assert.Equal(t, 2, assignments["current_level"])
	assert.Equal(t, `["a"]`, assignments["card_images"])
	assert.Equal(t, `[]`, assignments["flipped_cards"])
	assert.Equal(t, `["a","b"]`, assignments["matched_cards"])
}

func TestProgressRecordRoundTrip(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	original := model.NewGameProgress("player-1", model.GameTypeCard, now)
	original.CardImages = []string{"x", "y"}

	rec := progressRecord(original)
	restored, err := progressModel(&rec)
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}
