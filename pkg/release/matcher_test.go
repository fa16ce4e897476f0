package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchConfidenceString(t *testing.T) {
	tests := []struct {
		conf     MatchConfidence
		expected string
	}{
		{ConfidenceHigh, "high"},
		{ConfidenceMedium, "medium"},
		{ConfidenceLow, "low"},
		{ConfidenceNone, "none"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.conf.String())
		})
	}
}

func TestMatchTitle_ExactVariant(t *testing.T) {
	result := MatchTitle("Shingeki no Kyojin", []string{"Attack on Titan", "Shingeki no Kyojin", "進撃の巨人"})

	assert.Equal(t, "Shingeki no Kyojin", result.Title)
	assert.Equal(t, ConfidenceHigh, result.Confidence)
	assert.InDelta(t, 1.0, result.Score, 0.0001)
}

func TestMatchTitle_SeasonSuffix(t *testing.T) {
	result := MatchTitle("Shingeki no Kyojin Season 2", []string{"Shingeki no Kyojin 2"})

	assert.Equal(t, ConfidenceHigh, result.Confidence)
}

func TestMatchTitle_MissingSequelNumber(t *testing.T) {
	result := MatchTitle("Mushoku Tensei 2", []string{"Mushoku Tensei"})

	assert.NotEqual(t, ConfidenceHigh, result.Confidence)
	assert.Less(t, result.Score, 0.95)
}

func TestMatchTitle_Unrelated(t *testing.T) {
	result := MatchTitle("Naruto", []string{"One Piece"})

	assert.Equal(t, ConfidenceNone, result.Confidence)
	assert.Empty(t, result.Title)
}

func TestMatchTitle_NoCandidates(t *testing.T) {
	result := MatchTitle("Naruto", nil)
	assert.Equal(t, ConfidenceNone, result.Confidence)

	result = MatchTitle("Naruto", []string{"", ""})
	assert.Equal(t, ConfidenceNone, result.Confidence)
}
