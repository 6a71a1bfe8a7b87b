package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTextCheck returns a canned moderation outcome.
type stubTextCheck struct {
	name    string
	flagged bool
	err     error
}

func (s stubTextCheck) Name() string { return s.name }

func (s stubTextCheck) Flagged(ctx context.Context, text string) (bool, error) {
	return s.flagged, s.err
}

// TestCheckProhibitedTerms matches terms case-insensitively, including
// inside larger words.
func TestCheckProhibitedTerms(t *testing.T) {
	m := NewContentModerator(nil)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"clean message", "Glow all summer long", nil},
		{"exact term", "Results guaranteed or your money back", []string{"guaranteed"}},
		{"uppercase term", "A MIRACLE in a bottle", []string{"miracle"}},
		{"term inside word", "It CURES everything", []string{"cure"}},
		{"multiple terms", "A guaranteed miracle", []string{"guaranteed", "miracle"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.CheckProhibitedTerms(tt.text))
		})
	}
}

// TestNewContentModerator_CustomTerms replaces the default list rather
// than extending it.
func TestNewContentModerator_CustomTerms(t *testing.T) {
	m := NewContentModerator([]string{"free"})

	assert.Equal(t, []string{"free"}, m.CheckProhibitedTerms("Free shipping today"))
	assert.Empty(t, m.CheckProhibitedTerms("Results guaranteed"))
}

// TestModerateText_PluggableCheck combines the keyword filter with
// configured checks.
func TestModerateText_PluggableCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("flagging check marks result unsafe", func(t *testing.T) {
		m := NewContentModerator(nil, stubTextCheck{name: "strict", flagged: true})
		result := m.ModerateText(ctx, "Glow all summer long")
		assert.True(t, result.Flagged)
		assert.False(t, result.IsSafe())
		assert.Empty(t, result.ProhibitedTerms)
	})

	t.Run("failing check is skipped", func(t *testing.T) {
		m := NewContentModerator(nil, stubTextCheck{name: "broken", err: errors.New("api down")})
		result := m.ModerateText(ctx, "Glow all summer long")
		assert.True(t, result.IsSafe())
	})

	t.Run("default stub never flags", func(t *testing.T) {
		m := NewContentModerator(nil)
		result := m.ModerateText(ctx, "Glow all summer long")
		assert.True(t, result.IsSafe())
	})
}

// TestModerateCampaignMessage_Strict turns an unsafe message into a
// validation error only in strict mode.
func TestModerateCampaignMessage_Strict(t *testing.T) {
	ctx := context.Background()
	m := NewContentModerator(nil)

	result, err := m.ModerateCampaignMessage(ctx, "Results guaranteed!", true)
	require.Error(t, err)
	assert.False(t, result.IsSafe())

	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Contains(t, validation.Error(), "guaranteed")

	result, err = m.ModerateCampaignMessage(ctx, "Results guaranteed!", false)
	require.NoError(t, err)
	assert.False(t, result.IsSafe())
	assert.Equal(t, []string{"guaranteed"}, result.ProhibitedTerms)
}
