package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.NotEmpty(t, theme.Primary)
	assert.NotEmpty(t, theme.TierGeneral)
	assert.NotEmpty(t, theme.TierSovereign)
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme().Primary, s.Theme().Primary)
}

func TestTierStyles_DistinctPerTier(t *testing.T) {
	s := DefaultStyles()

	colours := make(map[string]bool)
	for _, tier := range domain.AllTiers() {
		style := s.Tier(tier)
		colours[string(style.GetForeground().(lipgloss.Color))] = true
	}

	assert.Len(t, colours, len(domain.AllTiers()))
}

func TestTierStyles_UnknownTierFallsBackToGeneral(t *testing.T) {
	s := DefaultStyles()

	unknown := s.Tier(domain.SecurityTier(0))
	general := s.Tier(domain.TierGeneral)

	assert.Equal(t, general.GetForeground(), unknown.GetForeground())
}
