package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierFromLevel(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  SecurityTier
	}{
		{"level 1", 1, TierGeneral},
		{"level 2", 2, TierInternal},
		{"level 3", 3, TierConfidential},
		{"level 4", 4, TierSovereign},
		{"zero defaults to general", 0, TierGeneral},
		{"negative defaults to general", -2, TierGeneral},
		{"out of range defaults to general", 9, TierGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TierFromLevel(tt.level))
		})
	}
}

func TestSecurityTier_Ordering(t *testing.T) {
	assert.Less(t, TierGeneral, TierInternal)
	assert.Less(t, TierInternal, TierConfidential)
	assert.Less(t, TierConfidential, TierSovereign)
}

func TestSecurityTier_Level(t *testing.T) {
	assert.Equal(t, 4, TierSovereign.Level())
	// Invalid tiers persist as general.
	assert.Equal(t, 1, SecurityTier(0).Level())
	assert.Equal(t, 1, SecurityTier(99).Level())
}

func TestSecurityTier_Strings(t *testing.T) {
	assert.Equal(t, "general", TierGeneral.String())
	assert.Equal(t, "sovereign", TierSovereign.String())
	assert.Equal(t, "Confidential", TierConfidential.Label())
	assert.NotEmpty(t, TierInternal.Description())
}

func TestAllTiers(t *testing.T) {
	tiers := AllTiers()
	assert.Len(t, tiers, 4)
	assert.Equal(t, TierGeneral, tiers[0])
	assert.Equal(t, TierSovereign, tiers[3])
}
