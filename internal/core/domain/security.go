package domain

// SecurityTier is the four-level document classification ordinal.
// Tiers are ordered: general < internal < confidential < sovereign.
// The zero value is invalid; use TierFromLevel to map backend levels.
type SecurityTier int

const (
	// TierGeneral is the lowest tier, for unrestricted documents.
	TierGeneral SecurityTier = iota + 1
	// TierInternal is for documents restricted to the tenant.
	TierInternal
	// TierConfidential is for sensitive documents with limited audience.
	TierConfidential
	// TierSovereign is the highest tier, for documents that must never
	// leave sovereign-controlled infrastructure.
	TierSovereign
)

// AllTiers returns the tiers in ascending order.
func AllTiers() []SecurityTier {
	return []SecurityTier{TierGeneral, TierInternal, TierConfidential, TierSovereign}
}

// TierFromLevel maps a numeric persistence level (1-4) to a tier.
// Zero or out-of-range levels default to TierGeneral.
func TierFromLevel(level int) SecurityTier {
	if level < int(TierGeneral) || level > int(TierSovereign) {
		return TierGeneral
	}
	return SecurityTier(level)
}

// Level returns the numeric level (1-4) used for backend persistence.
func (t SecurityTier) Level() int {
	return int(TierFromLevel(int(t)))
}

// String returns the tier slug.
func (t SecurityTier) String() string {
	switch t {
	case TierInternal:
		return "internal"
	case TierConfidential:
		return "confidential"
	case TierSovereign:
		return "sovereign"
	default:
		return "general"
	}
}

// Label returns the human-readable display label.
func (t SecurityTier) Label() string {
	switch t {
	case TierInternal:
		return "Internal"
	case TierConfidential:
		return "Confidential"
	case TierSovereign:
		return "Sovereign"
	default:
		return "General"
	}
}

// Description explains the tier for display in pickers and detail panels.
func (t SecurityTier) Description() string {
	switch t {
	case TierInternal:
		return "Visible to all members of this vault"
	case TierConfidential:
		return "Restricted to explicitly granted roles"
	case TierSovereign:
		return "Never leaves sovereign-controlled infrastructure"
	default:
		return "No access restrictions"
	}
}
