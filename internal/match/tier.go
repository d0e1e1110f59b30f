package match

// Tier is the coarse fit label derived from a score.
type Tier string

const (
	TierExcellent Tier = "Excellent fit"
	TierGood      Tier = "Good match"
	TierFair      Tier = "Fair match"
	TierWeak      Tier = "Weak match"
)

// Explain maps a 0-100 score to its tier. Lower bounds are exclusive:
// 80 is a Good match, 80.01 is an Excellent fit.
func Explain(score float64) Tier {
	switch {
	case score > 80:
		return TierExcellent
	case score > 60:
		return TierGood
	case score > 40:
		return TierFair
	default:
		return TierWeak
	}
}

// Message is the decorated line shown in the UI.
func (t Tier) Message() string {
	switch t {
	case TierExcellent:
		return "✅ Excellent fit!"
	case TierGood:
		return "👍 Good match."
	case TierFair:
		return "⚠️ Fair match."
	default:
		return "❌ Weak match."
	}
}
