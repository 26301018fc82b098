package domain

// RiskTier maps an inclusive score range to a level name and display color
type RiskTier struct {
	Level string
	Color string
	Min   int
	Max   int
}

// Contains reports whether score falls inside the tier's inclusive range
func (t RiskTier) Contains(score int) bool {
	return t.Min <= score && score <= t.Max
}

// UnknownRisk is returned for scores outside every tier
var UnknownRisk = RiskTier{Level: "unknown", Color: "#999999", Min: -1, Max: -1}

// riskTiers is ordered and non-overlapping; ClassifyRisk takes the first match.
var riskTiers = []RiskTier{
	{Level: "Safe", Color: "#4CAF50", Min: 0, Max: 30},
	{Level: "Low risk", Color: "#FFC107", Min: 31, Max: 50},
	{Level: "Medium risk", Color: "#FF9800", Min: 51, Max: 70},
	{Level: "High risk", Color: "#F44336", Min: 71, Max: 90},
	{Level: "Extreme risk", Color: "#9C27B0", Min: 91, Max: 100},
}

// RiskTiers returns a copy of the tier table in classification order
func RiskTiers() []RiskTier {
	tiers := make([]RiskTier, len(riskTiers))
	copy(tiers, riskTiers)
	return tiers
}

// ClassifyRisk returns the tier containing score, or UnknownRisk
func ClassifyRisk(score int) RiskTier {
	for _, tier := range riskTiers {
		if tier.Contains(score) {
			return tier
		}
	}
	return UnknownRisk
}
