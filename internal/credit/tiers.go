package credit

type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierPoor      Tier = "poor"
)

// tier is one row of the score lookup table, evaluated top-down.
type tier struct {
	name        Tier
	minScore    int
	baseRate    float64
	highDTIRate float64
	approved    func(dti float64) bool
	tips        []string
}

var tiers = []tier{
	{
		name:        TierExcellent,
		minScore:    740,
		baseRate:    3.5,
		highDTIRate: 4.0,
		approved:    func(float64) bool { return true },
		tips: []string{
			"Excellent credit! Keep your credit utilization below 30% to maintain your score.",
			"Continue making on-time payments and avoid opening unnecessary new accounts.",
		},
	},
	{
		name:        TierGood,
		minScore:    670,
		baseRate:    4.5,
		highDTIRate: 5.0,
		approved:    func(float64) bool { return true },
		tips: []string{
			"Make every payment on time to move into the excellent credit range.",
			"Reduce outstanding debt to lower your utilization and qualify for better rates.",
		},
	},
	{
		name:        TierFair,
		minScore:    580,
		baseRate:    6.5,
		highDTIRate: 7.5,
		approved:    func(dti float64) bool { return dti < maxFairDTI },
		tips: []string{
			"Pay down existing debt to bring your debt-to-income ratio below 36%.",
			"Set up automatic payments so no bill is paid late.",
			"Consider a secured credit card to build a positive payment history.",
		},
	},
	{
		name:        TierPoor,
		minScore:    0,
		baseRate:    10.0,
		highDTIRate: 10.0,
		approved:    func(float64) bool { return false },
		tips: []string{
			"Focus on consistent, on-time payments for at least 12 months.",
			"Contact your creditors about a payment plan for any past-due accounts.",
			"A non-profit credit counseling service can help you build a recovery plan.",
		},
	},
}

func lookupTier(score int) tier {
	for _, t := range tiers {
		if score >= t.minScore {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

func (t tier) rate(dti float64) float64 {
	if dti >= highDTIThreshold {
		return t.highDTIRate
	}
	return t.baseRate
}
