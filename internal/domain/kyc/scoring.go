package kyc

// Credit score bounds for post-verification adjustments.
const (
	ScoreCeiling = 850
	ScoreFloor   = 300
)

// EligibilityCutoff: a CIBIL tier above this makes the customer loan-eligible.
const EligibilityCutoff = 650

// ScoreResult is the outcome of the sub-score → CIBIL tier mapping.
type ScoreResult struct {
	TotalScore int
	CibilScore int
	Eligible   bool
}

// ScoreFromSubscores maps the four verification sub-scores to a CIBIL tier.
// This is the single source of truth for the mapping; submission-time
// estimates and verification-time scoring must both go through it.
func ScoreFromSubscores(employment, income, emiHistory, experience int) ScoreResult {
	total := employment + income + emiHistory + experience
	var cibil int
	switch {
	case total > 80:
		cibil = 730
	case total >= 60:
		cibil = 600
	default:
		cibil = 400
	}
	return ScoreResult{
		TotalScore: total,
		CibilScore: cibil,
		Eligible:   cibil > EligibilityCutoff,
	}
}

// EstimateSubscores derives indicative sub-scores from raw submission fields.
// Weights: employment 25, income 25, emi history 25, experience 25.
func EstimateSubscores(employmentStatus string, monthlyIncome float64, existingEMIMonths, yearsOfExperience int) (employment, income, emiHistory, experience int) {
	employment = 10
	if employmentStatus == "employed" {
		employment = 25
	}
	switch {
	case monthlyIncome >= 80000:
		income = 25
	case monthlyIncome >= 50000:
		income = 20
	case monthlyIncome >= 30000:
		income = 15
	default:
		income = 10
	}
	switch {
	case existingEMIMonths == 0:
		emiHistory = 25
	case existingEMIMonths <= 12:
		emiHistory = 15
	default:
		emiHistory = 10
	}
	switch {
	case yearsOfExperience >= 5:
		experience = 25
	case yearsOfExperience >= 2:
		experience = 15
	default:
		experience = 10
	}
	return
}

// Clamp bounds v to [floor, ceiling].
func Clamp(v, floor, ceiling int) int {
	if v < floor {
		return floor
	}
	if v > ceiling {
		return ceiling
	}
	return v
}
