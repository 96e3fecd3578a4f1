package models

const (
	kgPerLb  = 0.453592
	lbsPerKg = 2.20462
)

// LbsToKg converts pounds to kilograms.
func LbsToKg(lbs float64) float64 {
	return lbs * kgPerLb
}

// KgToLbs converts kilograms to pounds.
func KgToLbs(kg float64) float64 {
	return kg * lbsPerKg
}
