package utils

import "math"

func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// Rate folds a new vote into the stored rating: the mean of the two, one decimal.
func Rate(current, vote float64) float64 {
	return Round((current+vote)/2, 1)
}
