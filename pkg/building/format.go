package building

import (
	"fmt"
	"math"
)

// FormatFeetInches renders a length in feet as feet and whole inches,
// e.g. 1.5 -> 1' 6". Negative values keep their sign on the feet part.
func FormatFeetInches(feet float64) string {
	sign := ""
	if feet < 0 {
		sign = "-"
		feet = -feet
	}
	whole := math.Floor(feet)
	inches := math.Round((feet - whole) * 12)
	if inches >= 12 {
		whole++
		inches -= 12
	}
	return fmt.Sprintf("%s%d' %d\"", sign, int(whole), int(inches))
}
