package scoring

// districtDesirability maps Prague districts to a 0-100 desirability
// score derived from 2024 rental market trends and expat reports.
// Unknown districts fall back to defaultDistrictScore.
var districtDesirability = map[string]float64{
	"Praha 1":  100,
	"Praha 2":  90,
	"Praha 6":  85,
	"Praha 7":  80,
	"Praha 5":  75,
	"Praha 3":  70,
	"Praha 4":  65,
	"Praha 8":  60,
	"Praha 9":  50,
	"Praha 10": 45,
}

const defaultDistrictScore = 50.0

// DistrictScore returns the desirability score (0-100) for a district.
func DistrictScore(district string) float64 {
	if score, ok := districtDesirability[district]; ok {
		return score
	}
	return defaultDistrictScore
}
