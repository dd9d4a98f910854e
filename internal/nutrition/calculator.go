package nutrition

import (
	"math"

	"healthlens/domain/nutrition"
	"healthlens/internal/errors"
)

// Activity level multipliers for TDEE
var activityMultipliers = map[nutrition.ActivityLevel]float64{
	nutrition.Sedentary:        1.2,
	nutrition.LightlyActive:    1.375,
	nutrition.ModeratelyActive: 1.55,
	nutrition.VeryActive:       1.725,
	nutrition.ExtremelyActive:  1.9,
}

// Goal-based calorie adjustments
var goalAdjustments = map[nutrition.Goal]int{
	nutrition.WeightLoss:  -500, // 500 kcal deficit for ~0.5 kg/week loss
	nutrition.Maintenance: 0,
	nutrition.MuscleGain:  300, // 300 kcal surplus for lean gains
}

// carbsFloorG is the minimum daily carbohydrate allocation (brain glucose
// requirement); the macro arithmetic never goes below it.
const carbsFloorG = 100.0

// CalculateBMR computes Basal Metabolic Rate with the Mifflin-St Jeor
// equation: 10*weight + 6.25*height - 5*age, +5 for males and -161 for
// females. Returns kcal/day rounded to the nearest integer.
func CalculateBMR(weightKg, heightCm float64, age int, sex nutrition.Sex) int {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == nutrition.SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	return int(math.Round(bmr))
}

// CalculateTDEE computes Total Daily Energy Expenditure as BMR times the
// activity multiplier, rounded to the nearest integer.
func CalculateTDEE(bmr int, level nutrition.ActivityLevel) int {
	return int(math.Round(float64(bmr) * activityMultipliers[level]))
}

// CalculateProteinNeeds returns (min, max, recommended) grams/day by
// activity tier: 0.8-1.0 g/kg sedentary, 1.2-1.6 light/moderate,
// 1.6-2.2 very/extremely active. Rounded to one decimal.
func CalculateProteinNeeds(weightKg float64, level nutrition.ActivityLevel) (minG, maxG, recG float64) {
	switch level {
	case nutrition.Sedentary:
		minG, maxG, recG = 0.8*weightKg, 1.0*weightKg, 0.9*weightKg
	case nutrition.LightlyActive, nutrition.ModeratelyActive:
		minG, maxG, recG = 1.2*weightKg, 1.6*weightKg, 1.4*weightKg
	default: // very or extremely active
		minG, maxG, recG = 1.6*weightKg, 2.2*weightKg, 1.8*weightKg
	}
	return round1(minG), round1(maxG), round1(recG)
}

// CalculateMacros allocates the remaining macros after protein: fat floor
// is 20% of target calories at 9 kcal/g, carbs get what is left at
// 4 kcal/g but never less than the 100 g floor.
func CalculateMacros(targetCalories int, proteinG float64) (carbsMinG, fatMinG float64) {
	proteinKcal := proteinG * 4

	minFatKcal := float64(targetCalories) * 0.20
	fatMinG = minFatKcal / 9

	carbKcal := float64(targetCalories) - proteinKcal - minFatKcal
	carbsMinG = math.Max(carbKcal/4, carbsFloorG)

	return round1(carbsMinG), round1(fatMinG)
}

// GetRecommendations runs the full deterministic chain: BMR, TDEE, goal
// adjustment, protein tier, and remaining macros. Intermediate values stay
// unrounded; rounding happens only at the output boundary of each step's
// contract.
func GetRecommendations(p nutrition.Profile) (nutrition.Recommendations, error) {
	if p.WeightKg <= 0 || p.HeightCm <= 0 || p.Age <= 0 {
		return nutrition.Recommendations{}, errors.InvalidInput("weight, height and age must be positive")
	}
	if _, ok := activityMultipliers[p.ActivityLevel]; !ok {
		return nutrition.Recommendations{}, errors.InvalidInput("unknown activity level: " + string(p.ActivityLevel))
	}
	goal := p.Goal
	if goal == "" {
		goal = nutrition.Maintenance
	}
	adjustment, ok := goalAdjustments[goal]
	if !ok {
		return nutrition.Recommendations{}, errors.InvalidInput("unknown goal: " + string(goal))
	}

	bmr := CalculateBMR(p.WeightKg, p.HeightCm, p.Age, p.Sex)
	tdee := CalculateTDEE(bmr, p.ActivityLevel)
	targetCalories := tdee + adjustment

	proteinMin, proteinMax, proteinRec := CalculateProteinNeeds(p.WeightKg, p.ActivityLevel)
	carbsMin, fatMin := CalculateMacros(targetCalories, proteinRec)

	return nutrition.Recommendations{
		BMR:                 bmr,
		TDEE:                tdee,
		TargetCalories:      targetCalories,
		ProteinMinG:         proteinMin,
		ProteinMaxG:         proteinMax,
		ProteinRecommendedG: proteinRec,
		CarbsMinG:           carbsMin,
		FatMinG:             fatMin,
	}, nil
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
