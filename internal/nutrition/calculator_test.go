package nutrition

import (
	"testing"

	"healthlens/domain/nutrition"
	"healthlens/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBMR(t *testing.T) {
	// Mifflin-St Jeor: 10*70 + 6.25*170 - 5*30 + 5 = 1617.5, rounds to 1618.
	assert.Equal(t, 1618, CalculateBMR(70, 170, 30, nutrition.SexMale))
	// Same body, female offset -161: 1451.5 rounds to 1452.
	assert.Equal(t, 1452, CalculateBMR(70, 170, 30, nutrition.SexFemale))
}

func TestCalculateTDEE(t *testing.T) {
	bmr := 1618
	assert.Equal(t, 1942, CalculateTDEE(bmr, nutrition.Sedentary))         // *1.2
	assert.Equal(t, 2225, CalculateTDEE(bmr, nutrition.LightlyActive))     // *1.375
	assert.Equal(t, 2508, CalculateTDEE(bmr, nutrition.ModeratelyActive))  // *1.55
	assert.Equal(t, 2791, CalculateTDEE(bmr, nutrition.VeryActive))        // *1.725
	assert.Equal(t, 3074, CalculateTDEE(bmr, nutrition.ExtremelyActive))   // *1.9
}

func TestCalculateProteinNeeds(t *testing.T) {
	minG, maxG, recG := CalculateProteinNeeds(70, nutrition.Sedentary)
	assert.Equal(t, 56.0, minG)
	assert.Equal(t, 70.0, maxG)
	assert.Equal(t, 63.0, recG)

	minG, maxG, recG = CalculateProteinNeeds(70, nutrition.ModeratelyActive)
	assert.Equal(t, 84.0, minG)
	assert.Equal(t, 112.0, maxG)
	assert.Equal(t, 98.0, recG)

	minG, maxG, recG = CalculateProteinNeeds(70, nutrition.VeryActive)
	assert.Equal(t, 112.0, minG)
	assert.Equal(t, 154.0, maxG)
	assert.Equal(t, 126.0, recG)
}

func TestCalculateMacros_CarbFloor(t *testing.T) {
	// Tiny calorie target: the leftover carb allocation would drop below
	// 100 g, so the floor kicks in.
	carbs, fat := CalculateMacros(612, 40.5)
	assert.Equal(t, 100.0, carbs)
	assert.Equal(t, 13.6, fat)

	// Ample target: carbs stay above the floor.
	carbs, fat = CalculateMacros(2508, 98)
	assert.Equal(t, 403.6, carbs)
	assert.Equal(t, 55.7, fat)
}

func TestGetRecommendations(t *testing.T) {
	recs, err := GetRecommendations(nutrition.Profile{
		WeightKg:      70,
		HeightCm:      170,
		Age:           30,
		Sex:           nutrition.SexMale,
		ActivityLevel: nutrition.ModeratelyActive,
		Goal:          nutrition.WeightLoss,
	})
	require.NoError(t, err)

	assert.Equal(t, 1618, recs.BMR)
	assert.Equal(t, 2508, recs.TDEE)
	assert.Equal(t, 2008, recs.TargetCalories) // 500 kcal deficit
	assert.Equal(t, 98.0, recs.ProteinRecommendedG)
	assert.GreaterOrEqual(t, recs.CarbsMinG, 100.0)
	assert.Greater(t, recs.FatMinG, 0.0)
}

func TestGetRecommendations_GoalAdjustments(t *testing.T) {
	base := nutrition.Profile{
		WeightKg:      70,
		HeightCm:      170,
		Age:           30,
		Sex:           nutrition.SexMale,
		ActivityLevel: nutrition.ModeratelyActive,
	}

	maintain := base
	maintain.Goal = nutrition.Maintenance
	gain := base
	gain.Goal = nutrition.MuscleGain

	m, err := GetRecommendations(maintain)
	require.NoError(t, err)
	g, err := GetRecommendations(gain)
	require.NoError(t, err)

	assert.Equal(t, m.TDEE, m.TargetCalories)
	assert.Equal(t, m.TDEE+300, g.TargetCalories)

	// An empty goal defaults to maintenance.
	d, err := GetRecommendations(base)
	require.NoError(t, err)
	assert.Equal(t, m, d)
}

func TestGetRecommendations_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		profile nutrition.Profile
	}{
		{"zero weight", nutrition.Profile{HeightCm: 170, Age: 30, ActivityLevel: nutrition.Sedentary}},
		{"negative height", nutrition.Profile{WeightKg: 70, HeightCm: -1, Age: 30, ActivityLevel: nutrition.Sedentary}},
		{"zero age", nutrition.Profile{WeightKg: 70, HeightCm: 170, ActivityLevel: nutrition.Sedentary}},
		{"unknown level", nutrition.Profile{WeightKg: 70, HeightCm: 170, Age: 30, ActivityLevel: "heroic"}},
		{"unknown goal", nutrition.Profile{WeightKg: 70, HeightCm: 170, Age: 30, ActivityLevel: nutrition.Sedentary, Goal: "bulk"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GetRecommendations(tt.profile)
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		})
	}
}
