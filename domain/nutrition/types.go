package nutrition

// Sex is the biological sex used by the Mifflin-St Jeor equation.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ActivityLevel buckets weekly exercise volume for the TDEE multiplier.
type ActivityLevel string

const (
	Sedentary        ActivityLevel = "sedentary"         // little or no exercise
	LightlyActive    ActivityLevel = "lightly_active"    // light exercise 1-3 days/week
	ModeratelyActive ActivityLevel = "moderately_active" // moderate exercise 3-5 days/week
	VeryActive       ActivityLevel = "very_active"       // hard exercise 6-7 days/week
	ExtremelyActive  ActivityLevel = "extremely_active"  // very hard exercise & physical job
)

// Goal selects the calorie adjustment applied to TDEE.
type Goal string

const (
	WeightLoss  Goal = "weight_loss"
	Maintenance Goal = "maintenance"
	MuscleGain  Goal = "muscle_gain"
)

// Profile is the input to a recommendation calculation.
type Profile struct {
	WeightKg      float64       `json:"weight_kg"`
	HeightCm      float64       `json:"height_cm"`
	Age           int           `json:"age"`
	Sex           Sex           `json:"sex"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	Goal          Goal          `json:"goal"`
}

// Recommendations is the output of one deterministic calculation.
// Calories are kcal/day rounded to integers; gram fields carry one decimal.
type Recommendations struct {
	BMR                 int     `json:"bmr"`
	TDEE                int     `json:"tdee"`
	TargetCalories      int     `json:"target_calories"`
	ProteinMinG         float64 `json:"protein_min_g"`
	ProteinMaxG         float64 `json:"protein_max_g"`
	ProteinRecommendedG float64 `json:"protein_recommended_g"`
	CarbsMinG           float64 `json:"carbs_min_g"`
	FatMinG             float64 `json:"fat_min_g"`
}
