package services

import "github.com/yukikurage/diet-tracker-api/internal/models"

// ComputeMealCalories sums amount times food calories over the given food
// amounts. Food must be loaded on every entry.
func ComputeMealCalories(contents []models.FoodAmount) int {
	total := 0
	for _, fa := range contents {
		total += fa.Calories()
	}
	return total
}

// ComputeDailyCalories sums the calories of the present meal slots. A nil
// slot counts as zero.
func ComputeDailyCalories(slots ...*models.Meal) int {
	total := 0
	for _, m := range slots {
		if m != nil {
			total += m.Calories
		}
	}
	return total
}
