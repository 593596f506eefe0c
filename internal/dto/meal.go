package dto

import (
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"github.com/yukikurage/diet-tracker-api/internal/utils"
)

// MealDTO represents a meal in list responses (content ids)
type MealDTO struct {
	ID           uint64   `json:"id"`
	Calories     int      `json:"calories"`
	MealContents []uint64 `json:"meal_contents"`
}

// MealDetailDTO represents a meal with nested contents
type MealDetailDTO struct {
	ID           uint64          `json:"id"`
	Calories     int             `json:"calories"`
	MealContents []FoodAmountDTO `json:"meal_contents"`
}

// DailyMealDTO represents a daily meal in list responses (slot ids)
type DailyMealDTO struct {
	ID           uint64  `json:"id"`
	Date         string  `json:"date"`
	Calories     int     `json:"calories"`
	Breakfast    *uint64 `json:"breakfast"`
	Lunch        *uint64 `json:"lunch"`
	Dinner       *uint64 `json:"dinner"`
	Snack        *uint64 `json:"snack"`
	WaterGlasses int     `json:"water_glasses"`
}

// DailyMealDetailDTO represents a daily meal with nested slot meals
type DailyMealDetailDTO struct {
	ID           uint64   `json:"id"`
	Date         string   `json:"date"`
	Calories     int      `json:"calories"`
	Breakfast    *MealDTO `json:"breakfast"`
	Lunch        *MealDTO `json:"lunch"`
	Dinner       *MealDTO `json:"dinner"`
	Snack        *MealDTO `json:"snack"`
	WaterGlasses int      `json:"water_glasses"`
}

func ToMealDTO(m models.Meal) MealDTO {
	return MealDTO{
		ID:           m.ID,
		Calories:     m.Calories,
		MealContents: foodAmountIDs(m.MealContents),
	}
}

func ToMealDTOs(rows []models.Meal) []MealDTO {
	items := make([]MealDTO, len(rows))
	for i, m := range rows {
		items[i] = ToMealDTO(m)
	}
	return items
}

func ToMealDetailDTO(m models.Meal) MealDetailDTO {
	return MealDetailDTO{
		ID:           m.ID,
		Calories:     m.Calories,
		MealContents: ToFoodAmountDTOs(m.MealContents),
	}
}

func ToDailyMealDTO(d models.DailyMeal) DailyMealDTO {
	return DailyMealDTO{
		ID:           d.ID,
		Date:         utils.FormatDate(d.Date),
		Calories:     d.Calories,
		Breakfast:    d.BreakfastID,
		Lunch:        d.LunchID,
		Dinner:       d.DinnerID,
		Snack:        d.SnackID,
		WaterGlasses: d.WaterGlasses,
	}
}

func ToDailyMealDTOs(rows []models.DailyMeal) []DailyMealDTO {
	items := make([]DailyMealDTO, len(rows))
	for i, d := range rows {
		items[i] = ToDailyMealDTO(d)
	}
	return items
}

// ToDailyMealDetailDTO converts a DailyMeal with loaded slots. Absent
// slots are null.
func ToDailyMealDetailDTO(d models.DailyMeal) DailyMealDetailDTO {
	slot := func(m *models.Meal) *MealDTO {
		if m == nil {
			return nil
		}
		dto := ToMealDTO(*m)
		return &dto
	}

	return DailyMealDetailDTO{
		ID:           d.ID,
		Date:         utils.FormatDate(d.Date),
		Calories:     d.Calories,
		Breakfast:    slot(d.Breakfast),
		Lunch:        slot(d.Lunch),
		Dinner:       slot(d.Dinner),
		Snack:        slot(d.Snack),
		WaterGlasses: d.WaterGlasses,
	}
}
