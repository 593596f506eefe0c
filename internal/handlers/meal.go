package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/diet-tracker-api/internal/dto"
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"github.com/yukikurage/diet-tracker-api/internal/services"
)

// MealHandler serves meals and daily meals.
type MealHandler struct {
	mealService *services.MealService
}

func NewMealHandler(mealService *services.MealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

// mealRequest ignores calories; they are computed by the server.
type mealRequest struct {
	MealContents []uint64 `json:"meal_contents"`
}

type dailyMealRequest struct {
	Date         *dto.Date      `json:"date"`
	Breakfast    dto.NullableID `json:"breakfast"`
	Lunch        dto.NullableID `json:"lunch"`
	Dinner       dto.NullableID `json:"dinner"`
	Snack        dto.NullableID `json:"snack"`
	WaterGlasses *int           `json:"water_glasses"`
}

func (r dailyMealRequest) input() services.DailyMealInput {
	slots := map[models.MealSlot]*uint64{}
	for slot, v := range map[models.MealSlot]dto.NullableID{
		models.SlotBreakfast: r.Breakfast,
		models.SlotLunch:     r.Lunch,
		models.SlotDinner:    r.Dinner,
		models.SlotSnack:     r.Snack,
	} {
		if v.Set {
			slots[slot] = v.ID
		}
	}

	return services.DailyMealInput{
		Date:         dto.DatePtr(r.Date),
		WaterGlasses: r.WaterGlasses,
		Slots:        slots,
	}
}

func (h *MealHandler) ListMeals(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	in, ok := listInput(c)
	if !ok {
		return
	}

	rows, total, err := h.mealService.ListMeals(actor, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondList(c, total, dto.ToMealDTOs(rows))
}

func (h *MealHandler) GetMeal(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	meal, err := h.mealService.GetMeal(actor, id, true)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMealDetailDTO(*meal))
}

func (h *MealHandler) CreateMeal(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req mealRequest
	if !bindJSON(c, &req) {
		return
	}
	if !requireFields(c, true, map[string]bool{"meal_contents": req.MealContents != nil}) {
		return
	}

	meal, err := h.mealService.CreateMeal(actor, req.MealContents)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMealDTO(*meal))
}

// UpdateMeal replaces the contents of a meal. Calories stay as computed at
// creation.
func (h *MealHandler) UpdateMeal(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req mealRequest
	if !bindJSON(c, &req) {
		return
	}
	if !requireFields(c, isFullUpdate(c), map[string]bool{"meal_contents": req.MealContents != nil}) {
		return
	}

	meal, err := h.mealService.UpdateMeal(actor, id, req.MealContents)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMealDTO(*meal))
}

func (h *MealHandler) DeleteMeal(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.mealService.DeleteMeal(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *MealHandler) ListDailyMeals(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	in, ok := listInput(c)
	if !ok {
		return
	}

	rows, total, err := h.mealService.ListDailyMeals(actor, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondList(c, total, dto.ToDailyMealDTOs(rows))
}

func (h *MealHandler) GetDailyMeal(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	d, err := h.mealService.GetDailyMeal(actor, id, true)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyMealDetailDTO(*d))
}

func (h *MealHandler) CreateDailyMeal(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req dailyMealRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.mealService.CreateDailyMeal(actor, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDailyMealDTO(*d))
}

// UpdateDailyMeal changes the date, water glasses or slots. Slots missing
// from the body are kept; an explicit null clears a slot.
func (h *MealHandler) UpdateDailyMeal(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dailyMealRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.mealService.UpdateDailyMeal(actor, id, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyMealDTO(*d))
}

func (h *MealHandler) DeleteDailyMeal(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.mealService.DeleteDailyMeal(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
