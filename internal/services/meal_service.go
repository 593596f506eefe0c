package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/diet-tracker-api/internal/logger"
	"github.com/yukikurage/diet-tracker-api/internal/metrics"
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"github.com/yukikurage/diet-tracker-api/internal/repository"
	"github.com/yukikurage/diet-tracker-api/internal/utils"
	"go.uber.org/zap"
)

var (
	ErrMealNotFound      = errors.New("meal not found")
	ErrDailyMealNotFound = errors.New("daily meal not found")
)

// MealService manages meals and daily meals. Calories are computed when a
// record is created and never refreshed afterwards.
type MealService struct {
	meals   repository.MealRepository
	daily   repository.DailyMealRepository
	amounts repository.FoodAmountRepository
	today   func() time.Time
}

// NewMealService creates a new MealService.
func NewMealService(meals repository.MealRepository, daily repository.DailyMealRepository, amounts repository.FoodAmountRepository) *MealService {
	return &MealService{
		meals:   meals,
		daily:   daily,
		amounts: amounts,
		today:   utils.Today,
	}
}

func (s *MealService) ListMeals(actor Actor, in ListInput) ([]models.Meal, int64, error) {
	rows, total, err := s.meals.List(actor.filter(in))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list meals: %w", err)
	}
	return rows, total, nil
}

// GetMeal loads a meal. detail loads the contents with their foods.
func (s *MealService) GetMeal(actor Actor, id uint64, detail bool) (*models.Meal, error) {
	return findOwned(actor, ErrMealNotFound,
		func() (*models.Meal, error) { return s.meals.FindByID(id, detail) },
		func(m *models.Meal) uint64 { return m.UserID },
	)
}

// CreateMeal creates a meal from the given food amounts and stores the sum
// of their calories.
func (s *MealService) CreateMeal(actor Actor, contentIDs []uint64) (*models.Meal, error) {
	ids := uniqueUint64(contentIDs)
	contents, err := s.ownedContents(actor, ids)
	if err != nil {
		return nil, err
	}

	meal := &models.Meal{
		Calories: ComputeMealCalories(contents),
		UserID:   actor.UserID,
	}
	if err := s.meals.Create(meal, ids); err != nil {
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}

	logger.Log.Debug("meal_created",
		zap.Uint64("meal_id", meal.ID),
		zap.Int("contents", len(ids)),
		zap.Int("calories", meal.Calories),
	)
	metrics.RecordsCreated.WithLabelValues("meal").Inc()
	return s.GetMeal(actor, meal.ID, true)
}

// UpdateMeal replaces the contents of a meal. The stored calories are kept
// as computed at creation.
func (s *MealService) UpdateMeal(actor Actor, id uint64, contentIDs []uint64) (*models.Meal, error) {
	if _, err := s.GetMeal(actor, id, false); err != nil {
		return nil, err
	}

	if contentIDs != nil {
		ids := uniqueUint64(contentIDs)
		if _, err := s.ownedContents(actor, ids); err != nil {
			return nil, err
		}
		if err := s.meals.ReplaceContents(id, ids); err != nil {
			return nil, fmt.Errorf("failed to update meal: %w", err)
		}
	}

	return s.GetMeal(actor, id, true)
}

// DeleteMeal removes a meal, its contents and the daily meals using it.
func (s *MealService) DeleteMeal(actor Actor, id uint64) error {
	if _, err := s.GetMeal(actor, id, false); err != nil {
		return err
	}
	if err := s.meals.Delete(id); err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	return nil
}

// ownedContents loads the food amounts with their foods and checks each
// one belongs to the actor.
func (s *MealService) ownedContents(actor Actor, ids []uint64) ([]models.FoodAmount, error) {
	contents, err := s.amounts.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load meal contents: %w", err)
	}

	found := make(map[uint64]bool, len(contents))
	for _, fa := range contents {
		if actor.CanAccess(fa.UserID) {
			found[fa.ID] = true
		}
	}
	for _, id := range ids {
		if !found[id] {
			fields := fieldErrors{}
			fields.missingPK("meal_contents", id)
			return nil, fields.err()
		}
	}
	return contents, nil
}

// DailyMealInput carries daily meal fields. Only slots present in Slots
// are changed; a nil id clears the slot.
type DailyMealInput struct {
	Date         *time.Time
	WaterGlasses *int
	Slots        map[models.MealSlot]*uint64
}

func (s *MealService) ListDailyMeals(actor Actor, in ListInput) ([]models.DailyMeal, int64, error) {
	rows, total, err := s.daily.List(actor.filter(in))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list daily meals: %w", err)
	}
	return rows, total, nil
}

// GetDailyMeal loads a daily meal. detail loads the slot meals.
func (s *MealService) GetDailyMeal(actor Actor, id uint64, detail bool) (*models.DailyMeal, error) {
	return findOwned(actor, ErrDailyMealNotFound,
		func() (*models.DailyMeal, error) { return s.daily.FindByID(id, detail) },
		func(d *models.DailyMeal) uint64 { return d.UserID },
	)
}

// CreateDailyMeal creates a daily meal and stores the sum of the calories
// of its present slots. The date defaults to today.
func (s *MealService) CreateDailyMeal(actor Actor, in DailyMealInput) (*models.DailyMeal, error) {
	d := &models.DailyMeal{
		Date:   s.today(),
		UserID: actor.UserID,
	}
	if err := s.applyDailyMeal(actor, d, in); err != nil {
		return nil, err
	}

	d.Calories = ComputeDailyCalories(d.Slots()...)
	if err := s.daily.Create(d); err != nil {
		return nil, fmt.Errorf("failed to create daily meal: %w", err)
	}

	metrics.RecordsCreated.WithLabelValues("daily_meal").Inc()
	return s.GetDailyMeal(actor, d.ID, true)
}

// UpdateDailyMeal changes the date, water glasses or slots of a daily meal.
// The stored calories are kept as computed at creation.
func (s *MealService) UpdateDailyMeal(actor Actor, id uint64, in DailyMealInput) (*models.DailyMeal, error) {
	d, err := s.GetDailyMeal(actor, id, false)
	if err != nil {
		return nil, err
	}
	if err := s.applyDailyMeal(actor, d, in); err != nil {
		return nil, err
	}

	if err := s.daily.Update(d); err != nil {
		return nil, fmt.Errorf("failed to update daily meal: %w", err)
	}
	return s.GetDailyMeal(actor, id, true)
}

func (s *MealService) DeleteDailyMeal(actor Actor, id uint64) error {
	if _, err := s.GetDailyMeal(actor, id, false); err != nil {
		return err
	}
	if err := s.daily.Delete(id); err != nil {
		return fmt.Errorf("failed to delete daily meal: %w", err)
	}
	return nil
}

// applyDailyMeal validates the input and copies it onto d. Slot meals are
// loaded onto d so that calories can be computed from them.
func (s *MealService) applyDailyMeal(actor Actor, d *models.DailyMeal, in DailyMealInput) error {
	fields := fieldErrors{}
	fields.smallInt("water_glasses", in.WaterGlasses, 0)

	var ids []uint64
	for _, id := range in.Slots {
		if id != nil {
			ids = append(ids, *id)
		}
	}
	meals, err := s.meals.FindByIDs(uniqueUint64(ids))
	if err != nil {
		return fmt.Errorf("failed to load meals: %w", err)
	}
	byID := make(map[uint64]*models.Meal, len(meals))
	for i := range meals {
		if actor.CanAccess(meals[i].UserID) {
			byID[meals[i].ID] = &meals[i]
		}
	}

	for _, slot := range models.MealSlots {
		id, ok := in.Slots[slot]
		if !ok {
			continue
		}
		if id == nil {
			d.SetSlot(slot, nil)
			continue
		}
		meal, found := byID[*id]
		if !found {
			fields.missingPK(string(slot), *id)
			continue
		}
		d.SetSlot(slot, meal)
	}

	if err := fields.err(); err != nil {
		return err
	}

	if in.Date != nil {
		d.Date = utils.TruncateDate(*in.Date)
	}
	if in.WaterGlasses != nil {
		d.WaterGlasses = *in.WaterGlasses
	}
	return nil
}
