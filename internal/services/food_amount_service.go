package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/diet-tracker-api/internal/constants"
	"github.com/yukikurage/diet-tracker-api/internal/metrics"
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"github.com/yukikurage/diet-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var ErrFoodAmountNotFound = errors.New("food amount not found")

// FoodAmountService manages quantities of base foods.
type FoodAmountService struct {
	amounts repository.FoodAmountRepository
	foods   repository.FoodRepository
}

// NewFoodAmountService creates a new FoodAmountService.
func NewFoodAmountService(amounts repository.FoodAmountRepository, foods repository.FoodRepository) *FoodAmountService {
	return &FoodAmountService{
		amounts: amounts,
		foods:   foods,
	}
}

// FoodAmountInput carries food amount fields. Nil fields are left
// untouched on update.
type FoodAmountInput struct {
	Food   *uint64
	Amount *int
}

func (s *FoodAmountService) validate(in FoodAmountInput, create bool) (*models.BaseFood, error) {
	fields := fieldErrors{}
	fields.smallInt("amount", in.Amount, 1)

	var food *models.BaseFood
	switch {
	case in.Food != nil:
		found, err := s.foods.FindFoodByID(*in.Food)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			fields.missingPK("food", *in.Food)
		case err != nil:
			return nil, fmt.Errorf("failed to load food: %w", err)
		default:
			food = found
		}
	case create:
		fields["food"] = msgRequired
	}

	return food, fields.err()
}

func (s *FoodAmountService) List(actor Actor, in ListInput) ([]models.FoodAmount, int64, error) {
	rows, total, err := s.amounts.List(actor.filter(in))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list food amounts: %w", err)
	}
	return rows, total, nil
}

func (s *FoodAmountService) Get(actor Actor, id uint64) (*models.FoodAmount, error) {
	return findOwned(actor, ErrFoodAmountNotFound,
		func() (*models.FoodAmount, error) { return s.amounts.FindByID(id) },
		func(fa *models.FoodAmount) uint64 { return fa.UserID },
	)
}

// Create records an amount of any existing base food for the actor. The
// amount defaults to one.
func (s *FoodAmountService) Create(actor Actor, in FoodAmountInput) (*models.FoodAmount, error) {
	food, err := s.validate(in, true)
	if err != nil {
		return nil, err
	}

	fa := &models.FoodAmount{
		FoodID: food.ID,
		Amount: intOr(in.Amount, constants.DefaultAmount),
		UserID: actor.UserID,
	}
	if err := s.amounts.Create(fa); err != nil {
		return nil, fmt.Errorf("failed to create food amount: %w", err)
	}
	fa.Food = *food
	metrics.RecordsCreated.WithLabelValues("food_amount").Inc()
	return fa, nil
}

func (s *FoodAmountService) Update(actor Actor, id uint64, in FoodAmountInput) (*models.FoodAmount, error) {
	fa, err := s.Get(actor, id)
	if err != nil {
		return nil, err
	}

	food, err := s.validate(in, false)
	if err != nil {
		return nil, err
	}
	if food != nil {
		fa.FoodID = food.ID
		fa.Food = *food
	}
	if in.Amount != nil {
		fa.Amount = *in.Amount
	}

	if err := s.amounts.Update(fa); err != nil {
		return nil, fmt.Errorf("failed to update food amount: %w", err)
	}
	return fa, nil
}

func (s *FoodAmountService) Delete(actor Actor, id uint64) error {
	if _, err := s.Get(actor, id); err != nil {
		return err
	}
	if err := s.amounts.Delete(id); err != nil {
		return fmt.Errorf("failed to delete food amount: %w", err)
	}
	return nil
}
