package models

import "time"

// Meal groups food amounts. Calories is computed once when the meal is
// created and is not refreshed when its contents change.
type Meal struct {
	ID       uint64 `gorm:"primarykey" json:"id"`
	Calories int    `gorm:"not null;default:0" json:"calories"`
	UserID   uint64 `gorm:"not null;index" json:"user_id"`

	// Relations
	MealContents []FoodAmount `gorm:"foreignKey:MealID" json:"meal_contents,omitempty"`
	User         User         `gorm:"foreignKey:UserID" json:"-"`
}

// DailyMeal aggregates up to four meals of one day. Calories is computed
// once at creation.
type DailyMeal struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Date         time.Time `gorm:"type:date;not null" json:"date"`
	Calories     int       `gorm:"not null;default:0" json:"calories"`
	BreakfastID  *uint64   `gorm:"index" json:"breakfast"`
	LunchID      *uint64   `gorm:"index" json:"lunch"`
	DinnerID     *uint64   `gorm:"index" json:"dinner"`
	SnackID      *uint64   `gorm:"index" json:"snack"`
	WaterGlasses int       `gorm:"not null;default:0" json:"water_glasses"`
	UserID       uint64    `gorm:"not null;index" json:"user_id"`

	// Relations
	Breakfast *Meal `gorm:"foreignKey:BreakfastID" json:"-"`
	Lunch     *Meal `gorm:"foreignKey:LunchID" json:"-"`
	Dinner    *Meal `gorm:"foreignKey:DinnerID" json:"-"`
	Snack     *Meal `gorm:"foreignKey:SnackID" json:"-"`
	User      User  `gorm:"foreignKey:UserID" json:"-"`
}

// MealSlot names one of the four meals of a day.
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
	SlotSnack     MealSlot = "snack"
)

// MealSlots lists the slots in the order of the day.
var MealSlots = []MealSlot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}

// Slots returns the meals of the day in breakfast, lunch, dinner, snack
// order. Absent slots are nil.
func (d *DailyMeal) Slots() []*Meal {
	return []*Meal{d.Breakfast, d.Lunch, d.Dinner, d.Snack}
}

// SetSlot sets or clears the meal of a slot.
func (d *DailyMeal) SetSlot(slot MealSlot, meal *Meal) {
	var id *uint64
	if meal != nil {
		v := meal.ID
		id = &v
	}

	switch slot {
	case SlotBreakfast:
		d.BreakfastID, d.Breakfast = id, meal
	case SlotLunch:
		d.LunchID, d.Lunch = id, meal
	case SlotDinner:
		d.DinnerID, d.Dinner = id, meal
	case SlotSnack:
		d.SnackID, d.Snack = id, meal
	}
}

// All lists every model managed by migrations.
func All() []interface{} {
	return []interface{}{
		&User{},
		&SocialAccount{},
		&Measurement{},
		&UserGoal{},
		&BaseFood{},
		&Recipe{},
		&FoodAmount{},
		&Meal{},
		&DailyMeal{},
	}
}
