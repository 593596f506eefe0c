package models

// BaseFood is a catalog entry with a calorie count per serving. Recipes
// share this table and are flagged with IsRecipe.
type BaseFood struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Calories    int    `gorm:"not null" json:"calories"`
	ServingSize int    `gorm:"not null" json:"serving_size"`
	Image       string `gorm:"type:varchar(512)" json:"image"`
	IsRecipe    bool   `gorm:"not null" json:"is_recipe"`
	UserID      uint64 `gorm:"not null;index" json:"user_id"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Recipe extends a BaseFood row with instructions and ingredients. Its
// primary key is the id of the BaseFood it extends.
type Recipe struct {
	BaseFoodID   uint64 `gorm:"primarykey;autoIncrement:false" json:"id"`
	Instructions string `gorm:"type:text" json:"instructions"`

	// Relations
	BaseFood    BaseFood     `gorm:"foreignKey:BaseFoodID" json:"-"`
	Ingredients []FoodAmount `gorm:"foreignKey:RecipeID;references:BaseFoodID" json:"ingredients,omitempty"`
}

// FoodAmount is a quantity of a BaseFood, optionally attached to a
// recipe's ingredients or a meal's contents.
type FoodAmount struct {
	ID       uint64  `gorm:"primarykey" json:"id"`
	FoodID   uint64  `gorm:"not null;index" json:"food"`
	Amount   int     `gorm:"not null;default:1" json:"amount"`
	RecipeID *uint64 `gorm:"index" json:"recipe_id"`
	MealID   *uint64 `gorm:"index" json:"meal_id"`
	UserID   uint64  `gorm:"not null;index" json:"user_id"`

	// Relations
	Food BaseFood `gorm:"foreignKey:FoodID" json:"-"`
	User User     `gorm:"foreignKey:UserID" json:"-"`
}

// Calories returns the calorie contribution of this amount. Food must be
// loaded.
func (fa FoodAmount) Calories() int {
	return fa.Amount * fa.Food.Calories
}
