package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/diet-tracker-api/internal/database"
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"github.com/yukikurage/diet-tracker-api/internal/utils"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating a user fails inside the social signup transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateSocialAccount is returned when linking the provider identity fails.
	ErrCreateSocialAccount = errors.New("user repository: create social account failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateWithSocialAccount creates a user and its provider identity atomically.
func (r *GormUserRepository) CreateWithSocialAccount(user *models.User, account *models.SocialAccount) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		account.UserID = user.ID
		if err := tx.Create(account).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateSocialAccount, err)
		}

		return nil
	})
}

// CreateSocialAccount links an existing user to a provider identity
func (r *GormUserRepository) CreateSocialAccount(account *models.SocialAccount) error {
	return r.db.Create(account).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindSocialAccount finds a provider identity
func (r *GormUserRepository) FindSocialAccount(provider, uid string) (*models.SocialAccount, error) {
	var account models.SocialAccount
	if err := r.db.Where("provider = ? AND uid = ?", provider, uid).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// List lists all users ordered by id descending
func (r *GormUserRepository) List(pagination *utils.PaginationParams) ([]models.User, int64, error) {
	var users []models.User
	query := r.db.Model(&models.User{}).Order("id DESC")

	var total int64
	if pagination != nil {
		if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
			return nil, 0, err
		}
		query = query.Scopes(database.Paginate(*pagination))
	}

	if err := query.Find(&users).Error; err != nil {
		return nil, 0, err
	}
	if pagination == nil {
		total = int64(len(users))
	}
	return users, total, nil
}

// Update saves a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdateLastLogin stamps the last login time
func (r *GormUserRepository) UpdateLastLogin(id uint64, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("last_login", at).Error
}

// Delete removes a user together with everything the user owns. Meals of
// the user are removed with the daily meals referencing them, whoever
// owns those.
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		foods := tx.Model(&models.BaseFood{}).Select("id").Where("user_id = ?", id)
		meals := tx.Model(&models.Meal{}).Select("id").Where("user_id = ?", id)

		if err := tx.Where("user_id = ?", id).
			Or("breakfast_id IN (?) OR lunch_id IN (?) OR dinner_id IN (?) OR snack_id IN (?)", meals, meals, meals, meals).
			Delete(&models.DailyMeal{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).
			Or("food_id IN (?) OR recipe_id IN (?) OR meal_id IN (?)", foods, foods, meals).
			Delete(&models.FoodAmount{}).Error; err != nil {
			return err
		}

		if err := tx.Where("base_food_id IN (?)", foods).Delete(&models.Recipe{}).Error; err != nil {
			return err
		}

		for _, model := range []interface{}{
			&models.BaseFood{},
			&models.Meal{},
			&models.Measurement{},
			&models.UserGoal{},
			&models.SocialAccount{},
		} {
			if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.User{}, id).Error
	})
}
