package repository

import (
	"github.com/taskheroes/task-heroes-api/internal/models"
	"gorm.io/gorm"
)

// GormRewardRepository is a GORM implementation of RewardRepository
type GormRewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository creates a new RewardRepository
func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &GormRewardRepository{db: db}
}

// Create creates a new reward
func (r *GormRewardRepository) Create(reward *models.Reward) error {
	return r.db.Create(reward).Error
}

// FindByID finds a reward by ID
func (r *GormRewardRepository) FindByID(id uint64) (*models.Reward, error) {
	var reward models.Reward
	if err := r.db.First(&reward, id).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

// List retrieves rewards matching the filter
func (r *GormRewardRepository) List(filter RewardFilter) ([]models.Reward, error) {
	query := r.db.Order("id")
	if filter.AssignedUserID != nil {
		query = query.Where("assigned_user_id = ?", *filter.AssignedUserID)
	}
	if filter.Redeemed != nil {
		query = query.Where("redeemed = ?", *filter.Redeemed)
	}

	var rewards []models.Reward
	if err := query.Find(&rewards).Error; err != nil {
		return nil, err
	}
	return rewards, nil
}

// Save persists changes to an existing reward
func (r *GormRewardRepository) Save(reward *models.Reward) error {
	return r.db.Save(reward).Error
}

// Delete removes a reward
func (r *GormRewardRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Reward{}, id).Error
}
