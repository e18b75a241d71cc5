package repository

import (
	"github.com/taskheroes/task-heroes-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List retrieves all users
	List() ([]models.User, error)

	// Count returns the total number of users
	Count() (int64, error)

	// AdminExists reports whether an admin other than excludeID exists
	AdminExists(excludeID uint64) (bool, error)

	// Save persists changes to an existing user
	Save(user *models.User) error

	// Delete removes a user
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	AssignedUserID *uint64
	Completed      *bool
	Daily          *bool
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks matching the filter
	List(filter TaskFilter) ([]models.Task, error)

	// Save persists changes to an existing task
	Save(task *models.Task) error

	// SaveAll persists changes to a batch of tasks
	SaveAll(tasks []models.Task) error

	// Delete removes a task
	Delete(id uint64) error
}

// RewardFilter holds filtering options for listing rewards
type RewardFilter struct {
	AssignedUserID *uint64
	Redeemed       *bool
}

// RewardRepository defines the interface for reward data access
type RewardRepository interface {
	// Create creates a new reward
	Create(reward *models.Reward) error

	// FindByID finds a reward by ID
	FindByID(id uint64) (*models.Reward, error)

	// List retrieves rewards matching the filter
	List(filter RewardFilter) ([]models.Reward, error)

	// Save persists changes to an existing reward
	Save(reward *models.Reward) error

	// Delete removes a reward
	Delete(id uint64) error
}
