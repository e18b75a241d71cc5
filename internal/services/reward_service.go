package services

import (
	"errors"
	"fmt"

	"github.com/taskheroes/task-heroes-api/internal/models"
	"github.com/taskheroes/task-heroes-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrRewardNotFound     = errors.New("Recompensa no encontrada")
	ErrInsufficientPoints = errors.New("Puntos insuficientes")
)

// RewardService handles reward business logic: CRUD and the one-way
// redemption that debits points.
type RewardService struct {
	rewardRepo repository.RewardRepository
	userRepo   repository.UserRepository
}

// NewRewardService creates a new RewardService.
func NewRewardService(rewardRepo repository.RewardRepository, userRepo repository.UserRepository) *RewardService {
	return &RewardService{
		rewardRepo: rewardRepo,
		userRepo:   userRepo,
	}
}

// ListRewards returns every reward for the admin, or the caller's own.
func (s *RewardService) ListRewards(userID uint64, isAdmin bool) ([]models.Reward, error) {
	filter := repository.RewardFilter{}
	if !isAdmin {
		filter.AssignedUserID = &userID
	}
	return s.rewardRepo.List(filter)
}

// ListRewardsByRedemption returns rewards filtered by redemption state,
// scoped like ListRewards.
func (s *RewardService) ListRewardsByRedemption(userID uint64, isAdmin, redeemed bool) ([]models.Reward, error) {
	filter := repository.RewardFilter{Redeemed: boolPtr(redeemed)}
	if !isAdmin {
		filter.AssignedUserID = &userID
	}
	return s.rewardRepo.List(filter)
}

// GetReward retrieves a reward by ID.
func (s *RewardService) GetReward(id uint64) (*models.Reward, error) {
	reward, err := s.rewardRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRewardNotFound
		}
		return nil, fmt.Errorf("failed to find reward: %w", err)
	}
	return reward, nil
}

// CreateRewardInput represents the required information to create a reward.
type CreateRewardInput struct {
	Title          string
	Description    string
	Price          int
	AssignedUserID *uint64
}

// CreateReward creates a reward, optionally assigned to an existing user.
func (s *RewardService) CreateReward(input CreateRewardInput) (*models.Reward, error) {
	if input.AssignedUserID != nil {
		if _, err := s.userRepo.FindByID(*input.AssignedUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssignedUserNotFound
			}
			return nil, fmt.Errorf("failed to find assigned user: %w", err)
		}
	}

	reward := &models.Reward{
		Title:          input.Title,
		Description:    input.Description,
		Price:          input.Price,
		AssignedUserID: input.AssignedUserID,
	}
	if err := s.rewardRepo.Create(reward); err != nil {
		return nil, fmt.Errorf("failed to create reward: %w", err)
	}
	return reward, nil
}

// RedeemReward redeems a reward exactly once, debiting the price from
// the assigned user. Redeeming an already-redeemed reward is a no-op
// returning the current state. The assigned user must hold at least the
// price in points. Returns the reward and the user's updated total.
func (s *RewardService) RedeemReward(id uint64) (*models.Reward, int, error) {
	reward, err := s.GetReward(id)
	if err != nil {
		return nil, 0, err
	}

	points := 0
	if reward.Redeemed {
		if reward.AssignedUserID != nil {
			user, err := s.userRepo.FindByID(*reward.AssignedUserID)
			if err != nil {
				return nil, 0, fmt.Errorf("failed to find assigned user: %w", err)
			}
			points = user.Points
		}
		return reward, points, nil
	}

	if reward.AssignedUserID != nil {
		user, err := s.userRepo.FindByID(*reward.AssignedUserID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to find assigned user: %w", err)
		}
		if user.Points < reward.Price {
			return nil, 0, ErrInsufficientPoints
		}
		user.SubtractPoints(reward.Price)
		if err := s.userRepo.Save(user); err != nil {
			return nil, 0, fmt.Errorf("failed to save user points: %w", err)
		}
		points = user.Points
	}

	reward.Redeemed = true
	if err := s.rewardRepo.Save(reward); err != nil {
		return nil, 0, fmt.Errorf("failed to save reward: %w", err)
	}

	return reward, points, nil
}

// DeleteReward removes a reward.
func (s *RewardService) DeleteReward(id uint64) error {
	if _, err := s.GetReward(id); err != nil {
		return err
	}
	return s.rewardRepo.Delete(id)
}
