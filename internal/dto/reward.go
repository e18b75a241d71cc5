package dto

import (
	"github.com/taskheroes/task-heroes-api/internal/models"
)

// RewardDTO represents a reward in API responses
type RewardDTO struct {
	ID             uint64  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Price          int     `json:"price"`
	Redeemed       bool    `json:"redeemed"`
	AssignedUserID *uint64 `json:"assignedUserId"`
}

// ToRewardDTO converts a Reward model to RewardDTO
func ToRewardDTO(reward models.Reward) RewardDTO {
	return RewardDTO{
		ID:             reward.ID,
		Title:          reward.Title,
		Description:    reward.Description,
		Price:          reward.Price,
		Redeemed:       reward.Redeemed,
		AssignedUserID: reward.AssignedUserID,
	}
}

// ToRewardDTOs converts a slice of rewards
func ToRewardDTOs(rewards []models.Reward) []RewardDTO {
	dtos := make([]RewardDTO, len(rewards))
	for i, reward := range rewards {
		dtos[i] = ToRewardDTO(reward)
	}
	return dtos
}
