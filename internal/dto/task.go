package dto

import (
	"github.com/taskheroes/task-heroes-api/internal/constants"
	"github.com/taskheroes/task-heroes-api/internal/models"
)

// TaskDTO represents a task in API responses. The completion date is a
// calendar date, not a timestamp.
type TaskDTO struct {
	ID                uint64  `json:"id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	Completed         bool    `json:"completed"`
	Daily             bool    `json:"daily"`
	LastCompletedDate *string `json:"lastCompletedDate"`
	RewardPoints      int     `json:"rewardPoints"`
	AssignedUserID    *uint64 `json:"assignedUserId"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Completed:      task.Completed,
		Daily:          task.Daily,
		RewardPoints:   task.RewardPoints,
		AssignedUserID: task.AssignedUserID,
	}
	if task.LastCompletedDate != nil {
		formatted := task.LastCompletedDate.Format(constants.DateLayout)
		dto.LastCompletedDate = &formatted
	}
	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
