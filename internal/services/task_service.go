package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/taskheroes/task-heroes-api/internal/models"
	"github.com/taskheroes/task-heroes-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("Tarea no encontrada")
	ErrAssignedUserNotFound = errors.New("Usuario asignado no encontrado")
)

// TaskService handles chore business logic: CRUD, completion with point
// credit, and the daily reset cycle.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

func boolPtr(b bool) *bool { return &b }

// ListTasks returns every task for the admin, or the caller's own tasks.
func (s *TaskService) ListTasks(userID uint64, isAdmin bool) ([]models.Task, error) {
	filter := repository.TaskFilter{}
	if !isAdmin {
		filter.AssignedUserID = &userID
	}
	return s.taskRepo.List(filter)
}

// ListTasksByCompletion returns tasks filtered by completion state,
// scoped like ListTasks.
func (s *TaskService) ListTasksByCompletion(userID uint64, isAdmin, completed bool) ([]models.Task, error) {
	filter := repository.TaskFilter{Completed: boolPtr(completed)}
	if !isAdmin {
		filter.AssignedUserID = &userID
	}
	return s.taskRepo.List(filter)
}

// GetTask retrieves a task by ID.
func (s *TaskService) GetTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTaskInput represents the required information to create a task.
type CreateTaskInput struct {
	Title          string
	Description    string
	RewardPoints   int
	Daily          bool
	AssignedUserID *uint64
}

// CreateTask creates a task, optionally assigned to an existing user.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.AssignedUserID != nil {
		if _, err := s.userRepo.FindByID(*input.AssignedUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssignedUserNotFound
			}
			return nil, fmt.Errorf("failed to find assigned user: %w", err)
		}
	}

	task := &models.Task{
		Title:          input.Title,
		Description:    input.Description,
		RewardPoints:   input.RewardPoints,
		Daily:          input.Daily,
		AssignedUserID: input.AssignedUserID,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// CompleteTask marks a task completed on the given date (the server date
// when nil) and credits the reward points to the assigned user on the
// first transition to completed. Completing a daily task again on the
// same date is a no-op. Returns the task and the assigned user's
// up-to-date point total.
func (s *TaskService) CompleteTask(taskID uint64, completionDate *time.Time) (*models.Task, int, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, 0, err
	}

	today := time.Now()
	if completionDate != nil {
		today = *completionDate
	}
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	if task.Daily && task.Completed && task.CompletedOn(today) {
		points, err := s.assignedPoints(task)
		if err != nil {
			return nil, 0, err
		}
		return task, points, nil
	}

	wasCompleted := task.Completed
	task.Completed = true
	task.LastCompletedDate = &today
	if err := s.taskRepo.Save(task); err != nil {
		return nil, 0, fmt.Errorf("failed to save task: %w", err)
	}

	points := 0
	if task.AssignedUserID != nil {
		user, err := s.userRepo.FindByID(*task.AssignedUserID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to find assigned user: %w", err)
		}
		if !wasCompleted {
			user.AddPoints(task.RewardPoints)
			if err := s.userRepo.Save(user); err != nil {
				return nil, 0, fmt.Errorf("failed to save user points: %w", err)
			}
		}
		points = user.Points
	}

	return task, points, nil
}

func (s *TaskService) assignedPoints(task *models.Task) (int, error) {
	if task.AssignedUserID == nil {
		return 0, nil
	}
	user, err := s.userRepo.FindByID(*task.AssignedUserID)
	if err != nil {
		return 0, fmt.Errorf("failed to find assigned user: %w", err)
	}
	return user.Points, nil
}

// UpdateTaskInput holds the updatable task fields.
type UpdateTaskInput struct {
	Title          string
	Description    string
	RewardPoints   int
	Daily          bool
	AssignedUserID *uint64
}

// UpdateTask updates a task's descriptive fields. An omitted assignment
// keeps the existing one.
func (s *TaskService) UpdateTask(id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.RewardPoints = input.RewardPoints
	task.Daily = input.Daily
	if input.AssignedUserID != nil {
		if _, err := s.userRepo.FindByID(*input.AssignedUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssignedUserNotFound
			}
			return nil, fmt.Errorf("failed to find assigned user: %w", err)
		}
		task.AssignedUserID = input.AssignedUserID
	}

	if err := s.taskRepo.Save(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(id uint64) error {
	if _, err := s.GetTask(id); err != nil {
		return err
	}
	return s.taskRepo.Delete(id)
}

// ResetDailyTasks clears the completed flag on every completed daily
// task and returns how many were reset. Idempotent: a second run on the
// same state finds nothing to reset.
func (s *TaskService) ResetDailyTasks() (int, error) {
	tasks, err := s.taskRepo.List(repository.TaskFilter{
		Daily:     boolPtr(true),
		Completed: boolPtr(true),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list daily tasks: %w", err)
	}

	for i := range tasks {
		tasks[i].Completed = false
	}
	if err := s.taskRepo.SaveAll(tasks); err != nil {
		return 0, fmt.Errorf("failed to save daily tasks: %w", err)
	}
	return len(tasks), nil
}

// CheckDailyTasksForUser resets the user's completed daily tasks whose
// last completion date differs from the client's current date. Tasks
// completed on the client's date, or never dated, are left alone, so
// repeating the check on the same date resets nothing.
func (s *TaskService) CheckDailyTasksForUser(userID uint64, clientDate time.Time) (int, error) {
	tasks, err := s.taskRepo.List(repository.TaskFilter{
		AssignedUserID: &userID,
		Daily:          boolPtr(true),
		Completed:      boolPtr(true),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list daily tasks: %w", err)
	}

	var reset []models.Task
	for i := range tasks {
		if tasks[i].LastCompletedDate == nil {
			continue
		}
		if !tasks[i].CompletedOn(clientDate) {
			tasks[i].Completed = false
			reset = append(reset, tasks[i])
		}
	}

	if err := s.taskRepo.SaveAll(reset); err != nil {
		return 0, fmt.Errorf("failed to save reset tasks: %w", err)
	}
	return len(reset), nil
}
