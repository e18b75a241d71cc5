package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskheroes/task-heroes-api/internal/constants"
	"github.com/taskheroes/task-heroes-api/internal/dto"
	apierrors "github.com/taskheroes/task-heroes-api/internal/errors"
	"github.com/taskheroes/task-heroes-api/internal/middleware"
	"github.com/taskheroes/task-heroes-api/internal/services"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
	aiService   *services.AIService
}

// NewTaskHandler creates a new TaskHandler. The AI service may be nil
// when no API key is configured.
func NewTaskHandler(taskService *services.TaskService, aiService *services.AIService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		aiService:   aiService,
	}
}

// ListTasks returns every task for the admin, the caller's own otherwise.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	tasks, err := h.taskService.ListTasks(identity.UserID, identity.IsAdmin)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// ListIncompleteTasks returns tasks not yet completed.
func (h *TaskHandler) ListIncompleteTasks(c *gin.Context) {
	h.listByCompletion(c, false)
}

// ListCompletedTasks returns completed tasks.
func (h *TaskHandler) ListCompletedTasks(c *gin.Context) {
	h.listByCompletion(c, true)
}

func (h *TaskHandler) listByCompletion(c *gin.Context, completed bool) {
	identity, _ := middleware.GetIdentity(c)
	tasks, err := h.taskService.ListTasksByCompletion(identity.UserID, identity.IsAdmin, completed)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a task by ID.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a task. Admin only (enforced by middleware). The
// assignment comes from the assignedUserId query parameter.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title        string `json:"title" binding:"required"`
		Description  string `json:"description"`
		RewardPoints int    `json:"rewardPoints"`
		IsDaily      bool   `json:"isDaily"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		RewardPoints: req.RewardPoints,
		Daily:        req.IsDaily,
	}
	if raw := c.Query("assignedUserId"); raw != "" {
		assignedID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid assignedUserId")
			return
		}
		input.AssignedUserID = &assignedID
	}

	task, err := h.taskService.CreateTask(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// CompleteTask marks a task completed, crediting points to the assigned
// user on the first transition. The client may send its local calendar
// date; the server date is used otherwise. The response carries the
// task and the assigned user's authoritative point total.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var completionDate *time.Time
	if raw := c.Query("clientDate"); raw != "" {
		if parsed, err := time.Parse(constants.DateLayout, raw); err == nil {
			completionDate = &parsed
		}
	}

	task, points, err := h.taskService.CompleteTask(id, completionDate)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"task":   dto.ToTaskDTO(*task),
		"points": points,
	})
}

// CheckDailyTasks resets the user's completed daily tasks whose last
// completion date differs from the client's current date.
func (h *TaskHandler) CheckDailyTasks(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	clientDate, err := time.Parse(constants.DateLayout, c.Query("currentDate"))
	if err != nil {
		apierrors.BadRequest(c, fmt.Sprintf("Error al procesar la fecha: %v", err))
		return
	}

	reset, err := h.taskService.CheckDailyTasksForUser(identity.UserID, clientDate)
	if err != nil {
		apierrors.InternalError(c, "Failed to check daily tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"serverDate": time.Now().Format(constants.DateLayout),
		"clientDate": clientDate.Format(constants.DateLayout),
		"tasksReset": reset,
	})
}

// ResetDailyTasks clears the completed flag on every completed daily
// task. Admin only (enforced by middleware).
func (h *TaskHandler) ResetDailyTasks(c *gin.Context) {
	count, err := h.taskService.ResetDailyTasks()
	if err != nil {
		apierrors.InternalError(c, "Failed to reset daily tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reset": count})
}

// UpdateTask updates a task's fields. Admin only (enforced by middleware).
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title          string  `json:"title" binding:"required"`
		Description    string  `json:"description"`
		RewardPoints   int     `json:"rewardPoints"`
		IsDaily        bool    `json:"isDaily"`
		AssignedUserID *uint64 `json:"assignedUserId"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(id, services.UpdateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		RewardPoints:   req.RewardPoints,
		Daily:          req.IsDaily,
		AssignedUserID: req.AssignedUserID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task. Admin only (enforced by middleware).
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GenerateTasks extracts chore suggestions from free text using the AI
// service. Admin only (enforced by middleware).
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	type GenerateTasksRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI service is not configured")
		return
	}

	chores, err := h.aiService.GenerateChoresFromText(context.Background(), req.Text)
	if err != nil {
		apierrors.InternalError(c, fmt.Sprintf("Failed to generate tasks: %v", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": chores})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAssignedUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
