package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskheroes/task-heroes-api/internal/dto"
	apierrors "github.com/taskheroes/task-heroes-api/internal/errors"
	"github.com/taskheroes/task-heroes-api/internal/models"
	"github.com/taskheroes/task-heroes-api/internal/services"
)

// UserHandler coordinates user-related HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns every user.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// GetUser returns a user by ID.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// CreateUser registers a new household member. The first account ever
// created becomes the admin.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password"`
		Admin    bool   `json:"admin"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Admin:    req.Admin,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Login authenticates a user. Non-admin accounts log in by username
// alone; the admin requires a password match.
func (h *UserHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Login(req.Username, req.Password)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateUser updates username, role and credential.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	type UpdateUserRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password"`
		Admin    bool   `json:"admin"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(id, services.UpdateUserInput{
		Username: req.Username,
		Password: req.Password,
		Admin:    req.Admin,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// AddPoints credits points to a user.
func (h *UserHandler) AddPoints(c *gin.Context) {
	h.adjustPoints(c, h.userService.AddPoints)
}

// SubtractPoints debits points from a user.
func (h *UserHandler) SubtractPoints(c *gin.Context) {
	h.adjustPoints(c, h.userService.SubtractPoints)
}

func (h *UserHandler) adjustPoints(c *gin.Context, apply func(uint64, int) (*models.User, error)) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	type PointsRequest struct {
		Points int `json:"points" binding:"required"`
	}

	var req PointsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Points <= 0 {
		apierrors.BadRequest(c, "Se requiere un valor positivo para 'points'")
		return
	}

	user, err := apply(id, req.Points)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser removes a user. Admin only (enforced by middleware).
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		respondUserError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFirstUserNoPassword),
		errors.Is(err, services.ErrOnlyFirstUserAdmin),
		errors.Is(err, services.ErrNonAdminWithPassword),
		errors.Is(err, services.ErrAdminAlreadyExists),
		errors.Is(err, services.ErrAdminNoPoints),
		errors.Is(err, services.ErrNotEnoughPoints):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
