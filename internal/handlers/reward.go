package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskheroes/task-heroes-api/internal/dto"
	apierrors "github.com/taskheroes/task-heroes-api/internal/errors"
	"github.com/taskheroes/task-heroes-api/internal/middleware"
	"github.com/taskheroes/task-heroes-api/internal/services"
)

// RewardHandler coordinates reward-related HTTP handlers.
type RewardHandler struct {
	rewardService *services.RewardService
}

// NewRewardHandler creates a new RewardHandler.
func NewRewardHandler(rewardService *services.RewardService) *RewardHandler {
	return &RewardHandler{
		rewardService: rewardService,
	}
}

// ListRewards returns every reward for the admin, the caller's own otherwise.
func (h *RewardHandler) ListRewards(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	rewards, err := h.rewardService.ListRewards(identity.UserID, identity.IsAdmin)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch rewards")
		return
	}
	c.JSON(http.StatusOK, dto.ToRewardDTOs(rewards))
}

// ListAvailableRewards returns rewards not yet redeemed.
func (h *RewardHandler) ListAvailableRewards(c *gin.Context) {
	h.listByRedemption(c, false)
}

// ListRedeemedRewards returns redeemed rewards.
func (h *RewardHandler) ListRedeemedRewards(c *gin.Context) {
	h.listByRedemption(c, true)
}

func (h *RewardHandler) listByRedemption(c *gin.Context, redeemed bool) {
	identity, _ := middleware.GetIdentity(c)
	rewards, err := h.rewardService.ListRewardsByRedemption(identity.UserID, identity.IsAdmin, redeemed)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch rewards")
		return
	}
	c.JSON(http.StatusOK, dto.ToRewardDTOs(rewards))
}

// GetReward returns a reward by ID.
func (h *RewardHandler) GetReward(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	reward, err := h.rewardService.GetReward(id)
	if err != nil {
		respondRewardError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRewardDTO(*reward))
}

// CreateReward creates a reward. Admin only (enforced by middleware).
// The assignment comes from the assignedUserId query parameter.
func (h *RewardHandler) CreateReward(c *gin.Context) {
	type CreateRewardRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Price       int    `json:"price"`
	}

	var req CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateRewardInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	}
	if raw := c.Query("assignedUserId"); raw != "" {
		assignedID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid assignedUserId")
			return
		}
		input.AssignedUserID = &assignedID
	}

	reward, err := h.rewardService.CreateReward(input)
	if err != nil {
		respondRewardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRewardDTO(*reward))
}

// RedeemReward redeems a reward, debiting the price from the assigned
// user. The response carries the reward and the user's authoritative
// point total.
func (h *RewardHandler) RedeemReward(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	reward, points, err := h.rewardService.RedeemReward(id)
	if err != nil {
		respondRewardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reward": dto.ToRewardDTO(*reward),
		"points": points,
	})
}

// DeleteReward removes a reward. Admin only (enforced by middleware).
func (h *RewardHandler) DeleteReward(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.rewardService.DeleteReward(id); err != nil {
		respondRewardError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondRewardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRewardNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAssignedUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInsufficientPoints):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
