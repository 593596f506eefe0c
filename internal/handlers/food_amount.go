package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/diet-tracker-api/internal/dto"
	"github.com/yukikurage/diet-tracker-api/internal/services"
)

type FoodAmountHandler struct {
	foodAmountService *services.FoodAmountService
}

func NewFoodAmountHandler(foodAmountService *services.FoodAmountService) *FoodAmountHandler {
	return &FoodAmountHandler{foodAmountService: foodAmountService}
}

type foodAmountRequest struct {
	Food   *uint64 `json:"food"`
	Amount *int    `json:"amount"`
}

func (r foodAmountRequest) input() services.FoodAmountInput {
	return services.FoodAmountInput{
		Food:   r.Food,
		Amount: r.Amount,
	}
}

func (h *FoodAmountHandler) ListFoodAmounts(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	in, ok := listInput(c)
	if !ok {
		return
	}

	rows, total, err := h.foodAmountService.List(actor, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondList(c, total, dto.ToFoodAmountDTOs(rows))
}

func (h *FoodAmountHandler) GetFoodAmount(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	fa, err := h.foodAmountService.Get(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFoodAmountDTO(*fa))
}

func (h *FoodAmountHandler) CreateFoodAmount(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req foodAmountRequest
	if !bindJSON(c, &req) {
		return
	}

	fa, err := h.foodAmountService.Create(actor, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFoodAmountDTO(*fa))
}

func (h *FoodAmountHandler) UpdateFoodAmount(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req foodAmountRequest
	if !bindJSON(c, &req) {
		return
	}
	if !requireFields(c, isFullUpdate(c), map[string]bool{"food": req.Food != nil}) {
		return
	}

	fa, err := h.foodAmountService.Update(actor, id, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFoodAmountDTO(*fa))
}

func (h *FoodAmountHandler) DeleteFoodAmount(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.foodAmountService.Delete(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
