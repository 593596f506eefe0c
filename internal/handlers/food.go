package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/diet-tracker-api/internal/constants"
	"github.com/yukikurage/diet-tracker-api/internal/dto"
	"github.com/yukikurage/diet-tracker-api/internal/services"
)

// FoodHandler serves base foods, recipes and calorie estimates.
type FoodHandler struct {
	catalogService *services.CatalogService
	imageService   *services.ImageService
	aiService      *services.AIService
}

func NewFoodHandler(catalogService *services.CatalogService, imageService *services.ImageService, aiService *services.AIService) *FoodHandler {
	return &FoodHandler{
		catalogService: catalogService,
		imageService:   imageService,
		aiService:      aiService,
	}
}

// baseFoodRequest ignores is_recipe and any owner field in the body.
type baseFoodRequest struct {
	Name        *string `json:"name"`
	Calories    *int    `json:"calories"`
	ServingSize *int    `json:"serving_size"`
}

func (r baseFoodRequest) input() services.FoodInput {
	return services.FoodInput{
		Name:        r.Name,
		Calories:    r.Calories,
		ServingSize: r.ServingSize,
	}
}

type recipeRequest struct {
	baseFoodRequest
	Instructions *string  `json:"instructions"`
	Ingredients  []uint64 `json:"ingredients"`
}

func (r recipeRequest) input() services.RecipeInput {
	return services.RecipeInput{
		FoodInput:    r.baseFoodRequest.input(),
		Instructions: r.Instructions,
		Ingredients:  r.Ingredients,
	}
}

func (h *FoodHandler) ListBaseFoods(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	in, ok := listInput(c)
	if !ok {
		return
	}

	rows, total, err := h.catalogService.ListFoods(actor, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondList(c, total, dto.ToBaseFoodDTOs(rows))
}

func (h *FoodHandler) GetBaseFood(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	food, err := h.catalogService.GetFood(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBaseFoodDTO(*food))
}

func (h *FoodHandler) CreateBaseFood(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req baseFoodRequest
	if !bindJSON(c, &req) {
		return
	}

	food, err := h.catalogService.CreateFood(actor, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBaseFoodDTO(*food))
}

func (h *FoodHandler) UpdateBaseFood(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req baseFoodRequest
	if !bindJSON(c, &req) {
		return
	}
	if !requireFields(c, isFullUpdate(c), map[string]bool{"name": req.Name != nil}) {
		return
	}

	food, err := h.catalogService.UpdateFood(actor, id, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBaseFoodDTO(*food))
}

func (h *FoodHandler) DeleteBaseFood(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteFood(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadBaseFoodImage stores the multipart "image" file on a base food or
// recipe.
func (h *FoodHandler) UploadBaseFoodImage(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.catalogService.GetFood(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}

	file, ok := formImage(c)
	if !ok {
		return
	}
	url, err := h.imageService.Upload(c.Request.Context(), constants.FoodPicturePrefix, file)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	food, err := h.catalogService.SetFoodImage(actor, id, url)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBaseFoodDTO(*food))
}

// EstimateCalories asks the language model for the calories of a food.
func (h *FoodHandler) EstimateCalories(c *gin.Context) {
	type EstimateRequest struct {
		Name        string `json:"name" binding:"required,max=255"`
		ServingSize int    `json:"serving_size" binding:"omitempty,min=1,max=32767"`
	}

	var req EstimateRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ServingSize == 0 {
		req.ServingSize = constants.DefaultServing
	}

	estimate, err := h.aiService.EstimateCalories(c.Request.Context(), req.Name, req.ServingSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CalorieEstimateDTO{
		Calories:    estimate.Calories,
		ServingSize: estimate.ServingSize,
	})
}

func (h *FoodHandler) ListRecipes(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	in, ok := listInput(c)
	if !ok {
		return
	}

	rows, total, err := h.catalogService.ListRecipes(actor, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondList(c, total, dto.ToRecipeDTOs(rows))
}

func (h *FoodHandler) GetRecipe(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := h.catalogService.GetRecipe(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRecipeDetailDTO(*recipe))
}

func (h *FoodHandler) CreateRecipe(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req recipeRequest
	if !bindJSON(c, &req) {
		return
	}
	if !requireFields(c, true, map[string]bool{"ingredients": req.Ingredients != nil}) {
		return
	}

	recipe, err := h.catalogService.CreateRecipe(actor, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRecipeDTO(*recipe))
}

func (h *FoodHandler) UpdateRecipe(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req recipeRequest
	if !bindJSON(c, &req) {
		return
	}
	if !requireFields(c, isFullUpdate(c), map[string]bool{
		"name":        req.Name != nil,
		"ingredients": req.Ingredients != nil,
	}) {
		return
	}

	recipe, err := h.catalogService.UpdateRecipe(actor, id, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRecipeDTO(*recipe))
}

// DeleteRecipe removes the recipe together with its base food row.
func (h *FoodHandler) DeleteRecipe(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.catalogService.GetRecipe(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	if err := h.catalogService.DeleteFood(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
