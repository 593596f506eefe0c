package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/diet-tracker-api/internal/constants"
	"github.com/yukikurage/diet-tracker-api/internal/dto"
	"github.com/yukikurage/diet-tracker-api/internal/services"
)

type MeasurementHandler struct {
	measurementService *services.MeasurementService
	imageService       *services.ImageService
}

func NewMeasurementHandler(measurementService *services.MeasurementService, imageService *services.ImageService) *MeasurementHandler {
	return &MeasurementHandler{
		measurementService: measurementService,
		imageService:       imageService,
	}
}

type measurementRequest struct {
	Date    *dto.Date `json:"date"`
	Weight  *int      `json:"weight"`
	Height  *int      `json:"height"`
	Neck    *int      `json:"neck"`
	Chest   *int      `json:"chest"`
	Biceps  *int      `json:"biceps"`
	Forearm *int      `json:"forearm"`
	Abdomen *int      `json:"abdomen"`
	Hips    *int      `json:"hips"`
	Thigh   *int      `json:"thigh"`
}

func (r measurementRequest) input() services.MeasurementInput {
	return services.MeasurementInput{
		Date:    dto.DatePtr(r.Date),
		Weight:  r.Weight,
		Height:  r.Height,
		Neck:    r.Neck,
		Chest:   r.Chest,
		Biceps:  r.Biceps,
		Forearm: r.Forearm,
		Abdomen: r.Abdomen,
		Hips:    r.Hips,
		Thigh:   r.Thigh,
	}
}

type goalRequest struct {
	CurrentWeight *int `json:"current_weight"`
	GoalWeight    *int `json:"goal_weight"`
}

func (r goalRequest) input() services.GoalInput {
	return services.GoalInput{
		CurrentWeight: r.CurrentWeight,
		GoalWeight:    r.GoalWeight,
	}
}

func (h *MeasurementHandler) ListMeasurements(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	in, ok := listInput(c)
	if !ok {
		return
	}

	rows, total, err := h.measurementService.List(actor, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondList(c, total, dto.ToMeasurementDTOs(rows))
}

func (h *MeasurementHandler) GetMeasurement(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	m, err := h.measurementService.Get(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeasurementDTO(*m))
}

func (h *MeasurementHandler) CreateMeasurement(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req measurementRequest
	if !bindJSON(c, &req) {
		return
	}

	m, err := h.measurementService.Create(actor, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMeasurementDTO(*m))
}

// UpdateMeasurement serves PUT and PATCH. Every field has a default, so a
// full update requires none of them.
func (h *MeasurementHandler) UpdateMeasurement(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req measurementRequest
	if !bindJSON(c, &req) {
		return
	}

	m, err := h.measurementService.Update(actor, id, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeasurementDTO(*m))
}

func (h *MeasurementHandler) DeleteMeasurement(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.measurementService.Delete(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadMeasurementImage stores the multipart "image" file on a measurement.
func (h *MeasurementHandler) UploadMeasurementImage(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.measurementService.Get(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}

	file, ok := formImage(c)
	if !ok {
		return
	}
	url, err := h.imageService.Upload(c.Request.Context(), constants.MeasurementPicturePrefix, file)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	m, err := h.measurementService.SetImage(actor, id, url)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeasurementDTO(*m))
}

func (h *MeasurementHandler) ListGoals(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	in, ok := listInput(c)
	if !ok {
		return
	}

	rows, total, err := h.measurementService.ListGoals(actor, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondList(c, total, dto.ToGoalDTOs(rows))
}

func (h *MeasurementHandler) GetGoal(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	g, err := h.measurementService.GetGoal(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGoalDTO(*g))
}

func (h *MeasurementHandler) CreateGoal(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req goalRequest
	if !bindJSON(c, &req) {
		return
	}

	g, err := h.measurementService.CreateGoal(actor, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToGoalDTO(*g))
}

func (h *MeasurementHandler) UpdateGoal(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req goalRequest
	if !bindJSON(c, &req) {
		return
	}

	g, err := h.measurementService.UpdateGoal(actor, id, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGoalDTO(*g))
}

func (h *MeasurementHandler) DeleteGoal(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.measurementService.DeleteGoal(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
