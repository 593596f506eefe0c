package dto

import (
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"github.com/yukikurage/diet-tracker-api/internal/utils"
)

type MeasurementDTO struct {
	ID      uint64 `json:"id"`
	Date    string `json:"date"`
	Weight  int    `json:"weight"`
	Height  int    `json:"height"`
	Neck    int    `json:"neck"`
	Chest   int    `json:"chest"`
	Biceps  int    `json:"biceps"`
	Forearm int    `json:"forearm"`
	Abdomen int    `json:"abdomen"`
	Hips    int    `json:"hips"`
	Thigh   int    `json:"thigh"`
	Image   string `json:"image"`
}

type GoalDTO struct {
	ID            uint64 `json:"id"`
	CurrentWeight int    `json:"current_weight"`
	GoalWeight    int    `json:"goal_weight"`
}

func ToMeasurementDTO(m models.Measurement) MeasurementDTO {
	return MeasurementDTO{
		ID:      m.ID,
		Date:    utils.FormatDate(m.Date),
		Weight:  m.Weight,
		Height:  m.Height,
		Neck:    m.Neck,
		Chest:   m.Chest,
		Biceps:  m.Biceps,
		Forearm: m.Forearm,
		Abdomen: m.Abdomen,
		Hips:    m.Hips,
		Thigh:   m.Thigh,
		Image:   m.Image,
	}
}

func ToMeasurementDTOs(rows []models.Measurement) []MeasurementDTO {
	items := make([]MeasurementDTO, len(rows))
	for i, m := range rows {
		items[i] = ToMeasurementDTO(m)
	}
	return items
}

func ToGoalDTO(g models.UserGoal) GoalDTO {
	return GoalDTO{
		ID:            g.ID,
		CurrentWeight: g.CurrentWeight,
		GoalWeight:    g.GoalWeight,
	}
}

func ToGoalDTOs(rows []models.UserGoal) []GoalDTO {
	items := make([]GoalDTO, len(rows))
	for i, g := range rows {
		items[i] = ToGoalDTO(g)
	}
	return items
}
