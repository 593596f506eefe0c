package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/diet-tracker-api/internal/metrics"
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"github.com/yukikurage/diet-tracker-api/internal/repository"
	"github.com/yukikurage/diet-tracker-api/internal/utils"
)

var (
	ErrMeasurementNotFound = errors.New("measurement not found")
	ErrGoalNotFound        = errors.New("goal not found")
)

// MeasurementService manages body measurements and weight goals.
type MeasurementService struct {
	measurements repository.MeasurementRepository
	goals        repository.GoalRepository
	today        func() time.Time
}

// NewMeasurementService creates a new MeasurementService.
func NewMeasurementService(measurements repository.MeasurementRepository, goals repository.GoalRepository) *MeasurementService {
	return &MeasurementService{
		measurements: measurements,
		goals:        goals,
		today:        utils.Today,
	}
}

// MeasurementInput carries measurement fields. Nil fields are left
// untouched on update and take their default on create.
type MeasurementInput struct {
	Date    *time.Time
	Weight  *int
	Height  *int
	Neck    *int
	Chest   *int
	Biceps  *int
	Forearm *int
	Abdomen *int
	Hips    *int
	Thigh   *int
}

func (in MeasurementInput) metrics() []struct {
	name  string
	value *int
} {
	return []struct {
		name  string
		value *int
	}{
		{"weight", in.Weight},
		{"height", in.Height},
		{"neck", in.Neck},
		{"chest", in.Chest},
		{"biceps", in.Biceps},
		{"forearm", in.Forearm},
		{"abdomen", in.Abdomen},
		{"hips", in.Hips},
		{"thigh", in.Thigh},
	}
}

func (in MeasurementInput) validate() error {
	fields := fieldErrors{}
	for _, m := range in.metrics() {
		fields.smallInt(m.name, m.value, 0)
	}
	return fields.err()
}

func (in MeasurementInput) apply(m *models.Measurement) {
	if in.Date != nil {
		m.Date = utils.TruncateDate(*in.Date)
	}
	targets := []*int{&m.Weight, &m.Height, &m.Neck, &m.Chest, &m.Biceps, &m.Forearm, &m.Abdomen, &m.Hips, &m.Thigh}
	for i, src := range in.metrics() {
		if src.value != nil {
			*targets[i] = *src.value
		}
	}
}

func (s *MeasurementService) List(actor Actor, in ListInput) ([]models.Measurement, int64, error) {
	rows, total, err := s.measurements.List(actor.filter(in))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list measurements: %w", err)
	}
	return rows, total, nil
}

func (s *MeasurementService) Get(actor Actor, id uint64) (*models.Measurement, error) {
	return findOwned(actor, ErrMeasurementNotFound,
		func() (*models.Measurement, error) { return s.measurements.FindByID(id) },
		func(m *models.Measurement) uint64 { return m.UserID },
	)
}

// Create records a measurement for the actor. The date defaults to today.
func (s *MeasurementService) Create(actor Actor, in MeasurementInput) (*models.Measurement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	m := &models.Measurement{Date: s.today(), UserID: actor.UserID}
	in.apply(m)

	if err := s.measurements.Create(m); err != nil {
		return nil, fmt.Errorf("failed to create measurement: %w", err)
	}
	metrics.RecordsCreated.WithLabelValues("measurement").Inc()
	return m, nil
}

func (s *MeasurementService) Update(actor Actor, id uint64, in MeasurementInput) (*models.Measurement, error) {
	m, err := s.Get(actor, id)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	in.apply(m)
	if err := s.measurements.Update(m); err != nil {
		return nil, fmt.Errorf("failed to update measurement: %w", err)
	}
	return m, nil
}

// SetImage stores the URL of an uploaded measurement picture.
func (s *MeasurementService) SetImage(actor Actor, id uint64, url string) (*models.Measurement, error) {
	m, err := s.Get(actor, id)
	if err != nil {
		return nil, err
	}
	m.Image = url
	if err := s.measurements.Update(m); err != nil {
		return nil, fmt.Errorf("failed to update measurement: %w", err)
	}
	return m, nil
}

func (s *MeasurementService) Delete(actor Actor, id uint64) error {
	if _, err := s.Get(actor, id); err != nil {
		return err
	}
	if err := s.measurements.Delete(id); err != nil {
		return fmt.Errorf("failed to delete measurement: %w", err)
	}
	return nil
}

// GoalInput carries goal fields. Nil fields are left untouched.
type GoalInput struct {
	CurrentWeight *int
	GoalWeight    *int
}

func (in GoalInput) validate() error {
	fields := fieldErrors{}
	fields.smallInt("current_weight", in.CurrentWeight, 0)
	fields.smallInt("goal_weight", in.GoalWeight, 0)
	return fields.err()
}

func (in GoalInput) apply(g *models.UserGoal) {
	if in.CurrentWeight != nil {
		g.CurrentWeight = *in.CurrentWeight
	}
	if in.GoalWeight != nil {
		g.GoalWeight = *in.GoalWeight
	}
}

func (s *MeasurementService) ListGoals(actor Actor, in ListInput) ([]models.UserGoal, int64, error) {
	rows, total, err := s.goals.List(actor.filter(in))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list goals: %w", err)
	}
	return rows, total, nil
}

func (s *MeasurementService) GetGoal(actor Actor, id uint64) (*models.UserGoal, error) {
	return findOwned(actor, ErrGoalNotFound,
		func() (*models.UserGoal, error) { return s.goals.FindByID(id) },
		func(g *models.UserGoal) uint64 { return g.UserID },
	)
}

func (s *MeasurementService) CreateGoal(actor Actor, in GoalInput) (*models.UserGoal, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	g := &models.UserGoal{UserID: actor.UserID}
	in.apply(g)

	if err := s.goals.Create(g); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	metrics.RecordsCreated.WithLabelValues("goal").Inc()
	return g, nil
}

func (s *MeasurementService) UpdateGoal(actor Actor, id uint64, in GoalInput) (*models.UserGoal, error) {
	g, err := s.GetGoal(actor, id)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	in.apply(g)
	if err := s.goals.Update(g); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return g, nil
}

func (s *MeasurementService) DeleteGoal(actor Actor, id uint64) error {
	if _, err := s.GetGoal(actor, id); err != nil {
		return err
	}
	if err := s.goals.Delete(id); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}
