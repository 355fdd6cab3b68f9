package application

import (
	"context"
	"time"

	"github.com/MasterCatOne/zzw-gx-sub000/internal/domain"
)

// CycleService owns the cycle lifecycle: template snapshot at creation,
// partial updates, soft-delete with cascade.
type CycleService struct {
	repo domain.TrackingRepository
}

func NewCycleService(repo domain.TrackingRepository) *CycleService {
	return &CycleService{repo: repo}
}

type CreateCycleInput struct {
	ProjectID              uint       `json:"project_id"`
	TemplateID             uint       `json:"template_id"`
	ControlDurationMinutes int        `json:"control_duration_minutes"`
	StartDate              time.Time  `json:"start_date"`
	EstimatedStartDate     *time.Time `json:"estimated_start_date,omitempty"`
	EstimatedEndDate       *time.Time `json:"estimated_end_date,omitempty"`
	EstimatedMileage       string     `json:"estimated_mileage,omitempty"`
	RockLevel              string     `json:"rock_level,omitempty"`
}

// CreateCycle snapshots the template into owned process rows. The copy is
// deep: later template edits never reach cycles created before them.
func (s *CycleService) CreateCycle(ctx context.Context, input CreateCycleInput) (domain.Cycle, error) {
	if input.ProjectID == 0 {
		return domain.Cycle{}, domain.MissingParameter("project_id")
	}
	if input.TemplateID == 0 {
		return domain.Cycle{}, domain.MissingParameter("template_id")
	}
	if input.StartDate.IsZero() {
		return domain.Cycle{}, domain.MissingParameter("start_date")
	}
	if input.ControlDurationMinutes <= 0 {
		return domain.Cycle{}, domain.ValidationFailed("control_duration_minutes must be positive")
	}

	template, err := s.repo.GetTemplate(ctx, input.TemplateID)
	if err != nil {
		return domain.Cycle{}, err
	}
	if len(template.Items) == 0 {
		return domain.Cycle{}, domain.ValidationFailed("template %d has no items", template.ID)
	}

	seen := make(map[int]bool, len(template.Items))
	processes := make([]domain.Process, 0, len(template.Items))
	for _, item := range template.Items {
		if item.ProcessName == "" || item.ControlTimeMinutes <= 0 || seen[item.Order] {
			return domain.Cycle{}, domain.ValidationFailed("template %d item %d is malformed", template.ID, item.ID)
		}
		seen[item.Order] = true
		processes = append(processes, domain.Process{
			ProcessDefID:       item.ProcessDefID,
			Name:               item.ProcessName,
			ControlTimeMinutes: item.ControlTimeMinutes,
			StartOrder:         item.Order,
			Status:             domain.ProcessNotStarted,
		})
	}

	cycle := domain.Cycle{
		ProjectID:              input.ProjectID,
		ControlDurationMinutes: input.ControlDurationMinutes,
		StartDate:              input.StartDate,
		EstimatedStartDate:     input.EstimatedStartDate,
		EstimatedEndDate:       input.EstimatedEndDate,
		EstimatedMileage:       input.EstimatedMileage,
		RockLevel:              input.RockLevel,
		Status:                 domain.CycleInProgress,
	}
	return s.repo.CreateCycleSnapshot(ctx, cycle, processes)
}

type UpdateCycleInput struct {
	ControlDurationMinutes *int       `json:"control_duration_minutes,omitempty"`
	StartDate              *time.Time `json:"start_date,omitempty"`
	EndDate                *time.Time `json:"end_date,omitempty"`
	EstimatedStartDate     *time.Time `json:"estimated_start_date,omitempty"`
	EstimatedEndDate       *time.Time `json:"estimated_end_date,omitempty"`
	EstimatedMileage       *string    `json:"estimated_mileage,omitempty"`
	AdvanceLength          *float64   `json:"advance_length,omitempty"`
	RockLevel              *string    `json:"rock_level,omitempty"`
	Status                 *string    `json:"status,omitempty"`
}

func (s *CycleService) UpdateCycle(ctx context.Context, id uint, input UpdateCycleInput) (domain.Cycle, error) {
	fields := map[string]any{}
	if input.ControlDurationMinutes != nil {
		if *input.ControlDurationMinutes <= 0 {
			return domain.Cycle{}, domain.ValidationFailed("control_duration_minutes must be positive")
		}
		fields["control_duration_minutes"] = *input.ControlDurationMinutes
	}
	if input.StartDate != nil {
		fields["start_date"] = *input.StartDate
	}
	if input.EndDate != nil {
		fields["end_date"] = *input.EndDate
	}
	if input.EstimatedStartDate != nil {
		fields["estimated_start_date"] = *input.EstimatedStartDate
	}
	if input.EstimatedEndDate != nil {
		fields["estimated_end_date"] = *input.EstimatedEndDate
	}
	if input.EstimatedMileage != nil {
		fields["estimated_mileage"] = *input.EstimatedMileage
	}
	if input.AdvanceLength != nil {
		fields["advance_length"] = *input.AdvanceLength
	}
	if input.RockLevel != nil {
		fields["rock_level"] = *input.RockLevel
	}
	if input.Status != nil {
		switch domain.CycleStatus(*input.Status) {
		case domain.CycleInProgress, domain.CycleCompleted, domain.CyclePaused:
		default:
			return domain.Cycle{}, domain.ValidationFailed("unknown cycle status %q", *input.Status)
		}
		fields["status"] = *input.Status
	}
	if len(fields) == 0 {
		return domain.Cycle{}, domain.ValidationFailed("no fields to update")
	}

	return s.repo.UpdateCycleFields(ctx, id, fields)
}

func (s *CycleService) DeleteCycle(ctx context.Context, id uint) error {
	return s.repo.SoftDeleteCycle(ctx, id)
}

func (s *CycleService) GetCycle(ctx context.Context, id uint) (domain.Cycle, error) {
	return s.repo.GetCycle(ctx, id)
}

func (s *CycleService) ListCycles(ctx context.Context, projectID uint, limit int) ([]domain.Cycle, error) {
	if projectID == 0 {
		return nil, domain.MissingParameter("project_id")
	}
	if limit <= 0 {
		limit = 200
	}
	if limit > 2000 {
		limit = 2000
	}
	return s.repo.ListCycles(ctx, projectID, limit)
}
