package application

import (
	"context"
	"time"

	"github.com/MasterCatOne/zzw-gx-sub000/internal/domain"
)

// ProcessService is the process state machine: forward-only transitions,
// advisory predecessor gating on Start, hard gating via GateStart.
type ProcessService struct {
	repo domain.TrackingRepository
}

func NewProcessService(repo domain.TrackingRepository) *ProcessService {
	return &ProcessService{repo: repo}
}

type CreateAndStartInput struct {
	CycleID            uint      `json:"cycle_id"`
	OperatorID         uint      `json:"operator_id"`
	ProcessDefID       uint      `json:"process_def_id,omitempty"`
	Name               string    `json:"name"`
	ControlTimeMinutes int       `json:"control_time_minutes"`
	ActualStartTime    time.Time `json:"actual_start_time"`
	StartOrder         int       `json:"start_order"`
}

// CreateAndStart creates a process directly in progress, outside any
// template snapshot. The estimated end is derived from the control time.
func (s *ProcessService) CreateAndStart(ctx context.Context, input CreateAndStartInput) (domain.Process, error) {
	if input.CycleID == 0 {
		return domain.Process{}, domain.MissingParameter("cycle_id")
	}
	if input.Name == "" {
		return domain.Process{}, domain.MissingParameter("name")
	}
	if input.ActualStartTime.IsZero() {
		return domain.Process{}, domain.MissingParameter("actual_start_time")
	}
	if input.ControlTimeMinutes <= 0 {
		return domain.Process{}, domain.ValidationFailed("control_time_minutes must be positive")
	}
	if _, err := s.repo.GetCycle(ctx, input.CycleID); err != nil {
		return domain.Process{}, err
	}

	start := input.ActualStartTime
	estimatedEnd := start.Add(time.Duration(input.ControlTimeMinutes) * time.Minute)
	created, err := s.repo.CreateProcess(ctx, domain.Process{
		CycleID:            input.CycleID,
		ProcessDefID:       input.ProcessDefID,
		Name:               input.Name,
		ControlTimeMinutes: input.ControlTimeMinutes,
		EstimatedStartTime: &start,
		EstimatedEndTime:   &estimatedEnd,
		ActualStartTime:    &start,
		Status:             domain.ProcessInProgress,
		OperatorID:         input.OperatorID,
		StartOrder:         input.StartOrder,
	})
	if err != nil {
		return domain.Process{}, err
	}

	_ = s.repo.AppendOperationLog(ctx, domain.OperationLog{
		ProcessID:  created.ID,
		OperatorID: input.OperatorID,
		Action:     domain.LogActionStart,
	})
	return created, nil
}

// Start transitions NOT_STARTED → IN_PROGRESS. An incomplete predecessor
// does not block the start; it comes back as a warning alongside the
// updated process.
func (s *ProcessService) Start(ctx context.Context, processID, operatorID uint, actualStartTime *time.Time) (domain.Process, *domain.StartWarning, error) {
	p, err := s.repo.GetProcess(ctx, processID)
	if err != nil {
		return domain.Process{}, nil, err
	}
	if p.OperatorID != 0 && p.OperatorID != operatorID {
		return domain.Process{}, nil, domain.Forbidden("process %d is assigned to another operator", processID)
	}
	if actualStartTime == nil || actualStartTime.IsZero() {
		return domain.Process{}, nil, domain.MissingParameter("actual_start_time")
	}
	next, err := domain.NextProcessStatus(p.Status, domain.EventStart)
	if err != nil {
		return domain.Process{}, nil, err
	}

	var warning *domain.StartWarning
	predecessor, err := s.repo.GetPredecessor(ctx, p.CycleID, p.StartOrder)
	if err != nil {
		return domain.Process{}, nil, err
	}
	if predecessor != nil && predecessor.Status != domain.ProcessCompleted {
		warning = &domain.StartWarning{
			PredecessorID:     predecessor.ID,
			PredecessorName:   predecessor.Name,
			PredecessorStatus: predecessor.Status,
		}
	}

	updated, err := s.repo.UpdateProcessFields(ctx, processID, map[string]any{
		"actual_start_time": *actualStartTime,
		"status":            string(next),
		"operator_id":       operatorID,
	})
	if err != nil {
		return domain.Process{}, nil, err
	}

	_ = s.repo.AppendOperationLog(ctx, domain.OperationLog{
		ProcessID:  processID,
		OperatorID: operatorID,
		Action:     domain.LogActionStart,
	})
	return updated, warning, nil
}

// GateStart is the enforced variant of the predecessor rule. It performs
// no mutation; callers run it before Start when sequencing must block.
func (s *ProcessService) GateStart(ctx context.Context, processID uint) error {
	p, err := s.repo.GetProcess(ctx, processID)
	if err != nil {
		return err
	}
	predecessor, err := s.repo.GetPredecessor(ctx, p.CycleID, p.StartOrder)
	if err != nil {
		return err
	}
	if predecessor != nil && predecessor.Status != domain.ProcessCompleted {
		return domain.InvalidState("predecessor %q is %s, not completed", predecessor.Name, predecessor.Status)
	}
	return nil
}

// Complete transitions IN_PROGRESS → COMPLETED. Overtime without a reason
// never blocks completion; the returned flag marks the reason as pending.
func (s *ProcessService) Complete(ctx context.Context, processID, operatorID uint, actualEndTime *time.Time, overtimeReason string) (domain.Process, bool, error) {
	p, err := s.repo.GetProcess(ctx, processID)
	if err != nil {
		return domain.Process{}, false, err
	}
	if actualEndTime == nil || actualEndTime.IsZero() {
		return domain.Process{}, false, domain.MissingParameter("actual_end_time")
	}
	next, err := domain.NextProcessStatus(p.Status, domain.EventComplete)
	if err != nil {
		return domain.Process{}, false, err
	}
	if p.ActualStartTime == nil {
		return domain.Process{}, false, domain.InvalidState("process %d has no actual start time", processID)
	}
	if !actualEndTime.After(*p.ActualStartTime) {
		return domain.Process{}, false, domain.ValidationFailed("actual_end_time must be after actual_start_time")
	}

	fields := map[string]any{
		"actual_end_time": *actualEndTime,
		"status":          string(next),
	}
	if overtimeReason != "" {
		fields["overtime_reason"] = overtimeReason
	}
	updated, err := s.repo.UpdateProcessFields(ctx, processID, fields)
	if err != nil {
		return domain.Process{}, false, err
	}

	_ = s.repo.AppendOperationLog(ctx, domain.OperationLog{
		ProcessID:  processID,
		OperatorID: operatorID,
		Action:     domain.LogActionFinish,
	})

	timing := updated.Timing()
	reasonPending := timing.Overtime && updated.OvertimeReason == ""
	return updated, reasonPending, nil
}

// SubmitOvertimeReason records the reason for an over-control process.
// The window closes once the owning cycle is marked completed.
func (s *ProcessService) SubmitOvertimeReason(ctx context.Context, processID, operatorID uint, reason string) (domain.Process, error) {
	if reason == "" {
		return domain.Process{}, domain.MissingParameter("reason")
	}
	p, err := s.repo.GetProcess(ctx, processID)
	if err != nil {
		return domain.Process{}, err
	}
	if p.OperatorID != 0 && p.OperatorID != operatorID {
		return domain.Process{}, domain.Forbidden("process %d is assigned to another operator", processID)
	}
	if p.Status != domain.ProcessCompleted {
		return domain.Process{}, domain.InvalidState("process %d is not completed", processID)
	}
	if !p.Timing().Overtime {
		return domain.Process{}, domain.InvalidState("process %d is not overtime", processID)
	}
	cycle, err := s.repo.GetCycle(ctx, p.CycleID)
	if err != nil {
		return domain.Process{}, err
	}
	if cycle.Status == domain.CycleCompleted {
		return domain.Process{}, domain.InvalidState("cycle %d is completed, the reason window is closed", cycle.ID)
	}

	updated, err := s.repo.UpdateProcessFields(ctx, processID, map[string]any{
		"overtime_reason": reason,
	})
	if err != nil {
		return domain.Process{}, err
	}

	_ = s.repo.AppendOperationLog(ctx, domain.OperationLog{
		ProcessID:  processID,
		OperatorID: operatorID,
		Action:     domain.LogActionOvertimeReason,
		Remark:     reason,
	})
	return updated, nil
}

// UpdateProcessOrders rewrites start orders for a cycle. The resulting
// order set must stay unique across the whole cycle, touched rows or not.
func (s *ProcessService) UpdateProcessOrders(ctx context.Context, cycleID uint, orders map[uint]int) error {
	if len(orders) == 0 {
		return domain.MissingParameter("orders")
	}

	processes, err := s.repo.ListProcesses(ctx, cycleID)
	if err != nil {
		return err
	}
	final := make(map[int]uint, len(processes))
	for _, p := range processes {
		order := p.StartOrder
		if next, ok := orders[p.ID]; ok {
			order = next
		}
		if other, taken := final[order]; taken {
			return domain.ValidationFailed("start order %d assigned to both process %d and %d", order, other, p.ID)
		}
		final[order] = p.ID
	}

	return s.repo.UpdateProcessOrders(ctx, cycleID, orders)
}

func (s *ProcessService) GetProcess(ctx context.Context, id uint) (domain.Process, error) {
	return s.repo.GetProcess(ctx, id)
}

func (s *ProcessService) ListProcesses(ctx context.Context, cycleID uint) ([]domain.Process, error) {
	if cycleID == 0 {
		return nil, domain.MissingParameter("cycle_id")
	}
	return s.repo.ListProcesses(ctx, cycleID)
}
