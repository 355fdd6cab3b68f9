package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MasterCatOne/zzw-gx-sub000/internal/domain"
)

func newTestRepo(t *testing.T) *TrackingRepository {
	t.Helper()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "cycletrack_test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return NewTrackingRepository(db)
}

func seedCycle(t *testing.T, repo *TrackingRepository, projectID uint, start time.Time, processes []domain.Process) domain.Cycle {
	t.Helper()
	cycle, err := repo.CreateCycleSnapshot(context.Background(), domain.Cycle{
		ProjectID:              projectID,
		ControlDurationMinutes: 480,
		StartDate:              start,
		Status:                 domain.CycleInProgress,
	}, processes)
	if err != nil {
		t.Fatalf("create cycle snapshot: %v", err)
	}
	return cycle
}

func TestCycleNumberingAndDeletedRowReuse(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	project, err := repo.CreateProject(ctx, domain.Project{Name: "隧道一号"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	start := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	first := seedCycle(t, repo, project.ID, start, nil)
	if first.CycleNumber != 1 {
		t.Fatalf("first cycle number = %d, want 1", first.CycleNumber)
	}
	if _, err := repo.UpdateCycleFields(ctx, first.ID, map[string]any{"status": string(domain.CycleCompleted)}); err != nil {
		t.Fatalf("complete first cycle: %v", err)
	}

	second := seedCycle(t, repo, project.ID, start.AddDate(0, 0, 1), nil)
	if second.CycleNumber != 2 {
		t.Fatalf("second cycle number = %d, want 2", second.CycleNumber)
	}

	if err := repo.SoftDeleteCycle(ctx, second.ID); err != nil {
		t.Fatalf("delete second cycle: %v", err)
	}
	if _, err := repo.GetCycle(ctx, second.ID); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("deleted cycle still readable: %v", err)
	}

	// Number 2 is free again and the soft-deleted row must be reused.
	third := seedCycle(t, repo, project.ID, start.AddDate(0, 0, 2), nil)
	if third.CycleNumber != 2 {
		t.Fatalf("recreated cycle number = %d, want 2", third.CycleNumber)
	}
	if third.ID != second.ID {
		t.Fatalf("recreated cycle should reuse row %d, got %d", second.ID, third.ID)
	}

	updated, err := repo.GetProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("reload project: %v", err)
	}
	if updated.CurrentCycleNumber != 2 {
		t.Fatalf("project current cycle number = %d, want 2", updated.CurrentCycleNumber)
	}
}

func TestSingleInProgressCycleInvariant(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	project, _ := repo.CreateProject(ctx, domain.Project{Name: "隧道二号"})
	start := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	first := seedCycle(t, repo, project.ID, start, nil)

	_, err := repo.CreateCycleSnapshot(ctx, domain.Cycle{
		ProjectID:              project.ID,
		ControlDurationMinutes: 480,
		StartDate:              start.AddDate(0, 0, 1),
	}, nil)
	if !domain.IsKind(err, domain.KindConflict) {
		t.Fatalf("second in-progress creation: got %v, want conflict", err)
	}

	if _, err := repo.UpdateCycleFields(ctx, first.ID, map[string]any{"status": string(domain.CyclePaused)}); err != nil {
		t.Fatalf("pause first cycle: %v", err)
	}
	second := seedCycle(t, repo, project.ID, start.AddDate(0, 0, 1), nil)

	// Resuming the paused cycle now collides with the in-progress one.
	if _, err := repo.UpdateCycleFields(ctx, first.ID, map[string]any{"status": string(domain.CycleInProgress)}); !domain.IsKind(err, domain.KindConflict) {
		t.Fatalf("resume while %d runs: got %v, want conflict", second.ID, err)
	}
}

func TestSoftDeleteCascadesToProcesses(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	project, _ := repo.CreateProject(ctx, domain.Project{Name: "隧道三号"})
	start := time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC)
	cycle := seedCycle(t, repo, project.ID, start, []domain.Process{
		{Name: "钻孔", ControlTimeMinutes: 60, StartOrder: 1, Status: domain.ProcessNotStarted},
		{Name: "装药", ControlTimeMinutes: 30, StartOrder: 2, Status: domain.ProcessNotStarted},
	})

	processes, err := repo.ListProcesses(ctx, cycle.ID)
	if err != nil {
		t.Fatalf("list processes: %v", err)
	}
	if len(processes) != 2 {
		t.Fatalf("process count = %d, want 2", len(processes))
	}

	if err := repo.SoftDeleteCycle(ctx, cycle.ID); err != nil {
		t.Fatalf("delete cycle: %v", err)
	}
	processes, err = repo.ListProcesses(ctx, cycle.ID)
	if err != nil {
		t.Fatalf("list processes after delete: %v", err)
	}
	if len(processes) != 0 {
		t.Fatalf("processes survived cycle delete: %d", len(processes))
	}
}

func TestGetPredecessor(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	project, _ := repo.CreateProject(ctx, domain.Project{Name: "隧道四号"})
	start := time.Date(2025, 4, 3, 8, 0, 0, 0, time.UTC)
	cycle := seedCycle(t, repo, project.ID, start, []domain.Process{
		{Name: "钻孔", ControlTimeMinutes: 60, StartOrder: 10, Status: domain.ProcessNotStarted},
		{Name: "装药", ControlTimeMinutes: 30, StartOrder: 20, Status: domain.ProcessNotStarted},
		{Name: "爆破", ControlTimeMinutes: 15, StartOrder: 30, Status: domain.ProcessNotStarted},
	})

	pred, err := repo.GetPredecessor(ctx, cycle.ID, 30)
	if err != nil {
		t.Fatalf("get predecessor: %v", err)
	}
	if pred == nil || pred.Name != "装药" {
		t.Fatalf("predecessor of order 30 = %+v, want 装药", pred)
	}

	pred, err = repo.GetPredecessor(ctx, cycle.ID, 10)
	if err != nil {
		t.Fatalf("get predecessor of first: %v", err)
	}
	if pred != nil {
		t.Fatalf("first process should have no predecessor, got %+v", pred)
	}
}

func TestListOvertimePendingReason(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	project, _ := repo.CreateProject(ctx, domain.Project{Name: "隧道五号"})
	start := time.Date(2025, 4, 4, 8, 0, 0, 0, time.UTC)
	end := start.Add(150 * time.Minute)
	cycle := seedCycle(t, repo, project.ID, start, []domain.Process{
		{Name: "钻孔", ControlTimeMinutes: 120, StartOrder: 1, Status: domain.ProcessCompleted, ActualStartTime: &start, ActualEndTime: &end},
		{Name: "装药", ControlTimeMinutes: 180, StartOrder: 2, Status: domain.ProcessCompleted, ActualStartTime: &start, ActualEndTime: &end},
	})

	pending, err := repo.ListOvertimePendingReason(ctx, project.ID)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 || pending[0].Name != "钻孔" {
		t.Fatalf("pending = %+v, want only 钻孔", pending)
	}

	if _, err := repo.UpdateProcessFields(ctx, pending[0].ID, map[string]any{"overtime_reason": "岩层变化"}); err != nil {
		t.Fatalf("set reason: %v", err)
	}
	pending, err = repo.ListOvertimePendingReason(ctx, project.ID)
	if err != nil {
		t.Fatalf("list pending after reason: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending after reason = %d, want 0", len(pending))
	}

	// A completed cycle closes the follow-up window entirely.
	overtimeStart := start.Add(5 * time.Hour)
	overtimeEnd := overtimeStart.Add(200 * time.Minute)
	p, err := repo.CreateProcess(ctx, domain.Process{
		CycleID:            cycle.ID,
		Name:               "出渣",
		ControlTimeMinutes: 60,
		StartOrder:         3,
		Status:             domain.ProcessCompleted,
		ActualStartTime:    &overtimeStart,
		ActualEndTime:      &overtimeEnd,
	})
	if err != nil {
		t.Fatalf("create process: %v", err)
	}
	if _, err := repo.UpdateCycleFields(ctx, cycle.ID, map[string]any{"status": string(domain.CycleCompleted)}); err != nil {
		t.Fatalf("complete cycle: %v", err)
	}
	pending, err = repo.ListOvertimePendingReason(ctx, project.ID)
	if err != nil {
		t.Fatalf("list pending after cycle completion: %v", err)
	}
	for _, item := range pending {
		if item.ID == p.ID {
			t.Fatalf("completed cycle's process %d still pending", p.ID)
		}
	}
}

func TestUpdateProcessOrders(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	project, _ := repo.CreateProject(ctx, domain.Project{Name: "隧道六号"})
	start := time.Date(2025, 4, 5, 8, 0, 0, 0, time.UTC)
	cycle := seedCycle(t, repo, project.ID, start, []domain.Process{
		{Name: "钻孔", ControlTimeMinutes: 60, StartOrder: 1, Status: domain.ProcessNotStarted},
		{Name: "装药", ControlTimeMinutes: 30, StartOrder: 2, Status: domain.ProcessNotStarted},
	})
	processes, _ := repo.ListProcesses(ctx, cycle.ID)

	orders := map[uint]int{processes[0].ID: 2, processes[1].ID: 1}
	if err := repo.UpdateProcessOrders(ctx, cycle.ID, orders); err != nil {
		t.Fatalf("update orders: %v", err)
	}

	processes, _ = repo.ListProcesses(ctx, cycle.ID)
	if processes[0].Name != "装药" || processes[1].Name != "钻孔" {
		t.Fatalf("order after swap: %s, %s", processes[0].Name, processes[1].Name)
	}

	err := repo.UpdateProcessOrders(ctx, cycle.ID, map[uint]int{99999: 5})
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("reorder unknown process: got %v, want not found", err)
	}

	// After the swap 装药 holds 1 and 钻孔 holds 2; moving 装药 onto 2
	// must fail inside the write transaction, not just in the caller.
	err = repo.UpdateProcessOrders(ctx, cycle.ID, map[uint]int{processes[0].ID: 2})
	if !domain.IsKind(err, domain.KindValidationFailed) {
		t.Fatalf("duplicate reorder: got %v, want validation failed", err)
	}
	processes, _ = repo.ListProcesses(ctx, cycle.ID)
	if processes[0].StartOrder != 1 || processes[1].StartOrder != 2 {
		t.Fatalf("orders changed by rejected reorder: %d, %d", processes[0].StartOrder, processes[1].StartOrder)
	}
}

func TestCreateProcessRejectsTakenOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	project, _ := repo.CreateProject(ctx, domain.Project{Name: "隧道七号"})
	start := time.Date(2025, 4, 6, 8, 0, 0, 0, time.UTC)
	cycle := seedCycle(t, repo, project.ID, start, []domain.Process{
		{Name: "钻孔", ControlTimeMinutes: 60, StartOrder: 1, Status: domain.ProcessNotStarted},
		{Name: "装药", ControlTimeMinutes: 30, StartOrder: 2, Status: domain.ProcessNotStarted},
	})

	_, err := repo.CreateProcess(ctx, domain.Process{
		CycleID:            cycle.ID,
		Name:               "出渣",
		ControlTimeMinutes: 30,
		StartOrder:         2,
		Status:             domain.ProcessNotStarted,
	})
	if !domain.IsKind(err, domain.KindConflict) {
		t.Fatalf("taken order: got %v, want conflict", err)
	}

	if _, err := repo.CreateProcess(ctx, domain.Process{
		CycleID:            cycle.ID,
		Name:               "出渣",
		ControlTimeMinutes: 30,
		StartOrder:         3,
		Status:             domain.ProcessNotStarted,
	}); err != nil {
		t.Fatalf("create with free order: %v", err)
	}
	processes, _ := repo.ListProcesses(ctx, cycle.ID)
	if len(processes) != 3 {
		t.Fatalf("process count = %d, want 3", len(processes))
	}
}
