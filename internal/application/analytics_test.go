package application

import (
	"context"
	"math"
	"testing"

	"github.com/MasterCatOne/zzw-gx-sub000/internal/domain"
)

func TestCalculateCycleProcessTimeOverlapAware(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	project, template := env.seedProjectWithTemplate(t)
	cycle := env.createCycle(t, project.ID, template.ID, ts(t, 1, 8, 0))
	processes, _ := env.processes.ListProcesses(ctx, cycle.ID)

	// 8:00-10:00 and 9:30-11:00 overlap by 30 minutes.
	if _, _, err := env.processes.Start(ctx, processes[0].ID, 1, tsp(t, 1, 8, 0)); err != nil {
		t.Fatalf("start first: %v", err)
	}
	if _, _, err := env.processes.Start(ctx, processes[1].ID, 1, tsp(t, 1, 9, 30)); err != nil {
		t.Fatalf("start second: %v", err)
	}
	if _, _, err := env.processes.Complete(ctx, processes[0].ID, 1, tsp(t, 1, 10, 0), "理由"); err != nil {
		t.Fatalf("complete first: %v", err)
	}
	if _, _, err := env.processes.Complete(ctx, processes[1].ID, 1, tsp(t, 1, 11, 0), ""); err != nil {
		t.Fatalf("complete second: %v", err)
	}

	summary, err := env.analytics.CalculateCycleProcessTime(ctx, cycle.ID)
	if err != nil {
		t.Fatalf("cycle process time: %v", err)
	}
	want := domain.CycleTimeSummary{
		TotalIndividualTimeMinutes: 210,
		TotalCycleTimeMinutes:      180,
		OverlapTimeMinutes:         30,
	}
	if summary != want {
		t.Fatalf("summary = %+v, want %+v", summary, want)
	}

	if _, err := env.analytics.CalculateCycleProcessTime(ctx, 9999); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("missing cycle: got %v, want not found", err)
	}
}

func TestMonthlyStatistics(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	project, template := env.seedProjectWithTemplate(t)

	// May cycle: one 90-minute process against control 60.
	may := env.createCycle(t, project.ID, template.ID, ts(t, 10, 8, 0))
	processes, _ := env.processes.ListProcesses(ctx, may.ID)
	if _, _, err := env.processes.Start(ctx, processes[0].ID, 1, tsp(t, 10, 8, 0)); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, _, err := env.processes.Complete(ctx, processes[0].ID, 1, tsp(t, 10, 9, 30), "理由"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	advance := 2.5
	if _, err := env.cycles.UpdateCycle(ctx, may.ID, UpdateCycleInput{AdvanceLength: &advance}); err != nil {
		t.Fatalf("set advance: %v", err)
	}
	env.completeCycle(t, may.ID)

	// June cycle: one 30-minute process against control 60.
	june := env.createCycle(t, project.ID, template.ID, ts(t, 1, 8, 0).AddDate(0, 1, 0))
	processes, _ = env.processes.ListProcesses(ctx, june.ID)
	start := ts(t, 1, 8, 0).AddDate(0, 1, 0)
	end := ts(t, 1, 8, 30).AddDate(0, 1, 0)
	if _, _, err := env.processes.Start(ctx, processes[0].ID, 1, &start); err != nil {
		t.Fatalf("start june: %v", err)
	}
	if _, _, err := env.processes.Complete(ctx, processes[0].ID, 1, &end, ""); err != nil {
		t.Fatalf("complete june: %v", err)
	}

	stat, err := env.analytics.MonthlyProcessTimeStatistics(ctx, project.ID, 2025, 5)
	if err != nil {
		t.Fatalf("monthly process time: %v", err)
	}
	if stat.CompletedProcesses != 1 || stat.TotalActualMinutes != 90 || stat.TotalControlMinutes != 60 {
		t.Fatalf("may stat = %+v", stat)
	}
	if math.Abs(stat.AverageProcessHours-1.5) > 1e-9 {
		t.Fatalf("average hours = %f, want 1.5", stat.AverageProcessHours)
	}
	if stat.TotalSavedHours != 0 {
		t.Fatalf("saved hours = %f, want 0", stat.TotalSavedHours)
	}

	stat, err = env.analytics.MonthlyProcessTimeStatistics(ctx, project.ID, 2025, 6)
	if err != nil {
		t.Fatalf("june process time: %v", err)
	}
	if stat.CompletedProcesses != 1 || math.Abs(stat.TotalSavedHours-0.5) > 1e-9 {
		t.Fatalf("june stat = %+v", stat)
	}

	adv, err := env.analytics.MonthlyAdvanceStatistics(ctx, project.ID, 2025, 5)
	if err != nil {
		t.Fatalf("monthly advance: %v", err)
	}
	if adv.CycleCount != 1 || adv.TotalAdvanceLength != 2.5 {
		t.Fatalf("advance stat = %+v", adv)
	}

	if _, err := env.analytics.MonthlyProcessTimeStatistics(ctx, project.ID, 2025, 13); !domain.IsKind(err, domain.KindValidationFailed) {
		t.Fatalf("month 13: got %v, want validation failed", err)
	}
}

func TestWeeklyOvertimeStatistics(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	project, template := env.seedProjectWithTemplate(t)

	// 2025-05-07 is a Wednesday; its week runs Mon 05-05 .. Sun 05-11.
	cycle := env.createCycle(t, project.ID, template.ID, ts(t, 7, 8, 0))
	processes, _ := env.processes.ListProcesses(ctx, cycle.ID)
	if _, _, err := env.processes.Start(ctx, processes[0].ID, 1, tsp(t, 7, 8, 0)); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, _, err := env.processes.Complete(ctx, processes[0].ID, 1, tsp(t, 7, 9, 30), "理由"); err != nil {
		t.Fatalf("complete overtime: %v", err)
	}
	if _, _, err := env.processes.Start(ctx, processes[1].ID, 1, tsp(t, 7, 9, 30)); err != nil {
		t.Fatalf("start second: %v", err)
	}
	if _, _, err := env.processes.Complete(ctx, processes[1].ID, 1, tsp(t, 7, 10, 30), ""); err != nil {
		t.Fatalf("complete saved: %v", err)
	}

	stat, err := env.analytics.WeeklyOvertimeStatistics(ctx, project.ID, ts(t, 9, 12, 0))
	if err != nil {
		t.Fatalf("weekly stat: %v", err)
	}
	if !stat.WeekStart.Equal(ts(t, 5, 0, 0)) {
		t.Fatalf("week start = %v, want Monday 2025-05-05", stat.WeekStart)
	}
	if math.Abs(stat.OvertimeHours-0.5) > 1e-9 {
		t.Fatalf("overtime hours = %f, want 0.5", stat.OvertimeHours)
	}
	if math.Abs(stat.SavedHours-0.5) > 1e-9 {
		t.Fatalf("saved hours = %f, want 0.5", stat.SavedHours)
	}

	// The following week sees none of it.
	stat, err = env.analytics.WeeklyOvertimeStatistics(ctx, project.ID, ts(t, 14, 12, 0))
	if err != nil {
		t.Fatalf("next week stat: %v", err)
	}
	if stat.OvertimeHours != 0 || stat.SavedHours != 0 {
		t.Fatalf("next week stat = %+v", stat)
	}
}

func TestOvertimeWithoutReasonLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	project, template := env.seedProjectWithTemplate(t)
	cycle := env.createCycle(t, project.ID, template.ID, ts(t, 1, 8, 0))
	processes, _ := env.processes.ListProcesses(ctx, cycle.ID)
	first := processes[0]

	if _, _, err := env.processes.Start(ctx, first.ID, 1, tsp(t, 1, 8, 0)); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, _, err := env.processes.Complete(ctx, first.ID, 1, tsp(t, 1, 9, 30), ""); err != nil {
		t.Fatalf("complete: %v", err)
	}

	pending, err := env.analytics.OvertimeWithoutReason(ctx, project.ID)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != first.ID {
		t.Fatalf("pending = %+v, want process %d", pending, first.ID)
	}

	if _, err := env.processes.SubmitOvertimeReason(ctx, first.ID, 1, "岩层破碎"); err != nil {
		t.Fatalf("submit reason: %v", err)
	}
	pending, err = env.analytics.OvertimeWithoutReason(ctx, project.ID)
	if err != nil {
		t.Fatalf("pending after reason: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending after reason = %d, want 0", len(pending))
	}
}
