package application

import (
	"context"
	"testing"

	"github.com/MasterCatOne/zzw-gx-sub000/internal/domain"
)

func TestCreateCycleSnapshotsTemplate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	project, template := env.seedProjectWithTemplate(t)

	cycle := env.createCycle(t, project.ID, template.ID, ts(t, 1, 8, 0))
	if cycle.CycleNumber != 1 {
		t.Fatalf("cycle number = %d, want 1", cycle.CycleNumber)
	}
	if cycle.Status != domain.CycleInProgress {
		t.Fatalf("cycle status = %s, want %s", cycle.Status, domain.CycleInProgress)
	}

	processes, err := env.processes.ListProcesses(ctx, cycle.ID)
	if err != nil {
		t.Fatalf("list processes: %v", err)
	}
	if len(processes) != 3 {
		t.Fatalf("process count = %d, want 3", len(processes))
	}
	for _, p := range processes {
		if p.Status != domain.ProcessNotStarted {
			t.Fatalf("process %s status = %s, want %s", p.Name, p.Status, domain.ProcessNotStarted)
		}
		if p.ActualStartTime != nil || p.ActualEndTime != nil {
			t.Fatalf("process %s has timestamps on creation", p.Name)
		}
	}
	if processes[0].Name != "钻孔" || processes[0].ControlTimeMinutes != 60 {
		t.Fatalf("first process = %s/%d, want 钻孔/60", processes[0].Name, processes[0].ControlTimeMinutes)
	}
}

func TestCreateCycleValidations(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	project, template := env.seedProjectWithTemplate(t)

	_, err := env.cycles.CreateCycle(ctx, CreateCycleInput{
		ProjectID: project.ID, TemplateID: 9999, ControlDurationMinutes: 480, StartDate: ts(t, 1, 8, 0),
	})
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("missing template: got %v, want not found", err)
	}

	_, err = env.cycles.CreateCycle(ctx, CreateCycleInput{
		ProjectID: 9999, TemplateID: template.ID, ControlDurationMinutes: 480, StartDate: ts(t, 1, 8, 0),
	})
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("missing project: got %v, want not found", err)
	}

	_, err = env.cycles.CreateCycle(ctx, CreateCycleInput{
		TemplateID: template.ID, ControlDurationMinutes: 480, StartDate: ts(t, 1, 8, 0),
	})
	if !domain.IsKind(err, domain.KindMissingParameter) {
		t.Fatalf("missing project id: got %v, want missing parameter", err)
	}
}

func TestCycleNumbersStaySequentialAcrossDeletes(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	project, template := env.seedProjectWithTemplate(t)

	first := env.createCycle(t, project.ID, template.ID, ts(t, 1, 8, 0))
	env.completeCycle(t, first.ID)
	second := env.createCycle(t, project.ID, template.ID, ts(t, 2, 8, 0))
	env.completeCycle(t, second.ID)

	if err := env.cycles.DeleteCycle(ctx, second.ID); err != nil {
		t.Fatalf("delete cycle: %v", err)
	}

	third := env.createCycle(t, project.ID, template.ID, ts(t, 3, 8, 0))
	if third.CycleNumber != 2 {
		t.Fatalf("cycle number after delete = %d, want 2", third.CycleNumber)
	}
	env.completeCycle(t, third.ID)

	fourth := env.createCycle(t, project.ID, template.ID, ts(t, 4, 8, 0))
	if fourth.CycleNumber != 3 {
		t.Fatalf("next cycle number = %d, want 3", fourth.CycleNumber)
	}

	cycles, err := env.cycles.ListCycles(ctx, project.ID, 0)
	if err != nil {
		t.Fatalf("list cycles: %v", err)
	}
	for i, c := range cycles {
		if c.CycleNumber != i+1 {
			t.Fatalf("cycle %d has number %d, want %d", c.ID, c.CycleNumber, i+1)
		}
	}
}

func TestSecondInProgressCycleRejected(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	project, template := env.seedProjectWithTemplate(t)

	first := env.createCycle(t, project.ID, template.ID, ts(t, 1, 8, 0))
	_, err := env.cycles.CreateCycle(ctx, CreateCycleInput{
		ProjectID:              project.ID,
		TemplateID:             template.ID,
		ControlDurationMinutes: 480,
		StartDate:              ts(t, 2, 8, 0),
	})
	if !domain.IsKind(err, domain.KindConflict) {
		t.Fatalf("second in-progress cycle: got %v, want conflict", err)
	}
	env.completeCycle(t, first.ID)
	env.createCycle(t, project.ID, template.ID, ts(t, 2, 8, 0))
}

func TestUpdateCyclePartialFields(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	project, template := env.seedProjectWithTemplate(t)
	cycle := env.createCycle(t, project.ID, template.ID, ts(t, 1, 8, 0))

	advance := 2.4
	rock := "IV"
	updated, err := env.cycles.UpdateCycle(ctx, cycle.ID, UpdateCycleInput{AdvanceLength: &advance, RockLevel: &rock})
	if err != nil {
		t.Fatalf("update cycle: %v", err)
	}
	if updated.AdvanceLength != 2.4 || updated.RockLevel != "IV" {
		t.Fatalf("updated cycle = advance %.1f rock %s", updated.AdvanceLength, updated.RockLevel)
	}
	if updated.Status != domain.CycleInProgress || updated.CycleNumber != 1 {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	bad := "EXPLODED"
	if _, err := env.cycles.UpdateCycle(ctx, cycle.ID, UpdateCycleInput{Status: &bad}); !domain.IsKind(err, domain.KindValidationFailed) {
		t.Fatalf("bad status: got %v, want validation failed", err)
	}
	if _, err := env.cycles.UpdateCycle(ctx, 9999, UpdateCycleInput{AdvanceLength: &advance}); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("missing cycle: got %v, want not found", err)
	}
}
