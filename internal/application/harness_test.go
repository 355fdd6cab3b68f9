package application

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	sqliteadapter "github.com/MasterCatOne/zzw-gx-sub000/internal/adapters/db/sqlite"
	"github.com/MasterCatOne/zzw-gx-sub000/internal/domain"
)

type testEnv struct {
	repo      domain.TrackingRepository
	catalog   *CatalogService
	cycles    *CycleService
	processes *ProcessService
	analytics *AnalyticsService
	reports   *ReportService
	auth      *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "cycletrack_test.db")

	db, err := sqliteadapter.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := sqliteadapter.RunMigrations(ctx, db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	repo := sqliteadapter.NewTrackingRepository(db)
	return &testEnv{
		repo:      repo,
		catalog:   NewCatalogService(repo),
		cycles:    NewCycleService(repo),
		processes: NewProcessService(repo),
		analytics: NewAnalyticsService(repo),
		reports:   NewReportService(repo),
		auth:      NewAuthService(repo),
	}
}

// seedProjectWithTemplate creates a project plus the standard 3-item
// template (controls 60/90/30, orders 1/2/3).
func (env *testEnv) seedProjectWithTemplate(t *testing.T) (domain.Project, domain.Template) {
	t.Helper()
	ctx := context.Background()

	project, err := env.catalog.CreateProject(ctx, "青岩隧道")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	template, err := env.catalog.CreateTemplate(ctx, "标准循环", []TemplateItemInput{
		{ProcessName: "钻孔", ControlTimeMinutes: 60, Order: 1},
		{ProcessName: "装药爆破", ControlTimeMinutes: 90, Order: 2},
		{ProcessName: "出渣", ControlTimeMinutes: 30, Order: 3},
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	return project, template
}

func (env *testEnv) createCycle(t *testing.T, projectID, templateID uint, start time.Time) domain.Cycle {
	t.Helper()
	cycle, err := env.cycles.CreateCycle(context.Background(), CreateCycleInput{
		ProjectID:              projectID,
		TemplateID:             templateID,
		ControlDurationMinutes: 480,
		StartDate:              start,
	})
	if err != nil {
		t.Fatalf("create cycle: %v", err)
	}
	return cycle
}

func (env *testEnv) completeCycle(t *testing.T, cycleID uint) {
	t.Helper()
	status := string(domain.CycleCompleted)
	if _, err := env.cycles.UpdateCycle(context.Background(), cycleID, UpdateCycleInput{Status: &status}); err != nil {
		t.Fatalf("complete cycle %d: %v", cycleID, err)
	}
}

func ts(t *testing.T, day, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2025, 5, day, hour, minute, 0, 0, time.UTC)
}

func tsp(t *testing.T, day, hour, minute int) *time.Time {
	t.Helper()
	v := ts(t, day, hour, minute)
	return &v
}
