package domain

import (
	"context"
	"time"
)

// TrackingRepository is the persistence port for the tracking engine.
// Multi-step mutations (cycle snapshot creation, status updates with
// uniqueness checks, order rewrites) run as a single transaction inside
// the implementation so that read-then-write invariants hold under
// concurrent requests.
type TrackingRepository interface {
	CreateProject(ctx context.Context, value Project) (Project, error)
	GetProject(ctx context.Context, id uint) (Project, error)
	ListProjects(ctx context.Context, query string, limit int) ([]Project, error)

	CreateProcessDef(ctx context.Context, value ProcessDef) (ProcessDef, error)
	ListProcessDefs(ctx context.Context, query string, limit int) ([]ProcessDef, error)

	CreateTemplate(ctx context.Context, value Template) (Template, error)
	GetTemplate(ctx context.Context, id uint) (Template, error)
	ListTemplates(ctx context.Context, query string, limit int) ([]Template, error)

	// CreateCycleSnapshot persists the cycle and its process snapshot
	// atomically: assigns the next cycle number for the project, reuses a
	// soft-deleted (project, number) row when present, rejects a second
	// IN_PROGRESS cycle with Conflict, and writes the project's current
	// cycle number back.
	CreateCycleSnapshot(ctx context.Context, cycle Cycle, processes []Process) (Cycle, error)
	GetCycle(ctx context.Context, id uint) (Cycle, error)
	GetCycleByNumber(ctx context.Context, projectID uint, number int) (Cycle, error)
	ListCycles(ctx context.Context, projectID uint, limit int) ([]Cycle, error)
	ListCyclesStartedBetween(ctx context.Context, projectID uint, from, to time.Time) ([]Cycle, error)
	// UpdateCycleFields applies a partial update. Setting status to
	// IN_PROGRESS fails with Conflict when another live cycle of the same
	// project is already in progress; the check and the write share a
	// transaction.
	UpdateCycleFields(ctx context.Context, id uint, fields map[string]any) (Cycle, error)
	// SoftDeleteCycle soft-deletes the cycle and cascades to its processes.
	SoftDeleteCycle(ctx context.Context, id uint) error

	CreateProcess(ctx context.Context, value Process) (Process, error)
	GetProcess(ctx context.Context, id uint) (Process, error)
	// GetPredecessor returns the live process in the cycle with the
	// greatest start order strictly below the given one, or nil.
	GetPredecessor(ctx context.Context, cycleID uint, startOrder int) (*Process, error)
	ListProcesses(ctx context.Context, cycleID uint) ([]Process, error)
	UpdateProcessFields(ctx context.Context, id uint, fields map[string]any) (Process, error)
	UpdateProcessOrders(ctx context.Context, cycleID uint, orders map[uint]int) error
	// ListOvertimePendingReason returns completed over-control processes
	// with no recorded reason whose owning cycle has not completed.
	ListOvertimePendingReason(ctx context.Context, projectID uint) ([]Process, error)

	AppendOperationLog(ctx context.Context, value OperationLog) error

	CreateOperator(ctx context.Context, value Operator) (Operator, error)
	GetOperator(ctx context.Context, id uint) (Operator, error)
	GetOperatorByAccount(ctx context.Context, account string) (Operator, error)
	CountOperators(ctx context.Context) (int64, error)
	CreateOperatorToken(ctx context.Context, value OperatorToken) (OperatorToken, error)
	GetOperatorTokenByHash(ctx context.Context, tokenHash string) (OperatorToken, error)
}
