package domain

import "time"

type CycleStatus string

const (
	CycleInProgress CycleStatus = "IN_PROGRESS"
	CycleCompleted  CycleStatus = "COMPLETED"
	CyclePaused     CycleStatus = "PAUSED"
)

type ProcessStatus string

const (
	ProcessNotStarted ProcessStatus = "NOT_STARTED"
	ProcessInProgress ProcessStatus = "IN_PROGRESS"
	ProcessCompleted  ProcessStatus = "COMPLETED"
)

// Project is the work site a cycle belongs to. The core only reads its
// identity and writes back the denormalized current cycle number.
type Project struct {
	ID                 uint
	Name               string
	CurrentCycleNumber int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ProcessDef is a catalog entry: a named process with a category label.
type ProcessDef struct {
	ID        uint
	Name      string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Template struct {
	ID        uint
	Name      string
	Items     []TemplateItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TemplateItem struct {
	ID                 uint
	TemplateID         uint
	ProcessDefID       uint
	ProcessName        string
	ControlTimeMinutes int
	Order              int
}

type Cycle struct {
	ID                     uint
	ProjectID              uint
	CycleNumber            int
	ControlDurationMinutes int
	StartDate              time.Time
	EndDate                *time.Time
	EstimatedStartDate     *time.Time
	EstimatedEndDate       *time.Time
	EstimatedMileage       string
	AdvanceLength          float64
	RockLevel              string
	Status                 CycleStatus
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

type Process struct {
	ID                 uint
	CycleID            uint
	ProcessDefID       uint
	Name               string
	ControlTimeMinutes int
	EstimatedStartTime *time.Time
	EstimatedEndTime   *time.Time
	ActualStartTime    *time.Time
	ActualEndTime      *time.Time
	Status             ProcessStatus
	OperatorID         uint
	StartOrder         int
	AdvanceLength      float64
	OvertimeReason     string
	Remark             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Timing holds the derived per-process figures. Computed on read, never stored.
type Timing struct {
	FinalTimeMinutes int
	SavedTimeMinutes int
	OvertimeMinutes  int
	Overtime         bool
}

// Timing derives elapsed/saved/overtime minutes from the actual timestamps.
// The zero value is returned while either timestamp is unset.
func (p Process) Timing() Timing {
	if p.ActualStartTime == nil || p.ActualEndTime == nil {
		return Timing{}
	}
	final := int(p.ActualEndTime.Sub(*p.ActualStartTime) / time.Minute)
	t := Timing{FinalTimeMinutes: final}
	if final > p.ControlTimeMinutes {
		t.OvertimeMinutes = final - p.ControlTimeMinutes
		t.Overtime = true
	} else {
		t.SavedTimeMinutes = p.ControlTimeMinutes - final
	}
	return t
}

// StartWarning is the advisory payload returned when a process is started
// while its predecessor has not completed.
type StartWarning struct {
	PredecessorID     uint          `json:"predecessor_id"`
	PredecessorName   string        `json:"predecessor_name"`
	PredecessorStatus ProcessStatus `json:"predecessor_status"`
}

type OperationLog struct {
	ID         uint
	ProcessID  uint
	OperatorID uint
	Action     string
	Remark     string
	CreatedAt  time.Time
}

const (
	LogActionStart          = "START"
	LogActionFinish         = "FINISH"
	LogActionOvertimeReason = "OVERTIME_REASON"
)

type Operator struct {
	ID           uint
	Account      string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type OperatorToken struct {
	ID         uint
	OperatorID uint
	Name       string
	TokenHash  string
	ExpiresAt  *time.Time
	CreatedAt  time.Time
}

// CycleTimeSummary is the overlap-aware per-cycle aggregate.
type CycleTimeSummary struct {
	TotalIndividualTimeMinutes int `json:"total_individual_time_minutes"`
	TotalCycleTimeMinutes      int `json:"total_cycle_time_minutes"`
	OverlapTimeMinutes         int `json:"overlap_time_minutes"`
}

type MonthlyProcessStat struct {
	Year                int     `json:"year"`
	Month               int     `json:"month"`
	CompletedProcesses  int     `json:"completed_processes"`
	AverageProcessHours float64 `json:"average_process_hours"`
	TotalSavedHours     float64 `json:"total_saved_hours"`
	TotalActualMinutes  int     `json:"total_actual_minutes"`
	TotalControlMinutes int     `json:"total_control_minutes"`
}

type MonthlyAdvanceStat struct {
	Year               int     `json:"year"`
	Month              int     `json:"month"`
	CycleCount         int     `json:"cycle_count"`
	TotalAdvanceLength float64 `json:"total_advance_length"`
}

type WeeklyOvertimeStat struct {
	WeekStart     time.Time `json:"week_start"`
	WeekEnd       time.Time `json:"week_end"`
	OvertimeHours float64   `json:"overtime_hours"`
	SavedHours    float64   `json:"saved_hours"`
}
