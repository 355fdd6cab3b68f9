package http

import (
	"time"

	"github.com/MasterCatOne/zzw-gx-sub000/internal/domain"
)

type operatorResponse struct {
	ID      uint   `json:"id"`
	Account string `json:"account"`
	Name    string `json:"name"`
}

func operatorResponseFrom(op domain.Operator) operatorResponse {
	return operatorResponse{ID: op.ID, Account: op.Account, Name: op.Name}
}

type projectResponse struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	CurrentCycleNumber int    `json:"current_cycle_number"`
}

func projectResponseFrom(p domain.Project) projectResponse {
	return projectResponse{ID: p.ID, Name: p.Name, CurrentCycleNumber: p.CurrentCycleNumber}
}

type processDefResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

func processDefResponseFrom(def domain.ProcessDef) processDefResponse {
	return processDefResponse{ID: def.ID, Name: def.Name, Category: def.Category}
}

type templateItemResponse struct {
	ID                 uint   `json:"id"`
	ProcessDefID       uint   `json:"process_def_id"`
	ProcessName        string `json:"process_name"`
	ControlTimeMinutes int    `json:"control_time_minutes"`
	Order              int    `json:"order"`
}

type templateResponse struct {
	ID    uint                   `json:"id"`
	Name  string                 `json:"name"`
	Items []templateItemResponse `json:"items,omitempty"`
}

func templateResponseFrom(t domain.Template) templateResponse {
	out := templateResponse{ID: t.ID, Name: t.Name}
	for _, item := range t.Items {
		out.Items = append(out.Items, templateItemResponse{
			ID:                 item.ID,
			ProcessDefID:       item.ProcessDefID,
			ProcessName:        item.ProcessName,
			ControlTimeMinutes: item.ControlTimeMinutes,
			Order:              item.Order,
		})
	}
	return out
}

type cycleResponse struct {
	ID                     uint       `json:"id"`
	ProjectID              uint       `json:"project_id"`
	CycleNumber            int        `json:"cycle_number"`
	ControlDurationMinutes int        `json:"control_duration_minutes"`
	StartDate              time.Time  `json:"start_date"`
	EndDate                *time.Time `json:"end_date,omitempty"`
	EstimatedStartDate     *time.Time `json:"estimated_start_date,omitempty"`
	EstimatedEndDate       *time.Time `json:"estimated_end_date,omitempty"`
	EstimatedMileage       string     `json:"estimated_mileage"`
	AdvanceLength          float64    `json:"advance_length"`
	RockLevel              string     `json:"rock_level"`
	Status                 string     `json:"status"`
}

func cycleResponseFrom(c domain.Cycle) cycleResponse {
	return cycleResponse{
		ID:                     c.ID,
		ProjectID:              c.ProjectID,
		CycleNumber:            c.CycleNumber,
		ControlDurationMinutes: c.ControlDurationMinutes,
		StartDate:              c.StartDate,
		EndDate:                c.EndDate,
		EstimatedStartDate:     c.EstimatedStartDate,
		EstimatedEndDate:       c.EstimatedEndDate,
		EstimatedMileage:       c.EstimatedMileage,
		AdvanceLength:          c.AdvanceLength,
		RockLevel:              c.RockLevel,
		Status:                 string(c.Status),
	}
}

type processResponse struct {
	ID                 uint       `json:"id"`
	CycleID            uint       `json:"cycle_id"`
	ProcessDefID       uint       `json:"process_def_id"`
	Name               string     `json:"name"`
	ControlTimeMinutes int        `json:"control_time_minutes"`
	EstimatedStartTime *time.Time `json:"estimated_start_time,omitempty"`
	EstimatedEndTime   *time.Time `json:"estimated_end_time,omitempty"`
	ActualStartTime    *time.Time `json:"actual_start_time,omitempty"`
	ActualEndTime      *time.Time `json:"actual_end_time,omitempty"`
	Status             string     `json:"status"`
	OperatorID         uint       `json:"operator_id"`
	StartOrder         int        `json:"start_order"`
	AdvanceLength      float64    `json:"advance_length"`
	OvertimeReason     string     `json:"overtime_reason"`
	Remark             string     `json:"remark"`
	FinalTimeMinutes   int        `json:"final_time_minutes"`
	SavedTimeMinutes   int        `json:"saved_time_minutes"`
	OvertimeMinutes    int        `json:"overtime_minutes"`
	Overtime           bool       `json:"overtime"`
}

func processResponseFrom(p domain.Process) processResponse {
	timing := p.Timing()
	return processResponse{
		ID:                 p.ID,
		CycleID:            p.CycleID,
		ProcessDefID:       p.ProcessDefID,
		Name:               p.Name,
		ControlTimeMinutes: p.ControlTimeMinutes,
		EstimatedStartTime: p.EstimatedStartTime,
		EstimatedEndTime:   p.EstimatedEndTime,
		ActualStartTime:    p.ActualStartTime,
		ActualEndTime:      p.ActualEndTime,
		Status:             string(p.Status),
		OperatorID:         p.OperatorID,
		StartOrder:         p.StartOrder,
		AdvanceLength:      p.AdvanceLength,
		OvertimeReason:     p.OvertimeReason,
		Remark:             p.Remark,
		FinalTimeMinutes:   timing.FinalTimeMinutes,
		SavedTimeMinutes:   timing.SavedTimeMinutes,
		OvertimeMinutes:    timing.OvertimeMinutes,
		Overtime:           timing.Overtime,
	}
}
