package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

type projectView struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	CurrentCycleNumber int    `json:"current_cycle_number"`
}

type processDefView struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type templateItemView struct {
	ID                 uint   `json:"id"`
	ProcessDefID       uint   `json:"process_def_id"`
	ProcessName        string `json:"process_name"`
	ControlTimeMinutes int    `json:"control_time_minutes"`
	Order              int    `json:"order"`
}

type templateView struct {
	ID    uint               `json:"id"`
	Name  string             `json:"name"`
	Items []templateItemView `json:"items"`
}

type cycleView struct {
	ID                     uint       `json:"id"`
	ProjectID              uint       `json:"project_id"`
	CycleNumber            int        `json:"cycle_number"`
	ControlDurationMinutes int        `json:"control_duration_minutes"`
	StartDate              time.Time  `json:"start_date"`
	EndDate                *time.Time `json:"end_date"`
	AdvanceLength          float64    `json:"advance_length"`
	RockLevel              string     `json:"rock_level"`
	Status                 string     `json:"status"`
}

type processView struct {
	ID                 uint       `json:"id"`
	CycleID            uint       `json:"cycle_id"`
	Name               string     `json:"name"`
	ControlTimeMinutes int        `json:"control_time_minutes"`
	ActualStartTime    *time.Time `json:"actual_start_time"`
	ActualEndTime      *time.Time `json:"actual_end_time"`
	Status             string     `json:"status"`
	OperatorID         uint       `json:"operator_id"`
	StartOrder         int        `json:"start_order"`
	OvertimeReason     string     `json:"overtime_reason"`
	FinalTimeMinutes   int        `json:"final_time_minutes"`
	OvertimeMinutes    int        `json:"overtime_minutes"`
	SavedTimeMinutes   int        `json:"saved_time_minutes"`
	Overtime           bool       `json:"overtime"`
}

type startWarningView struct {
	PredecessorID     uint   `json:"predecessor_id"`
	PredecessorName   string `json:"predecessor_name"`
	PredecessorStatus string `json:"predecessor_status"`
}

type startResultView struct {
	Process processView       `json:"process"`
	Warning *startWarningView `json:"warning"`
}

type completeResultView struct {
	Process       processView `json:"process"`
	ReasonPending bool        `json:"reason_pending"`
}

type timeSummaryView struct {
	TotalIndividualTimeMinutes int `json:"total_individual_time_minutes"`
	TotalCycleTimeMinutes      int `json:"total_cycle_time_minutes"`
	OverlapTimeMinutes         int `json:"overlap_time_minutes"`
}

type reportView struct {
	ID     string `json:"id"`
	Header struct {
		CycleNumber            int        `json:"cycle_number"`
		MonthCycleNumber       int        `json:"month_cycle_number"`
		StartDate              time.Time  `json:"start_date"`
		EndDate                *time.Time `json:"end_date"`
		ControlDurationMinutes int        `json:"control_duration_minutes"`
	} `json:"header"`
	Geometry struct {
		EstimatedMileage string  `json:"estimated_mileage"`
		RockLevel        string  `json:"rock_level"`
		AdvanceLength    float64 `json:"advance_length"`
		Method           string  `json:"method"`
	} `json:"geometry"`
	BlastTiming struct {
		TheoreticalBlastTime time.Time `json:"theoretical_blast_time"`
		TheoreticalGapText   string    `json:"theoretical_gap_text"`
		CycleIntervalText    string    `json:"cycle_interval_text"`
	} `json:"blast_timing"`
	Prediction struct {
		ByControlStandard   time.Time  `json:"by_control_standard"`
		ByHistoricalAverage *time.Time `json:"by_historical_average"`
	} `json:"prediction"`
	Rows []struct {
		Name        string `json:"name"`
		ActualText  string `json:"actual_text"`
		ControlText string `json:"control_text"`
		DiffText    string `json:"diff_text"`
		Status      string `json:"status"`
		Category    string `json:"category"`
	} `json:"rows"`
	Summary struct {
		TotalActualText   string  `json:"total_actual_text"`
		TotalControlText  string  `json:"total_control_text"`
		TotalActualHours  float64 `json:"total_actual_hours"`
		TotalControlHours float64 `json:"total_control_hours"`
		DiffText          string  `json:"diff_text"`
	} `json:"summary"`
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func printKV(rows [][2]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
	_ = w.Flush()
}

func printTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Println("no results")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func uintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatMaybeTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatTime(*t)
}

func printProjects(items []projectView) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			uintToString(item.ID),
			item.Name,
			strconv.Itoa(item.CurrentCycleNumber),
		})
	}
	printTable([]string{"ID", "NAME", "CURRENT_CYCLE"}, rows)
}

func printProcessDefs(items []processDefView) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{uintToString(item.ID), item.Name, item.Category})
	}
	printTable([]string{"ID", "NAME", "CATEGORY"}, rows)
}

func printTemplate(item templateView) {
	printKV([][2]string{{"id", uintToString(item.ID)}, {"name", item.Name}})
	rows := make([][]string, 0, len(item.Items))
	for _, ti := range item.Items {
		rows = append(rows, []string{
			strconv.Itoa(ti.Order),
			ti.ProcessName,
			strconv.Itoa(ti.ControlTimeMinutes),
		})
	}
	printTable([]string{"ORDER", "PROCESS", "CONTROL_MIN"}, rows)
}

func printTemplates(items []templateView) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{uintToString(item.ID), item.Name})
	}
	printTable([]string{"ID", "NAME"}, rows)
}

func printCycles(items []cycleView) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			uintToString(item.ID),
			strconv.Itoa(item.CycleNumber),
			item.Status,
			formatTime(item.StartDate),
			formatMaybeTime(item.EndDate),
			strconv.FormatFloat(item.AdvanceLength, 'f', 1, 64),
		})
	}
	printTable([]string{"ID", "NUMBER", "STATUS", "START", "END", "ADVANCE_M"}, rows)
}

func printCycle(item cycleView) {
	printKV([][2]string{
		{"id", uintToString(item.ID)},
		{"project_id", uintToString(item.ProjectID)},
		{"number", strconv.Itoa(item.CycleNumber)},
		{"status", item.Status},
		{"control_minutes", strconv.Itoa(item.ControlDurationMinutes)},
		{"start", formatTime(item.StartDate)},
		{"end", formatMaybeTime(item.EndDate)},
		{"rock_level", item.RockLevel},
		{"advance_m", strconv.FormatFloat(item.AdvanceLength, 'f', 1, 64)},
	})
}

func printProcesses(items []processView) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			uintToString(item.ID),
			strconv.Itoa(item.StartOrder),
			item.Name,
			item.Status,
			strconv.Itoa(item.ControlTimeMinutes),
			strconv.Itoa(item.FinalTimeMinutes),
			strconv.Itoa(item.OvertimeMinutes),
			formatMaybeTime(item.ActualStartTime),
			formatMaybeTime(item.ActualEndTime),
		})
	}
	printTable([]string{"ID", "ORDER", "NAME", "STATUS", "CONTROL_MIN", "ACTUAL_MIN", "OVERTIME_MIN", "START", "END"}, rows)
}

func printProcess(item processView) {
	printKV([][2]string{
		{"id", uintToString(item.ID)},
		{"cycle_id", uintToString(item.CycleID)},
		{"name", item.Name},
		{"order", strconv.Itoa(item.StartOrder)},
		{"status", item.Status},
		{"control_minutes", strconv.Itoa(item.ControlTimeMinutes)},
		{"actual_minutes", strconv.Itoa(item.FinalTimeMinutes)},
		{"overtime_minutes", strconv.Itoa(item.OvertimeMinutes)},
		{"saved_minutes", strconv.Itoa(item.SavedTimeMinutes)},
		{"start", formatMaybeTime(item.ActualStartTime)},
		{"end", formatMaybeTime(item.ActualEndTime)},
		{"overtime_reason", item.OvertimeReason},
	})
}

func printTimeSummary(item timeSummaryView) {
	printKV([][2]string{
		{"individual_minutes", strconv.Itoa(item.TotalIndividualTimeMinutes)},
		{"cycle_minutes", strconv.Itoa(item.TotalCycleTimeMinutes)},
		{"overlap_minutes", strconv.Itoa(item.OverlapTimeMinutes)},
	})
}

func printReport(item reportView) {
	printKV([][2]string{
		{"report_id", item.ID},
		{"cycle_number", strconv.Itoa(item.Header.CycleNumber)},
		{"month_cycle_number", strconv.Itoa(item.Header.MonthCycleNumber)},
		{"start", formatTime(item.Header.StartDate)},
		{"end", formatMaybeTime(item.Header.EndDate)},
		{"method", item.Geometry.Method},
		{"mileage", item.Geometry.EstimatedMileage},
		{"rock_level", item.Geometry.RockLevel},
		{"advance_m", strconv.FormatFloat(item.Geometry.AdvanceLength, 'f', 1, 64)},
		{"theoretical_blast", formatTime(item.BlastTiming.TheoreticalBlastTime)},
		{"theoretical_gap", item.BlastTiming.TheoreticalGapText},
		{"cycle_interval", item.BlastTiming.CycleIntervalText},
		{"predicted_by_control", formatTime(item.Prediction.ByControlStandard)},
		{"predicted_by_history", formatMaybeTime(item.Prediction.ByHistoricalAverage)},
	})

	rows := make([][]string, 0, len(item.Rows))
	for _, row := range item.Rows {
		rows = append(rows, []string{row.Name, row.Category, row.Status, row.ActualText, row.ControlText, row.DiffText})
	}
	printTable([]string{"PROCESS", "CATEGORY", "STATUS", "ACTUAL", "CONTROL", "DIFF"}, rows)

	printKV([][2]string{
		{"total_actual", item.Summary.TotalActualText},
		{"total_control", item.Summary.TotalControlText},
		{"total_actual_hours", strconv.FormatFloat(item.Summary.TotalActualHours, 'f', 2, 64)},
		{"total_control_hours", strconv.FormatFloat(item.Summary.TotalControlHours, 'f', 2, 64)},
		{"diff", item.Summary.DiffText},
	})
}
