package application

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/MasterCatOne/zzw-gx-sub000/internal/domain"
	"github.com/google/uuid"
)

// The only development method the report covers. Drill-and-blast is fixed
// for excavation rounds; the label is not stored per cycle.
const developmentMethod = "钻爆法"

type CycleReport struct {
	ID          string             `json:"id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Header      ReportHeader       `json:"header"`
	Geometry    ReportGeometry     `json:"geometry"`
	BlastTiming ReportBlastTiming  `json:"blast_timing"`
	Prediction  ReportPrediction   `json:"prediction"`
	Rows        []ReportProcessRow `json:"rows"`
	Summary     ReportSummary      `json:"summary"`
}

type ReportHeader struct {
	CycleNumber            int        `json:"cycle_number"`
	MonthCycleNumber       int        `json:"month_cycle_number"`
	StartDate              time.Time  `json:"start_date"`
	EndDate                *time.Time `json:"end_date,omitempty"`
	ControlDurationMinutes int        `json:"control_duration_minutes"`
	ControlDurationHours   float64    `json:"control_duration_hours"`
}

type ReportGeometry struct {
	EstimatedMileage string  `json:"estimated_mileage"`
	RockLevel        string  `json:"rock_level"`
	AdvanceLength    float64 `json:"advance_length"`
	Method           string  `json:"method"`
}

type ReportBlastTiming struct {
	PreviousCycleEndTime *time.Time `json:"previous_cycle_end_time,omitempty"`
	TheoreticalBlastTime time.Time  `json:"theoretical_blast_time"`
	TheoreticalGapText   string     `json:"theoretical_gap_text"`
	CycleIntervalText    string     `json:"cycle_interval_text"`
}

type ReportPrediction struct {
	ByControlStandard   time.Time  `json:"by_control_standard"`
	ByHistoricalAverage *time.Time `json:"by_historical_average,omitempty"`
}

type ReportProcessRow struct {
	Name           string `json:"name"`
	StartYearMonth string `json:"start_year_month"`
	StartTimeOfDay string `json:"start_time_of_day"`
	EndYearMonth   string `json:"end_year_month"`
	EndTimeOfDay   string `json:"end_time_of_day"`
	ActualMinutes  int    `json:"actual_minutes"`
	ActualText     string `json:"actual_text"`
	ControlMinutes int    `json:"control_minutes"`
	ControlText    string `json:"control_text"`
	DiffText       string `json:"diff_text"`
	Remark         string `json:"remark"`
	Status         string `json:"status"`
	Overtime       bool   `json:"overtime"`
	Category       string `json:"category"`
}

type ReportSummary struct {
	TotalActualMinutes  int     `json:"total_actual_minutes"`
	TotalControlMinutes int     `json:"total_control_minutes"`
	TotalActualText     string  `json:"total_actual_text"`
	TotalControlText    string  `json:"total_control_text"`
	TotalActualHours    float64 `json:"total_actual_hours"`
	TotalControlHours   float64 `json:"total_control_hours"`
	DiffText            string  `json:"diff_text"`
}

// ReportService assembles the per-cycle progress report from cycle and
// process records plus the catalog categories.
type ReportService struct {
	repo domain.TrackingRepository
}

func NewReportService(repo domain.TrackingRepository) *ReportService {
	return &ReportService{repo: repo}
}

func (s *ReportService) BuildCycleReport(ctx context.Context, cycleID uint) (CycleReport, error) {
	cycle, err := s.repo.GetCycle(ctx, cycleID)
	if err != nil {
		return CycleReport{}, err
	}
	processes, err := s.repo.ListProcesses(ctx, cycleID)
	if err != nil {
		return CycleReport{}, err
	}

	categories, err := s.catalogCategories(ctx)
	if err != nil {
		return CycleReport{}, err
	}

	monthNumber, err := s.monthCycleNumber(ctx, cycle)
	if err != nil {
		return CycleReport{}, err
	}

	report := CycleReport{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Header: ReportHeader{
			CycleNumber:            cycle.CycleNumber,
			MonthCycleNumber:       monthNumber,
			StartDate:              cycle.StartDate,
			EndDate:                cycle.EndDate,
			ControlDurationMinutes: cycle.ControlDurationMinutes,
			ControlDurationHours:   round2(float64(cycle.ControlDurationMinutes) / 60.0),
		},
		Geometry: ReportGeometry{
			EstimatedMileage: cycle.EstimatedMileage,
			RockLevel:        cycle.RockLevel,
			AdvanceLength:    cycle.AdvanceLength,
			Method:           developmentMethod,
		},
	}

	report.BlastTiming, report.Prediction, err = s.timingSections(ctx, cycle)
	if err != nil {
		return CycleReport{}, err
	}

	totalActual, totalControl := 0, 0
	for i, p := range processes {
		row := ReportProcessRow{
			Name:           fmt.Sprintf("%d、%s", i+1, p.Name),
			ControlMinutes: p.ControlTimeMinutes,
			ControlText:    domain.FormatMinutes(p.ControlTimeMinutes),
			Remark:         p.Remark,
			Status:         string(p.Status),
			Category:       categories[p.ProcessDefID],
		}
		if p.ActualStartTime != nil {
			row.StartYearMonth = p.ActualStartTime.Format("2006-01")
			row.StartTimeOfDay = p.ActualStartTime.Format("15:04")
		}
		if p.ActualEndTime != nil {
			row.EndYearMonth = p.ActualEndTime.Format("2006-01")
			row.EndTimeOfDay = p.ActualEndTime.Format("15:04")
		}
		if p.ActualStartTime != nil && p.ActualEndTime != nil {
			timing := p.Timing()
			row.ActualMinutes = timing.FinalTimeMinutes
			row.ActualText = domain.FormatMinutes(timing.FinalTimeMinutes)
			row.DiffText = domain.FormatDiffMinutes(timing.FinalTimeMinutes - p.ControlTimeMinutes)
			row.Overtime = timing.Overtime

			totalActual += timing.FinalTimeMinutes
			totalControl += p.ControlTimeMinutes
		}
		report.Rows = append(report.Rows, row)
	}

	report.Summary = ReportSummary{
		TotalActualMinutes:  totalActual,
		TotalControlMinutes: totalControl,
		TotalActualText:     domain.FormatMinutes(totalActual),
		TotalControlText:    domain.FormatMinutes(totalControl),
		TotalActualHours:    round2(float64(totalActual) / 60.0),
		TotalControlHours:   round2(float64(totalControl) / 60.0),
		DiffText:            domain.FormatDiffMinutes(totalActual - totalControl),
	}
	return report, nil
}

// timingSections derives the blast-timing row and the two-way prediction
// from the previous cycle and the project's cycle history.
func (s *ReportService) timingSections(ctx context.Context, cycle domain.Cycle) (ReportBlastTiming, ReportPrediction, error) {
	theoretical := cycle.StartDate.Add(time.Duration(cycle.ControlDurationMinutes) * time.Minute)

	timing := ReportBlastTiming{
		TheoreticalBlastTime: theoretical,
		TheoreticalGapText:   domain.GapTextMissing,
		CycleIntervalText:    domain.GapTextMissing,
	}
	prediction := ReportPrediction{ByControlStandard: theoretical}

	if cycle.CycleNumber > 1 {
		previous, err := s.repo.GetCycleByNumber(ctx, cycle.ProjectID, cycle.CycleNumber-1)
		switch {
		case err == nil:
			timing.PreviousCycleEndTime = previous.EndDate
			if previous.EndDate != nil {
				gap := int(theoretical.Sub(*previous.EndDate) / time.Minute)
				timing.TheoreticalGapText = domain.FormatGapMinutes(gap)
			}
			interval := int(cycle.StartDate.Sub(previous.StartDate) / time.Minute)
			timing.CycleIntervalText = domain.FormatGapMinutes(interval)
		case domain.IsKind(err, domain.KindNotFound):
		default:
			return ReportBlastTiming{}, ReportPrediction{}, err
		}
	}

	history, err := s.repo.ListCycles(ctx, cycle.ProjectID, 2000)
	if err != nil {
		return ReportBlastTiming{}, ReportPrediction{}, err
	}
	if avg, ok := averageCycleInterval(history, cycle.CycleNumber); ok {
		predicted := cycle.StartDate.Add(avg)
		prediction.ByHistoricalAverage = &predicted
	}

	return timing, prediction, nil
}

// averageCycleInterval averages the start-to-start gaps of cycles numbered
// below the given one. At least two prior cycles are needed.
func averageCycleInterval(cycles []domain.Cycle, before int) (time.Duration, bool) {
	var total time.Duration
	count := 0
	for i := 1; i < len(cycles); i++ {
		if cycles[i].CycleNumber >= before {
			break
		}
		total += cycles[i].StartDate.Sub(cycles[i-1].StartDate)
		count++
	}
	if count == 0 {
		return 0, false
	}
	return total / time.Duration(count), true
}

func (s *ReportService) monthCycleNumber(ctx context.Context, cycle domain.Cycle) (int, error) {
	from := time.Date(cycle.StartDate.Year(), cycle.StartDate.Month(), 1, 0, 0, 0, 0, cycle.StartDate.Location())
	to := from.AddDate(0, 1, 0)
	siblings, err := s.repo.ListCyclesStartedBetween(ctx, cycle.ProjectID, from, to)
	if err != nil {
		return 0, err
	}
	number := 0
	for i, sibling := range siblings {
		if sibling.ID == cycle.ID {
			number = i + 1
			break
		}
	}
	return number, nil
}

func (s *ReportService) catalogCategories(ctx context.Context) (map[uint]string, error) {
	defs, err := s.repo.ListProcessDefs(ctx, "", 2000)
	if err != nil {
		return nil, err
	}
	categories := make(map[uint]string, len(defs))
	for _, def := range defs {
		categories[def.ID] = def.Category
	}
	return categories, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
