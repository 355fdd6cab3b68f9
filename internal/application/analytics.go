package application

import (
	"context"
	"time"

	"github.com/MasterCatOne/zzw-gx-sub000/internal/domain"
)

// AnalyticsService derives cycle and project level figures from the raw
// process timestamps. It never writes.
type AnalyticsService struct {
	repo domain.TrackingRepository
}

func NewAnalyticsService(repo domain.TrackingRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// CalculateCycleProcessTime sums each completed process's own span and
// measures the merged wall-clock union, so concurrent processes are not
// double-counted in the cycle total.
func (s *AnalyticsService) CalculateCycleProcessTime(ctx context.Context, cycleID uint) (domain.CycleTimeSummary, error) {
	if _, err := s.repo.GetCycle(ctx, cycleID); err != nil {
		return domain.CycleTimeSummary{}, err
	}
	processes, err := s.repo.ListProcesses(ctx, cycleID)
	if err != nil {
		return domain.CycleTimeSummary{}, err
	}

	individual := 0
	intervals := make([]domain.Interval, 0, len(processes))
	for _, p := range processes {
		if p.Status != domain.ProcessCompleted || p.ActualStartTime == nil || p.ActualEndTime == nil {
			continue
		}
		individual += p.Timing().FinalTimeMinutes
		intervals = append(intervals, domain.Interval{Start: *p.ActualStartTime, End: *p.ActualEndTime})
	}

	union := domain.UnionMinutes(intervals)
	return domain.CycleTimeSummary{
		TotalIndividualTimeMinutes: individual,
		TotalCycleTimeMinutes:      union,
		OverlapTimeMinutes:         individual - union,
	}, nil
}

// MonthlyProcessTimeStatistics covers cycles whose start date falls in the
// given calendar month.
func (s *AnalyticsService) MonthlyProcessTimeStatistics(ctx context.Context, projectID uint, year, month int) (domain.MonthlyProcessStat, error) {
	if err := validateMonth(projectID, year, month); err != nil {
		return domain.MonthlyProcessStat{}, err
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	cycles, err := s.repo.ListCyclesStartedBetween(ctx, projectID, from, to)
	if err != nil {
		return domain.MonthlyProcessStat{}, err
	}

	stat := domain.MonthlyProcessStat{Year: year, Month: month}
	savedMinutes := 0
	for _, cycle := range cycles {
		processes, err := s.repo.ListProcesses(ctx, cycle.ID)
		if err != nil {
			return domain.MonthlyProcessStat{}, err
		}
		for _, p := range processes {
			if p.Status != domain.ProcessCompleted || p.ActualStartTime == nil || p.ActualEndTime == nil {
				continue
			}
			timing := p.Timing()
			stat.CompletedProcesses++
			stat.TotalActualMinutes += timing.FinalTimeMinutes
			stat.TotalControlMinutes += p.ControlTimeMinutes
			savedMinutes += timing.SavedTimeMinutes
		}
	}

	if stat.CompletedProcesses > 0 {
		stat.AverageProcessHours = float64(stat.TotalActualMinutes) / 60.0 / float64(stat.CompletedProcesses)
	}
	stat.TotalSavedHours = float64(savedMinutes) / 60.0
	return stat, nil
}

// MonthlyAdvanceStatistics counts cycles starting in the month and sums
// their measured advance length.
func (s *AnalyticsService) MonthlyAdvanceStatistics(ctx context.Context, projectID uint, year, month int) (domain.MonthlyAdvanceStat, error) {
	if err := validateMonth(projectID, year, month); err != nil {
		return domain.MonthlyAdvanceStat{}, err
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	cycles, err := s.repo.ListCyclesStartedBetween(ctx, projectID, from, to)
	if err != nil {
		return domain.MonthlyAdvanceStat{}, err
	}

	stat := domain.MonthlyAdvanceStat{Year: year, Month: month}
	for _, cycle := range cycles {
		stat.CycleCount++
		stat.TotalAdvanceLength += cycle.AdvanceLength
	}
	return stat, nil
}

// WeeklyOvertimeStatistics covers the Monday..Sunday week containing ref.
// Completed processes of cycles starting in that week contribute their
// overtime or saved hours.
func (s *AnalyticsService) WeeklyOvertimeStatistics(ctx context.Context, projectID uint, ref time.Time) (domain.WeeklyOvertimeStat, error) {
	if projectID == 0 {
		return domain.WeeklyOvertimeStat{}, domain.MissingParameter("project_id")
	}

	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	weekStart := day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
	weekEnd := weekStart.AddDate(0, 0, 7)

	cycles, err := s.repo.ListCyclesStartedBetween(ctx, projectID, weekStart, weekEnd)
	if err != nil {
		return domain.WeeklyOvertimeStat{}, err
	}

	stat := domain.WeeklyOvertimeStat{WeekStart: weekStart, WeekEnd: weekEnd}
	for _, cycle := range cycles {
		processes, err := s.repo.ListProcesses(ctx, cycle.ID)
		if err != nil {
			return domain.WeeklyOvertimeStat{}, err
		}
		for _, p := range processes {
			if p.Status != domain.ProcessCompleted || p.ActualStartTime == nil || p.ActualEndTime == nil {
				continue
			}
			timing := p.Timing()
			if timing.Overtime {
				stat.OvertimeHours += float64(timing.OvertimeMinutes) / 60.0
			} else {
				stat.SavedHours += float64(timing.SavedTimeMinutes) / 60.0
			}
		}
	}
	return stat, nil
}

// OvertimeWithoutReason lists completed over-control processes still
// awaiting a reason while their cycle remains open.
func (s *AnalyticsService) OvertimeWithoutReason(ctx context.Context, projectID uint) ([]domain.Process, error) {
	if projectID == 0 {
		return nil, domain.MissingParameter("project_id")
	}
	return s.repo.ListOvertimePendingReason(ctx, projectID)
}

func validateMonth(projectID uint, year, month int) error {
	if projectID == 0 {
		return domain.MissingParameter("project_id")
	}
	if year < 1 {
		return domain.ValidationFailed("year %d is out of range", year)
	}
	if month < 1 || month > 12 {
		return domain.ValidationFailed("month %d is out of range", month)
	}
	return nil
}
