package sqlite

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MasterCatOne/zzw-gx-sub000/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

type TrackingRepository struct {
	db *gorm.DB
}

func Open(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path,
	}, &gorm.Config{})
}

func NewTrackingRepository(db *gorm.DB) *TrackingRepository {
	return &TrackingRepository{db: db}
}

func (r *TrackingRepository) CreateProject(ctx context.Context, value domain.Project) (domain.Project, error) {
	m := ProjectModel{Name: strings.TrimSpace(value.Name)}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Project{}, err
	}
	return toDomainProject(m), nil
}

func (r *TrackingRepository) GetProject(ctx context.Context, id uint) (domain.Project, error) {
	var m ProjectModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Project{}, domain.NotFound("project %d not found", id)
		}
		return domain.Project{}, err
	}
	return toDomainProject(m), nil
}

func (r *TrackingRepository) ListProjects(ctx context.Context, query string, limit int) ([]domain.Project, error) {
	q := r.db.WithContext(ctx).Model(&ProjectModel{})
	if strings.TrimSpace(query) != "" {
		q = q.Where("name LIKE ?", "%"+strings.TrimSpace(query)+"%")
	}
	rows := make([]ProjectModel, 0)
	if err := q.Order("id ASC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Project, 0, len(rows))
	for _, m := range rows {
		result = append(result, toDomainProject(m))
	}
	return result, nil
}

func (r *TrackingRepository) CreateProcessDef(ctx context.Context, value domain.ProcessDef) (domain.ProcessDef, error) {
	m := ProcessDefModel{Name: strings.TrimSpace(value.Name), Category: value.Category}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.ProcessDef{}, err
	}
	return toDomainProcessDef(m), nil
}

func (r *TrackingRepository) ListProcessDefs(ctx context.Context, query string, limit int) ([]domain.ProcessDef, error) {
	q := r.db.WithContext(ctx).Model(&ProcessDefModel{})
	if strings.TrimSpace(query) != "" {
		q = q.Where("name LIKE ?", "%"+strings.TrimSpace(query)+"%")
	}
	rows := make([]ProcessDefModel, 0)
	if err := q.Order("id ASC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.ProcessDef, 0, len(rows))
	for _, m := range rows {
		result = append(result, toDomainProcessDef(m))
	}
	return result, nil
}

func (r *TrackingRepository) CreateTemplate(ctx context.Context, value domain.Template) (domain.Template, error) {
	var created TemplateModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created = TemplateModel{Name: strings.TrimSpace(value.Name)}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		for _, item := range value.Items {
			im := TemplateItemModel{
				TemplateID:         created.ID,
				ProcessDefID:       item.ProcessDefID,
				ProcessName:        item.ProcessName,
				ControlTimeMinutes: item.ControlTimeMinutes,
				SortOrder:          item.Order,
			}
			if err := tx.Create(&im).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Template{}, err
	}
	return r.GetTemplate(ctx, created.ID)
}

func (r *TrackingRepository) GetTemplate(ctx context.Context, id uint) (domain.Template, error) {
	var m TemplateModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Template{}, domain.NotFound("template %d not found", id)
		}
		return domain.Template{}, err
	}
	items := make([]TemplateItemModel, 0)
	if err := r.db.WithContext(ctx).Where("template_id = ?", id).Order("sort_order ASC").Find(&items).Error; err != nil {
		return domain.Template{}, err
	}
	out := domain.Template{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
	for _, im := range items {
		out.Items = append(out.Items, domain.TemplateItem{
			ID:                 im.ID,
			TemplateID:         im.TemplateID,
			ProcessDefID:       im.ProcessDefID,
			ProcessName:        im.ProcessName,
			ControlTimeMinutes: im.ControlTimeMinutes,
			Order:              im.SortOrder,
		})
	}
	return out, nil
}

func (r *TrackingRepository) ListTemplates(ctx context.Context, query string, limit int) ([]domain.Template, error) {
	q := r.db.WithContext(ctx).Model(&TemplateModel{})
	if strings.TrimSpace(query) != "" {
		q = q.Where("name LIKE ?", "%"+strings.TrimSpace(query)+"%")
	}
	rows := make([]TemplateModel, 0)
	if err := q.Order("id ASC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Template, 0, len(rows))
	for _, m := range rows {
		result = append(result, domain.Template{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt})
	}
	return result, nil
}

func (r *TrackingRepository) CreateCycleSnapshot(ctx context.Context, cycle domain.Cycle, processes []domain.Process) (domain.Cycle, error) {
	var out CycleModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project ProjectModel
		if err := tx.First(&project, cycle.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFound("project %d not found", cycle.ProjectID)
			}
			return err
		}

		var inProgress int64
		if err := tx.Model(&CycleModel{}).Where("project_id = ? AND status = ?", cycle.ProjectID, string(domain.CycleInProgress)).Count(&inProgress).Error; err != nil {
			return err
		}
		if inProgress > 0 {
			return domain.Conflict("project %d already has a cycle in progress", cycle.ProjectID)
		}

		var maxNumber int
		if err := tx.Raw(`SELECT COALESCE(MAX(cycle_number), 0) FROM cycles WHERE project_id = ? AND deleted_at IS NULL`, cycle.ProjectID).Scan(&maxNumber).Error; err != nil {
			return err
		}
		number := maxNumber + 1

		m := newCycleModel(cycle)
		m.CycleNumber = number
		m.Status = string(domain.CycleInProgress)

		// A soft-deleted cycle may still hold this (project, number) pair;
		// reuse its row instead of tripping the unique index.
		var deleted CycleModel
		lookupErr := tx.Unscoped().
			Where("project_id = ? AND cycle_number = ? AND deleted_at IS NOT NULL", cycle.ProjectID, number).
			First(&deleted).Error
		switch {
		case lookupErr == nil:
			m.ID = deleted.ID
			fields := cycleOverwriteFields(m)
			fields["deleted_at"] = nil
			if err := tx.Unscoped().Model(&CycleModel{}).Where("id = ?", deleted.ID).Updates(fields).Error; err != nil {
				return err
			}
		case errors.Is(lookupErr, gorm.ErrRecordNotFound):
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		default:
			return lookupErr
		}

		for _, p := range processes {
			pm := newProcessModel(p)
			pm.CycleID = m.ID
			if err := tx.Create(&pm).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&ProjectModel{}).Where("id = ?", project.ID).Update("current_cycle_number", number).Error; err != nil {
			return err
		}

		return tx.First(&out, m.ID).Error
	})
	if err != nil {
		return domain.Cycle{}, err
	}
	return toDomainCycle(out), nil
}

func (r *TrackingRepository) GetCycle(ctx context.Context, id uint) (domain.Cycle, error) {
	var m CycleModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Cycle{}, domain.NotFound("cycle %d not found", id)
		}
		return domain.Cycle{}, err
	}
	return toDomainCycle(m), nil
}

func (r *TrackingRepository) GetCycleByNumber(ctx context.Context, projectID uint, number int) (domain.Cycle, error) {
	var m CycleModel
	if err := r.db.WithContext(ctx).Where("project_id = ? AND cycle_number = ?", projectID, number).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Cycle{}, domain.NotFound("cycle %d of project %d not found", number, projectID)
		}
		return domain.Cycle{}, err
	}
	return toDomainCycle(m), nil
}

func (r *TrackingRepository) ListCycles(ctx context.Context, projectID uint, limit int) ([]domain.Cycle, error) {
	rows := make([]CycleModel, 0)
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("cycle_number ASC").Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Cycle, 0, len(rows))
	for _, m := range rows {
		result = append(result, toDomainCycle(m))
	}
	return result, nil
}

func (r *TrackingRepository) ListCyclesStartedBetween(ctx context.Context, projectID uint, from, to time.Time) ([]domain.Cycle, error) {
	rows := make([]CycleModel, 0)
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND start_date >= ? AND start_date < ?", projectID, from, to).
		Order("cycle_number ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Cycle, 0, len(rows))
	for _, m := range rows {
		result = append(result, toDomainCycle(m))
	}
	return result, nil
}

func (r *TrackingRepository) UpdateCycleFields(ctx context.Context, id uint, fields map[string]any) (domain.Cycle, error) {
	var out CycleModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m CycleModel
		if err := tx.First(&m, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFound("cycle %d not found", id)
			}
			return err
		}

		if status, ok := fields["status"]; ok && status == string(domain.CycleInProgress) {
			var inProgress int64
			if err := tx.Model(&CycleModel{}).
				Where("project_id = ? AND status = ? AND id != ?", m.ProjectID, string(domain.CycleInProgress), id).
				Count(&inProgress).Error; err != nil {
				return err
			}
			if inProgress > 0 {
				return domain.Conflict("project %d already has a cycle in progress", m.ProjectID)
			}
		}

		if len(fields) > 0 {
			if err := tx.Model(&CycleModel{}).Where("id = ?", id).Updates(fields).Error; err != nil {
				return err
			}
		}
		return tx.First(&out, id).Error
	})
	if err != nil {
		return domain.Cycle{}, err
	}
	return toDomainCycle(out), nil
}

func (r *TrackingRepository) SoftDeleteCycle(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m CycleModel
		if err := tx.First(&m, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFound("cycle %d not found", id)
			}
			return err
		}
		if err := tx.Where("cycle_id = ?", id).Delete(&ProcessModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&CycleModel{}, id).Error
	})
}

func (r *TrackingRepository) CreateProcess(ctx context.Context, value domain.Process) (domain.Process, error) {
	m := newProcessModel(value)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&ProcessModel{}).
			Where("cycle_id = ? AND start_order = ?", value.CycleID, value.StartOrder).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return domain.Conflict("start order %d is already taken in cycle %d", value.StartOrder, value.CycleID)
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return domain.Process{}, err
	}
	return toDomainProcess(m), nil
}

func (r *TrackingRepository) GetProcess(ctx context.Context, id uint) (domain.Process, error) {
	var m ProcessModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Process{}, domain.NotFound("process %d not found", id)
		}
		return domain.Process{}, err
	}
	return toDomainProcess(m), nil
}

func (r *TrackingRepository) GetPredecessor(ctx context.Context, cycleID uint, startOrder int) (*domain.Process, error) {
	var m ProcessModel
	err := r.db.WithContext(ctx).
		Where("cycle_id = ? AND start_order < ?", cycleID, startOrder).
		Order("start_order DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	p := toDomainProcess(m)
	return &p, nil
}

func (r *TrackingRepository) ListProcesses(ctx context.Context, cycleID uint) ([]domain.Process, error) {
	rows := make([]ProcessModel, 0)
	if err := r.db.WithContext(ctx).
		Where("cycle_id = ?", cycleID).
		Order("start_order ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Process, 0, len(rows))
	for _, m := range rows {
		result = append(result, toDomainProcess(m))
	}
	return result, nil
}

func (r *TrackingRepository) UpdateProcessFields(ctx context.Context, id uint, fields map[string]any) (domain.Process, error) {
	var out ProcessModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&ProcessModel{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.NotFound("process %d not found", id)
		}
		return tx.First(&out, id).Error
	})
	if err != nil {
		return domain.Process{}, err
	}
	return toDomainProcess(out), nil
}

func (r *TrackingRepository) UpdateProcessOrders(ctx context.Context, cycleID uint, orders map[uint]int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows := make([]ProcessModel, 0)
		if err := tx.Where("cycle_id = ?", cycleID).Find(&rows).Error; err != nil {
			return err
		}
		known := make(map[uint]bool, len(rows))
		final := make(map[int]uint, len(rows))
		for _, m := range rows {
			known[m.ID] = true
			order := m.StartOrder
			if next, ok := orders[m.ID]; ok {
				order = next
			}
			if other, dup := final[order]; dup {
				return domain.ValidationFailed("start order %d assigned to both process %d and %d", order, other, m.ID)
			}
			final[order] = m.ID
		}
		for id := range orders {
			if !known[id] {
				return domain.NotFound("process %d not found in cycle %d", id, cycleID)
			}
		}

		// Two passes, so a swap never holds a duplicate order mid-update.
		for id := range orders {
			if err := tx.Model(&ProcessModel{}).Where("id = ?", id).Update("start_order", -int(id)).Error; err != nil {
				return err
			}
		}
		for id, order := range orders {
			if err := tx.Model(&ProcessModel{}).Where("id = ?", id).Update("start_order", order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TrackingRepository) ListOvertimePendingReason(ctx context.Context, projectID uint) ([]domain.Process, error) {
	rows := make([]ProcessModel, 0)
	err := r.db.WithContext(ctx).Raw(`
SELECT p.*
FROM processes p
JOIN cycles c ON c.id = p.cycle_id
WHERE c.project_id = ?
  AND p.deleted_at IS NULL
  AND c.deleted_at IS NULL
  AND p.status = ?
  AND c.status != ?
  AND (p.overtime_reason IS NULL OR p.overtime_reason = '')
ORDER BY c.cycle_number ASC, p.start_order ASC
`, projectID, string(domain.ProcessCompleted), string(domain.CycleCompleted)).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]domain.Process, 0, len(rows))
	for _, m := range rows {
		p := toDomainProcess(m)
		if p.Timing().Overtime {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *TrackingRepository) AppendOperationLog(ctx context.Context, value domain.OperationLog) error {
	m := OperationLogModel{
		ProcessID:  value.ProcessID,
		OperatorID: value.OperatorID,
		Action:     value.Action,
		Remark:     value.Remark,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *TrackingRepository) CreateOperator(ctx context.Context, value domain.Operator) (domain.Operator, error) {
	m := OperatorModel{
		Account:      strings.ToLower(strings.TrimSpace(value.Account)),
		Name:         value.Name,
		PasswordHash: value.PasswordHash,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Operator{}, err
	}
	return toDomainOperator(m), nil
}

func (r *TrackingRepository) GetOperator(ctx context.Context, id uint) (domain.Operator, error) {
	var m OperatorModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Operator{}, domain.NotFound("operator %d not found", id)
		}
		return domain.Operator{}, err
	}
	return toDomainOperator(m), nil
}

func (r *TrackingRepository) GetOperatorByAccount(ctx context.Context, account string) (domain.Operator, error) {
	var m OperatorModel
	if err := r.db.WithContext(ctx).Where("account = ?", strings.ToLower(strings.TrimSpace(account))).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Operator{}, domain.NotFound("operator %s not found", account)
		}
		return domain.Operator{}, err
	}
	return toDomainOperator(m), nil
}

func (r *TrackingRepository) CountOperators(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OperatorModel{}).Count(&count).Error
	return count, err
}

func (r *TrackingRepository) CreateOperatorToken(ctx context.Context, value domain.OperatorToken) (domain.OperatorToken, error) {
	m := OperatorTokenModel{
		OperatorID: value.OperatorID,
		Name:       value.Name,
		TokenHash:  value.TokenHash,
		ExpiresAt:  value.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.OperatorToken{}, err
	}
	return domain.OperatorToken{ID: m.ID, OperatorID: m.OperatorID, Name: m.Name, TokenHash: m.TokenHash, ExpiresAt: m.ExpiresAt, CreatedAt: m.CreatedAt}, nil
}

func (r *TrackingRepository) GetOperatorTokenByHash(ctx context.Context, tokenHash string) (domain.OperatorToken, error) {
	var m OperatorTokenModel
	if err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.OperatorToken{}, domain.NotFound("token not found")
		}
		return domain.OperatorToken{}, err
	}
	return domain.OperatorToken{ID: m.ID, OperatorID: m.OperatorID, Name: m.Name, TokenHash: m.TokenHash, ExpiresAt: m.ExpiresAt, CreatedAt: m.CreatedAt}, nil
}

func toDomainProject(m ProjectModel) domain.Project {
	return domain.Project{
		ID:                 m.ID,
		Name:               m.Name,
		CurrentCycleNumber: m.CurrentCycleNumber,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toDomainProcessDef(m ProcessDefModel) domain.ProcessDef {
	return domain.ProcessDef{
		ID:        m.ID,
		Name:      m.Name,
		Category:  m.Category,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toDomainOperator(m OperatorModel) domain.Operator {
	return domain.Operator{
		ID:           m.ID,
		Account:      m.Account,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func newCycleModel(value domain.Cycle) CycleModel {
	return CycleModel{
		ProjectID:              value.ProjectID,
		CycleNumber:            value.CycleNumber,
		ControlDurationMinutes: value.ControlDurationMinutes,
		StartDate:              value.StartDate,
		EndDate:                value.EndDate,
		EstimatedStartDate:     value.EstimatedStartDate,
		EstimatedEndDate:       value.EstimatedEndDate,
		EstimatedMileage:       value.EstimatedMileage,
		AdvanceLength:          value.AdvanceLength,
		RockLevel:              value.RockLevel,
		Status:                 string(value.Status),
	}
}

func cycleOverwriteFields(m CycleModel) map[string]any {
	return map[string]any{
		"project_id":               m.ProjectID,
		"cycle_number":             m.CycleNumber,
		"control_duration_minutes": m.ControlDurationMinutes,
		"start_date":               m.StartDate,
		"end_date":                 m.EndDate,
		"estimated_start_date":     m.EstimatedStartDate,
		"estimated_end_date":       m.EstimatedEndDate,
		"estimated_mileage":        m.EstimatedMileage,
		"advance_length":           m.AdvanceLength,
		"rock_level":               m.RockLevel,
		"status":                   m.Status,
	}
}

func toDomainCycle(m CycleModel) domain.Cycle {
	return domain.Cycle{
		ID:                     m.ID,
		ProjectID:              m.ProjectID,
		CycleNumber:            m.CycleNumber,
		ControlDurationMinutes: m.ControlDurationMinutes,
		StartDate:              m.StartDate,
		EndDate:                m.EndDate,
		EstimatedStartDate:     m.EstimatedStartDate,
		EstimatedEndDate:       m.EstimatedEndDate,
		EstimatedMileage:       m.EstimatedMileage,
		AdvanceLength:          m.AdvanceLength,
		RockLevel:              m.RockLevel,
		Status:                 domain.CycleStatus(m.Status),
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

func newProcessModel(value domain.Process) ProcessModel {
	return ProcessModel{
		CycleID:            value.CycleID,
		ProcessDefID:       value.ProcessDefID,
		Name:               value.Name,
		ControlTimeMinutes: value.ControlTimeMinutes,
		EstimatedStartTime: value.EstimatedStartTime,
		EstimatedEndTime:   value.EstimatedEndTime,
		ActualStartTime:    value.ActualStartTime,
		ActualEndTime:      value.ActualEndTime,
		Status:             string(value.Status),
		OperatorID:         value.OperatorID,
		StartOrder:         value.StartOrder,
		AdvanceLength:      value.AdvanceLength,
		OvertimeReason:     value.OvertimeReason,
		Remark:             value.Remark,
	}
}

func toDomainProcess(m ProcessModel) domain.Process {
	return domain.Process{
		ID:                 m.ID,
		CycleID:            m.CycleID,
		ProcessDefID:       m.ProcessDefID,
		Name:               m.Name,
		ControlTimeMinutes: m.ControlTimeMinutes,
		EstimatedStartTime: m.EstimatedStartTime,
		EstimatedEndTime:   m.EstimatedEndTime,
		ActualStartTime:    m.ActualStartTime,
		ActualEndTime:      m.ActualEndTime,
		Status:             domain.ProcessStatus(m.Status),
		OperatorID:         m.OperatorID,
		StartOrder:         m.StartOrder,
		AdvanceLength:      m.AdvanceLength,
		OvertimeReason:     m.OvertimeReason,
		Remark:             m.Remark,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
