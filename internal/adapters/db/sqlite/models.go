package sqlite

import (
	"time"

	"gorm.io/gorm"
)

type ProjectModel struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"not null;uniqueIndex"`
	CurrentCycleNumber int    `gorm:"not null;default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (ProjectModel) TableName() string { return "projects" }

type ProcessDefModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null;uniqueIndex"`
	Category  string `gorm:"not null;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProcessDefModel) TableName() string { return "process_defs" }

type TemplateModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TemplateModel) TableName() string { return "templates" }

type TemplateItemModel struct {
	ID                 uint   `gorm:"primaryKey"`
	TemplateID         uint   `gorm:"not null;index"`
	ProcessDefID       uint   `gorm:"not null"`
	ProcessName        string `gorm:"not null"`
	ControlTimeMinutes int    `gorm:"not null"`
	SortOrder          int    `gorm:"not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (TemplateItemModel) TableName() string { return "template_items" }

type CycleModel struct {
	ID                     uint `gorm:"primaryKey"`
	ProjectID              uint `gorm:"not null;index:idx_project_cycle,unique"`
	CycleNumber            int  `gorm:"not null;index:idx_project_cycle,unique"`
	ControlDurationMinutes int  `gorm:"not null"`
	StartDate              time.Time
	EndDate                *time.Time
	EstimatedStartDate     *time.Time
	EstimatedEndDate       *time.Time
	EstimatedMileage       string  `gorm:"not null;default:''"`
	AdvanceLength          float64 `gorm:"not null;default:0"`
	RockLevel              string  `gorm:"not null;default:''"`
	Status                 string  `gorm:"not null;default:'IN_PROGRESS';index"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
	DeletedAt              gorm.DeletedAt `gorm:"index"`
}

func (CycleModel) TableName() string { return "cycles" }

type ProcessModel struct {
	ID                 uint   `gorm:"primaryKey"`
	CycleID            uint   `gorm:"not null;index"`
	ProcessDefID       uint   `gorm:"not null;default:0"`
	Name               string `gorm:"not null"`
	ControlTimeMinutes int    `gorm:"not null"`
	EstimatedStartTime *time.Time
	EstimatedEndTime   *time.Time
	ActualStartTime    *time.Time
	ActualEndTime      *time.Time
	Status             string  `gorm:"not null;default:'NOT_STARTED';index"`
	OperatorID         uint    `gorm:"not null;default:0"`
	StartOrder         int     `gorm:"not null;index"`
	AdvanceLength      float64 `gorm:"not null;default:0"`
	OvertimeReason     string  `gorm:"not null;default:''"`
	Remark             string  `gorm:"not null;default:''"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (ProcessModel) TableName() string { return "processes" }

type OperationLogModel struct {
	ID         uint   `gorm:"primaryKey"`
	ProcessID  uint   `gorm:"not null;index"`
	OperatorID uint   `gorm:"not null;default:0"`
	Action     string `gorm:"not null;index"`
	Remark     string `gorm:"not null;default:''"`
	CreatedAt  time.Time
}

func (OperationLogModel) TableName() string { return "process_operation_logs" }

type OperatorModel struct {
	ID           uint   `gorm:"primaryKey"`
	Account      string `gorm:"not null;uniqueIndex"`
	Name         string `gorm:"not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (OperatorModel) TableName() string { return "operators" }

type OperatorTokenModel struct {
	ID         uint   `gorm:"primaryKey"`
	OperatorID uint   `gorm:"not null;index"`
	Name       string `gorm:"not null"`
	TokenHash  string `gorm:"not null;uniqueIndex"`
	ExpiresAt  *time.Time
	CreatedAt  time.Time
}

func (OperatorTokenModel) TableName() string { return "operator_tokens" }
