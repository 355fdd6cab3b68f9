package application

import (
	"context"
	"strings"

	"github.com/MasterCatOne/zzw-gx-sub000/internal/domain"
)

// CatalogService covers the setup surfaces the tracking core reads:
// projects, the process catalog and cycle templates.
type CatalogService struct {
	repo domain.TrackingRepository
}

func NewCatalogService(repo domain.TrackingRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) CreateProject(ctx context.Context, name string) (domain.Project, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Project{}, domain.MissingParameter("name")
	}
	return s.repo.CreateProject(ctx, domain.Project{Name: name})
}

func (s *CatalogService) GetProject(ctx context.Context, id uint) (domain.Project, error) {
	return s.repo.GetProject(ctx, id)
}

func (s *CatalogService) ListProjects(ctx context.Context, query string, limit int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	return s.repo.ListProjects(ctx, query, limit)
}

func (s *CatalogService) CreateProcessDef(ctx context.Context, name, category string) (domain.ProcessDef, error) {
	if strings.TrimSpace(name) == "" {
		return domain.ProcessDef{}, domain.MissingParameter("name")
	}
	return s.repo.CreateProcessDef(ctx, domain.ProcessDef{Name: name, Category: category})
}

func (s *CatalogService) ListProcessDefs(ctx context.Context, query string, limit int) ([]domain.ProcessDef, error) {
	if limit <= 0 {
		limit = 200
	}
	if limit > 2000 {
		limit = 2000
	}
	return s.repo.ListProcessDefs(ctx, query, limit)
}

type TemplateItemInput struct {
	ProcessDefID       uint   `json:"process_def_id"`
	ProcessName        string `json:"process_name"`
	ControlTimeMinutes int    `json:"control_time_minutes"`
	Order              int    `json:"order"`
}

func (s *CatalogService) CreateTemplate(ctx context.Context, name string, items []TemplateItemInput) (domain.Template, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Template{}, domain.MissingParameter("name")
	}
	if len(items) == 0 {
		return domain.Template{}, domain.ValidationFailed("template needs at least one item")
	}

	seen := make(map[int]bool, len(items))
	value := domain.Template{Name: name}
	for _, item := range items {
		if strings.TrimSpace(item.ProcessName) == "" {
			return domain.Template{}, domain.ValidationFailed("template item order %d has no process name", item.Order)
		}
		if item.ControlTimeMinutes <= 0 {
			return domain.Template{}, domain.ValidationFailed("template item %q needs a positive control time", item.ProcessName)
		}
		if seen[item.Order] {
			return domain.Template{}, domain.ValidationFailed("duplicate template item order %d", item.Order)
		}
		seen[item.Order] = true
		value.Items = append(value.Items, domain.TemplateItem{
			ProcessDefID:       item.ProcessDefID,
			ProcessName:        item.ProcessName,
			ControlTimeMinutes: item.ControlTimeMinutes,
			Order:              item.Order,
		})
	}

	return s.repo.CreateTemplate(ctx, value)
}

func (s *CatalogService) GetTemplate(ctx context.Context, id uint) (domain.Template, error) {
	return s.repo.GetTemplate(ctx, id)
}

func (s *CatalogService) ListTemplates(ctx context.Context, query string, limit int) ([]domain.Template, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	return s.repo.ListTemplates(ctx, query, limit)
}
