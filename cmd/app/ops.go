package main

import (
	"context"
	"fmt"
	"net/http"
)

func doBootstrap(ctx context.Context, cfg cliConfig, account, name, password string, out any) error {
	client := newAPIClient(cfg.Server, "")
	return client.request(ctx, http.MethodPost, "/api/auth/bootstrap", map[string]any{
		"account":  account,
		"name":     name,
		"password": password,
	}, out)
}

func doLogin(ctx context.Context, cfg cliConfig, account, password, tokenName string, out any) error {
	client := newAPIClient(cfg.Server, "")
	return client.request(ctx, http.MethodPost, "/api/auth/login", map[string]any{
		"account":    account,
		"password":   password,
		"token_name": tokenName,
	}, out)
}

func doWhoAmI(ctx context.Context, cfg cliConfig, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodGet, "/api/auth/whoami", nil, out)
}

func doProjectsCreate(ctx context.Context, cfg cliConfig, name string, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodPost, "/api/projects", map[string]any{"name": name}, out)
}

func doProjectsList(ctx context.Context, cfg cliConfig, query string, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	path := "/api/projects"
	if query != "" {
		path += "?query=" + query
	}
	return client.request(ctx, http.MethodGet, path, nil, out)
}

func doProcessDefsCreate(ctx context.Context, cfg cliConfig, name, category string, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodPost, "/api/catalog/process-defs", map[string]any{"name": name, "category": category}, out)
}

func doProcessDefsList(ctx context.Context, cfg cliConfig, query string, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	path := "/api/catalog/process-defs"
	if query != "" {
		path += "?query=" + query
	}
	return client.request(ctx, http.MethodGet, path, nil, out)
}

func doTemplatesCreate(ctx context.Context, cfg cliConfig, in any, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodPost, "/api/templates", in, out)
}

func doTemplatesList(ctx context.Context, cfg cliConfig, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodGet, "/api/templates", nil, out)
}

func doTemplatesGet(ctx context.Context, cfg cliConfig, id uint, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodGet, fmt.Sprintf("/api/templates/%d", id), nil, out)
}

func doCyclesCreate(ctx context.Context, cfg cliConfig, in any, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodPost, "/api/cycles", in, out)
}

func doCyclesList(ctx context.Context, cfg cliConfig, projectID uint, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodGet, fmt.Sprintf("/api/cycles?project_id=%d", projectID), nil, out)
}

func doCyclesGet(ctx context.Context, cfg cliConfig, id uint, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodGet, fmt.Sprintf("/api/cycles/%d", id), nil, out)
}

func doCyclesUpdate(ctx context.Context, cfg cliConfig, id uint, in any, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodPatch, fmt.Sprintf("/api/cycles/%d", id), in, out)
}

func doCyclesDelete(ctx context.Context, cfg cliConfig, id uint) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodDelete, fmt.Sprintf("/api/cycles/%d", id), nil, nil)
}

func doCycleProcessesList(ctx context.Context, cfg cliConfig, cycleID uint, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodGet, fmt.Sprintf("/api/cycles/%d/processes", cycleID), nil, out)
}

func doCycleProcessOrders(ctx context.Context, cfg cliConfig, cycleID uint, orders map[uint]int) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodPost, fmt.Sprintf("/api/cycles/%d/process-orders", cycleID), map[string]any{"orders": orders}, nil)
}

func doCycleTimeSummary(ctx context.Context, cfg cliConfig, cycleID uint, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodGet, fmt.Sprintf("/api/cycles/%d/time-summary", cycleID), nil, out)
}

func doCycleReport(ctx context.Context, cfg cliConfig, cycleID uint, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodGet, fmt.Sprintf("/api/cycles/%d/report", cycleID), nil, out)
}

func doProcessCreateAndStart(ctx context.Context, cfg cliConfig, in any, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodPost, "/api/processes", in, out)
}

func doProcessStart(ctx context.Context, cfg cliConfig, id uint, enforce bool, in any, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	path := fmt.Sprintf("/api/processes/%d/start", id)
	if enforce {
		path += "?enforce=1"
	}
	return client.request(ctx, http.MethodPost, path, in, out)
}

func doProcessComplete(ctx context.Context, cfg cliConfig, id uint, in any, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodPost, fmt.Sprintf("/api/processes/%d/complete", id), in, out)
}

func doProcessOvertimeReason(ctx context.Context, cfg cliConfig, id uint, reason string, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodPost, fmt.Sprintf("/api/processes/%d/overtime-reason", id), map[string]any{"reason": reason}, out)
}

func doStatsMonthlyProcessTime(ctx context.Context, cfg cliConfig, projectID uint, year, month int, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodGet, fmt.Sprintf("/api/stats/monthly-process-time?project_id=%d&year=%d&month=%d", projectID, year, month), nil, out)
}

func doStatsMonthlyAdvance(ctx context.Context, cfg cliConfig, projectID uint, year, month int, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodGet, fmt.Sprintf("/api/stats/monthly-advance?project_id=%d&year=%d&month=%d", projectID, year, month), nil, out)
}

func doStatsWeeklyOvertime(ctx context.Context, cfg cliConfig, projectID uint, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodGet, fmt.Sprintf("/api/stats/weekly-overtime?project_id=%d", projectID), nil, out)
}

func doStatsOvertimePending(ctx context.Context, cfg cliConfig, projectID uint, out any) error {
	client := newAPIClient(cfg.Server, cfg.Token)
	return client.request(ctx, http.MethodGet, fmt.Sprintf("/api/stats/overtime-pending?project_id=%d", projectID), nil, out)
}
