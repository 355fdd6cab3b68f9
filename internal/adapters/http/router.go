package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MasterCatOne/zzw-gx-sub000/internal/application"
	"github.com/MasterCatOne/zzw-gx-sub000/internal/domain"
	"github.com/go-chi/chi/v5"
)

type contextKey string

const operatorKey contextKey = "operator"

type Handler struct {
	catalog   *application.CatalogService
	cycles    *application.CycleService
	processes *application.ProcessService
	analytics *application.AnalyticsService
	reports   *application.ReportService
	auth      *application.AuthService
}

func NewRouter(
	catalog *application.CatalogService,
	cycles *application.CycleService,
	processes *application.ProcessService,
	analytics *application.AnalyticsService,
	reports *application.ReportService,
	auth *application.AuthService,
) http.Handler {
	h := &Handler{
		catalog:   catalog,
		cycles:    cycles,
		processes: processes,
		analytics: analytics,
		reports:   reports,
		auth:      auth,
	}
	r := chi.NewRouter()

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/bootstrap", h.handleBootstrap)
		api.Post("/auth/login", h.handleLogin)

		api.Group(func(api chi.Router) {
			api.Use(h.requireAuth)

			api.Get("/auth/whoami", h.handleWhoAmI)
			api.Post("/auth/operators", h.handleCreateOperator)

			api.Post("/projects", h.handleCreateProject)
			api.Get("/projects", h.handleListProjects)
			api.Post("/catalog/process-defs", h.handleCreateProcessDef)
			api.Get("/catalog/process-defs", h.handleListProcessDefs)
			api.Post("/templates", h.handleCreateTemplate)
			api.Get("/templates", h.handleListTemplates)
			api.Get("/templates/{id}", h.handleGetTemplate)

			api.Post("/cycles", h.handleCreateCycle)
			api.Get("/cycles", h.handleListCycles)
			api.Get("/cycles/{id}", h.handleGetCycle)
			api.Patch("/cycles/{id}", h.handleUpdateCycle)
			api.Delete("/cycles/{id}", h.handleDeleteCycle)
			api.Get("/cycles/{id}/processes", h.handleListProcesses)
			api.Post("/cycles/{id}/process-orders", h.handleUpdateProcessOrders)
			api.Get("/cycles/{id}/time-summary", h.handleCycleTimeSummary)
			api.Get("/cycles/{id}/report", h.handleCycleReport)

			api.Post("/processes", h.handleCreateAndStartProcess)
			api.Get("/processes/{id}", h.handleGetProcess)
			api.Post("/processes/{id}/start", h.handleStartProcess)
			api.Post("/processes/{id}/complete", h.handleCompleteProcess)
			api.Post("/processes/{id}/overtime-reason", h.handleOvertimeReason)

			api.Get("/stats/monthly-process-time", h.handleMonthlyProcessTime)
			api.Get("/stats/monthly-advance", h.handleMonthlyAdvance)
			api.Get("/stats/weekly-overtime", h.handleWeeklyOvertime)
			api.Get("/stats/overtime-pending", h.handleOvertimePending)
		})
	})

	return r
}

func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
			return
		}
		token := strings.TrimSpace(authHeader[7:])
		operator, err := h.auth.AuthenticateToken(r.Context(), token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), operatorKey, operator)))
	})
}

func operatorFromContext(ctx context.Context) (domain.Operator, bool) {
	operator, ok := ctx.Value(operatorKey).(domain.Operator)
	return operator, ok
}

type apiBootstrapRequest struct {
	Account  string `json:"account"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *Handler) handleBootstrap(w http.ResponseWriter, r *http.Request) {
	var req apiBootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	op, err := h.auth.BootstrapOperator(r.Context(), req.Account, req.Name, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, operatorResponseFrom(op))
}

type apiLoginRequest struct {
	Account   string `json:"account"`
	Password  string `json:"password"`
	TokenName string `json:"token_name"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req apiLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	op, token, err := h.auth.Login(r.Context(), req.Account, req.Password, req.TokenName, nil)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"operator_id": op.ID, "account": op.Account, "token": token})
}

func (h *Handler) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	operator, ok := operatorFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, operatorResponseFrom(operator))
}

func (h *Handler) handleCreateOperator(w http.ResponseWriter, r *http.Request) {
	var req apiBootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	op, err := h.auth.CreateOperator(r.Context(), req.Account, req.Name, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, operatorResponseFrom(op))
}

type apiCreateProjectRequest struct {
	Name string `json:"name"`
}

func (h *Handler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req apiCreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	project, err := h.catalog.CreateProject(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectResponseFrom(project))
}

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.catalog.ListProjects(r.Context(), r.URL.Query().Get("query"), intQuery(r, "limit"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectResponseFrom(p))
	}
	writeJSON(w, http.StatusOK, out)
}

type apiCreateProcessDefRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (h *Handler) handleCreateProcessDef(w http.ResponseWriter, r *http.Request) {
	var req apiCreateProcessDefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	def, err := h.catalog.CreateProcessDef(r.Context(), req.Name, req.Category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, processDefResponseFrom(def))
}

func (h *Handler) handleListProcessDefs(w http.ResponseWriter, r *http.Request) {
	defs, err := h.catalog.ListProcessDefs(r.Context(), r.URL.Query().Get("query"), intQuery(r, "limit"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]processDefResponse, 0, len(defs))
	for _, def := range defs {
		out = append(out, processDefResponseFrom(def))
	}
	writeJSON(w, http.StatusOK, out)
}

type apiCreateTemplateRequest struct {
	Name  string                          `json:"name"`
	Items []application.TemplateItemInput `json:"items"`
}

func (h *Handler) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req apiCreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	template, err := h.catalog.CreateTemplate(r.Context(), req.Name, req.Items)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templateResponseFrom(template))
}

func (h *Handler) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.catalog.ListTemplates(r.Context(), r.URL.Query().Get("query"), intQuery(r, "limit"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]templateResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, templateResponseFrom(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(w, r)
	if !ok {
		return
	}
	template, err := h.catalog.GetTemplate(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templateResponseFrom(template))
}

func (h *Handler) handleCreateCycle(w http.ResponseWriter, r *http.Request) {
	var req application.CreateCycleInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	cycle, err := h.cycles.CreateCycle(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cycleResponseFrom(cycle))
}

func (h *Handler) handleListCycles(w http.ResponseWriter, r *http.Request) {
	projectID := uintQuery(r, "project_id")
	cycles, err := h.cycles.ListCycles(r.Context(), projectID, intQuery(r, "limit"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]cycleResponse, 0, len(cycles))
	for _, c := range cycles {
		out = append(out, cycleResponseFrom(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetCycle(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(w, r)
	if !ok {
		return
	}
	cycle, err := h.cycles.GetCycle(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cycleResponseFrom(cycle))
}

func (h *Handler) handleUpdateCycle(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(w, r)
	if !ok {
		return
	}
	var req application.UpdateCycleInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	cycle, err := h.cycles.UpdateCycle(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cycleResponseFrom(cycle))
}

func (h *Handler) handleDeleteCycle(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(w, r)
	if !ok {
		return
	}
	if err := h.cycles.DeleteCycle(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) handleListProcesses(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(w, r)
	if !ok {
		return
	}
	processes, err := h.processes.ListProcesses(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]processResponse, 0, len(processes))
	for _, p := range processes {
		out = append(out, processResponseFrom(p))
	}
	writeJSON(w, http.StatusOK, out)
}

type apiProcessOrdersRequest struct {
	Orders map[uint]int `json:"orders"`
}

func (h *Handler) handleUpdateProcessOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(w, r)
	if !ok {
		return
	}
	var req apiProcessOrdersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	if err := h.processes.UpdateProcessOrders(r.Context(), id, req.Orders); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) handleCycleTimeSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(w, r)
	if !ok {
		return
	}
	summary, err := h.analytics.CalculateCycleProcessTime(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleCycleReport(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(w, r)
	if !ok {
		return
	}
	report, err := h.reports.BuildCycleReport(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) handleCreateAndStartProcess(w http.ResponseWriter, r *http.Request) {
	var req application.CreateAndStartInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	if operator, ok := operatorFromContext(r.Context()); ok && req.OperatorID == 0 {
		req.OperatorID = operator.ID
	}
	process, err := h.processes.CreateAndStart(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, processResponseFrom(process))
}

func (h *Handler) handleGetProcess(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(w, r)
	if !ok {
		return
	}
	process, err := h.processes.GetProcess(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, processResponseFrom(process))
}

type apiStartProcessRequest struct {
	ActualStartTime *time.Time `json:"actual_start_time"`
}

func (h *Handler) handleStartProcess(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(w, r)
	if !ok {
		return
	}
	var req apiStartProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	operator, _ := operatorFromContext(r.Context())

	// enforce=1 turns the advisory predecessor check into a hard gate.
	if r.URL.Query().Get("enforce") == "1" {
		if err := h.processes.GateStart(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
	}

	process, warning, err := h.processes.Start(r.Context(), id, operator.ID, req.ActualStartTime)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"process": processResponseFrom(process),
		"warning": warning,
	})
}

type apiCompleteProcessRequest struct {
	ActualEndTime  *time.Time `json:"actual_end_time"`
	OvertimeReason string     `json:"overtime_reason"`
}

func (h *Handler) handleCompleteProcess(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(w, r)
	if !ok {
		return
	}
	var req apiCompleteProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	operator, _ := operatorFromContext(r.Context())
	process, reasonPending, err := h.processes.Complete(r.Context(), id, operator.ID, req.ActualEndTime, req.OvertimeReason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"process":        processResponseFrom(process),
		"reason_pending": reasonPending,
	})
}

type apiOvertimeReasonRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) handleOvertimeReason(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(w, r)
	if !ok {
		return
	}
	var req apiOvertimeReasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	operator, _ := operatorFromContext(r.Context())
	process, err := h.processes.SubmitOvertimeReason(r.Context(), id, operator.ID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, processResponseFrom(process))
}

func (h *Handler) handleMonthlyProcessTime(w http.ResponseWriter, r *http.Request) {
	stat, err := h.analytics.MonthlyProcessTimeStatistics(r.Context(), uintQuery(r, "project_id"), intQuery(r, "year"), intQuery(r, "month"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stat)
}

func (h *Handler) handleMonthlyAdvance(w http.ResponseWriter, r *http.Request) {
	stat, err := h.analytics.MonthlyAdvanceStatistics(r.Context(), uintQuery(r, "project_id"), intQuery(r, "year"), intQuery(r, "month"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stat)
}

func (h *Handler) handleWeeklyOvertime(w http.ResponseWriter, r *http.Request) {
	stat, err := h.analytics.WeeklyOvertimeStatistics(r.Context(), uintQuery(r, "project_id"), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stat)
}

func (h *Handler) handleOvertimePending(w http.ResponseWriter, r *http.Request) {
	processes, err := h.analytics.OvertimeWithoutReason(r.Context(), uintQuery(r, "project_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]processResponse, 0, len(processes))
	for _, p := range processes {
		out = append(out, processResponseFrom(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func idFromURL(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid id"})
		return 0, false
	}
	return uint(parsed), true
}

func uintQuery(r *http.Request, name string) uint {
	parsed, err := strconv.ParseUint(strings.TrimSpace(r.URL.Query().Get(name)), 10, 64)
	if err != nil {
		return 0
	}
	return uint(parsed)
}

func intQuery(r *http.Request, name string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(name)))
	if err != nil {
		return 0
	}
	return parsed
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindForbidden:
		status = http.StatusForbidden
	case domain.KindInvalidState, domain.KindConflict:
		status = http.StatusConflict
	case domain.KindMissingParameter:
		status = http.StatusBadRequest
	case domain.KindValidationFailed:
		status = http.StatusUnprocessableEntity
	}
	payload := map[string]any{"error": err.Error()}
	if kind != "" {
		payload["kind"] = string(kind)
	}
	writeJSON(w, status, payload)
}
