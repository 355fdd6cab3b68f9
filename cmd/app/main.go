package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	sqliteadapter "github.com/MasterCatOne/zzw-gx-sub000/internal/adapters/db/sqlite"
	httpadapter "github.com/MasterCatOne/zzw-gx-sub000/internal/adapters/http"
	"github.com/MasterCatOne/zzw-gx-sub000/internal/application"
	"github.com/MasterCatOne/zzw-gx-sub000/internal/domain"
	"github.com/urfave/cli/v3"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "cycletrack",
		Usage: "Tunnel cycle tracking server and CLI",
		Commands: []*cli.Command{
			serverCommand(),
			authCommand(),
			projectsCommand(),
			catalogCommand(),
			templatesCommand(),
			cyclesCommand(),
			processesCommand(),
			statsCommand(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServer(ctx, ":8080", "cycletrack.db", "admin", "admin")
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		log.Fatal(err)
	}
}

func serverCommand() *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "Run HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: ":8080", Usage: "HTTP listen address"},
			&cli.StringFlag{Name: "db-path", Value: "cycletrack.db", Usage: "SQLite database path"},
			&cli.StringFlag{Name: "bootstrap-account", Value: "admin", Usage: "initial operator account when none exist"},
			&cli.StringFlag{Name: "bootstrap-password", Value: "admin", Usage: "initial operator password when none exist"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runServer(ctx, c.String("addr"), c.String("db-path"), c.String("bootstrap-account"), c.String("bootstrap-password"))
		},
	}
}

func runServer(ctx context.Context, addr, dbPath, bootstrapAccount, bootstrapPassword string) error {
	db, err := sqliteadapter.Open(dbPath)
	if err != nil {
		return err
	}
	if err := sqliteadapter.RunMigrations(ctx, db); err != nil {
		return err
	}

	repo := sqliteadapter.NewTrackingRepository(db)
	catalog := application.NewCatalogService(repo)
	cycles := application.NewCycleService(repo)
	processes := application.NewProcessService(repo)
	analytics := application.NewAnalyticsService(repo)
	reports := application.NewReportService(repo)
	auth := application.NewAuthService(repo)

	if _, err := auth.BootstrapOperator(ctx, bootstrapAccount, bootstrapAccount, bootstrapPassword); err != nil {
		if !domain.IsKind(err, domain.KindConflict) {
			return err
		}
	} else {
		log.Printf("bootstrapped operator %s", bootstrapAccount)
	}

	router := httpadapter.NewRouter(catalog, cycles, processes, analytics, reports, auth)
	srv := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func authCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authentication commands",
		Commands: []*cli.Command{
			{
				Name:  "bootstrap",
				Usage: "Create the first operator account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "server", Value: "http://127.0.0.1:8080"},
					&cli.StringFlag{Name: "account", Required: true},
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg := cliConfig{Server: c.String("server")}
					var out struct {
						ID      uint   `json:"id"`
						Account string `json:"account"`
					}
					if err := doBootstrap(ctx, cfg, c.String("account"), c.String("name"), c.String("password"), &out); err != nil {
						return err
					}
					fmt.Printf("created operator %s\n", out.Account)
					return nil
				},
			},
			{
				Name:  "login",
				Usage: "Login and store CLI token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "server", Value: "http://127.0.0.1:8080"},
					&cli.StringFlag{Name: "account", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "token-name", Value: "cli"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg := cliConfig{Server: c.String("server")}
					var out struct {
						Token   string `json:"token"`
						Account string `json:"account"`
					}
					if err := doLogin(ctx, cfg, c.String("account"), c.String("password"), c.String("token-name"), &out); err != nil {
						return err
					}
					cfg.Token = out.Token
					if err := saveConfig(cfg); err != nil {
						return err
					}
					fmt.Printf("logged in as %s\n", out.Account)
					return nil
				},
			},
			{
				Name:  "whoami",
				Usage: "Show current authenticated operator",
				Flags: []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out struct {
						ID      uint   `json:"id"`
						Account string `json:"account"`
						Name    string `json:"name"`
					}
					if err := doWhoAmI(ctx, cfg, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printKV([][2]string{{"id", uintToString(out.ID)}, {"account", out.Account}, {"name", out.Name}})
					return nil
				},
			},
		},
	}
}

func projectsCommand() *cli.Command {
	return &cli.Command{
		Name:  "projects",
		Usage: "Project commands",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a project",
				Flags: []cli.Flag{&cli.StringFlag{Name: "name", Required: true}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out projectView
					if err := doProjectsCreate(ctx, cfg, c.String("name"), &out); err != nil {
						return err
					}
					fmt.Printf("created project %d (%s)\n", out.ID, out.Name)
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List projects",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "query"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []projectView
					if err := doProjectsList(ctx, cfg, c.String("query"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printProjects(out)
					return nil
				},
			},
		},
	}
}

func catalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Process catalog commands",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a process definition",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "category"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out processDefView
					if err := doProcessDefsCreate(ctx, cfg, c.String("name"), c.String("category"), &out); err != nil {
						return err
					}
					fmt.Printf("created process def %d (%s)\n", out.ID, out.Name)
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List process definitions",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "query"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []processDefView
					if err := doProcessDefsList(ctx, cfg, c.String("query"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printProcessDefs(out)
					return nil
				},
			},
		},
	}
}

func templatesCommand() *cli.Command {
	return &cli.Command{
		Name:  "templates",
		Usage: "Cycle template commands",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a template from item specs",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "items", Required: true, Usage: "name:def_id:control_min:order,name:def_id:control_min:order"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					items, err := parseTemplateItems(c.String("items"))
					if err != nil {
						return err
					}
					var out templateView
					in := map[string]any{"name": c.String("name"), "items": items}
					if err := doTemplatesCreate(ctx, cfg, in, &out); err != nil {
						return err
					}
					fmt.Printf("created template %d (%s) with %d items\n", out.ID, out.Name, len(out.Items))
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List templates",
				Flags: []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []templateView
					if err := doTemplatesList(ctx, cfg, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printTemplates(out)
					return nil
				},
			},
			{
				Name:  "show",
				Usage: "Show a template with its items",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "id", Required: true},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out templateView
					if err := doTemplatesGet(ctx, cfg, uint(c.Uint("id")), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printTemplate(out)
					return nil
				},
			},
		},
	}
}

func cyclesCommand() *cli.Command {
	return &cli.Command{
		Name:  "cycles",
		Usage: "Cycle lifecycle commands",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a cycle from a template snapshot",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "project-id", Required: true},
					&cli.UintFlag{Name: "template-id", Required: true},
					&cli.IntFlag{Name: "control-minutes", Required: true},
					&cli.StringFlag{Name: "start", Usage: "start date, defaults to now"},
					&cli.StringFlag{Name: "mileage"},
					&cli.StringFlag{Name: "rock-level"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					start := time.Now()
					if c.String("start") != "" {
						start, err = parseTimeFlag(c.String("start"))
						if err != nil {
							return err
						}
					}
					in := map[string]any{
						"project_id":               c.Uint("project-id"),
						"template_id":              c.Uint("template-id"),
						"control_duration_minutes": c.Int("control-minutes"),
						"start_date":               start,
						"estimated_mileage":        c.String("mileage"),
						"rock_level":               c.String("rock-level"),
					}
					var out cycleView
					if err := doCyclesCreate(ctx, cfg, in, &out); err != nil {
						return err
					}
					fmt.Printf("created cycle %d (number %d)\n", out.ID, out.CycleNumber)
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List cycles of a project",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "project-id", Required: true},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []cycleView
					if err := doCyclesList(ctx, cfg, uint(c.Uint("project-id")), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printCycles(out)
					return nil
				},
			},
			{
				Name:  "show",
				Usage: "Show a cycle",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "id", Required: true},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out cycleView
					if err := doCyclesGet(ctx, cfg, uint(c.Uint("id")), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printCycle(out)
					return nil
				},
			},
			{
				Name:  "update",
				Usage: "Update cycle fields",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "id", Required: true},
					&cli.StringFlag{Name: "status", Usage: "IN_PROGRESS, COMPLETED or PAUSED"},
					&cli.StringFlag{Name: "end", Usage: "actual end date"},
					&cli.FloatFlag{Name: "advance", Value: -1, Usage: "measured advance length"},
					&cli.StringFlag{Name: "rock-level"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					in := map[string]any{}
					if c.String("status") != "" {
						in["status"] = c.String("status")
					}
					if c.String("end") != "" {
						end, err := parseTimeFlag(c.String("end"))
						if err != nil {
							return err
						}
						in["end_date"] = end
					}
					if c.Float("advance") >= 0 {
						in["advance_length"] = c.Float("advance")
					}
					if c.String("rock-level") != "" {
						in["rock_level"] = c.String("rock-level")
					}
					var out cycleView
					if err := doCyclesUpdate(ctx, cfg, uint(c.Uint("id")), in, &out); err != nil {
						return err
					}
					printCycle(out)
					return nil
				},
			},
			{
				Name:  "delete",
				Usage: "Soft-delete a cycle and its processes",
				Flags: []cli.Flag{&cli.UintFlag{Name: "id", Required: true}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					if err := doCyclesDelete(ctx, cfg, uint(c.Uint("id"))); err != nil {
						return err
					}
					fmt.Println("deleted")
					return nil
				},
			},
			{
				Name:  "processes",
				Usage: "List processes of a cycle",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "id", Required: true},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []processView
					if err := doCycleProcessesList(ctx, cfg, uint(c.Uint("id")), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printProcesses(out)
					return nil
				},
			},
			{
				Name:  "reorder",
				Usage: "Rewrite process start orders",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "id", Required: true},
					&cli.StringFlag{Name: "orders", Required: true, Usage: "process_id=order,process_id=order"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					orders, err := parseOrders(c.String("orders"))
					if err != nil {
						return err
					}
					if err := doCycleProcessOrders(ctx, cfg, uint(c.Uint("id")), orders); err != nil {
						return err
					}
					fmt.Println("orders updated")
					return nil
				},
			},
			{
				Name:  "time-summary",
				Usage: "Overlap-aware time totals for a cycle",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "id", Required: true},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out timeSummaryView
					if err := doCycleTimeSummary(ctx, cfg, uint(c.Uint("id")), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printTimeSummary(out)
					return nil
				},
			},
			{
				Name:  "report",
				Usage: "Build the cycle progress report",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "id", Required: true},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out reportView
					if err := doCycleReport(ctx, cfg, uint(c.Uint("id")), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printReport(out)
					return nil
				},
			},
		},
	}
}

func processesCommand() *cli.Command {
	return &cli.Command{
		Name:  "processes",
		Usage: "Process state machine commands",
		Commands: []*cli.Command{
			{
				Name:  "create-and-start",
				Usage: "Create a process directly in progress",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "cycle-id", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.UintFlag{Name: "def-id"},
					&cli.IntFlag{Name: "control-minutes", Required: true},
					&cli.IntFlag{Name: "order", Required: true},
					&cli.StringFlag{Name: "start", Usage: "actual start, defaults to now"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					start := time.Now()
					if c.String("start") != "" {
						start, err = parseTimeFlag(c.String("start"))
						if err != nil {
							return err
						}
					}
					in := map[string]any{
						"cycle_id":             c.Uint("cycle-id"),
						"name":                 c.String("name"),
						"process_def_id":       c.Uint("def-id"),
						"control_time_minutes": c.Int("control-minutes"),
						"start_order":          c.Int("order"),
						"actual_start_time":    start,
					}
					var out processView
					if err := doProcessCreateAndStart(ctx, cfg, in, &out); err != nil {
						return err
					}
					printProcess(out)
					return nil
				},
			},
			{
				Name:  "start",
				Usage: "Start a process",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "id", Required: true},
					&cli.StringFlag{Name: "at", Usage: "actual start time, defaults to now"},
					&cli.BoolFlag{Name: "enforce", Usage: "hard-block when the predecessor is incomplete"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					at := time.Now()
					if c.String("at") != "" {
						at, err = parseTimeFlag(c.String("at"))
						if err != nil {
							return err
						}
					}
					var out startResultView
					in := map[string]any{"actual_start_time": at}
					if err := doProcessStart(ctx, cfg, uint(c.Uint("id")), c.Bool("enforce"), in, &out); err != nil {
						return err
					}
					if out.Warning != nil {
						fmt.Printf("warning: predecessor %s (%d) is %s\n", out.Warning.PredecessorName, out.Warning.PredecessorID, out.Warning.PredecessorStatus)
					}
					printProcess(out.Process)
					return nil
				},
			},
			{
				Name:  "complete",
				Usage: "Complete a process",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "id", Required: true},
					&cli.StringFlag{Name: "at", Usage: "actual end time, defaults to now"},
					&cli.StringFlag{Name: "reason", Usage: "overtime reason, optional"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					at := time.Now()
					if c.String("at") != "" {
						at, err = parseTimeFlag(c.String("at"))
						if err != nil {
							return err
						}
					}
					var out completeResultView
					in := map[string]any{"actual_end_time": at, "overtime_reason": c.String("reason")}
					if err := doProcessComplete(ctx, cfg, uint(c.Uint("id")), in, &out); err != nil {
						return err
					}
					if out.ReasonPending {
						fmt.Println("overtime: reason pending")
					}
					printProcess(out.Process)
					return nil
				},
			},
			{
				Name:  "overtime-reason",
				Usage: "Record the reason for an overtime process",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "id", Required: true},
					&cli.StringFlag{Name: "reason", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out processView
					if err := doProcessOvertimeReason(ctx, cfg, uint(c.Uint("id")), c.String("reason"), &out); err != nil {
						return err
					}
					printProcess(out)
					return nil
				},
			},
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Time analytics commands",
		Commands: []*cli.Command{
			{
				Name:  "monthly-process-time",
				Usage: "Per-month process time statistic",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "project-id", Required: true},
					&cli.IntFlag{Name: "year", Required: true},
					&cli.IntFlag{Name: "month", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out map[string]any
					if err := doStatsMonthlyProcessTime(ctx, cfg, uint(c.Uint("project-id")), int(c.Int("year")), int(c.Int("month")), &out); err != nil {
						return err
					}
					return printJSON(out)
				},
			},
			{
				Name:  "monthly-advance",
				Usage: "Per-month advance length statistic",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "project-id", Required: true},
					&cli.IntFlag{Name: "year", Required: true},
					&cli.IntFlag{Name: "month", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out map[string]any
					if err := doStatsMonthlyAdvance(ctx, cfg, uint(c.Uint("project-id")), int(c.Int("year")), int(c.Int("month")), &out); err != nil {
						return err
					}
					return printJSON(out)
				},
			},
			{
				Name:  "weekly-overtime",
				Usage: "Current week overtime/saved hours",
				Flags: []cli.Flag{&cli.UintFlag{Name: "project-id", Required: true}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out map[string]any
					if err := doStatsWeeklyOvertime(ctx, cfg, uint(c.Uint("project-id")), &out); err != nil {
						return err
					}
					return printJSON(out)
				},
			},
			{
				Name:  "overtime-pending",
				Usage: "Completed overtime processes awaiting a reason",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "project-id", Required: true},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []processView
					if err := doStatsOvertimePending(ctx, cfg, uint(c.Uint("project-id")), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printProcesses(out)
					return nil
				},
			},
		},
	}
}

func parseTimeFlag(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q", value)
}

func parseTemplateItems(spec string) ([]map[string]any, error) {
	parts := strings.Split(spec, ",")
	items := make([]map[string]any, 0, len(parts))
	for _, part := range parts {
		fields := strings.Split(strings.TrimSpace(part), ":")
		if len(fields) != 4 {
			return nil, fmt.Errorf("invalid item spec %q, want name:def_id:control_min:order", part)
		}
		defID, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid def id in %q", part)
		}
		control, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("invalid control minutes in %q", part)
		}
		order, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("invalid order in %q", part)
		}
		items = append(items, map[string]any{
			"process_name":         fields[0],
			"process_def_id":       defID,
			"control_time_minutes": control,
			"order":                order,
		})
	}
	return items, nil
}

func parseOrders(spec string) (map[uint]int, error) {
	orders := make(map[uint]int)
	for _, part := range strings.Split(spec, ",") {
		fields := strings.Split(strings.TrimSpace(part), "=")
		if len(fields) != 2 {
			return nil, fmt.Errorf("invalid order spec %q, want process_id=order", part)
		}
		id, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid process id in %q", part)
		}
		order, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("invalid order in %q", part)
		}
		orders[uint(id)] = order
	}
	return orders, nil
}
