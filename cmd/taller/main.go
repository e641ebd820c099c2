package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/tallerhq/taller/internal/cli"
	"github.com/tallerhq/taller/internal/config"
	"github.com/tallerhq/taller/internal/db"
	"github.com/tallerhq/taller/internal/repository"
	"github.com/tallerhq/taller/internal/service"
	"github.com/tallerhq/taller/internal/template"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := os.Getenv("TALLER_CONFIG")
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	templates, err := template.LoadLibrary(cfg.TemplateDir)
	if err != nil {
		return fmt.Errorf("loading checklist templates: %w", err)
	}

	opts := []service.Option{
		service.WithNotifier(service.NewLogNotifier(os.Stderr)),
	}
	if cfg.AuditLogPath != "" {
		auditLog, err := openAuditLog(cfg.AuditLogPath)
		if err != nil {
			return err
		}
		defer auditLog.Close()
		opts = append(opts, service.WithMutationObserver(service.NewLogMutationObserver(auditLog)))
	}

	orders := service.NewWorkOrderService(
		repository.NewSQLiteWorkOrderRepo(database),
		repository.NewSQLiteChecklistRepo(database),
		repository.NewSQLiteNoteRepo(database),
		db.NewSQLiteUnitOfWork(database),
		templates,
		opts...,
	)

	app := &cli.App{
		Orders:       orders,
		DefaultActor: cfg.DefaultActor,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

func openAuditLog(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating audit log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	return f, nil
}
