package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/avirtala/takaraja/internal/cli"
	"github.com/avirtala/takaraja/internal/db"
	"github.com/avirtala/takaraja/internal/notify"
	"github.com/avirtala/takaraja/internal/repository"
	"github.com/avirtala/takaraja/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Course storage: env var or default ~/Documents/CourseDeadlines
	storageDir := os.Getenv("TAKARAJA_DIR")
	if storageDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		storageDir = filepath.Join(home, "Documents", "CourseDeadlines")
	}

	// Alert ledger: env var or default ~/.takaraja/alerts.db
	ledgerPath := os.Getenv("TAKARAJA_DB")
	if ledgerPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		ledgerPath = filepath.Join(home, ".takaraja", "alerts.db")
	}

	// Load the course catalog. Scan degrades to an empty catalog on
	// filesystem trouble instead of refusing to start.
	courseRepo := repository.NewFileCourseRepo(storageDir)
	if err := courseRepo.Scan(context.Background()); err != nil {
		return fmt.Errorf("scanning course directory: %w", err)
	}

	// An unavailable ledger means no alerts, not a broken app.
	var scheduler notify.Scheduler = notify.NoopScheduler{}
	app := &cli.App{}
	if database, err := db.OpenDB(ledgerPath); err != nil {
		log.Printf("takaraja: alert ledger unavailable, notifications disabled: %v", err)
	} else {
		defer database.Close()
		ledger := notify.NewSQLiteScheduler(database)
		scheduler = ledger
		app.Ledger = ledger
	}

	app.Courses = service.NewCourseService(courseRepo, scheduler)

	// Detect interactive terminal for the browser entrypoint and forms.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
