package cron

import (
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron/v3"
	"github.com/sahilchouksey/todos-api/database"
)

const todoStatsJob = "todo_stats"

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron          *cron.Cron
	store         database.Storage
	statsSchedule string
}

// NewCronManager creates a new cron manager. statsSchedule uses the
// six-field (seconds first) cron syntax.
func NewCronManager(store database.Storage, statsSchedule string) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:          c,
		store:         store,
		statsSchedule: statsSchedule,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	log.Info("Starting cron jobs...")

	// Register all jobs
	if err := m.registerJobs(); err != nil {
		return err
	}

	// Start the cron scheduler
	m.cron.Start()

	log.Info("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	log.Info("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Info("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	_, err := m.cron.AddFunc(m.statsSchedule, func() {
		m.logJobStart(todoStatsJob)
		m.ReportTodoStats()
	})
	if err != nil {
		return err
	}

	log.Infow("All cron jobs registered successfully", "jobs", len(m.cron.Entries()))
	return nil
}

// logJobStart logs the start of a cron job
func (m *CronManager) logJobStart(jobName string) {
	log.Debugw("[CRON] Starting job", "job", jobName, "at", time.Now().Format(time.RFC3339))
}

// logJobComplete logs successful completion of a cron job
func (m *CronManager) logJobComplete(jobName string, message string) {
	log.Infow("[CRON] Completed job", "job", jobName, "message", message)
}

// logJobError logs a cron job error
func (m *CronManager) logJobError(jobName string, err error) {
	log.Errorw("[CRON] Error in job", "job", jobName, "error", err)
}
