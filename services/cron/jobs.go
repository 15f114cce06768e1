package cron

import (
	"context"
	"fmt"
	"time"
)

// TodoStats summarizes the store at one point in time
type TodoStats struct {
	Total     int
	Completed int
	Pending   int
}

// CollectTodoStats checks store health and counts todos
func (m *CronManager) CollectTodoStats(ctx context.Context) (TodoStats, error) {
	if err := m.store.HealthCheck(); err != nil {
		return TodoStats{}, fmt.Errorf("store health check: %w", err)
	}

	todos, err := m.store.GetAll(ctx)
	if err != nil {
		return TodoStats{}, fmt.Errorf("failed to list todos: %w", err)
	}

	stats := TodoStats{Total: len(todos)}
	for _, todo := range todos {
		if todo.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed

	return stats, nil
}

// ReportTodoStats logs the current todo counts
func (m *CronManager) ReportTodoStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stats, err := m.CollectTodoStats(ctx)
	if err != nil {
		m.logJobError(todoStatsJob, err)
		return
	}

	m.logJobComplete(todoStatsJob, fmt.Sprintf("%d todos (%d completed, %d pending)",
		stats.Total, stats.Completed, stats.Pending))
}
