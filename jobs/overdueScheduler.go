package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"helpdesk/config"
	"helpdesk/services/training"
)

func logSweep(message string) {
	log.Printf("[OVERDUE-SWEEP %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartOverdueScheduler runs the due-date sweep on the configured cron spec.
// The sweep lives outside the engine and calls its MarkOverdueAssignments
// operation like any other caller.
func StartOverdueScheduler(cfg *config.Config, svc *training.Service) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc(cfg.OverdueSweepSpec, func() {
		moved, err := svc.MarkOverdueAssignments(time.Now(), cfg.SweepBatchSize)
		if err != nil {
			logSweep("sweep failed: " + err.Error())
			return
		}
		if moved > 0 {
			logSweep(fmt.Sprintf("marked %d assignments OVERDUE", moved))
		}
	})
	if err != nil {
		log.Fatalf("Invalid OVERDUE_SWEEP_SPEC %q: %v", cfg.OverdueSweepSpec, err)
	}

	c.Start()
	logSweep("scheduler started with spec " + cfg.OverdueSweepSpec)
	return c
}
