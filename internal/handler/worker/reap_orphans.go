package worker

import (
	"context"
	"log"

	"github.com/lcabrel/botposts-ms-go/internal/port"
	"github.com/lcabrel/botposts-ms-go/internal/task"
)

// ReapOrphansHandler handles a reap-orphans task.
// It converts the incoming task payload to the cutoff expected by the
// reaper service and delegates the call.
func ReapOrphansHandler(ctx context.Context, p task.ReapOrphansPayload, svc port.OrphanReaper) error {
	reaped, err := svc.ReapOrphans(ctx, p.OlderThan())
	if err != nil {
		log.Printf("❌  Failed to reap orphans: %v", err)
		return err
	}

	log.Printf("✅  Successfully reaped %d orphan object(s)", reaped)
	return nil
}
