package main

import (
	"context"
	"log"
	"time"

	"github.com/lcabrel/botposts-ms-go/internal/config"
	"github.com/lcabrel/botposts-ms-go/internal/port"
	"github.com/lcabrel/botposts-ms-go/internal/task"
)

// Objects younger than this are never swept: an upload in flight between
// the presigned PUT and its register call must survive.
const defaultOlderThan = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌  Configuration error: %v", err)
	}

	dispatcher := initDispatcher(cfg)

	if err := enqueueSweep(context.Background(), dispatcher); err != nil {
		log.Fatalf("❌  Could not enqueue the orphan sweep: %v", err)
	}
	log.Println("✅  Orphan sweep enqueued")
}

func enqueueSweep(ctx context.Context, dispatcher port.TaskDispatcher) error {
	return dispatcher.EnqueueReapOrphans(ctx, defaultOlderThan)
}

func initDispatcher(cfg *config.Settings) port.TaskDispatcher {
	if cfg.RedisAddr == "" {
		log.Fatalf("❌  Redis not configured: this command requires a running Redis instance")
	}
	return task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
}
