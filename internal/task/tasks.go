package task

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeReapOrphans = "media:reap_orphans"

type ReapOrphansPayload struct {
	OlderThanSeconds int64 `json:"older_than_seconds"`
}

// NewReapOrphansTask creates an Asynq task sweeping unreferenced blob
// objects older than the cutoff.
func NewReapOrphansTask(olderThan time.Duration) (*asynq.Task, error) {
	p := ReapOrphansPayload{OlderThanSeconds: int64(olderThan.Seconds())}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal reap-orphans payload: %w", err)
	}
	return asynq.NewTask(TypeReapOrphans, data), nil
}

// ParseReapOrphansPayload parses the task payload to ReapOrphansPayload.
func ParseReapOrphansPayload(t *asynq.Task) (ReapOrphansPayload, error) {
	var p ReapOrphansPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return ReapOrphansPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}

// OlderThan returns the cutoff as a duration.
func (p ReapOrphansPayload) OlderThan() time.Duration {
	return time.Duration(p.OlderThanSeconds) * time.Second
}
