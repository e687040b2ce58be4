package jobs

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSnapshotRefresh recomputes monthly balance snapshots.
	TaskTypeSnapshotRefresh = "ledger:snapshot_refresh"
)

// SnapshotRefreshPayload parameterises a snapshot recomputation run.
// UpTo is a YYYY-MM-DD boundary; empty means the current date. RunID
// doubles as the advisory lock token so a run can only release its own
// lock.
type SnapshotRefreshPayload struct {
	RunID string `json:"runId"`
	UpTo  string `json:"upTo,omitempty"`
}

// NewSnapshotRefreshTask constructs an Asynq task, minting a run id when
// the caller did not supply one.
func NewSnapshotRefreshTask(payload SnapshotRefreshPayload) (*asynq.Task, error) {
	if payload.RunID == "" {
		payload.RunID = uuid.NewString()
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSnapshotRefresh, data), nil
}
