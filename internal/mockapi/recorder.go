package mockapi

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-go/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Recorder writes activity-log entries off the request path. Entries are
// routed to a fixed set of workers by hashing the task ID, guaranteeing
// per-task log ordering.
type Recorder struct {
	workers []chan domain.ActivityEntry
	store   *Store
	log     zerolog.Logger
}

// NewRecorder creates a Recorder with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewRecorder(numWorkers int, store *Store, log zerolog.Logger) *Recorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &Recorder{
		workers: make([]chan domain.ActivityEntry, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan domain.ActivityEntry, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *Recorder) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Record stamps the entry and enqueues it to the worker responsible for its
// task. ID and timestamp are assigned here, before the hand-off, so entries
// for one task keep their submission order and timestamps.
func (r *Recorder) Record(entry domain.ActivityEntry) {
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()
	r.workers[r.shardIndex(entry.TaskID)] <- entry
}

func (r *Recorder) shardIndex(taskID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(taskID))
	return int(h.Sum32()) % len(r.workers)
}

func (r *Recorder) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			r.store.AppendActivity(entry)
			r.log.Debug().
				Str("task_id", entry.TaskID).
				Str("action", string(entry.Action)).
				Int("worker_id", id).
				Msg("activity recorded")
		}
	}
}
