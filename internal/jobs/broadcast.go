package jobs

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

// busBufferSize bounds the per-job channel so a slow or absent subscriber
// never blocks a worker's progress tick.
const busBufferSize = 32

// Bus fans progress snapshots out to in-process subscribers and, when a
// Redis client is attached, mirrors the same snapshots onto a pub/sub
// channel for external observers. The in-process channel is always the
// source of truth; Redis is strictly additive.
type Bus struct {
	mu          sync.Mutex
	subscribers map[string][]chan Job
	redis       *redis.Client
	logger      *log.Logger
}

// NewBus returns a Bus with no Redis mirror attached.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[string][]chan Job)}
}

// AttachRedis configures an additive pub/sub mirror. Publishing failures
// are logged and otherwise ignored — Redis is never load-bearing here.
func (b *Bus) AttachRedis(client *redis.Client, logger *log.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.redis = client
	b.logger = logger
}

// Subscribe returns a channel of progress snapshots for jobID. The channel
// is closed when Unsubscribe is called or never otherwise; callers should
// unsubscribe once they stop reading to avoid leaking the channel.
func (b *Bus) Subscribe(jobID string) chan Job {
	ch := make(chan Job, busBufferSize)
	b.mu.Lock()
	b.subscribers[jobID] = append(b.subscribers[jobID], ch)
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes ch from jobID's subscriber list and closes it.
func (b *Bus) Unsubscribe(jobID string, ch chan Job) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subscribers[jobID]
	for i, sub := range subs {
		if sub == ch {
			b.subscribers[jobID] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}
}

// Publish delivers snapshot to every in-process subscriber of jobID
// (dropping it for a full channel rather than blocking) and, if attached,
// publishes it on the Redis mirror channel.
func (b *Bus) Publish(jobID string, snapshot Job) {
	b.mu.Lock()
	subs := append([]chan Job(nil), b.subscribers[jobID]...)
	redisClient := b.redis
	logger := b.logger
	b.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- snapshot:
		default:
		}
	}

	if redisClient == nil {
		return
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := redisClient.Publish(context.Background(), redisChannel(jobID), payload).Err(); err != nil && logger != nil {
		logger.Warn("redis progress mirror publish failed", "job_id", jobID, "error", err)
	}
}

// redisChannel builds the pub/sub channel name for a job's progress mirror.
func redisChannel(jobID string) string {
	return "nflsim:jobs:" + jobID + ":progress"
}
