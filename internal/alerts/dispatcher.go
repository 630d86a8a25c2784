package alerts

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"

	"github.com/Tchybbi/Smatico/internal/store"
)

// Dispatcher turns order lifecycle events into in-app notifications.
// With a Redis address configured, events go through an asynq queue and a
// background worker applies them; without one they are applied inline.
// Either way delivery is best-effort and callers never fail on it.
type Dispatcher struct {
	store  *store.Store
	client *asynq.Client
	server *asynq.Server
}

// New creates a Dispatcher. redisAddr may be empty.
func New(st *store.Store, redisAddr string) *Dispatcher {
	d := &Dispatcher{store: st}
	if redisAddr == "" {
		log.Printf("alerts: no REDIS_ADDR, applying notifications inline")
		return d
	}

	opts := asynq.RedisClientOpt{Addr: redisAddr}
	d.client = asynq.NewClient(opts)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, d.handleNotify)
	mux.HandleFunc(TaskBidPlaced, d.handleNotify)
	mux.HandleFunc(TaskBidAccepted, d.handleNotify)
	mux.HandleFunc(TaskOrderCompleted, d.handleNotify)
	mux.HandleFunc(TaskOrderCancelled, d.handleNotify)
	mux.HandleFunc(TaskRatingReceived, d.handleNotify)

	d.server = asynq.NewServer(opts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"notifications": 10,
		},
	})
	go func() {
		if err := d.server.Run(mux); err != nil {
			log.Printf("alerts: asynq server stopped: %v", err)
		}
	}()

	log.Printf("alerts: asynq initialized (addr=%s)", redisAddr)
	return d
}

// Close releases the client and stops the worker.
func (d *Dispatcher) Close() {
	if d.client != nil {
		_ = d.client.Close()
	}
	if d.server != nil {
		d.server.Shutdown()
	}
}

func (d *Dispatcher) handleNotify(_ context.Context, t *asynq.Task) error {
	var p NotificationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	d.apply(p)
	return nil
}

func (d *Dispatcher) apply(p NotificationPayload) {
	if _, err := d.store.AddNotification(p.UserID, p.Type, p.Title, p.Body, p.Reference); err != nil {
		log.Printf("alerts: add notification (%s): %v", p.Type, err)
	}
}

func (d *Dispatcher) dispatch(taskType string, p NotificationPayload) {
	if d.client == nil {
		d.apply(p)
		return
	}
	b, _ := json.Marshal(p)
	task := asynq.NewTask(taskType, b)
	if _, err := d.client.Enqueue(task, asynq.Queue("notifications")); err != nil {
		log.Printf("alerts: enqueue %s: %v, applying inline", taskType, err)
		d.apply(p)
	}
}
