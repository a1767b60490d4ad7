package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sandeshai/marcom-backend/internal/model"
)

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// GenerationJob asks a worker to generate one campaign for a vertical,
// optionally anchored to an upcoming event.
type GenerationJob struct {
	RunID     string `json:"run_id"`
	Vertical  string `json:"vertical"`
	EventName string `json:"event_name,omitempty"`
}

// InMemoryQueue is an in-process queue with per-queue retry policy.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error

	// MaxRetries applies to every published job. Provider-call jobs run with
	// zero retries; a failed generation is logged and skipped.
	MaxRetries int
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue(maxRetries int) *InMemoryQueue {
	return &InMemoryQueue{
		handlers:   make(map[string][]func(payload any) error),
		MaxRetries: maxRetries,
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: q.MaxRetries,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.WithFields(log.Fields{
			"attempt": job.RetryCount,
			"max":     job.MaxRetries,
			"payload": fmt.Sprintf("%+v", job.Payload),
		}).Warnf("job failed: %v", err)

		if job.RetryCount > job.MaxRetries {
			log.Warnf("job permanently failed after %d attempts", job.RetryCount)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// GenerateFunc matches PipelineService.Generate.
type GenerateFunc func(ctx context.Context, vertical, eventName string, extra map[string]string) (*model.GeneratedCampaign, error)

func StartGenerationSubscriber(q Queue, generate GenerateFunc) {
	go func() {
		err := q.Subscribe("generation_jobs", func(payload any) error {
			job, ok := payload.(GenerationJob)
			if !ok {
				log.Warn("⚠️ Invalid payload type, expected GenerationJob")
				return nil
			}

			gc, err := generate(context.Background(), job.Vertical, job.EventName, nil)
			if err != nil {
				log.WithFields(log.Fields{
					"vertical": job.Vertical,
					"event":    job.EventName,
				}).Warnf("⚠️ generation failed: %v", err)
				return err
			}

			log.WithFields(log.Fields{
				"vertical": gc.Vertical,
				"hook":     gc.Hook,
			}).Info("✅ campaign generated")
			return nil
		})

		if err != nil {
			log.Warnf("⚠️ Failed to start subscriber for generation_jobs: %v", err)
		}
	}()
}
