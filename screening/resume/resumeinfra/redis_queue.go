package resumeinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hireloop/screenline/screening/resume"
)

// RedisReparseQueue implements resume.ReparseQueue using Redis
type RedisReparseQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisReparseQueue creates a new Redis-based re-parse queue
func NewRedisReparseQueue(client *redis.Client, queueName string) resume.ReparseQueue {
	return &RedisReparseQueue{
		client:    client,
		queueName: queueName,
	}
}

// Enqueue adds a re-parse job to the queue
func (q *RedisReparseQueue) Enqueue(ctx context.Context, job *resume.ReparseJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal reparse job %s: %w", job.ResumeID, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue reparse job %s: %w", job.ResumeID, err)
	}

	return nil
}

// Dequeue gets a job from the queue (blocking with timeout)
func (q *RedisReparseQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		// redis.Nil is returned when the wait times out
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue reparse job: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	return []byte(result[1]), nil
}

// EnqueueDelayed schedules a job for later processing (for retries)
func (q *RedisReparseQueue) EnqueueDelayed(ctx context.Context, job *resume.ReparseJob, delay time.Duration) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal delayed reparse job %s: %w", job.ResumeID, err)
	}

	score := float64(time.Now().Add(delay).Unix())
	if err := q.client.ZAdd(ctx, q.delayedQueue(), redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed reparse job %s: %w", job.ResumeID, err)
	}

	return nil
}

// MoveDelayedToReady moves delayed jobs that are ready to the main queue
func (q *RedisReparseQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	now := float64(time.Now().Unix())

	jobs, err := q.client.ZRangeByScore(ctx, q.delayedQueue(), &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", now),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed reparse jobs: %w", err)
	}

	if len(jobs) == 0 {
		return 0, nil
	}

	// Pipeline keeps the move atomic per batch.
	pipe := q.client.Pipeline()
	for _, job := range jobs {
		pipe.LPush(ctx, q.queueName, job)
		pipe.ZRem(ctx, q.delayedQueue(), job)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed reparse jobs to ready: %w", err)
	}

	return len(jobs), nil
}

// Stats returns queue depth counters
func (q *RedisReparseQueue) Stats(ctx context.Context) (*resume.QueueStats, error) {
	ready, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return nil, fmt.Errorf("get queue size: %w", err)
	}

	delayed, err := q.client.ZCard(ctx, q.delayedQueue()).Result()
	if err != nil {
		return nil, fmt.Errorf("get delayed queue size: %w", err)
	}

	return &resume.QueueStats{
		QueueName:   q.queueName,
		ReadyJobs:   ready,
		DelayedJobs: delayed,
		TotalJobs:   ready + delayed,
	}, nil
}

func (q *RedisReparseQueue) delayedQueue() string {
	return q.queueName + ":delayed"
}
