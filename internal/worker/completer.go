// Package worker фоновые задачи сервиса
package worker

import (
	"context"
	"time"
)

// SessionRepository переводит прошедшие занятия в статус completed
type SessionRepository interface {
	MarkCompletedBefore(ctx context.Context, deadline time.Time) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Completer периодически помечает занятия с прошедшим EndTime как завершенные
// Отмененные занятия не затрагиваются
type Completer struct {
	sessionRepo SessionRepository
	logger      Logger
	interval    time.Duration
	stop        chan struct{}
	done        chan struct{}
}

// NewCompleter создает воркер завершения занятий
func NewCompleter(sessionRepo SessionRepository, logger Logger, interval time.Duration) *Completer {
	return &Completer{
		sessionRepo: sessionRepo,
		logger:      logger,
		interval:    interval,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start запускает цикл воркера; первый проход выполняется сразу
func (c *Completer) Start(ctx context.Context) {
	go c.run(ctx)
}

// Stop останавливает воркер и дожидается завершения текущего прохода
func (c *Completer) Stop() {
	close(c.stop)
	<-c.done
}

func (c *Completer) run(ctx context.Context) {
	defer close(c.done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.sweep(ctx)

	for {
		select {
		case <-ticker.C:
			c.sweep(ctx)
		case <-c.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (c *Completer) sweep(ctx context.Context) {
	completed, err := c.sessionRepo.MarkCompletedBefore(ctx, time.Now())
	if err != nil {
		c.logger.Error("[Completer] Failed to complete past sessions: %v", err)
		return
	}

	if completed > 0 {
		c.logger.Info("[Completer] Marked sessions as completed: count=%d", completed)
	}
}
