package jobs

import (
	"context"
	"log"
	"time"
)

// Job is a unit of periodic work. Errors are logged, not fatal: the next tick
// runs regardless.
type Job func(ctx context.Context) error

type Runner struct {
	ctx context.Context
}

func New(ctx context.Context) *Runner {
	return &Runner{ctx: ctx}
}

// Every runs fn on a fixed interval until the runner's context is cancelled.
func (r *Runner) Every(interval time.Duration, name string, fn Job) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Printf("[Jobs] %s: started, interval %s", name, interval)
		for {
			select {
			case <-r.ctx.Done():
				log.Printf("[Jobs] %s: stopped", name)
				return
			case <-ticker.C:
				if err := fn(r.ctx); err != nil {
					log.Printf("[Jobs] %s: %v", name, err)
				}
			}
		}
	}()
}
