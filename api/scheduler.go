/*
scheduler.go - Daily admission-log reset scheduler

PURPOSE:
  Clears the admission log once per civil day, at local midnight in the
  canteen's fixed timezone. The manual /api/admin/zerar endpoint is the
  on-demand counterpart of the same bulk delete.

DESIGN:
  - Background goroutine armed with a timer for the next local midnight
  - Re-arms after every firing, so drift never accumulates
  - Failures are logged; the scheduler keeps running
  - RunNow() triggers an immediate reset (admin/testing)

USAGE:
  scheduler := NewResetScheduler(store)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: ResetLog endpoint (manual reset)
  - access/daywindow.go: The fixed civil timezone
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/refeitorio/controle-acesso/access"
	"github.com/refeitorio/controle-acesso/store/sqlite"
)

// ResetScheduler clears the admission log at local midnight every day.
type ResetScheduler struct {
	Store *sqlite.Store

	// Now is the clock used to compute the next firing. Overridable in
	// tests; defaults to time.Now.
	Now func() time.Time

	stop chan struct{}
	wg   sync.WaitGroup
	mu   sync.Mutex
	on   bool
}

// NewResetScheduler creates a new scheduler.
func NewResetScheduler(store *sqlite.Store) *ResetScheduler {
	return &ResetScheduler{
		Store: store,
		Now:   time.Now,
		stop:  make(chan struct{}),
	}
}

// Start begins the scheduler.
func (rs *ResetScheduler) Start() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.on {
		return
	}
	rs.on = true
	rs.wg.Add(1)

	go rs.run()

	log.Printf("[Scheduler] Limpeza diária agendada para meia-noite (%s)", access.Timezone)
}

// Stop stops the scheduler.
func (rs *ResetScheduler) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.on {
		return
	}
	close(rs.stop)
	rs.wg.Wait()
	rs.on = false
	log.Println("[Scheduler] Parado")
}

func (rs *ResetScheduler) run() {
	defer rs.wg.Done()

	for {
		timer := time.NewTimer(time.Until(nextMidnight(rs.Now())))
		select {
		case <-timer.C:
			rs.reset()
		case <-rs.stop:
			timer.Stop()
			return
		}
	}
}

// reset performs the bulk delete. Idempotent; an empty log is a no-op
// success.
func (rs *ResetScheduler) reset() {
	removed, err := rs.Store.DeleteAll(context.Background())
	if err != nil {
		log.Printf("[Scheduler] Erro na tarefa agendada ao zerar o relatório: %v", err)
		return
	}

	observeReset("agendado")
	log.Printf("[Scheduler] Relatório diário zerado com sucesso. %d registros removidos.", removed)
}

// RunNow triggers an immediate reset (for testing/admin).
func (rs *ResetScheduler) RunNow() {
	rs.reset()
}

// nextMidnight returns the first local midnight after now, in the
// canteen's fixed civil timezone.
func nextMidnight(now time.Time) time.Time {
	local := now.In(access.Timezone)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, access.Timezone)
}
