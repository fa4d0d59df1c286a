package justification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gama-center/ponto-backend-go/internal/domain/justification"
	"github.com/gama-center/ponto-backend-go/internal/pkg/sse"
)

const DefaultPollInterval = 30 * time.Second

// Watcher polls each watched user's latest justification and pushes the
// decision to their streams the first time it shows up decided and
// unacknowledged. One goroutine per watched user; Watch and Unwatch follow
// the stream subscribe/cleanup lifecycle.
type Watcher struct {
	repo     justification.JustificationRepository
	hub      *sse.Hub
	interval time.Duration

	mu       sync.Mutex
	watching map[string]context.CancelFunc
	notified map[string]string // userID -> last justification ID pushed
	wg       sync.WaitGroup
}

func NewWatcher(repo justification.JustificationRepository, hub *sse.Hub, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Watcher{
		repo:     repo,
		hub:      hub,
		interval: interval,
		watching: make(map[string]context.CancelFunc),
		notified: make(map[string]string),
	}
}

// Watch starts polling for userID. A second Watch for the same user is a
// no-op until Unwatch.
func (w *Watcher) Watch(userID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.watching[userID]; ok {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.watching[userID] = cancel
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.poll(ctx, userID)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.poll(ctx, userID)
			}
		}
	}()
}

// Unwatch stops polling for userID.
func (w *Watcher) Unwatch(userID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if cancel, ok := w.watching[userID]; ok {
		cancel()
		delete(w.watching, userID)
		delete(w.notified, userID)
	}
}

// Stop cancels every watch and waits for the pollers to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	for userID, cancel := range w.watching {
		cancel()
		delete(w.watching, userID)
	}
	w.mu.Unlock()
	w.wg.Wait()
}

func (w *Watcher) poll(ctx context.Context, userID string) {
	latest, err := w.repo.Latest(ctx, userID)
	if err != nil {
		slog.Error("Justification poll failed", "user_id", userID, "error", err)
		return
	}
	if latest == nil || latest.Pending() || latest.AcknowledgedAt != nil {
		return
	}

	w.mu.Lock()
	already := w.notified[userID] == latest.ID
	if !already {
		w.notified[userID] = latest.ID
	}
	w.mu.Unlock()
	if already {
		return
	}

	event := sse.EventJustificationRejected
	if *latest.Approved {
		event = sse.EventJustificationApproved
	}

	w.hub.Publish(userID, sse.Event{
		UserID: userID,
		Event:  event,
		Data:   justification.ToResponse(*latest),
	})
}
