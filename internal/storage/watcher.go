package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"splitcaster/internal/core/model"

	"github.com/fsnotify/fsnotify"
)

// RouteChangeCallback receives a route reloaded from disk.
type RouteChangeCallback func(route model.Route)

// RouteWatcher reloads the route file when something other than the store
// changes it. The directory is watched rather than the file so editors that
// save by rename are still seen.
type RouteWatcher struct {
	watcher  *fsnotify.Watcher
	store    *RouteStore
	onChange RouteChangeCallback
	onError  func(error)
	debounce time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRouteWatcher creates a watcher for the store's file. onError may be nil.
func NewRouteWatcher(store *RouteStore, onChange RouteChangeCallback, onError func(error)) (*RouteWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create route watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(store.Path())); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch route directory: %w", err)
	}

	return &RouteWatcher{
		watcher:  watcher,
		store:    store,
		onChange: onChange,
		onError:  onError,
		debounce: 300 * time.Millisecond,
	}, nil
}

// Start begins watching until ctx is cancelled or Stop is called.
func (rw *RouteWatcher) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	rw.mu.Lock()
	rw.cancel = cancel
	rw.done = done
	rw.mu.Unlock()

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-rw.watcher.Events:
				if !ok {
					return
				}
				rw.handleEvent(event)
			case err, ok := <-rw.watcher.Errors:
				if !ok {
					return
				}
				rw.report(fmt.Errorf("route watcher: %w", err))
			}
		}
	}()
}

// Stop ends the watch. A pending debounced reload is dropped.
func (rw *RouteWatcher) Stop() {
	rw.mu.Lock()
	cancel, done := rw.cancel, rw.done
	rw.cancel = nil
	if rw.timer != nil {
		rw.timer.Stop()
		rw.timer = nil
	}
	rw.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	_ = rw.watcher.Close()
}

func (rw *RouteWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(rw.store.Path()) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	rw.mu.Lock()
	defer rw.mu.Unlock()
	if rw.cancel == nil {
		return
	}
	if rw.timer != nil {
		rw.timer.Stop()
	}
	rw.timer = time.AfterFunc(rw.debounce, rw.reload)
}

func (rw *RouteWatcher) reload() {
	rawData, err := os.ReadFile(rw.store.Path())
	if err != nil {
		// Renamed away; the matching Create brings it back.
		if os.IsNotExist(err) {
			return
		}
		rw.report(fmt.Errorf("read route file: %w", err))
		return
	}
	if rw.store.WroteContent(rawData) {
		return
	}

	format, err := FormatForPath(rw.store.Path())
	if err != nil {
		rw.report(err)
		return
	}
	route, err := DecodeRoute(rawData, format)
	if err != nil {
		rw.report(err)
		return
	}
	if rw.onChange != nil {
		rw.onChange(route)
	}
}

func (rw *RouteWatcher) report(err error) {
	if rw.onError != nil {
		rw.onError(err)
	}
}
