package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange after documents under root change, until ctx is
// done. Bursts of events are coalesced over debounce. Locale directories
// created after Watch starts are picked up.
func (l *Loader) Watch(ctx context.Context, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(l.root); err != nil {
		return err
	}
	for _, code := range l.cfg.SupportedLocales {
		dir := filepath.Join(l.root, code)
		if _, statErr := os.Stat(dir); errors.Is(statErr, os.ErrNotExist) {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			if !l.relevantEvent(event) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.logger.Warn().Err(watchErr).Msg("content watcher error")
		case <-fire:
			fire = nil
			onChange()
		}
	}
}

func (l *Loader) relevantEvent(event fsnotify.Event) bool {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}
	if l.hasContentExtension(event.Name) {
		return true
	}
	return event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
