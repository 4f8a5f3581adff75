package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounce = 200 * time.Millisecond

// watch re-converts an input whenever it is written or recreated. Parent
// directories are watched because editors often replace files on save.
func watch(ctx context.Context, c *converter, inputs []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	tracked := make(map[string]string, len(inputs))
	dirs := make(map[string]struct{})
	for _, input := range inputs {
		abs, err := filepath.Abs(input)
		if err != nil {
			return err
		}
		tracked[abs] = input
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}
	c.logger.Info("watching inputs", zap.Int("inputs", len(inputs)))

	pending := make(map[string]struct{})
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			input, ok := tracked[abs]
			if !ok {
				continue
			}
			pending[input] = struct{}{}
			timer.Reset(debounce)
		case <-timer.C:
			for input := range pending {
				delete(pending, input)
				// Failures are logged by convert; keep watching.
				_ = c.convert(ctx, input)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("watcher error", zap.Error(err))
		}
	}
}
