package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
)

// watchInput re-plans name every time the revenues file at path is written
// or replaced, until ctx is done. The directory is watched rather than the
// file so saves that rename over it are still seen.
func watchInput(ctx context.Context, log logr.Logger, ps *Planners, name, path string, k int) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	replan := func() {
		revenues, err := ReadRevenues(path)
		if err != nil {
			log.Error(err, "reading revenues", "path", path)
			return
		}
		p, err := ps.Run(ctx, name, k, revenues)
		if err != nil {
			log.Error(err, "planning failed", "path", path)
			return
		}
		log.Info("replanned", "plan", name, "days", len(revenues), "profit", p.Result().Profit)
	}

	replan()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				log.V(1).Info("input changed", "path", path, "op", ev.Op.String())
				replan()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error(err, "watcher error")
		}
	}
}
