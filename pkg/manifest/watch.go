package manifest

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/sevy33/permissions-in-go/pkg/server/store"
)

// Watch applies the manifest at path every time it is written, until ctx
// is cancelled. The parent directory is watched so that editors which
// replace the file on save are followed.
func Watch(ctx context.Context, st store.Store, path string, log logrus.FieldLogger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	log.WithField("file", path).Info("watching manifest for changes")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			applyFile(ctx, st, path, log)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watcher error")
		case <-ctx.Done():
			return nil
		}
	}
}

func applyFile(ctx context.Context, st store.Store, path string, log logrus.FieldLogger) {
	m, err := Load(path)
	if err != nil {
		log.WithError(err).Error("manifest not applied")
		return
	}
	result, err := Apply(ctx, st, m)
	if err != nil {
		log.WithError(err).Error("manifest not applied")
		return
	}
	log.WithField("project", m.Project.Name).Info(result.String())
}
