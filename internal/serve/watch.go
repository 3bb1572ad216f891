package serve

import (
	"context"
	"errors"
	"github.com/fsnotify/fsnotify"
	"io/fs"
	"path/filepath"
	"pdsite/internal/domain/content"
	"pdsite/internal/logging"
	"strings"
	"time"
)

const reloadDebounce = 200 * time.Millisecond

// startWatch subscribes to both content directories. Directories that do not
// exist yet are skipped.
func (s *Server) startWatch() error {
	var err error
	s.watchOnce.Do(func() {
		w, e := fsnotify.NewWatcher()
		if e != nil {
			err = e
			return
		}
		s.watcher = w

		log := s.logs.Get(logging.ModuleWatch)
		for _, dir := range []string{content.PagesDir, content.NarrativesDir} {
			p := filepath.Join(s.cfg.Content.Root, filepath.FromSlash(dir))
			if e := w.Add(p); e != nil {
				log.Warn("not watching content directory", "dir", p, "err", e)
				continue
			}
			log.Info("watching content directory", "dir", p)
		}
	})
	return err
}

func isMarkdownEvent(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return strings.EqualFold(filepath.Ext(ev.Name), ".md")
}

// watchLoop rebuilds the index once writes have been quiet for the debounce
// interval.
func (s *Server) watchLoop(ctx context.Context) {
	log := s.logs.Get(logging.ModuleWatch)

	debounce := time.NewTimer(time.Hour)
	debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if isMarkdownEvent(ev) {
				debounce.Reset(reloadDebounce)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("watcher error", "err", err)
		case <-debounce.C:
			idx, err := s.rebuild()
			if err != nil && !isMissingDir(err) {
				log.Error("content reload incomplete", "err", err)
			}
			log.Info("content reloaded", "playbook", len(idx.ListPlaybook()))
		}
	}
}

func isMissingDir(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
