package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/smileynet/cardsmith/internal/card"
)

// watch prints the card, then reprints it each time the --from file is
// written, until ctx ends. The directory is watched rather than the file so
// editors that save by rename are still seen. A file that fails to parse
// prints an error line and the watch continues.
func (s *ShowCmd) watch(ctx context.Context, w io.Writer, mode card.Mode, plain bool, log *zap.Logger) error {
	if s.From == "" {
		return fmt.Errorf("show: --watch requires --from")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return &runtimeError{fmt.Errorf("show: %w", err)}
	}
	defer watcher.Close()

	target := filepath.Clean(s.From)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return &runtimeError{fmt.Errorf("show: watching %s: %w", target, err)}
	}

	s.reprint(w, mode, plain, log)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			log.Debug("Record file changed", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			s.reprint(w, mode, plain, log)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("Watch error", zap.Error(err))
		}
	}
}

func (s *ShowCmd) reprint(w io.Writer, mode card.Mode, plain bool, log *zap.Logger) {
	r, err := s.load()
	if err != nil {
		log.Warn("Record file unreadable", zap.Error(err))
		_, _ = fmt.Fprintf(w, "error: %s\n", err)
		return
	}
	printCard(w, r, mode, plain)
}
