package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watch runs run once immediately, then again every time a .go file
// changes under any of roots, serialized behind mu so an edit that
// lands mid-regeneration queues rather than racing the file write
// generate produces — SPEC_FULL's generator is specified as
// single-writer per output file.
func watch(roots []string, run func() error) error {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("tqlc: starting watcher: %w", err)
	}
	defer w.Close()

	for _, root := range roots {
		if err := addRecursive(w, root); err != nil {
			return err
		}
	}

	var mu sync.Mutex
	var pending bool
	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".go") || strings.HasSuffix(ev.Name, "_gen.go") {
				continue
			}
			mu.Lock()
			if !pending {
				pending = true
				debounce.Reset(150 * time.Millisecond)
			}
			mu.Unlock()
		case <-debounce.C:
			mu.Lock()
			pending = false
			mu.Unlock()
			if err := run(); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "tqlc: watch:", err)
		}
	}
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
