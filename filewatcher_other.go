//go:build !linux

package main

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileWatcher polls file modification times on platforms without inotify.
type FileWatcher struct {
	mu       sync.Mutex
	mtimes   map[string]time.Time
	onChange func(string)
	done     chan struct{}
}

func NewFileWatcher(onChange func(string)) (*FileWatcher, error) {
	return &FileWatcher{
		mtimes:   make(map[string]time.Time),
		onChange: onChange,
		done:     make(chan struct{}),
	}, nil
}

func (fw *FileWatcher) AddFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return err
	}

	fw.mu.Lock()
	fw.mtimes[absPath] = info.ModTime()
	fw.mu.Unlock()

	return nil
}

func (fw *FileWatcher) Watch() {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-fw.done:
			return
		case <-ticker.C:
			fw.poll()
		}
	}
}

func (fw *FileWatcher) poll() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for path, last := range fw.mtimes {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().After(last) {
			fw.mtimes[path] = info.ModTime()
			fw.onChange(path)
		}
	}
}

func (fw *FileWatcher) Close() error {
	close(fw.done)
	return nil
}
