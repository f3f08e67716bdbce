//go:build linux

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	// sourceChangeMask selects the inotify events an editor save produces.
	sourceChangeMask = unix.IN_MODIFY | unix.IN_CLOSE_WRITE

	// recompileDelay coalesces the event burst of a single save into one
	// recompile.
	recompileDelay = 500 * time.Millisecond

	// eventBufSize holds a batch of events; watched paths are resolved
	// through the descriptor map, so no name payload is read.
	eventBufSize = 16 * unix.SizeofInotifyEvent
)

// FileWatcher reports Slate source modifications through inotify so watch
// mode can recompile on save.
type FileWatcher struct {
	inotifyFD int
	mu        sync.Mutex
	paths     map[int]string // watch descriptor -> absolute source path
	pending   map[string]*time.Timer
	onChange  func(string)
}

func NewFileWatcher(onChange func(string)) (*FileWatcher, error) {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("inotify_init failed: %v", err)
	}

	return &FileWatcher{
		inotifyFD: fd,
		paths:     make(map[int]string),
		pending:   make(map[string]*time.Timer),
		onChange:  onChange,
	}, nil
}

// AddFile registers one source file for change notifications.
func (fw *FileWatcher) AddFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	wd, err := unix.InotifyAddWatch(fw.inotifyFD, absPath, sourceChangeMask)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %v", absPath, err)
	}

	fw.mu.Lock()
	fw.paths[wd] = absPath
	fw.mu.Unlock()

	return nil
}

// Watch loops over inotify events until the process exits, scheduling a
// debounced recompile for every registered file that changes.
func (fw *FileWatcher) Watch() {
	buf := make([]byte, eventBufSize)

	for {
		n, err := unix.Read(fw.inotifyFD, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				time.Sleep(100 * time.Millisecond)
				continue
			}
			if VerboseMode {
				fmt.Fprintf(os.Stderr, "inotify read failed: %v\n", err)
			}
			continue
		}
		fw.dispatchEvents(buf[:n])
	}
}

// dispatchEvents walks one read's worth of packed inotify events.
func (fw *FileWatcher) dispatchEvents(buf []byte) {
	for offset := 0; offset < len(buf); {
		event := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
		offset += unix.SizeofInotifyEvent + int(event.Len)

		if event.Mask&sourceChangeMask == 0 {
			continue
		}

		fw.mu.Lock()
		path := fw.paths[int(event.Wd)]
		fw.mu.Unlock()

		if path != "" {
			fw.scheduleRecompile(path)
		}
	}
}

// scheduleRecompile arms (or re-arms) the per-file debounce timer.
func (fw *FileWatcher) scheduleRecompile(path string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if timer, armed := fw.pending[path]; armed {
		timer.Stop()
	}

	fw.pending[path] = time.AfterFunc(recompileDelay, func() {
		fw.onChange(path)
		fw.mu.Lock()
		delete(fw.pending, path)
		fw.mu.Unlock()
	})
}

func (fw *FileWatcher) Close() error {
	return unix.Close(fw.inotifyFD)
}
