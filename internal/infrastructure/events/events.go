// Package events records command outcomes reported by installed shell hooks.
// The most recent failure feeds the prompt context for `wtf`.
package events

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/wtf-sh/wtf/internal/domain"
	"github.com/wtf-sh/wtf/internal/ports"
)

const maxCommandLength = 8192

// FileSink appends hook events to a jsonl file (~/.wtf/events.jsonl).
type FileSink struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewFileSink builds a sink backed by the given path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path, now: time.Now}
}

// Record appends one event. Events about wtf itself are dropped so a hook
// firing on a wtf invocation cannot feed back into the next prompt.
func (s *FileSink) Record(event domain.HookEvent) error {
	event.Command = strings.TrimSpace(event.Command)
	if event.Command == "" {
		return fmt.Errorf("command cannot be empty")
	}
	if isSelfInvocation(event.Command) {
		return nil
	}
	if len(event.Command) > maxCommandLength {
		event.Command = event.Command[:maxCommandLength]
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.SecureFilePermissions)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", domain.ErrStoreUnavailable, s.path, err)
	}
	defer file.Close()
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrStoreUnavailable, s.path, err)
	}
	return nil
}

// LatestFailure returns the most recent non-zero-exit event, or nil when none
// is recorded. Unparseable lines are skipped.
func (s *FileSink) LatestFailure() (*domain.HookEvent, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrStoreUnavailable, s.path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var latest *domain.HookEvent
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var event domain.HookEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			continue
		}
		if event.ExitCode == 0 {
			continue
		}
		candidate := event
		latest = &candidate
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: scan %s: %v", domain.ErrStoreUnavailable, s.path, err)
	}
	return latest, nil
}

// Path returns the backing file path.
func (s *FileSink) Path() string {
	return s.path
}

func isSelfInvocation(command string) bool {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return true
	}
	return filepath.Base(fields[0]) == "wtf"
}

var _ ports.EventSink = (*FileSink)(nil)
