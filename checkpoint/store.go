// Package checkpoint adds an optional on-disk journal of branch-processing
// checkpoints, supplementing the in-call-only rollback contract of spec.md
// §4.1/§8.1 (SPEC_FULL.md §12). It does not participate in a Process
// call's rollback decision — core.Processor never imports this package —
// it exists purely so a crashed process can be diagnosed post-mortem:
// "what was the last entry checkpoint a branch run started from, and did
// it complete".
//
// Grounded on go-ethereum's core/blockchain_repair_test.go/
// blockchain_sethead_test.go idiom of recording a recoverable head before
// a risky operation, implemented here as an append-only, flock-guarded
// journal file.
package checkpoint

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/chainproc/chainproc/common"
)

// Entry is one journal record: a branch run's correlation id, the state
// root it started from, whether it completed, and when it was written.
type Entry struct {
	RunID     string      `json:"run_id"`
	Root      common.Hash `json:"root"`
	Completed bool        `json:"completed"`
	RecordedAt time.Time  `json:"recorded_at"`
}

// Store journals checkpoint entries to a single append-only file, guarded
// by an advisory file lock so multiple processes (or a crash-restart
// racing a still-running instance) never interleave partial writes.
type Store struct {
	path string
	lock *flock.Flock
}

// Open returns a Store journaling to dir/checkpoints.jsonl, creating dir if
// it doesn't already exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("checkpoint: create %s: %w", dir, err)
	}
	path := filepath.Join(dir, "checkpoints.jsonl")
	return &Store{
		path: path,
		lock: flock.New(filepath.Join(dir, ".checkpoints.lock")),
	}, nil
}

// RecordStart appends a not-yet-completed entry for runID/root, returning
// a func that appends the matching completion record. The file lock is
// held only for the duration of each append, never across the branch run
// itself.
func (s *Store) RecordStart(runID string, root common.Hash) (markDone func() error, err error) {
	if err := s.append(Entry{RunID: runID, Root: root, Completed: false, RecordedAt: time.Now()}); err != nil {
		return nil, err
	}
	return func() error {
		return s.append(Entry{RunID: runID, Root: root, Completed: true, RecordedAt: time.Now()})
	}, nil
}

func (s *Store) append(e Entry) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("checkpoint: acquire lock: %w", err)
	}
	defer s.lock.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("checkpoint: open journal: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("checkpoint: encode entry: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("checkpoint: write entry: %w", err)
	}
	return nil
}

// Entries reads back every journaled entry in append order, for
// post-mortem inspection after a crash.
func (s *Store) Entries() ([]Entry, error) {
	if err := s.lock.Lock(); err != nil {
		return nil, fmt.Errorf("checkpoint: acquire lock: %w", err)
	}
	defer s.lock.Unlock()

	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("checkpoint: open journal: %w", err)
	}
	defer f.Close()

	var out []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("checkpoint: decode entry: %w", err)
		}
		out = append(out, e)
	}
	return out, scanner.Err()
}

// Unfinished returns the subset of Entries whose matching completion
// record was never written — candidates for post-mortem diagnosis.
func Unfinished(entries []Entry) []Entry {
	started := make(map[string]Entry)
	done := make(map[string]bool)
	for _, e := range entries {
		if e.Completed {
			done[e.RunID] = true
		} else {
			started[e.RunID] = e
		}
	}
	var out []Entry
	for id, e := range started {
		if !done[id] {
			out = append(out, e)
		}
	}
	return out
}
