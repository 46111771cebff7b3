// Package history keeps a bounded in-memory log of file mutations so the
// most recent ones can be undone. The log does not survive a restart.
package history

import (
	"errors"
	"fmt"
	"path"
	"sync"

	"github.com/sokinpui/genapp/internal/storage"
)

// DefaultCapacity bounds the log when no explicit capacity is given.
const DefaultCapacity = 100

// ErrNothingToUndo reports an empty log. It is an observable state, not a
// failure.
var ErrNothingToUndo = errors.New("no operation to undo")

// ErrUndoFailed wraps a reversal that could not be applied to storage.
var ErrUndoFailed = errors.New("undo failed")

// Kind tags an operation.
type Kind int

const (
	KindCreate Kind = iota
	KindUpdate
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "create"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Op is one recorded file mutation. Prior holds the bytes captured before
// the mutation; it is nil for Create, whose reversal is plain deletion.
// Once recorded, an Op is a snapshot and never changes.
type Op struct {
	Kind  Kind
	Path  string
	Prior []byte
}

// Log is an ordered, bounded sequence of operations. Insertion order is
// chronological; when full, the oldest entry is evicted. Undo pops from the
// tail, most recent first. Record and UndoLast are mutually exclusive.
type Log struct {
	mu  sync.Mutex
	ops []Op
	cap int
}

// New creates a log bounded at capacity. Non-positive capacities fall back
// to DefaultCapacity.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{cap: capacity}
}

// Record appends an operation, evicting the oldest entry when over capacity.
// The prior bytes are copied so later writes to the slice cannot alter the
// snapshot.
func (l *Log) Record(op Op) {
	if op.Prior != nil {
		cp := make([]byte, len(op.Prior))
		copy(cp, op.Prior)
		op.Prior = cp
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.ops = append(l.ops, op)
	if len(l.ops) > l.cap {
		l.ops = l.ops[len(l.ops)-l.cap:]
	}
}

// Len returns the number of undoable operations.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ops)
}

// UndoLast pops the most recent operation and reverses it against backend.
// Create is reversed by (recursive) deletion, Update and Delete by restoring
// the captured prior bytes. If the reversal fails the entry is not re-pushed;
// the log continues one entry shorter rather than retrying a broken path.
func (l *Log) UndoLast(backend storage.Backend) (Op, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.ops) == 0 {
		return Op{}, ErrNothingToUndo
	}
	op := l.ops[len(l.ops)-1]
	l.ops = l.ops[:len(l.ops)-1]

	if err := revert(backend, op); err != nil {
		return op, fmt.Errorf("%w: revert %s of %s: %w", ErrUndoFailed, op.Kind, op.Path, err)
	}
	return op, nil
}

func revert(backend storage.Backend, op Op) error {
	switch op.Kind {
	case KindCreate:
		// The creation may have implied new directories, so allow a
		// recursive delete.
		return backend.Delete(op.Path, true)
	case KindUpdate:
		return backend.Write(op.Path, op.Prior)
	case KindDelete:
		if dir := path.Dir(op.Path); dir != "." && dir != "/" {
			if err := backend.MkdirAll(dir); err != nil {
				return err
			}
		}
		return backend.Write(op.Path, op.Prior)
	default:
		return fmt.Errorf("unknown operation kind %d", op.Kind)
	}
}
