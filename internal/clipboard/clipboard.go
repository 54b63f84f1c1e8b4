// Package clipboard reads and writes clipboard text, either through the
// system clipboard or an in-process store.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/fencedit/internal/logger"
)

// Reader reads clipboard text. Implementations may block and must honour ctx.
type Reader interface {
	ReadText(ctx context.Context) (string, error)
}

// Writer replaces the clipboard text.
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// Clipboard is both a Reader and a Writer.
type Clipboard interface {
	Reader
	Writer
}

// ErrUnsupported is returned when no system clipboard utility is available.
var ErrUnsupported = errors.New("system clipboard unsupported")

// New returns the system clipboard when system is true and the platform
// supports it, otherwise an in-memory clipboard.
func New(system bool) Clipboard {
	if system {
		if clipboard.Unsupported {
			logger.Warnf("Clipboard: system clipboard unsupported, using internal clipboard")
		} else {
			return System{}
		}
	}
	return &Memory{}
}

// System uses the OS clipboard through github.com/atotto/clipboard.
type System struct{}

type readResult struct {
	text string
	err  error
}

// ReadText reads the system clipboard. The underlying read runs on its own
// goroutine so a hung clipboard helper cannot outlive ctx for the caller.
func (System) ReadText(ctx context.Context) (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	done := make(chan readResult, 1)
	go func() {
		text, err := clipboard.ReadAll()
		done <- readResult{text: text, err: err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("read system clipboard: %w", res.err)
		}
		return res.text, nil
	}
}

// WriteText writes the system clipboard.
func (System) WriteText(ctx context.Context, text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write system clipboard: %w", err)
	}
	return nil
}

// Memory is a clipboard kept inside the process.
type Memory struct {
	mu   sync.Mutex
	text string
	// Err, when set, is returned by ReadText.
	Err error
}

// NewMemory creates an in-memory clipboard holding text.
func NewMemory(text string) *Memory {
	return &Memory{text: text}
}

// ReadText returns the stored text.
func (m *Memory) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	return m.text, nil
}

// WriteText stores text.
func (m *Memory) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	logger.Debugf("Clipboard: stored %d bytes", len(text))
	return nil
}
