package screen

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	uuid "github.com/google/uuid"

	logger "github.com/uioperator/uictl/internal/logger"
)

// Buffer is a thread-safe ring buffer of recent screenshots with disk
// persistence under a per-session temp directory.
type Buffer struct {
	shots        []*Screenshot
	maxSize      int
	currentIndex int
	count        int
	mu           sync.RWMutex
	tempDir      string
	sessionID    string
}

// NewBuffer creates a screenshot ring buffer holding at most maxSize
// entries.
func NewBuffer(maxSize int, tempDir string) (*Buffer, error) {
	if maxSize < 1 {
		return nil, fmt.Errorf("buffer size must be at least 1, got %d", maxSize)
	}

	sessionID := uuid.New().String()
	sessionTempDir := filepath.Join(tempDir, fmt.Sprintf("session-%s", sessionID))
	if err := os.MkdirAll(sessionTempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &Buffer{
		shots:     make([]*Screenshot, maxSize),
		maxSize:   maxSize,
		tempDir:   sessionTempDir,
		sessionID: sessionID,
	}, nil
}

// Add appends a screenshot, evicting the oldest entry when full.
func (b *Buffer) Add(shot *Screenshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if shot.ID == "" {
		shot.ID = uuid.New().String()
	}
	if shot.Timestamp.IsZero() {
		shot.Timestamp = time.Now()
	}

	if b.count >= b.maxSize {
		if old := b.shots[b.currentIndex]; old != nil {
			b.deleteFromDisk(old)
		}
	}

	b.shots[b.currentIndex] = shot

	if err := b.writeToDisk(shot); err != nil {
		logger.Warn("Failed to write screenshot to disk", "error", err, "screenshot_id", shot.ID)
	}

	b.currentIndex = (b.currentIndex + 1) % b.maxSize
	if b.count < b.maxSize {
		b.count++
	}

	return nil
}

// Latest returns the most recent screenshot.
func (b *Buffer) Latest() (*Screenshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return nil, fmt.Errorf("buffer is empty")
	}

	latestIndex := (b.currentIndex - 1 + b.maxSize) % b.maxSize
	return b.shots[latestIndex], nil
}

// ByID returns a screenshot by its ID.
func (b *Buffer) ByID(id string) (*Screenshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, s := range b.shots {
		if s != nil && s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("screenshot not found: %s", id)
}

// Recent returns the limit most recent screenshots, newest first.
func (b *Buffer) Recent(limit int) []*Screenshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if limit <= 0 || limit > b.count {
		limit = b.count
	}

	result := make([]*Screenshot, 0, limit)
	for i := 0; i < limit; i++ {
		index := (b.currentIndex - 1 - i + b.maxSize) % b.maxSize
		if b.shots[index] != nil {
			result = append(result, b.shots[index])
		}
	}
	return result
}

// Count returns the number of buffered screenshots.
func (b *Buffer) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Clear removes all screenshots and their disk files.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.shots {
		if s != nil {
			b.deleteFromDisk(s)
		}
	}
	b.shots = make([]*Screenshot, b.maxSize)
	b.currentIndex = 0
	b.count = 0
}

// Cleanup removes the session temp directory.
func (b *Buffer) Cleanup() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.RemoveAll(b.tempDir); err != nil {
		return fmt.Errorf("failed to cleanup temp directory: %w", err)
	}
	return nil
}

func (b *Buffer) writeToDisk(shot *Screenshot) error {
	if shot.Data == "" {
		return nil
	}

	raw, err := base64.StdEncoding.DecodeString(shot.Data)
	if err != nil {
		return fmt.Errorf("failed to decode base64 data: %w", err)
	}

	if err := os.WriteFile(b.diskPath(shot), raw, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (b *Buffer) deleteFromDisk(shot *Screenshot) {
	_ = os.Remove(b.diskPath(shot))
}

// diskPath returns the spill file for a buffered screenshot. Write and
// delete must agree on it, whatever the capture format.
func (b *Buffer) diskPath(shot *Screenshot) string {
	ext := shot.Format
	if ext == "" {
		ext = "png"
	}
	return filepath.Join(b.tempDir, fmt.Sprintf("screenshot-%s.%s", shot.ID, ext))
}
