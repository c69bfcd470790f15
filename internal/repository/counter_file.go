package repository

import (
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// DefaultCounterFile is where the booking number sequence lives when no path
// is configured.
const DefaultCounterFile = "idbooking.bin"

// FileCounter keeps the next booking number in a file as a 4-byte big-endian
// integer.
type FileCounter struct {
	mu   sync.Mutex
	path string
}

func NewFileCounter(path string) *FileCounter {
	if path == "" {
		path = DefaultCounterFile
	}
	return &FileCounter{path: path}
}

// Reserve returns the stored number and stores its successor. A missing or
// unreadable file reads as 0. When the write fails the number is still
// returned together with the error.
func (c *FileCounter) Reserve(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.load()
	if err := c.store(next + 1); err != nil {
		return next, err
	}
	return next, nil
}

// Peek returns the number the next Reserve will hand out.
func (c *FileCounter) Peek(ctx context.Context) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

func (c *FileCounter) load() int64 {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("read booking counter %s: %v", c.path, err)
		}
		return 0
	}
	if len(data) < 4 {
		log.Printf("booking counter %s is corrupt (%d bytes), starting from 0", c.path, len(data))
		return 0
	}
	n := int32(binary.BigEndian.Uint32(data[:4]))
	if n < 0 {
		return 0
	}
	return int64(n)
}

func (c *FileCounter) store(n int64) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(int32(n)))

	tmp := c.path + ".tmp"
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create counter dir: %w", err)
		}
	}
	if err := os.WriteFile(tmp, buf[:], 0o644); err != nil {
		return fmt.Errorf("write booking counter: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replace booking counter: %w", err)
	}
	return nil
}
