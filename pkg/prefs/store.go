package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"
)

// ErrNotFound is returned by Get when a key has never been set.
var ErrNotFound = errors.New("prefs: not found")

// Store is the key-value medium preferences live in. Every method reports
// failure as an error; none of them panic.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// Disk keeps one file per key under a base directory.
type Disk struct {
	d        *diskv.Diskv
	basePath string
}

// OpenDisk returns a diskv-backed store rooted at basePath. The in-memory
// cache stays off so writes from another reader instance are always seen.
func OpenDisk(basePath string) (*Disk, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("prefs: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("prefs: ensure base path: %w", err)
	}
	return &Disk{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    flatTransform,
			CacheSizeMax: 0,
		}),
		basePath: basePath,
	}, nil
}

func flatTransform(string) []string { return []string{} }

// BasePath is the directory holding the preference files.
func (p *Disk) BasePath() string { return p.basePath }

// Get reads key.
func (p *Disk) Get(key string) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("prefs: read %s: %w", key, err)
	}
	return string(val), nil
}

// Set writes key.
func (p *Disk) Set(key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := p.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("prefs: write %s: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (p *Disk) Remove(key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := p.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("prefs: erase %s: %w", key, err)
	}
	return nil
}

// Keys lists the stored keys.
func (p *Disk) Keys() []string {
	var keys []string
	for k := range p.d.Keys(nil) {
		keys = append(keys, k)
	}
	return keys
}

func validKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("prefs: invalid key %q", key)
	}
	return nil
}

// Memory is an in-process Store. Err, when set, is returned by every call,
// which lets tests exercise the swallow-and-log paths.
type Memory struct {
	mu   sync.Mutex
	vals map[string]string
	Err  error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{vals: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	v, ok := m.vals[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.vals[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.vals, key)
	return nil
}
