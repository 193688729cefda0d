// Package session owns the credential pair and the login state derived
// from it. All other components read the state through the Store or
// invoke its mutations; none hold a private copy.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Storage is the flat key→string persistence the credential store
// writes tokens to. It outlives the process; no structure beyond
// string values is required. Implementations must be safe for
// concurrent use.
type Storage interface {
	// Get returns the stored value, or an empty string when absent.
	Get(key string) string
	// Set stores the value under the key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(key string) error
}

// FileStorage persists values to a single JSON file on disk.
// The whole map is loaded when the storage is opened and rewritten
// on every mutation.
type FileStorage struct {
	path   string
	mu     sync.Mutex
	values map[string]string
}

// NewFileStorage opens the storage file at path, creating an empty
// storage when the file does not exist yet.
func NewFileStorage(path string) (*FileStorage, error) {
	fs := &FileStorage{path: path, values: make(map[string]string)}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, fmt.Errorf("open storage file: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&fs.values); err != nil {
		return nil, fmt.Errorf("parse storage file: %w", err)
	}
	return fs, nil
}

// Get returns the stored value for key, or "" when absent.
func (fs *FileStorage) Get(key string) string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.values[key]
}

// Set stores value under key and rewrites the backing file.
func (fs *FileStorage) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.values[key] = value
	return fs.save()
}

// Remove deletes key and rewrites the backing file.
func (fs *FileStorage) Remove(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	delete(fs.values, key)
	return fs.save()
}

// save writes the current map to disk. Callers must hold the mutex.
func (fs *FileStorage) save() error {
	f, err := os.Create(fs.path)
	if err != nil {
		return fmt.Errorf("write storage file: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(fs.values)
}

// MemStorage is an in-memory Storage, useful in tests and for
// embedding the client without touching the filesystem.
type MemStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemStorage returns an empty in-memory storage.
func NewMemStorage() *MemStorage {
	return &MemStorage{values: make(map[string]string)}
}

// Get returns the stored value for key, or "" when absent.
func (ms *MemStorage) Get(key string) string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.values[key]
}

// Set stores value under key.
func (ms *MemStorage) Set(key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.values[key] = value
	return nil
}

// Remove deletes key.
func (ms *MemStorage) Remove(key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.values, key)
	return nil
}
