package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	orderapp "github.com/maxwelladwale/coltech/internal/application/order"
)

var _ orderapp.DocumentStorage = (*StubObjectStorage)(nil)

// StubObjectStorage keeps documents in memory and hands out fake download
// URLs under BaseURL. It backs development setups without a bucket.
type StubObjectStorage struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string]StoredObject
}

// StoredObject is a document held by the stub
type StoredObject struct {
	Data        []byte
	ContentType string
}

// NewStubObjectStorage creates a stub; an empty baseURL defaults to
// https://storage.example.com.
func NewStubObjectStorage(baseURL string) *StubObjectStorage {
	if baseURL == "" {
		baseURL = "https://storage.example.com"
	}
	return &StubObjectStorage{
		BaseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]StoredObject),
	}
}

// Upload stores a copy of data
func (s *StubObjectStorage) Upload(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.objects[key] = StoredObject{Data: buf, ContentType: contentType}
	s.mu.Unlock()
	return nil
}

// GenerateDownloadURL returns BaseURL/download/<key>?expires=<RFC3339>
func (s *StubObjectStorage) GenerateDownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	expiresAt := time.Now().Add(expiresIn)
	link := s.BaseURL + "/download/" + key + "?expires=" + url.QueryEscape(expiresAt.Format(time.RFC3339))
	return link, expiresAt, nil
}

// DeleteObject drops a document
func (s *StubObjectStorage) DeleteObject(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

// ObjectExists reports whether key was uploaded
func (s *StubObjectStorage) ObjectExists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()
	return ok, nil
}

// Object returns the stored document for key
func (s *StubObjectStorage) Object(key string) (StoredObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj, ok
}
