package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	catalogapp "github.com/secondhandshop/backend/internal/application/catalog"
)

// MockStoragePathPrefix is the route the API server exposes for LocalObjectStorage
const MockStoragePathPrefix = "/mock-storage/"

// Ensure LocalObjectStorage implements ObjectStorageService
var _ catalogapp.ObjectStorageService = (*LocalObjectStorage)(nil)

type localObject struct {
	data         []byte
	contentType  string
	etag         string
	lastModified time.Time
}

// LocalObjectStorage keeps objects in memory for mock mode. Its presigned
// URLs point at the API server's /mock-storage/ endpoint.
type LocalObjectStorage struct {
	mu      sync.RWMutex
	objects map[string]localObject
	baseURL string
	now     func() time.Time
}

// NewLocalObjectStorage creates an empty store whose URLs are rooted at baseURL
func NewLocalObjectStorage(baseURL string) *LocalObjectStorage {
	return &LocalObjectStorage{
		objects: make(map[string]localObject),
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// GenerateUploadURL returns the mock PUT endpoint for storageKey
func (s *LocalObjectStorage) GenerateUploadURL(
	_ context.Context,
	storageKey, contentType string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, ErrEmptyKey
	}
	if expiresIn <= 0 {
		expiresIn = defaultUploadExpiry
	}
	expiresAt := s.now().Add(expiresIn)
	q := url.Values{}
	q.Set("contentType", contentType)
	q.Set("expires", expiresAt.UTC().Format(time.RFC3339))
	return s.objectURL(storageKey) + "?" + q.Encode(), expiresAt, nil
}

// GenerateDownloadURL returns the mock GET endpoint for storageKey
func (s *LocalObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, ErrEmptyKey
	}
	return s.objectURL(storageKey), s.now().Add(expiresIn), nil
}

// Upload stores data under storageKey
func (s *LocalObjectStorage) Upload(_ context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return ErrEmptyKey
	}
	sum := md5.Sum(data)
	copied := make([]byte, len(data))
	copy(copied, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = localObject{
		data:         copied,
		contentType:  contentType,
		etag:         hex.EncodeToString(sum[:]),
		lastModified: s.now(),
	}
	return nil
}

// DeleteObject removes storageKey; missing keys are ignored
func (s *LocalObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

// ObjectExists reports whether storageKey is stored
func (s *LocalObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, ErrEmptyKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[storageKey]
	return ok, nil
}

// HeadObject returns metadata for storageKey
func (s *LocalObjectStorage) HeadObject(_ context.Context, storageKey string) (*ObjectInfo, error) {
	obj, err := s.lookup(storageKey)
	if err != nil {
		return nil, err
	}
	info := obj.info(storageKey)
	return &info, nil
}

// GetObject returns a reader over the stored bytes
func (s *LocalObjectStorage) GetObject(_ context.Context, storageKey string) (*Object, error) {
	obj, err := s.lookup(storageKey)
	if err != nil {
		return nil, err
	}
	return &Object{
		ObjectInfo: obj.info(storageKey),
		Body:       io.NopCloser(bytes.NewReader(obj.data)),
	}, nil
}

// BuildDisplayURL returns the mock GET endpoint for storageKey
func (s *LocalObjectStorage) BuildDisplayURL(storageKey string) string {
	return s.objectURL(storageKey)
}

func (s *LocalObjectStorage) objectURL(storageKey string) string {
	return buildDisplayURL(s.baseURL+strings.TrimRight(MockStoragePathPrefix, "/"), storageKey)
}

func (s *LocalObjectStorage) lookup(storageKey string) (localObject, error) {
	if storageKey == "" {
		return localObject{}, ErrEmptyKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[storageKey]
	if !ok {
		return localObject{}, ErrObjectNotFound
	}
	return obj, nil
}

func (o localObject) info(key string) ObjectInfo {
	modified := o.lastModified
	contentType := o.contentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return ObjectInfo{
		Key:           key,
		ContentType:   contentType,
		ContentLength: int64(len(o.data)),
		ETag:          o.etag,
		LastModified:  &modified,
	}
}
