// Package banner holds the dismissible notice banner state and remembers which
// banners a visitor has dismissed.
package banner

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"

	"devb-web/internal/domain"
)

// DismissedKey is the storage item holding a JSON array of dismissed banner keys.
const DismissedKey = "dismissedBanners"

// Storage is a string key/value store scoped to one visitor.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
}

// Store is one visitor's banner state. Create one per visitor; it is safe for
// concurrent use.
type Store struct {
	mu      sync.Mutex
	storage Storage
	data    domain.BannerData
	logger  *slog.Logger
}

func NewStore(storage Storage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		storage: storage,
		data:    domain.BannerData{LinkText: "Learn More"},
		logger:  logger,
	}
}

// Data returns the current banner.
func (s *Store) Data() domain.BannerData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// SetBanner merges update into the current banner. A banner whose key was
// dismissed before stays hidden whatever update.Show says.
func (s *Store) SetBanner(ctx context.Context, update domain.BannerUpdate) domain.BannerData {
	s.mu.Lock()
	defer s.mu.Unlock()

	merge(&s.data, update)
	if update.BannerKey != nil && *update.BannerKey != "" && s.isDismissed(ctx, *update.BannerKey) {
		s.data.Show = false
	}
	return s.data
}

// HideBanner hides the banner and, when it has a key, remembers the dismissal.
func (s *Store) HideBanner(ctx context.Context) domain.BannerData {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.BannerKey != "" {
		s.saveDismissed(ctx, s.data.BannerKey)
	}
	s.data.Show = false
	return s.data
}

func (s *Store) dismissed(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys, _ := s.loadDismissed(ctx)
	return keys
}

func (s *Store) isDismissed(ctx context.Context, key string) bool {
	keys, _ := s.loadDismissed(ctx)
	return slices.Contains(keys, key)
}

// loadDismissed reads the dismissed list. A corrupt value is logged and read as
// empty; err is set only when the storage itself failed.
func (s *Store) loadDismissed(ctx context.Context) ([]string, error) {
	raw, found, err := s.storage.GetItem(ctx, DismissedKey)
	if err != nil {
		s.logger.Error("banner: read dismissed banners", "error", err)
		return nil, err
	}
	if !found || raw == "" {
		return nil, nil
	}
	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		s.logger.Warn("banner: corrupt dismissed banners, treating as empty", "error", err)
		return nil, nil
	}
	return keys, nil
}

// saveDismissed appends key to the persisted list. Nothing is written when the
// current list could not be read, so earlier dismissals are never overwritten.
func (s *Store) saveDismissed(ctx context.Context, key string) {
	keys, err := s.loadDismissed(ctx)
	if err != nil {
		s.logger.Warn("banner: dismissal not saved", "key", key, "error", err)
		return
	}
	if slices.Contains(keys, key) {
		return
	}
	keys = append(keys, key)
	b, err := json.Marshal(keys)
	if err != nil {
		s.logger.Error("banner: encode dismissed banners", "error", err)
		return
	}
	if err := s.storage.SetItem(ctx, DismissedKey, string(b)); err != nil {
		s.logger.Error("banner: save dismissed banners", "key", key, "error", err)
	}
}

func merge(dst *domain.BannerData, u domain.BannerUpdate) {
	if u.Show != nil {
		dst.Show = *u.Show
	}
	if u.BannerKey != nil {
		dst.BannerKey = *u.BannerKey
	}
	if u.Text != nil {
		dst.Text = *u.Text
	}
	if u.Link != nil {
		dst.Link = *u.Link
	}
	if u.LinkText != nil {
		dst.LinkText = *u.LinkText
	}
}

// MemoryStorage is a Storage kept in process memory.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: map[string]string{}}
}

func (m *MemoryStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryStorage) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}
