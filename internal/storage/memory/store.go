// Package memory provides an in-process StorageManager used for tests
// and local development without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tallyhq/tally/internal/common"
	"github.com/tallyhq/tally/internal/interfaces"
	"github.com/tallyhq/tally/internal/models"
)

// Manager implements interfaces.StorageManager with in-memory maps.
type Manager struct {
	userStore   *UserStore
	ledgerStore *LedgerStore
}

// NewManager creates an empty in-memory storage manager.
func NewManager(logger *common.Logger) *Manager {
	m := &Manager{
		userStore:   NewUserStore(),
		ledgerStore: NewLedgerStore(),
	}
	logger.Debug().Msg("In-memory storage manager initialized")
	return m
}

func (m *Manager) UserStore() interfaces.UserStore {
	return m.userStore
}

func (m *Manager) LedgerStore() interfaces.LedgerStore {
	return m.ledgerStore
}

func (m *Manager) Close() error {
	return nil
}

// UserStore keeps users, settings, and baselines keyed by user ID.
type UserStore struct {
	mu        sync.RWMutex
	users     map[string]models.User
	settings  map[string]models.UserSettings
	baselines map[string]models.OnboardingBaseline
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:     make(map[string]models.User),
		settings:  make(map[string]models.UserSettings),
		baselines: make(map[string]models.OnboardingBaseline),
	}
}

func (s *UserStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, interfaces.ErrNotFound)
	}
	return &user, nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, interfaces.ErrNotFound)
}

func (s *UserStore) SaveUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.UserID] = *user
	return nil
}

func (s *UserStore) CreateUserWithSettings(ctx context.Context, user *models.User, settings *models.UserSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Single lock scope: both rows appear together or not at all.
	s.users[user.UserID] = *user
	s.settings[user.UserID] = *settings
	return nil
}

func (s *UserStore) GetSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings, ok := s.settings[userID]
	if !ok {
		return nil, fmt.Errorf("settings for user %s: %w", userID, interfaces.ErrNotFound)
	}
	return &settings, nil
}

func (s *UserStore) SaveSettings(ctx context.Context, settings *models.UserSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings[settings.UserID] = *settings
	return nil
}

func (s *UserStore) GetBaseline(ctx context.Context, userID string) (*models.OnboardingBaseline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	baseline, ok := s.baselines[userID]
	if !ok {
		return nil, fmt.Errorf("baseline for user %s: %w", userID, interfaces.ErrNotFound)
	}
	return &baseline, nil
}

func (s *UserStore) CompleteOnboarding(ctx context.Context, userID string, baseline *models.OnboardingBaseline) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("user %s: %w", userID, interfaces.ErrNotFound)
	}

	s.baselines[userID] = *baseline
	user.OnboardingCompleted = true
	user.UpdatedAt = time.Now().UTC()
	s.users[userID] = user
	return nil
}

func (s *UserStore) Close() error {
	return nil
}

// LedgerStore keeps entries keyed by user ID then date.
type LedgerStore struct {
	mu      sync.RWMutex
	entries map[string]map[string]models.Entry
}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		entries: make(map[string]map[string]models.Entry),
	}
}

func (s *LedgerStore) GetEntry(ctx context.Context, userID, date string) (*models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[userID][date]
	if !ok {
		return nil, fmt.Errorf("entry %s/%s: %w", userID, date, interfaces.ErrNotFound)
	}
	return &entry, nil
}

func (s *LedgerStore) UpsertEntry(ctx context.Context, entry *models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries[entry.UserID] == nil {
		s.entries[entry.UserID] = make(map[string]models.Entry)
	}
	s.entries[entry.UserID][entry.Date] = *entry
	return nil
}

func (s *LedgerStore) ListEntriesByMonth(ctx context.Context, userID, monthKey string) ([]*models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []*models.Entry
	for _, entry := range s.entries[userID] {
		if entry.MonthKey == monthKey {
			e := entry
			entries = append(entries, &e)
		}
	}
	sortByDate(entries)
	return entries, nil
}

func (s *LedgerStore) ListEntries(ctx context.Context, userID string) ([]*models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []*models.Entry
	for _, entry := range s.entries[userID] {
		e := entry
		entries = append(entries, &e)
	}
	sortByDate(entries)
	return entries, nil
}

func (s *LedgerStore) Close() error {
	return nil
}

func sortByDate(entries []*models.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
}

var (
	_ interfaces.StorageManager = (*Manager)(nil)
	_ interfaces.UserStore      = (*UserStore)(nil)
	_ interfaces.LedgerStore    = (*LedgerStore)(nil)
)
