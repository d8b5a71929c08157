package usecase

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/chek-project/chek-kma/pkg/domain/interfaces"
	"github.com/chek-project/chek-kma/pkg/domain/types"
	"github.com/chek-project/chek-kma/pkg/repository/memory"
	"github.com/chek-project/chek-kma/pkg/service/chek"
	"github.com/chek-project/chek-kma/pkg/utils/logging"
)

// AccessTokenKey is the session storage key of the bearer token
const AccessTokenKey = "chek_access_token"

// StorageToken reads the bearer token from session storage on every call
type StorageToken struct {
	storage interfaces.SessionStorage
}

// NewStorageToken creates a TokenSource over storage
func NewStorageToken(storage interfaces.SessionStorage) *StorageToken {
	return &StorageToken{storage: storage}
}

// Token returns the stored token or chek.ErrNoToken
func (t *StorageToken) Token(_ context.Context) (string, error) {
	token, ok := t.storage.GetItem(AccessTokenKey)
	if !ok || token == "" {
		return "", goerr.Wrap(chek.ErrNoToken, "session has no access token")
	}
	return token, nil
}

// Session is one dashboard visitor with its own storage and store
type Session struct {
	ID      types.SessionID
	Storage interfaces.SessionStorage
	Store   *MaturityStore

	lastSeen atomic.Int64
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// LastSeen returns the time of the last lookup of the session
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Authenticated reports whether the session holds an access token. The token is not validated.
func (s *Session) Authenticated() bool {
	token, ok := s.Storage.GetItem(AccessTokenKey)
	return ok && token != ""
}

// APIFactory builds a backend client reading its token from tokens
type APIFactory func(tokens interfaces.TokenSource) (interfaces.MaturityAPI, error)

// SessionUseCase keeps the live sessions of the dashboard server
type SessionUseCase struct {
	newAPI   APIFactory
	newStore func(api interfaces.MaturityAPI) (*MaturityStore, error)
	now      func() time.Time
	mu       sync.RWMutex
	sessions map[types.SessionID]*Session
}

// NewSessionUseCase creates a session registry
func NewSessionUseCase(newAPI APIFactory, newStore func(api interfaces.MaturityAPI) (*MaturityStore, error)) *SessionUseCase {
	return &SessionUseCase{
		newAPI:   newAPI,
		newStore: newStore,
		now:      time.Now,
		sessions: make(map[types.SessionID]*Session),
	}
}

// Login stores accessToken in the session identified by id, creating a new session
// when id is unknown. The returned session may carry a different id.
func (uc *SessionUseCase) Login(ctx context.Context, id types.SessionID, accessToken string) (*Session, error) {
	if accessToken == "" {
		return nil, goerr.Wrap(ErrEmptyToken, "cannot log in")
	}

	if sess, ok := uc.Get(id); ok {
		sess.Storage.SetItem(AccessTokenKey, accessToken)
		return sess, nil
	}

	storage := memory.NewSessionStorage()
	storage.SetItem(AccessTokenKey, accessToken)

	api, err := uc.newAPI(NewStorageToken(storage))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create backend client")
	}
	store, err := uc.newStore(api)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create maturity store")
	}

	sess := &Session{
		ID:      types.NewSessionID(),
		Storage: storage,
		Store:   store,
	}
	sess.touch(uc.now())

	uc.mu.Lock()
	uc.sessions[sess.ID] = sess
	uc.mu.Unlock()

	logging.From(ctx).Info("session created", slog.String(SessionIDKey, sess.ID.String()))
	return sess, nil
}

// Get returns the session with id
func (uc *SessionUseCase) Get(id types.SessionID) (*Session, bool) {
	if !id.IsValid() {
		return nil, false
	}
	uc.mu.RLock()
	sess, ok := uc.sessions[id]
	uc.mu.RUnlock()
	if ok {
		sess.touch(uc.now())
	}
	return sess, ok
}

// Logout clears the token, unloads projects and drops the session
func (uc *SessionUseCase) Logout(ctx context.Context, id types.SessionID) error {
	uc.mu.Lock()
	sess, ok := uc.sessions[id]
	delete(uc.sessions, id)
	uc.mu.Unlock()

	if !ok {
		return goerr.Wrap(ErrSessionNotFound, "cannot log out", goerr.V(SessionIDKey, id))
	}

	sess.Storage.RemoveItem(AccessTokenKey)
	sess.Store.UnloadProjects()
	sess.Store.Reset()

	logging.From(ctx).Info("session closed", slog.String(SessionIDKey, id.String()))
	return nil
}

// ExpireIdle drops sessions not looked up within maxIdle and returns how many were dropped
func (uc *SessionUseCase) ExpireIdle(ctx context.Context, maxIdle time.Duration) int {
	cutoff := uc.now().Add(-maxIdle)

	uc.mu.Lock()
	var expired []*Session
	for id, sess := range uc.sessions {
		if sess.LastSeen().Before(cutoff) {
			expired = append(expired, sess)
			delete(uc.sessions, id)
		}
	}
	uc.mu.Unlock()

	for _, sess := range expired {
		sess.Storage.Clear()
		sess.Store.Reset()
		logging.From(ctx).Debug("session expired", slog.String(SessionIDKey, sess.ID.String()))
	}
	return len(expired)
}

// Count returns the number of live sessions
func (uc *SessionUseCase) Count() int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return len(uc.sessions)
}
