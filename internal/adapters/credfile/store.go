package credfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zamvr/vrcswitch/internal/domain"
	"github.com/zamvr/vrcswitch/internal/ports"
)

const (
	sessionFileMode = 0o600
	sessionDirMode  = 0o700
	tempFilePattern = ".session-*.json.tmp"
)

// sessionSchema is the on-disk shape of the session file. The auth key
// carries the opaque session token; user_id is omitted while unknown.
type sessionSchema struct {
	Auth   string `json:"auth"`
	UserID string `json:"user_id,omitempty"`
}

type Store struct {
	path   string
	mu     *sync.RWMutex
	logger *slog.Logger
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.CredentialStore = (*Store)(nil)

func NewStore(path string, logger *slog.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("session path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve session path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Store{path: absPath, mu: lockForPath(absPath), logger: logger}, nil
}

// Load reads the persisted credential. Any problem reading or decoding the
// file degrades to "no saved session"; callers re-authenticate instead of
// handling storage errors.
func (s *Store) Load(ctx context.Context) (domain.Credential, bool) {
	if ctx.Err() != nil {
		return domain.Credential{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("session file unreadable", "path", s.path, "error", err)
		}
		return domain.Credential{}, false
	}

	var file sessionSchema
	if err := json.Unmarshal(data, &file); err != nil {
		s.logger.Debug("session file malformed", "path", s.path, "error", err)
		return domain.Credential{}, false
	}
	if strings.TrimSpace(file.Auth) == "" {
		return domain.Credential{}, false
	}

	return domain.Credential{AuthToken: file.Auth, UserID: file.UserID}, true
}

// Save replaces the session file with the given credential as its sole
// content. Failures wrap domain.ErrStorage; losing a fresh session silently is
// not acceptable.
func (s *Store) Save(ctx context.Context, cred domain.Credential) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := cred.Validate(); err != nil {
		return fmt.Errorf("refuse to persist credential: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeSchema(sessionSchema{Auth: cred.AuthToken, UserID: cred.UserID})
}

func (s *Store) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete session file: %w: %v", domain.ErrStorage, err)
	}

	return nil
}

func (s *Store) writeSchema(file sessionSchema) error {
	if err := os.MkdirAll(filepath.Dir(s.path), sessionDirMode); err != nil {
		return fmt.Errorf("create session directory: %w: %v", domain.ErrStorage, err)
	}

	data, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp session file: %w: %v", domain.ErrStorage, err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp session file: %w: %v", domain.ErrStorage, err)
	}

	if err := tempFile.Chmod(sessionFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp session file: %w: %v", domain.ErrStorage, err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp session file: %w: %v", domain.ErrStorage, err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace session file: %w: %v", domain.ErrStorage, err)
	}

	cleanup = false

	return nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
