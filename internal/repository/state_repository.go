package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/compozy/versionbump/internal/domain"
	"github.com/gofrs/flock"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/afero"
)

const (
	// StateSchemaVersion defines the current schema version for journal files
	StateSchemaVersion = "1.0.0"
	// StateFilePermissions defines the permissions for journal files
	StateFilePermissions = 0600
	// StateDirPermissions defines the permissions for the journal directory
	StateDirPermissions = 0700
	// LockTimeout defines the maximum time to wait for the journal lock
	LockTimeout = 30 * time.Second
	// LockRetryInterval defines the interval between lock attempts
	LockRetryInterval = 100 * time.Millisecond
)

var (
	// ErrStateNotFound is returned when no journal entry exists.
	ErrStateNotFound = errors.New("run state not found")
	errLockBusy      = errors.New("journal lock busy")
)

// StateRepository persists release run journals.
type StateRepository interface {
	Save(ctx context.Context, state *domain.RunState) error
	Load(ctx context.Context, runID string) (*domain.RunState, error)
	LoadLatest(ctx context.Context) (*domain.RunState, error)
	Exists(ctx context.Context, runID string) (bool, error)
}

// StateMetadata contains metadata about the journal file
type StateMetadata struct {
	SchemaVersion string    `json:"schema_version"`
	Checksum      string    `json:"checksum"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StateWrapper wraps the run state with metadata
type StateWrapper struct {
	Metadata StateMetadata    `json:"metadata"`
	State    *domain.RunState `json:"state"`
}

// JSONStateRepository stores one JSON file per run under an exclusive file lock.
// The lock lives on the host filesystem, so fs must be OS backed in production.
type JSONStateRepository struct {
	fs       afero.Fs
	stateDir string
}

// NewJSONStateRepository creates a new JSON-based journal
func NewJSONStateRepository(fs afero.Fs, stateDir string) StateRepository {
	return &JSONStateRepository{fs: fs, stateDir: stateDir}
}

// Save writes the run state atomically and points latest.txt at it
func (r *JSONStateRepository) Save(ctx context.Context, state *domain.RunState) error {
	if err := r.fs.MkdirAll(r.stateDir, StateDirPermissions); err != nil {
		return fmt.Errorf("failed to ensure state directory: %w", err)
	}
	return r.withLock(ctx, false, func() error {
		stateData, err := json.Marshal(state)
		if err != nil {
			return fmt.Errorf("failed to marshal state for checksum: %w", err)
		}
		wrapper := StateWrapper{
			Metadata: StateMetadata{
				SchemaVersion: StateSchemaVersion,
				Checksum:      calculateChecksum(stateData),
				CreatedAt:     state.StartedAt,
				UpdatedAt:     time.Now(),
			},
			State: state,
		}
		data, err := json.MarshalIndent(wrapper, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal state wrapper: %w", err)
		}
		filename := r.stateFilename(state.RunID)
		if err := r.writeAtomic(filename, data); err != nil {
			return err
		}
		return r.writeAtomic(r.latestLink(), []byte(filepath.Base(filename)))
	})
}

// Load reads and validates a run state by ID
func (r *JSONStateRepository) Load(ctx context.Context, runID string) (*domain.RunState, error) {
	if err := r.ensureJournal(); err != nil {
		return nil, err
	}
	var state *domain.RunState
	err := r.withLock(ctx, true, func() error {
		var err error
		state, err = r.read(runID)
		return err
	})
	return state, err
}

// LoadLatest reads the most recently saved run state
func (r *JSONStateRepository) LoadLatest(ctx context.Context) (*domain.RunState, error) {
	if err := r.ensureJournal(); err != nil {
		return nil, err
	}
	var state *domain.RunState
	err := r.withLock(ctx, true, func() error {
		data, err := afero.ReadFile(r.fs, r.latestLink())
		if err != nil {
			if os.IsNotExist(err) {
				return ErrStateNotFound
			}
			return fmt.Errorf("failed to read latest link: %w", err)
		}
		runID := extractRunID(strings.TrimSpace(string(data)))
		if runID == "" {
			return fmt.Errorf("invalid latest link target: %s", data)
		}
		state, err = r.read(runID)
		return err
	})
	return state, err
}

// ensureJournal reports ErrStateNotFound when nothing was ever journaled
func (r *JSONStateRepository) ensureJournal() error {
	exists, err := afero.DirExists(r.fs, r.stateDir)
	if err != nil {
		return fmt.Errorf("failed to check state directory: %w", err)
	}
	if !exists {
		return ErrStateNotFound
	}
	return nil
}

// Exists checks if a run state exists
func (r *JSONStateRepository) Exists(_ context.Context, runID string) (bool, error) {
	exists, err := afero.Exists(r.fs, r.stateFilename(runID))
	if err != nil {
		return false, fmt.Errorf("failed to check state file: %w", err)
	}
	return exists, nil
}

func (r *JSONStateRepository) read(runID string) (*domain.RunState, error) {
	data, err := afero.ReadFile(r.fs, r.stateFilename(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrStateNotFound, runID)
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	var wrapper StateWrapper
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state wrapper: %w", err)
	}
	if wrapper.Metadata.SchemaVersion != StateSchemaVersion {
		return nil, fmt.Errorf("incompatible schema version: expected %s, got %s",
			StateSchemaVersion, wrapper.Metadata.SchemaVersion)
	}
	stateData, err := json.Marshal(wrapper.State)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state for checksum validation: %w", err)
	}
	if wrapper.Metadata.Checksum != calculateChecksum(stateData) {
		return nil, fmt.Errorf("state checksum mismatch: data may be corrupted")
	}
	return wrapper.State, nil
}

// withLock runs fn while holding the journal lock, polling until LockTimeout.
func (r *JSONStateRepository) withLock(ctx context.Context, shared bool, fn func() error) error {
	lock := flock.New(filepath.Join(r.stateDir, ".journal.lock"))
	lockCtx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()
	err := retry.Do(lockCtx, retry.NewConstant(LockRetryInterval), func(context.Context) error {
		var (
			locked bool
			err    error
		)
		if shared {
			locked, err = lock.TryRLock()
		} else {
			locked, err = lock.TryLock()
		}
		if err != nil {
			return err
		}
		if !locked {
			return retry.RetryableError(errLockBusy)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to acquire journal lock: %w", err)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to unlock journal: %v\n", unlockErr)
		}
	}()
	return fn()
}

func (r *JSONStateRepository) writeAtomic(filename string, data []byte) error {
	tempFile := filename + ".tmp"
	if err := afero.WriteFile(r.fs, tempFile, data, StateFilePermissions); err != nil {
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := r.fs.Rename(tempFile, filename); err != nil {
		if removeErr := r.fs.Remove(tempFile); removeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove temp file: %v\n", removeErr)
		}
		return fmt.Errorf("failed to rename state file: %w", err)
	}
	return nil
}

func (r *JSONStateRepository) stateFilename(runID string) string {
	return filepath.Join(r.stateDir, fmt.Sprintf("run-%s.json", runID))
}

func (r *JSONStateRepository) latestLink() string {
	return filepath.Join(r.stateDir, "latest.txt")
}

func calculateChecksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// extractRunID extracts the run ID from a journal filename
func extractRunID(filename string) string {
	base := filepath.Base(filename)
	if strings.HasPrefix(base, "run-") && strings.HasSuffix(base, ".json") && len(base) > len("run-.json") {
		return strings.TrimSuffix(strings.TrimPrefix(base, "run-"), ".json")
	}
	return ""
}

// NoopStateRepository discards journals; used when no journal directory is configured.
type NoopStateRepository struct{}

func (NoopStateRepository) Save(context.Context, *domain.RunState) error { return nil }

func (NoopStateRepository) Load(_ context.Context, runID string) (*domain.RunState, error) {
	return nil, fmt.Errorf("%w: %s (journal disabled)", ErrStateNotFound, runID)
}

func (NoopStateRepository) LoadLatest(context.Context) (*domain.RunState, error) {
	return nil, fmt.Errorf("%w (journal disabled)", ErrStateNotFound)
}

func (NoopStateRepository) Exists(context.Context, string) (bool, error) { return false, nil }
