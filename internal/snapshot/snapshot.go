// Package snapshot persists the full allocation state as a flat YAML file.
// It is a pure IO edge: it never applies allocation rules of its own.
package snapshot

import (
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	apperrors "github.com/spec-kit/dojo-service/pkg/util"
)

// FormatVersion is stamped into every snapshot written.
const FormatVersion = 1

// State is the serialized form of the whole controller state.
type State struct {
	Version      int           `yaml:"version"`
	Offices      []RoomState   `yaml:"offices"`
	LivingSpaces []RoomState   `yaml:"living_spaces"`
	People       []PersonState `yaml:"people"`
}

// RoomState serializes one room and its occupant IDs in allocation order.
type RoomState struct {
	Name      string   `yaml:"name"`
	Occupants []string `yaml:"occupants"`
}

// PersonState serializes one person and their allocations by room name.
type PersonState struct {
	ID                 string `yaml:"id"`
	Name               string `yaml:"name"`
	Role               string `yaml:"role"`
	WantsAccommodation bool   `yaml:"wants_accommodation"`
	Office             string `yaml:"office,omitempty"`
	LivingSpace        string `yaml:"living_space,omitempty"`
}

// Store reads and writes snapshots at a fixed path.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a snapshot store for the given file path.
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Save writes the state atomically: temp file in the same directory, then
// rename over the target.
func (s *Store) Save(state *State) error {
	state.Version = FormatVersion

	data, err := yaml.Marshal(state)
	if err != nil {
		return apperrors.NewSnapshotIO(err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.NewSnapshotIO(err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.yaml")
	if err != nil {
		return apperrors.NewSnapshotIO(err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewSnapshotIO(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewSnapshotIO(err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return apperrors.NewSnapshotIO(err)
	}

	s.logger.Info("state snapshot written",
		zap.String("path", s.path),
		zap.Int("people", len(state.People)),
		zap.Int("rooms", len(state.Offices)+len(state.LivingSpaces)))
	return nil
}

// Load reads and decodes the snapshot file. Missing and unreadable files are
// SNAPSHOT_IO; undecodable or wrong-version content is SNAPSHOT_DECODE.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, apperrors.NewSnapshotIO(err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, apperrors.NewSnapshotDecode(err)
	}
	if state.Version != FormatVersion {
		return nil, apperrors.NewSnapshotDecode(
			errors.New("unsupported snapshot version"))
	}
	return &state, nil
}
