package checkpoint

import (
	"encoding/json"
	"os"
	"time"

	"moltscraper/pkg/errors"
	"moltscraper/pkg/logger"
	"moltscraper/pkg/models"
)

// Checkpoint is the durable resumption state of a scrape run: the next
// pagination offset plus every valid post collected so far.
type Checkpoint struct {
	Offset    int           `json:"offset"`
	Posts     []models.Post `json:"posts"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Version   int           `json:"version"`
}

// New returns an empty checkpoint for a fresh run
func New() *Checkpoint {
	now := time.Now().UTC()
	return &Checkpoint{
		Posts:     []models.Post{},
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}
}

// SeenIDs returns the set of post ids already collected
func (cp *Checkpoint) SeenIDs() map[string]struct{} {
	seen := make(map[string]struct{}, len(cp.Posts))
	for _, p := range cp.Posts {
		seen[p.ID] = struct{}{}
	}
	return seen
}

// Manager handles checkpoint persistence at a fixed path. A single run
// owns the file exclusively; there is no cross-process locking.
type Manager struct {
	path   string
	logger logger.Logger
}

// NewManager creates a checkpoint manager for the given path
func NewManager(path string, log logger.Logger) *Manager {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Manager{path: path, logger: log}
}

// Path returns the checkpoint file location
func (m *Manager) Path() string {
	return m.path
}

// Exists checks if a checkpoint file exists
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.path)
	return err == nil
}

// Load reads the checkpoint from disk. A missing file returns (nil, nil);
// an unreadable or corrupt file is a fatal error because resuming from a
// truncated checkpoint could silently lose collected posts.
func (m *Manager) Load() (*Checkpoint, error) {
	file, err := os.Open(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrorTypeCheckpoint, err, "failed to open checkpoint file")
	}
	defer file.Close()

	var cp Checkpoint
	if err := json.NewDecoder(file).Decode(&cp); err != nil {
		return nil, errors.Wrap(errors.ErrorTypeCheckpoint, err, "checkpoint file is corrupt")
	}

	m.logger.InfoWithFields("checkpoint loaded", map[string]interface{}{
		"path":       m.path,
		"posts":      len(cp.Posts),
		"offset":     cp.Offset,
		"updated_at": cp.UpdatedAt,
	})

	return &cp, nil
}

// Save writes the checkpoint to disk atomically via temp-file-then-rename,
// so a crash mid-write never leaves a truncated checkpoint behind.
func (m *Manager) Save(cp *Checkpoint) error {
	cp.UpdatedAt = time.Now().UTC()

	tempPath := m.path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return errors.Wrap(errors.ErrorTypeCheckpoint, err, "failed to create temporary checkpoint file")
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cp); err != nil {
		file.Close()
		os.Remove(tempPath)
		return errors.Wrap(errors.ErrorTypeCheckpoint, err, "failed to encode checkpoint")
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return errors.Wrap(errors.ErrorTypeCheckpoint, err, "failed to sync checkpoint file")
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Wrap(errors.ErrorTypeCheckpoint, err, "failed to close checkpoint file")
	}

	if err := os.Rename(tempPath, m.path); err != nil {
		os.Remove(tempPath)
		return errors.Wrap(errors.ErrorTypeCheckpoint, err, "failed to replace checkpoint file")
	}

	m.logger.DebugWithFields("checkpoint saved", map[string]interface{}{
		"path":   m.path,
		"posts":  len(cp.Posts),
		"offset": cp.Offset,
	})

	return nil
}

// Delete removes the checkpoint file
func (m *Manager) Delete() error {
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrorTypeCheckpoint, err, "failed to delete checkpoint")
	}
	m.logger.Info("checkpoint deleted")
	return nil
}
