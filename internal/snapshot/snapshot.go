// Package snapshot persists profiles on disk so they can be listed, shown
// and compared later.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/vizprofile-cli/internal/profile"
	"github.com/KaramelBytes/vizprofile-cli/internal/utils"
)

const fileExt = ".json"

var (
	// ErrNotFound indicates no snapshot matches an id.
	ErrNotFound = errors.New("snapshot not found")
	// ErrAmbiguous indicates an id prefix matches more than one snapshot.
	ErrAmbiguous = errors.New("snapshot id prefix is ambiguous")
)

// Snapshot is one saved profile with where it came from.
type Snapshot struct {
	ID        string           `json:"id"`
	Source    string           `json:"source"`
	CreatedAt time.Time        `json:"created_at"`
	Profile   *profile.Profile `json:"profile"`
}

// Summary is the listing view of a snapshot.
type Summary struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	CreatedAt    time.Time `json:"created_at"`
	Rows         int       `json:"rows"`
	Columns      int       `json:"columns"`
	QualityScore int       `json:"quality_score"`
}

// New wraps a profile in an unsaved snapshot.
func New(source string, p *profile.Profile) *Snapshot {
	return &Snapshot{Source: source, Profile: p}
}

// Summary returns the listing view.
func (s *Snapshot) Summary() Summary {
	sum := Summary{ID: s.ID, Source: s.Source, CreatedAt: s.CreatedAt}
	if s.Profile != nil {
		sum.Rows = s.Profile.RowCount
		sum.Columns = s.Profile.ColumnCount
		sum.QualityScore = s.Profile.Quality.QualityScore
	}
	return sum
}

// Store keeps one JSON file per snapshot in a directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created on the
// first Save.
func NewStore(dir string) *Store { return &Store{dir: dir} }

// Dir returns the store directory.
func (st *Store) Dir() string { return st.dir }

// Save assigns an id and timestamp when missing and writes the snapshot
// atomically.
func (st *Store) Save(s *Snapshot) error {
	if s == nil || s.Profile == nil {
		return errors.New("snapshot has no profile")
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	if err := utils.EnsureDir(st.dir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	data, err := utils.PrettyJSON(s)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(st.path(s.ID), data)
}

// Load reads a snapshot by full id or unique id prefix.
func (st *Store) Load(id string) (*Snapshot, error) {
	full, err := st.resolve(id)
	if err != nil {
		return nil, err
	}
	return st.read(st.path(full))
}

// Delete removes a snapshot by full id or unique id prefix.
func (st *Store) Delete(id string) error {
	full, err := st.resolve(id)
	if err != nil {
		return err
	}
	if err := os.Remove(st.path(full)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// List returns summaries, newest first. A missing directory is an empty
// store. Files that fail to parse are skipped.
func (st *Store) List() ([]Summary, error) {
	ids, err := st.ids()
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(ids))
	for _, id := range ids {
		s, err := st.read(st.path(id))
		if err != nil {
			continue
		}
		out = append(out, s.Summary())
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (st *Store) path(id string) string { return filepath.Join(st.dir, id+fileExt) }

func (st *Store) read(path string) (*Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &s, nil
}

// ids lists stored ids; only file names that are valid UUIDs count.
func (st *Store) ids() ([]string, error) {
	entries, err := os.ReadDir(st.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read store: %w", err)
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		id := strings.TrimSuffix(name, fileExt)
		if _, err := uuid.Parse(id); err != nil {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}

func (st *Store) resolve(id string) (string, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return "", ErrNotFound
	}
	if u, err := uuid.Parse(id); err == nil {
		return u.String(), nil
	}
	ids, err := st.ids()
	if err != nil {
		return "", err
	}
	var match string
	for _, c := range ids {
		if strings.HasPrefix(c, id) {
			if match != "" {
				return "", fmt.Errorf("%w: %s", ErrAmbiguous, id)
			}
			match = c
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return match, nil
}
