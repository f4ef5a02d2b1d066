package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Vibhor2702/pr-review/internal/review"
	"github.com/Vibhor2702/pr-review/internal/scoring"
)

// Record is one persisted review run: the PR that was reviewed, the
// generated review, and its score.
type Record struct {
	RunID     string           `json:"run_id"`
	PRContext review.PRContext `json:"pr_context"`
	Review    review.Result    `json:"review"`
	Score     scoring.Result   `json:"score"`
	Timestamp string           `json:"timestamp"`
	Version   string           `json:"version"`
}

const recordVersion = "1.0"

// Summary is the listing view of a stored record.
type Summary struct {
	ID        string  `json:"id"`
	Provider  string  `json:"provider"`
	PRNumber  int     `json:"pr_number"`
	Score     float64 `json:"score"`
	Grade     string  `json:"grade"`
	Timestamp string  `json:"timestamp"`
}

// Store persists review records as JSON files, with a markdown report
// alongside each one.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating the directory if needed.
// An empty dir uses "artifacts".
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = "artifacts"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating artifacts directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string { return s.dir }

// Save writes the record and its markdown report. Returns the JSON path.
func (s *Store) Save(rec Record) (string, error) {
	rec.Version = recordVersion
	if rec.Timestamp == "" {
		rec.Timestamp = rec.Review.Metadata.Timestamp
	}

	id := recordID(rec.PRContext)
	jsonPath := filepath.Join(s.dir, id+".json")

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling record: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing record: %w", err)
	}

	mdPath := filepath.Join(s.dir, id+".md")
	if err := os.WriteFile(mdPath, []byte(review.RenderMarkdown(rec.Review)), 0o644); err != nil {
		return "", fmt.Errorf("writing markdown report: %w", err)
	}

	return jsonPath, nil
}

// Get loads a record by its listing ID.
func (s *Store) Get(id string) (Record, error) {
	path := filepath.Join(s.dir, filepath.Base(id)+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("reading record %s: %w", id, err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("parsing record %s: %w", id, err)
	}
	return rec, nil
}

// List returns summaries of all stored records, newest timestamp first.
func (s *Store) List() ([]Summary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading artifacts directory: %w", err)
	}

	var out []Summary
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".json" {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".json")
		rec, err := s.Get(id)
		if err != nil {
			continue
		}
		out = append(out, Summary{
			ID:        id,
			Provider:  rec.PRContext.Provider,
			PRNumber:  rec.PRContext.Number,
			Score:     rec.Score.Score,
			Grade:     rec.Score.Grade,
			Timestamp: rec.Timestamp,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

// Clear removes all stored records and reports.
func (s *Store) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading artifacts directory: %w", err)
	}
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if ext == ".json" || ext == ".md" {
			os.Remove(filepath.Join(s.dir, e.Name()))
		}
	}
	return nil
}

// Stats describes the store's on-disk footprint.
type Stats struct {
	Dir        string `json:"dir"`
	Records    int    `json:"records"`
	TotalBytes int64  `json:"totalBytes"`
}

// GetStats returns information about the store.
func (s *Store) GetStats() (Stats, error) {
	stats := Stats{Dir: s.dir}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, fmt.Errorf("reading artifacts directory: %w", err)
	}
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		if filepath.Ext(e.Name()) == ".json" {
			stats.Records++
		}
		stats.TotalBytes += info.Size()
	}
	return stats, nil
}

func recordID(pr review.PRContext) string {
	provider := pr.Provider
	if provider == "" {
		provider = "unknown"
	}
	return fmt.Sprintf("review_%s_%d", provider, pr.Number)
}
