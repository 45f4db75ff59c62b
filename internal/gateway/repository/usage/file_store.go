package usage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/llm"
)

// FileStore keeps daily usage totals in a single JSON document.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

type ledgerFile struct {
	UpdatedAt string                `json:"updated_at"`
	Days      map[string]DaySummary `json:"days"`
}

func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) Record(_ context.Context, rec llm.UsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.read()
	if err != nil {
		aside, mvErr := s.quarantine()
		if mvErr != nil {
			return fmt.Errorf("usage ledger %s unreadable: %w", s.path, errors.Join(err, mvErr))
		}
		s.logger.Warn("usage ledger corrupt, starting a new one",
			zap.String("path", s.path),
			zap.String("moved_to", aside),
			zap.Error(err))
		f = ledgerFile{Days: map[string]DaySummary{}}
	}
	d := f.Days[rec.Day]
	d.add(rec)
	f.Days[rec.Day] = d
	f.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Day(_ context.Context, day string) (DaySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.read()
	if err != nil {
		return DaySummary{}, err
	}
	d := f.Days[day]
	if d.Models == nil {
		d.Models = map[string]ModelStat{}
	}
	return d, nil
}

func (s *FileStore) Close() error { return nil }

// read loads the ledger. A missing file is an empty ledger; a file that
// does not decode is an error.
func (s *FileStore) read() (ledgerFile, error) {
	f := ledgerFile{Days: map[string]DaySummary{}}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return f, err
	}
	if err := json.Unmarshal(b, &f); err != nil {
		return ledgerFile{Days: map[string]DaySummary{}}, fmt.Errorf("decode usage ledger: %w", err)
	}
	if f.Days == nil {
		f.Days = map[string]DaySummary{}
	}
	return f, nil
}

// quarantine renames the current ledger so the next write cannot replace it.
func (s *FileStore) quarantine() (string, error) {
	aside := fmt.Sprintf("%s.corrupt-%s", s.path, time.Now().UTC().Format("20060102T150405.000000000"))
	return aside, os.Rename(s.path, aside)
}
