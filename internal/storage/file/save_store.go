// Package file stores report states as zstd-compressed files, one per slot.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"city-stats/internal/domain"
	"city-stats/internal/storage"
)

const ext = ".state.zst"

// SaveStore is a directory-backed implementation of storage.SaveStore.
type SaveStore struct {
	dir string
}

// NewSaveStore creates a save store rooted at dir, creating it if needed.
func NewSaveStore(dir string) (*SaveStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	return &SaveStore{dir: dir}, nil
}

// Compile-time interface check.
var _ storage.SaveStore = (*SaveStore)(nil)

func (s *SaveStore) path(slot string) (string, error) {
	if slot == "" || slot == "." || slot == ".." || strings.ContainsAny(slot, `/\`) {
		return "", fmt.Errorf("%w: slot %q", storage.ErrInvalidInput, slot)
	}
	return filepath.Join(s.dir, slot+ext), nil
}

// Save writes state to the slot file. The file is replaced atomically.
func (s *SaveStore) Save(_ context.Context, slot string, state domain.ReportState) error {
	path, err := s.path(slot)
	if err != nil {
		return err
	}
	blob, err := storage.EncodeState(state)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, slot+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", slot, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", slot, err)
	}
	return nil
}

// Load reads the state stored in the slot file.
func (s *SaveStore) Load(_ context.Context, slot string) (domain.ReportState, error) {
	path, err := s.path(slot)
	if err != nil {
		return domain.ReportState{}, err
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ReportState{}, storage.ErrNotFound
		}
		return domain.ReportState{}, err
	}
	return storage.DecodeState(blob)
}

// List returns all slot files ordered by name. Turn counts are read from
// each file; unreadable files are listed with zero counts.
func (s *SaveStore) List(_ context.Context) ([]storage.SaveSlot, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var out []storage.SaveSlot
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ext) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}

		slot := storage.SaveSlot{
			Slot:      strings.TrimSuffix(name, ext),
			SizeBytes: int(info.Size()),
			UpdatedAt: info.ModTime().UTC(),
		}
		if blob, err := os.ReadFile(filepath.Join(s.dir, name)); err == nil {
			if state, err := storage.DecodeState(blob); err == nil {
				slot.Turns = len(state.HistoricalData)
				slot.ReportsGenerated = state.ReportsGenerated
			}
		}
		out = append(out, slot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}

// Delete removes the slot file.
func (s *SaveStore) Delete(_ context.Context, slot string) error {
	path, err := s.path(slot)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.ErrNotFound
		}
		return err
	}
	return nil
}
