package storage

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSlot stores each key in its own file inside a directory.
//
// Writes are atomic and durable: temp file, fsync, rename, directory
// fsync. A reader sees either the previous value or the new one.
type FileSlot struct {
	dir string
}

// NewFileSlot creates a FileSlot rooted at dir, creating dir with mode
// 0700 if needed.
func NewFileSlot(dir string) (*FileSlot, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("data dir is empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileSlot{dir: dir}, nil
}

// Dir returns the directory holding the slot files.
func (s *FileSlot) Dir() string {
	return s.dir
}

// Path returns the file that backs key.
func (s *FileSlot) Path(key string) string {
	return filepath.Join(s.dir, slotFileName(key))
}

// Get implements Slot.
func (s *FileSlot) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read slot %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set implements Slot.
func (s *FileSlot) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeFileAtomic(s.Path(key), []byte(value), 0o600); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

// slotFileName maps a key to a safe file name: a readable slug plus a
// short hash so keys that slugify alike do not collide.
func slotFileName(key string) string {
	sum := sha1.Sum([]byte(key))
	return fmt.Sprintf("%s-%s.json", slugify(key), hex.EncodeToString(sum[:])[:8])
}

func slugify(input string) string {
	var b strings.Builder
	lastUnderscore := false
	for i := 0; i < len(input); i++ {
		c := input[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteByte(c)
		lastUnderscore = false
	}

	slug := strings.Trim(b.String(), "_.")
	if slug == "" {
		return "slot"
	}
	return slug
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return fsyncDir(dir)
}

func fsyncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
