// Package files хранит загруженные PDF-выпуски в каталоге на диске.
package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store пишет файлы внутри корневого каталога root.
type Store struct {
	root string
}

// New создаёт Store с корнем root.
func New(root string) *Store {
	return &Store{root: root}
}

// Path возвращает полный путь файла name в подкаталоге dir.
func (s *Store) Path(dir, name string) string {
	return filepath.Join(s.root, dir, name)
}

// EnsureDir создаёт подкаталог dir, если его нет.
func (s *Store) EnsureDir(dir string) error {
	const op = "files.EnsureDir"
	if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Write сохраняет содержимое src в dir/name. Файл сначала пишется во
// временный файл того же каталога и затем переименовывается.
func (s *Store) Write(dir, name string, src io.Reader) error {
	const op = "files.Write"
	if err := checkName(name); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.EnsureDir(dir); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp, err := os.CreateTemp(filepath.Join(s.root, dir), ".upload-*")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Rename(tmp.Name(), s.Path(dir, name)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Rename переносит dir/from в dir/to с заменой существующего файла.
// Отсутствующий исходный файл не считается ошибкой.
func (s *Store) Rename(dir, from, to string) error {
	const op = "files.Rename"
	if err := checkName(from); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := checkName(to); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Rename(s.Path(dir, from), s.Path(dir, to)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Remove удаляет dir/name. Отсутствующий файл не считается ошибкой.
func (s *Store) Remove(dir, name string) error {
	const op = "files.Remove"
	if err := checkName(name); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Remove(s.Path(dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid file name %q", name)
	}
	return nil
}
