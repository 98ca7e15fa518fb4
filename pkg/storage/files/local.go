// Package files хранит загруженные документы на локальном диске.
package files

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/apperr"
)

// Local пишет по файлу на соискателя в baseDir; новая загрузка заменяет прежнюю
// с тем же расширением.
type Local struct {
	baseDir string
}

func NewLocal(baseDir string) *Local {
	return &Local{baseDir: baseDir}
}

// Save возвращает путь записанного файла.
func (l *Local) Save(ctx context.Context, candidateID uuid.UUID, ext string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := filepath.Join(l.baseDir, "resumes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperr.Transient(fmt.Errorf("prepare storage: %w", err))
	}
	dst := filepath.Join(dir, candidateID.String()+ext)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", apperr.Transient(fmt.Errorf("store file: %w", err))
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return "", apperr.Transient(fmt.Errorf("store file: %w", err))
	}
	return filepath.ToSlash(dst), nil
}
