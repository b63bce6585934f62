package internal

import (
	"errors"
	"os"
	"path/filepath"
)

// FindRepoRoot поднимается от текущего каталога вверх до каталога с go.mod.
// Нужен конфигу и интеграционным тестам, которые запускаются из подпакетов.
func FindRepoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found in any parent directory")
		}
		dir = parent
	}
}
