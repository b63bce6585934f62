package schema

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSchemasFromDir загружает дескрипторы схем из *.yml файлов каталога.
// Один файл — один ресурс.
func LoadSchemasFromDir(reg *Registry, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.yml"))
	if err != nil {
		return err
	}

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		// 1. Разбираем в yaml.Node для структурной валидации
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return fmt.Errorf("YAML parse error in %s: %w", path, err)
		}

		// YAML всегда [0] - документ, [1] - root mapping
		if len(root.Content) == 0 {
			return fmt.Errorf("empty YAML in %s", path)
		}

		if err := validateYAMLNode(root.Content[0], "resource"); err != nil {
			return fmt.Errorf("validation error in %s: %w", path, err)
		}

		// 2. Теперь уже Unmarshal в дескриптор
		var res Resource
		if err := root.Decode(&res); err != nil {
			return fmt.Errorf("unmarshal error in %s: %w", path, err)
		}
		if res.Type == "" {
			return fmt.Errorf("missing resource type in %s", path)
		}

		// 3. Регистрируем схему
		if err := reg.Register(&res); err != nil {
			return fmt.Errorf("register error in %s: %w", path, err)
		}
		fmt.Printf("✅ Схема %s загружена с %d полями\n", res.Type, len(res.Fields))
	}
	return nil
}
