package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Разрешённые ключи для объектов
var allowedResourceKeys = map[string]bool{
	"type":     true,
	"table":    true,
	"id_field": true,
	"fields":   true,
}

var allowedFieldKeys = map[string]bool{
	"name": true,
	"attr": true,
	"type": true,
	"rel":  true,
}

var allowedRelKeys = map[string]bool{
	"type":     true,
	"id_field": true,
	"many":     true,
	"fk":       true,
}

// Разрешённые значения для type в полях
var allowedFieldTypeValues = map[string]bool{
	"int":      true,
	"string":   true,
	"bool":     true,
	"float":    true,
	"time":     true,
	"datetime": true,
	"date":     true,
	"UUID":     true,
	"json":     true,
}

func validateYAMLNode(node *yaml.Node, context string) error {
	switch node.Kind {
	case yaml.DocumentNode:
		for _, child := range node.Content {
			if err := validateYAMLNode(child, "resource"); err != nil {
				return err
			}
		}

	case yaml.MappingNode:
		var allowedKeys map[string]bool
		switch context {
		case "resource":
			allowedKeys = allowedResourceKeys
		case "field":
			allowedKeys = allowedFieldKeys
		case "rel":
			allowedKeys = allowedRelKeys
		default:
			allowedKeys = nil // свободная форма
		}

		for i := 0; i < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			valNode := node.Content[i+1]
			key := keyNode.Value

			if allowedKeys != nil && !allowedKeys[key] {
				return fmt.Errorf("unknown key '%s' in %s", key, context)
			}

			// Проверка допустимых значений для type в поле
			if context == "field" && key == "type" {
				if !allowedFieldTypeValues[valNode.Value] {
					return fmt.Errorf("unknown type value '%s' in field", valNode.Value)
				}
			}

			// Определяем новый контекст
			nextContext := context
			if context == "resource" && key == "fields" {
				nextContext = "fields-seq"
			} else if context == "field" && key == "rel" {
				nextContext = "rel"
			}

			if err := validateYAMLNode(valNode, nextContext); err != nil {
				return err
			}
		}

	case yaml.SequenceNode:
		if context == "fields-seq" {
			for _, item := range node.Content {
				if err := validateYAMLNode(item, "field"); err != nil {
					return err
				}
			}
		} else {
			for _, item := range node.Content {
				if err := validateYAMLNode(item, context); err != nil {
					return err
				}
			}
		}

	case yaml.ScalarNode:
		// скаляры не валидируем — ключи уже проверены при разборе MappingNode
	}

	return nil
}
