package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"listing-service/schemas"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	SearchRequestV1   = "SearchRequest/1.0.0"
	AISearchRequestV1 = "AiSearchRequest/1.0.0"
	ListingFixtureV1  = "ListingFixture/1.0.0"
)

const schemasRoot = "contracts"

// Validator хранит скомпилированные схемы, ключ - "ИмяКонтракта/версия"
type Validator struct {
	compiled map[string]*jsonschema.Schema
}

// NewValidator компилирует все схемы из встроенной файловой системы.
func NewValidator() (*Validator, error) {
	return newValidatorFromFS(schemas.SchemasFS)
}

func newValidatorFromFS(fsys fs.FS) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	// сначала добавляем все схемы как ресурсы, чтобы работали $ref между ними
	err := fs.WalkDir(fsys, schemasRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read schema %s: %w", path, err)
		}
		if err := compiler.AddResource(path, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking schema resources: %w", err)
	}

	v := &Validator{compiled: make(map[string]*jsonschema.Schema, len(paths))}
	for _, path := range paths {
		key := generateKeyFromPath(path)
		if key == "" {
			return nil, fmt.Errorf("unexpected schema path layout: %s", path)
		}
		schema, err := compiler.Compile(path)
		if err != nil {
			return nil, fmt.Errorf("could not compile schema %s: %w", path, err)
		}
		v.compiled[key] = schema
	}

	return v, nil
}

// generateKeyFromPath преобразует путь вида "contracts/search-request/v1.json"
// в ключ вида "SearchRequest/1.0.0".
func generateKeyFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, schemasRoot+"/")
	trimmed = strings.TrimSuffix(trimmed, ".json")

	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || !strings.HasPrefix(parts[1], "v") {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[0], "-") {
		name.WriteString(caser.String(p))
	}

	return fmt.Sprintf("%s/%s.0.0", name.String(), strings.TrimPrefix(parts[1], "v"))
}

// Validate проверяет JSON-документ по схеме контракта
func (v *Validator) Validate(contract string, body []byte) error {
	schema, ok := v.compiled[contract]
	if !ok {
		return fmt.Errorf("schema for contract '%s' not found", contract)
	}

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("body is not a valid JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

// Contracts возвращает ключи всех зарегистрированных схем
func (v *Validator) Contracts() []string {
	keys := make([]string, 0, len(v.compiled))
	for k := range v.compiled {
		keys = append(keys, k)
	}
	return keys
}
