package pricing

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed tables/v1.yaml
var defaultTableYAML []byte

// Table хранит версионированный прайс.
type Table struct {
	Version         int                `yaml:"version" json:"version"`
	Currency        string             `yaml:"currency" json:"currency"`
	DefaultTier     string             `yaml:"default_tier" json:"default_tier"`
	StudentDiscount float64            `yaml:"student_discount" json:"student_discount"`
	Tiers           map[string]float64 `yaml:"tiers" json:"tiers"`
	Addons          map[string]float64 `yaml:"addons" json:"addons"`
}

// DefaultTable возвращает встроенный прайс.
func DefaultTable() (*Table, error) {
	return ParseTable(defaultTableYAML)
}

// LoadTable читает прайс из файла. Пустой путь означает встроенный прайс.
func LoadTable(path string) (*Table, error) {
	if path == "" {
		return DefaultTable()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pricing: не удалось прочитать таблицу %s: %w", path, err)
	}
	return ParseTable(raw)
}

// ParseTable разбирает YAML документ и проверяет его.
func ParseTable(raw []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("pricing: некорректный YAML: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Table) validate() error {
	if len(t.Tiers) == 0 {
		return fmt.Errorf("pricing: таблица тарифов пуста")
	}
	if _, ok := t.Tiers[t.DefaultTier]; !ok {
		return fmt.Errorf("pricing: тариф по умолчанию %q отсутствует в таблице", t.DefaultTier)
	}
	if t.StudentDiscount <= 0 || t.StudentDiscount > 1 {
		return fmt.Errorf("pricing: student_discount должен быть в (0, 1], получено %v", t.StudentDiscount)
	}
	if t.Currency == "" {
		t.Currency = "INR"
	}
	if t.Addons == nil {
		t.Addons = map[string]float64{}
	}
	return nil
}
