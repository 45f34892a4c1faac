package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// StringMap хранится в PostgreSQL как JSONB.
type StringMap map[string]string

// Value реализует driver.Valuer.
func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan реализует sql.Scanner.
func (m *StringMap) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = StringMap{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("models: StringMap не поддерживает тип %T", src)
	}
	out := StringMap{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

// Template элемент каталога готовых шаблонов.
type Template struct {
	ID                 string         `db:"id" bson:"id" json:"id"`
	Name               string         `db:"name" bson:"name" json:"name"`
	Description        string         `db:"description" bson:"description" json:"description"`
	Category           string         `db:"category" bson:"category" json:"category"`
	PreviewImage       string         `db:"preview_image" bson:"preview_image" json:"preview_image"`
	Features           pq.StringArray `db:"features" bson:"features" json:"features"`
	TechStack          StringMap      `db:"tech_stack" bson:"tech_stack" json:"tech_stack"`
	EstimatedBuildTime string         `db:"estimated_build_time" bson:"estimated_build_time" json:"estimated_build_time"`
	BasePrice          float64        `db:"base_price" bson:"base_price" json:"base_price"`
	CreatedAt          time.Time      `db:"created_at" bson:"created_at" json:"created_at"`
}

// TemplatePatch частичное обновление шаблона.
type TemplatePatch struct {
	Name               *string            `json:"name"`
	Description        *string            `json:"description"`
	Category           *string            `json:"category"`
	PreviewImage       *string            `json:"preview_image"`
	Features           *[]string          `json:"features"`
	TechStack          *map[string]string `json:"tech_stack"`
	EstimatedBuildTime *string            `json:"estimated_build_time"`
	BasePrice          *float64           `json:"base_price"`
}

// Apply применяет изменения к шаблону в памяти.
func (p TemplatePatch) Apply(t *Template) {
	setString(&t.Name, p.Name)
	setString(&t.Description, p.Description)
	setString(&t.Category, p.Category)
	setString(&t.PreviewImage, p.PreviewImage)
	setString(&t.EstimatedBuildTime, p.EstimatedBuildTime)
	if p.Features != nil {
		t.Features = append(pq.StringArray{}, (*p.Features)...)
	}
	if p.TechStack != nil {
		t.TechStack = copyStringMap(*p.TechStack)
	}
	if p.BasePrice != nil {
		t.BasePrice = *p.BasePrice
	}
}

// Fields возвращает изменённые поля в виде column -> value.
func (p TemplatePatch) Fields() map[string]any {
	fields := map[string]any{}
	addString(fields, "name", p.Name)
	addString(fields, "description", p.Description)
	addString(fields, "category", p.Category)
	addString(fields, "preview_image", p.PreviewImage)
	addString(fields, "estimated_build_time", p.EstimatedBuildTime)
	if p.Features != nil {
		fields["features"] = pq.StringArray(*p.Features)
	}
	if p.TechStack != nil {
		fields["tech_stack"] = StringMap(*p.TechStack)
	}
	if p.BasePrice != nil {
		fields["base_price"] = *p.BasePrice
	}
	return fields
}

// Clone возвращает глубокую копию шаблона.
func (t *Template) Clone() *Template {
	cp := *t
	cp.Features = append(pq.StringArray{}, t.Features...)
	cp.TechStack = copyStringMap(t.TechStack)
	return &cp
}

func copyStringMap(m map[string]string) StringMap {
	out := make(StringMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
