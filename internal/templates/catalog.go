// Package templates holds the read-only deal and cashflow form definitions.
package templates

import (
	"slices"

	apperrors "dealcanvas/internal/errors"
	"dealcanvas/internal/models"
)

// FieldKind is how a field is edited on a card.
type FieldKind string

const (
	FieldKindText   FieldKind = "text"
	FieldKindSelect FieldKind = "select"
)

// Field describes one form field.
type Field struct {
	Label   string    `json:"label"`
	Kind    FieldKind `json:"kind"`
	Default string    `json:"default"`
	Options []string  `json:"options,omitempty"`
}

// Accepts reports whether value is allowed for the field. Text fields accept
// anything; select fields accept only one of their options.
func (f Field) Accepts(value string) bool {
	if f.Kind != FieldKindSelect {
		return true
	}
	return slices.Contains(f.Options, value)
}

// DealTemplate describes a deal kind.
type DealTemplate struct {
	Kind         models.DealKind `json:"kind"`
	Title        string          `json:"title"`
	HasCashflows bool            `json:"has_cashflows"`
	Fields       []Field         `json:"fields"`
}

// CashflowTemplate describes the cashflow form, shared by all deal kinds.
type CashflowTemplate struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Catalog is an immutable lookup of deal templates plus the cashflow template.
// All accessors return copies.
type Catalog struct {
	order    []models.DealKind
	deals    map[models.DealKind]DealTemplate
	cashflow CashflowTemplate
}

// New builds a catalog from the given templates. Later duplicates of a kind
// replace earlier ones but keep the original position.
func New(deals []DealTemplate, cashflow CashflowTemplate) *Catalog {
	c := &Catalog{
		deals:    make(map[models.DealKind]DealTemplate, len(deals)),
		cashflow: cloneCashflowTemplate(cashflow),
	}
	for _, d := range deals {
		if _, exists := c.deals[d.Kind]; !exists {
			c.order = append(c.order, d.Kind)
		}
		c.deals[d.Kind] = cloneDealTemplate(d)
	}
	return c
}

// Lookup returns the template for kind, or ErrUnknownTemplateKind.
func (c *Catalog) Lookup(kind models.DealKind) (DealTemplate, error) {
	t, ok := c.deals[kind]
	if !ok {
		return DealTemplate{}, apperrors.WithMessage(apperrors.ErrUnknownTemplateKind, "unknown deal kind: "+string(kind))
	}
	return cloneDealTemplate(t), nil
}

// Has reports whether kind is in the catalog.
func (c *Catalog) Has(kind models.DealKind) bool {
	_, ok := c.deals[kind]
	return ok
}

// Kinds lists the known deal kinds in catalog order.
func (c *Catalog) Kinds() []models.DealKind {
	return slices.Clone(c.order)
}

// All returns every deal template in catalog order.
func (c *Catalog) All() []DealTemplate {
	out := make([]DealTemplate, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, cloneDealTemplate(c.deals[k]))
	}
	return out
}

// Cashflow returns the cashflow template.
func (c *Catalog) Cashflow() CashflowTemplate {
	return cloneCashflowTemplate(c.cashflow)
}

// Defaults returns the default values of fields in order.
func Defaults(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Default
	}
	return out
}

// ResolveValues checks values against fields and fills in defaults. A nil
// slice yields the defaults. An empty value for a select field falls back to
// the field default.
func ResolveValues(fields []Field, values []string) ([]string, error) {
	if values == nil {
		return Defaults(fields), nil
	}
	if len(values) != len(fields) {
		return nil, apperrors.ErrFieldCountMismatch
	}
	out := make([]string, len(fields))
	for i, f := range fields {
		v := values[i]
		if f.Kind == FieldKindSelect && v == "" {
			v = f.Default
		}
		if !f.Accepts(v) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidFieldValue,
				"invalid value for "+f.Label+": "+v)
		}
		out[i] = v
	}
	return out, nil
}

func cloneFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		f.Options = slices.Clone(f.Options)
		out[i] = f
	}
	return out
}

func cloneDealTemplate(t DealTemplate) DealTemplate {
	t.Fields = cloneFields(t.Fields)
	return t
}

func cloneCashflowTemplate(t CashflowTemplate) CashflowTemplate {
	t.Fields = cloneFields(t.Fields)
	return t
}
