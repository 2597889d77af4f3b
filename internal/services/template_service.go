package services

import (
	"dealcanvas/internal/models"
	"dealcanvas/internal/templates"
)

// templateService exposes the read-only template catalog.
type templateService struct {
	catalog *templates.Catalog
}

// NewTemplateService creates a new TemplateServicer.
func NewTemplateService(catalog *templates.Catalog) TemplateServicer {
	return &templateService{catalog: catalog}
}

func (s *templateService) ListDealTemplates() []templates.DealTemplate {
	return s.catalog.All()
}

func (s *templateService) GetDealTemplate(kind models.DealKind) (*templates.DealTemplate, error) {
	t, err := s.catalog.Lookup(kind)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *templateService) CashflowTemplate() templates.CashflowTemplate {
	return s.catalog.Cashflow()
}
