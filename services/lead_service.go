package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"estate-api/domain"
	"estate-api/dto"
	"estate-api/query"
	"estate-api/repositories"
)

const (
	defaultLeadSource = "website"
	leadPageLimit     = 20
)

// LeadService registra consultas y las lista para el back-office
type LeadService interface {
	SubmitLead(ctx context.Context, req dto.LeadRequest) (*domain.Lead, error)
	ListLeads(ctx context.Context, page, limit string) (query.Result[domain.Lead], error)
}

type leadService struct {
	repo repositories.LeadRepository
	now  func() time.Time
}

// NewLeadService crea una nueva instancia del servicio
func NewLeadService(repo repositories.LeadRepository) LeadService {
	return &leadService{repo: repo, now: time.Now}
}

func (s *leadService) SubmitLead(ctx context.Context, req dto.LeadRequest) (*domain.Lead, error) {
	lead := &domain.Lead{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		Message:   strings.TrimSpace(req.Message),
		Source:    strings.TrimSpace(req.Source),
		CreatedAt: s.now().UTC(),
	}
	if lead.Name == "" {
		return nil, &query.ValidationError{Field: "name", Message: "is required"}
	}
	if lead.Source == "" {
		lead.Source = defaultLeadSource
	}
	if raw := strings.TrimSpace(req.PropertyID); raw != "" {
		id, err := parseID("propertyId", raw)
		if err != nil {
			return nil, err
		}
		lead.PropertyID = &id
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("error saving lead: %w", err)
	}
	return lead, nil
}

// ListLeads pagina las consultas, las más nuevas primero
func (s *leadService) ListLeads(ctx context.Context, page, limit string) (query.Result[domain.Lead], error) {
	p := query.NewPagination(page, limit, leadPageLimit)

	var (
		leads []domain.Lead
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		leads, err = s.repo.List(gctx, p.Skip(), p.Limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return query.Result[domain.Lead]{}, fmt.Errorf("error listing leads: %w", err)
	}
	return query.NewResult(leads, total, p), nil
}
