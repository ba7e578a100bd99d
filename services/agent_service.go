package services

import (
	"context"

	"estate-api/domain"
	"estate-api/query"
	"estate-api/repositories"
)

// AgentService sirve el directorio de agentes y los listados de cada agente
type AgentService interface {
	ListAgents(ctx context.Context, params query.Params, principal *domain.Principal) (query.Result[domain.Agent], error)
	GetAgent(ctx context.Context, id string, principal *domain.Principal) (*domain.Agent, error)
	AgentProperties(ctx context.Context, agentID string, params query.Params, principal *domain.Principal) (query.Result[domain.PropertySummary], error)
}

type agentService struct {
	agents     repositories.AgentRepository
	directory  *Executor[domain.Agent]
	properties *Executor[domain.PropertySummary]
}

// NewAgentService conecta el directorio de agentes con sus stores
func NewAgentService(agents repositories.AgentRepository, properties repositories.PropertyStore, cache repositories.CacheRepository) AgentService {
	return &agentService{
		agents:     agents,
		directory:  NewExecutor[domain.Agent](agents, cache),
		properties: NewExecutor(properties, cache),
	}
}

func (s *agentService) ListAgents(ctx context.Context, params query.Params, principal *domain.Principal) (query.Result[domain.Agent], error) {
	plan, err := query.AgentDirectory.Compile(params, scopeFor(principal))
	if err != nil {
		return query.Result[domain.Agent]{}, err
	}
	return s.directory.Execute(ctx, plan)
}

// GetAgent oculta los agentes no verificados al público
func (s *agentService) GetAgent(ctx context.Context, id string, principal *domain.Principal) (*domain.Agent, error) {
	oid, err := parseID("id", id)
	if err != nil {
		return nil, err
	}
	agent, err := s.agents.GetByID(ctx, oid)
	if err != nil {
		return nil, translate(err)
	}
	if !agent.Verified && !principal.Privileged() {
		return nil, ErrNotFound
	}
	return agent, nil
}

// AgentProperties corre la búsqueda pública de propiedades limitada a un agente
func (s *agentService) AgentProperties(ctx context.Context, agentID string, params query.Params, principal *domain.Principal) (query.Result[domain.PropertySummary], error) {
	scope := scopeFor(principal)
	scope.ReferenceID = agentID
	plan, err := query.PublicPropertySearch.Compile(params, scope)
	if err != nil {
		return query.Result[domain.PropertySummary]{}, err
	}
	return s.properties.Execute(ctx, plan)
}
