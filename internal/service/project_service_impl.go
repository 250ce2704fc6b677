package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/contract"
	"github.com/lvoisin/crewctl/internal/domain"
)

type projectService struct {
	client  backend.Client
	journal Journal
}

func NewProjectService(client backend.Client, j Journal) ProjectService {
	if j == nil {
		j = NoopJournal{}
	}
	return &projectService{client: client, journal: j}
}

func (s *projectService) Create(ctx context.Context, req backend.ProjectCreate) (*domain.Project, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, &contract.ProjectError{
			Code:    contract.ProjectErrInvalidInput,
			Message: "project title is required",
		}
	}
	p, err := s.client.CreateProject(ctx, req)
	if err != nil {
		return nil, projectBackendErr(err)
	}
	journal(ctx, s.journal, nil, "project_create", p.Title+" ("+p.ID.String()+")")
	return p, nil
}

func (s *projectService) List(ctx context.Context, status domain.ProjectStatus) ([]domain.Project, error) {
	projects, err := s.client.ListProjects(ctx, status)
	if err != nil {
		return nil, projectBackendErr(err)
	}
	return projects, nil
}

func (s *projectService) MatchPreview(ctx context.Context, req backend.MatchPreviewRequest) ([]backend.MatchEntry, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, &contract.ProjectError{
			Code:    contract.ProjectErrInvalidInput,
			Message: "a draft title is required for a match preview",
		}
	}
	entries, err := s.client.MatchPreview(ctx, req)
	if err != nil {
		return nil, projectBackendErr(err)
	}
	// Non-positive scores carry no signal; drop them here so every caller
	// sees the same preview.
	var out []backend.MatchEntry
	for _, e := range entries {
		if e.Score > 0 {
			out = append(out, e)
		}
	}
	return out, nil
}

func projectBackendErr(err error) error {
	code := contract.ProjectErrBackend
	if errors.Is(err, backend.ErrNotFound) {
		code = contract.ProjectErrNotFound
	}
	return &contract.ProjectError{Code: code, Message: err.Error()}
}
