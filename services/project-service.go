package services

import (
	"context"

	"github.com/raymundoht/Task-Manager/models"
	"github.com/raymundoht/Task-Manager/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectService struct {
	projects repositories.ProjectRepository
}

func NewProjectService(projects repositories.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

func (s *ProjectService) CreateProject(ctx context.Context, name, description string) (*models.Project, error) {
	project := &models.Project{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: description,
	}
	if err := s.projects.Insert(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.projects.FindAll(ctx)
}

// UpdateProject merges the present fields into the stored project.
// Returns ErrProjectNotFound when the project does not exist.
func (s *ProjectService) UpdateProject(ctx context.Context, id string, update models.ProjectUpdate) (*models.Project, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProjectNotFound
	}

	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["nombre"] = *update.Name
	}
	if update.Description != nil {
		fields["descripcion"] = *update.Description
	}
	if len(fields) > 0 {
		if _, err := s.projects.UpdateFields(ctx, objectID, fields); err != nil {
			return nil, err
		}
	}

	project, err := s.projects.FindByID(ctx, objectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// DeleteProject removes a project and reports whether a record was
// removed. Task references to the project are left dangling on
// purpose; there is no cascade.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	return s.projects.Delete(ctx, objectID)
}

// Options returns identifier + name pairs for form select lists.
func (s *ProjectService) Options(ctx context.Context) ([]models.Option, error) {
	projects, err := s.projects.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]models.Option, 0, len(projects))
	for _, p := range projects {
		options = append(options, models.Option{ID: p.ID.Hex(), Name: p.Name})
	}
	return options, nil
}
