package role

import (
	"context"
	"time"

	"github.com/nattapongw/calendar-api/internal/model"
	"github.com/nattapongw/calendar-api/internal/repository"
	"github.com/nattapongw/calendar-api/internal/service/audit"
	apperrors "github.com/nattapongw/calendar-api/pkg/errors"
	"github.com/nattapongw/calendar-api/pkg/logger"
)

type Service struct {
	repo   repository.RoleRepository
	audit  *audit.Service
	logger *logger.Logger
}

func NewService(repo repository.RoleRepository, auditSvc *audit.Service, logger *logger.Logger) *Service {
	return &Service{repo: repo, audit: auditSvc, logger: logger}
}

// EnsureUser registers an unknown user as a viewer and returns their role.
// First contact is recorded in the audit trail so new users can be listed
// and promoted later.
func (s *Service) EnsureUser(ctx context.Context, userID, displayName string) (*model.UserRole, error) {
	existing, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	role := &model.UserRole{
		UserID:    userID,
		Role:      model.RoleViewer,
		UpdatedAt: time.Now(),
	}
	if displayName != "" {
		role.DisplayName = &displayName
	}
	if err := s.repo.Upsert(ctx, role); err != nil {
		return nil, err
	}
	s.audit.Log(ctx, userID, model.AuditActionAutoRegister, "user", map[string]string{
		"display_name": displayName,
	})
	return role, nil
}

// SetRole assigns a role to a user, creating the user if needed.
func (s *Service) SetRole(ctx context.Context, actor string, req *model.SetRoleRequest) (*model.UserRole, error) {
	r := model.Role(req.Role)
	if !r.Valid() {
		return nil, apperrors.BadRequest("invalid role: "+req.Role, nil)
	}

	role := &model.UserRole{
		UserID:    req.UserID,
		Role:      r,
		UpdatedAt: time.Now(),
	}
	if req.DisplayName != "" {
		role.DisplayName = &req.DisplayName
	}
	if err := s.repo.Upsert(ctx, role); err != nil {
		return nil, err
	}
	s.audit.Log(ctx, actor, model.AuditActionSetRole, "user", role)
	return role, nil
}

// Get returns the stored role, or viewer when the user is unknown.
func (s *Service) Get(ctx context.Context, userID string) (model.Role, error) {
	role, err := s.repo.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if role == nil {
		return model.RoleViewer, nil
	}
	return role.Role, nil
}

func (s *Service) List(ctx context.Context) ([]*model.UserRole, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListBosses(ctx context.Context) ([]*model.UserRole, error) {
	return s.repo.ListByRole(ctx, model.RoleBoss)
}

func (s *Service) ListSecretaries(ctx context.Context) ([]*model.UserRole, error) {
	return s.repo.ListByRole(ctx, model.RoleSecretary)
}
