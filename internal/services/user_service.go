package services

import (
	"context"
	"errors"

	"github.com/yoockh/bikeparts/internal/models"
	mongorepo "github.com/yoockh/bikeparts/internal/repositories/mongo"
	"github.com/yoockh/bikeparts/internal/utils"
)

type TokenIssuer interface {
	Issue(email string) (string, error)
}

type LoginResult struct {
	Result      *models.UpdateResult `json:"result"`
	AccessToken string               `json:"accessToken"`
}

// UserService is the identity store: upsert login, profile updates, role
// changes and role lookups.
type UserService interface {
	Login(ctx context.Context, email string, fields models.Document) (*LoginResult, error)
	UpdateProfile(ctx context.Context, email string, fields models.Document) (*models.UpdateResult, error)
	SetRole(ctx context.Context, actor, email string, role models.Role) (*models.UpdateResult, error)
	Get(ctx context.Context, email string) (models.Document, error)
	List(ctx context.Context) ([]models.Document, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
}

type userService struct {
	users  mongorepo.UserRepository
	tokens TokenIssuer
	audit  AuditService
}

func NewUserService(users mongorepo.UserRepository, tokens TokenIssuer, audit AuditService) UserService {
	return &userService{users: users, tokens: tokens, audit: audit}
}

// protectedUserFields are never taken from a client body.
var protectedUserFields = []string{models.FieldID, models.FieldEmail, models.FieldRole}

func (s *userService) Login(ctx context.Context, email string, fields models.Document) (*LoginResult, error) {
	const op = "UserService.Login"

	if email == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email is required", nil)
	}

	res, err := s.users.Upsert(ctx, email, models.Without(fields, protectedUserFields...))
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save user", err)
	}

	token, err := s.tokens.Issue(email)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return &LoginResult{Result: res, AccessToken: token}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, email string, fields models.Document) (*models.UpdateResult, error) {
	const op = "UserService.UpdateProfile"

	if email == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email is required", nil)
	}
	res, err := s.users.Update(ctx, email, models.Without(fields, protectedUserFields...))
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update user", err)
	}
	return res, nil
}

func (s *userService) SetRole(ctx context.Context, actor, email string, role models.Role) (*models.UpdateResult, error) {
	const op = "UserService.SetRole"

	if email == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email is required", nil)
	}
	if !role.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "role must be \"admin\" or \"none\"", nil)
	}

	res, err := s.users.SetRole(ctx, email, role)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to set role", err)
	}
	s.audit.Record(ctx, AuditRecord{
		Actor:      actor,
		Action:     models.AuditSetRole,
		Resource:   "users",
		ResourceID: email,
		Payload:    models.Document{models.FieldRole: string(role)},
	})
	return res, nil
}

func (s *userService) Get(ctx context.Context, email string) (models.Document, error) {
	const op = "UserService.Get"

	if email == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email is required", nil)
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get user", err)
	}
	return u, nil
}

func (s *userService) List(ctx context.Context) ([]models.Document, error) {
	const op = "UserService.List"

	out, err := s.users.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list users", err)
	}
	return out, nil
}

// IsAdmin treats a missing user record as not admin.
func (s *userService) IsAdmin(ctx context.Context, email string) (bool, error) {
	const op = "UserService.IsAdmin"

	if email == "" {
		return false, nil
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return false, nil
		}
		return false, utils.E(utils.CodeInternal, op, "failed to resolve role", err)
	}
	return models.IsAdmin(u), nil
}
