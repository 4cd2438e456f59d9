package user

import (
	"Recipe-Grocery-Backend/domain"
	"Recipe-Grocery-Backend/entities"
	"Recipe-Grocery-Backend/pkg/jwt"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// UserService mirrors accounts from the identity provider and issues the
	// bearer tokens AuthMiddleware accepts.
	UserService interface {
		IssueToken(ctx context.Context, req domain.IssueTokenRequest) (domain.IssueTokenResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) IssueToken(ctx context.Context, req domain.IssueTokenRequest) (domain.IssueTokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return domain.IssueTokenResponse{}, domain.ErrEmailRequired
	}

	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &entities.User{
			ID:    uuid.New(),
			Name:  strings.TrimSpace(req.Name),
			Email: email,
		}
		err = s.userRepository.CreateUser(ctx, user)
	}
	if err != nil {
		return domain.IssueTokenResponse{}, err
	}

	return domain.IssueTokenResponse{
		UserID: user.ID.String(),
		Token:  s.jwtService.GenerateTokenUser(user.ID.String(), domain.RoleUser),
	}, nil
}
