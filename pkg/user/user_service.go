package user

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
	"Meal-Planner-Backend/internal/utils/mailing"
	"Meal-Planner-Backend/pkg/access"
	"Meal-Planner-Backend/pkg/jwt"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		PromoteToChef(ctx context.Context, targetUserID string) (domain.UserResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		sendMail       func(toEmail, subject, body string) error
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		sendMail:       mailing.SendMail,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	if _, err := s.userRepository.GetUserByUsername(ctx, req.Username); err == nil {
		return domain.RegisterResponse{}, domain.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RegisterResponse{}, err
	}

	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.RegisterResponse{}, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RegisterResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.RegisterResponse{}, err
	}

	// Welcome mail is best effort, registration already succeeded.
	if err := s.sendMail(
		user.Email,
		"Welcome to Meal Planner",
		fmt.Sprintf("<p>Hi %s, your account is ready. Bon appétit!</p>", user.Username),
	); err != nil {
		log.Printf("failed to send welcome mail to %s: %v", user.Email, err)
	}

	role := access.Classify(user)
	return domain.RegisterResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(role),
		Token:     s.jwtService.GenerateTokenUser(user.ID.String(), string(role)),
		Dashboard: access.DashboardRoute(role),
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	role := access.Classify(user)
	return domain.LoginResponse{
		Token:     s.jwtService.GenerateTokenUser(user.ID.String(), string(role)),
		Role:      string(role),
		Dashboard: access.DashboardRoute(role),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// PromoteToChef adds the target to the chef group. Promoting an existing
// chef is a no-op, never an error.
func (s *userService) PromoteToChef(ctx context.Context, targetUserID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	member, err := s.userRepository.IsUserInGroup(ctx, targetUserID, domain.ChefGroupName)
	if err != nil {
		return domain.UserResponse{}, err
	}

	if !member {
		group, err := s.userRepository.GetOrCreateGroup(ctx, domain.ChefGroupName)
		if err != nil {
			return domain.UserResponse{}, err
		}
		if err := s.userRepository.AddUserToGroup(ctx, user, group); err != nil {
			return domain.UserResponse{}, err
		}
	}

	user, err = s.userRepository.GetUserByID(ctx, targetUserID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Role:     string(access.Classify(user)),
		JoinedAt: user.CreatedAt,
	}
}
