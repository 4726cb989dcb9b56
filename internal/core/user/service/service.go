package userapp

import (
	"context"
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"

	userEntity "forkful/internal/core/user"
	userPort "forkful/internal/ports/user"
)

type UserService struct {
	UserRepository userPort.UserRepository
	jwtKey         []byte
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte) *UserService {
	return &UserService{
		UserRepository: repo,
		jwtKey:         jwtKey,
	}
}

// LoginUser checks credentials and issues a JWT.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error) {
	user, err := s.UserRepository.FindByUsername(username)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	expiresAt := time.Now().Add(24 * time.Hour).Unix()
	claims := &jwt.StandardClaims{
		Subject:   user.ID.String(),
		Issuer:    "forkful",
		ExpiresAt: expiresAt,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.New("could not generate token")
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// RegisterUser creates a new account with a bcrypt-hashed password.
func (s *UserService) RegisterUser(ctx context.Context, name, username, password, image string) (*userPort.UserDTO, error) {
	if existing, err := s.UserRepository.FindByUsername(username); err == nil && existing != nil {
		return nil, errors.New("username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &userEntity.User{
		ID:       uuid.Must(uuid.NewV4()),
		Name:     name,
		Username: username,
		Image:    image,
		Password: string(hashed),
	}

	u, err := s.UserRepository.Create(user)
	if err != nil {
		return nil, err
	}

	return &userPort.UserDTO{
		ID:       u.ID.String(),
		Name:     u.Name,
		Username: u.Username,
		Image:    u.Image,
	}, nil
}
