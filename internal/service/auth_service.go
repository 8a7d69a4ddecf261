package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	config "github.com/socialgit/socialgit-api/configs"
	"github.com/socialgit/socialgit-api/internal/models"
	"github.com/socialgit/socialgit-api/internal/repository"
	"github.com/socialgit/socialgit-api/internal/transfer"
	"github.com/socialgit/socialgit-api/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (int64, error)
	Authenticate(ctx context.Context, username, password string) (int64, error)
	LoginWithGoogle(ctx context.Context, code string) (int64, error)
}

type authService struct {
	cfg config.Config
	u   repository.UserRepository
}

func NewAuthService(cfg config.Config, u repository.UserRepository) AuthService {
	return &authService{
		cfg: cfg,
		u:   u,
	}
}

func (s *authService) Register(ctx context.Context, username, password string) (int64, error) {
	if username == "" || password == "" {
		err := errors.New("username and password cannot be empty")
		slog.Info(err.Error())
		return 0, err
	}

	_, exists, err := s.u.GetByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if exists {
		slog.Info("registration refused, username taken", "username", username)
		return 0, ErrDuplicateUsername
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("error hashing password: %w", err)
	}

	id, err := s.u.Create(ctx, nil, &models.User{
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		return 0, fmt.Errorf("error creating user: %w", err)
	}
	return id, nil
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (int64, error) {
	user, exists, err := s.u.GetByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if !exists || !utils.CheckPassword(user.PasswordHash, password) {
		slog.Info("login failed", "username", username)
		return 0, ErrInvalidCredentials
	}
	return user.ID, nil
}

// LoginWithGoogle exchanges an OAuth code and provisions a user keyed
// by email the first time around. The account gets an unusable random
// password hash, so it can only sign in through this path.
func (s *authService) LoginWithGoogle(ctx context.Context, code string) (int64, error) {
	if code == "" {
		err := errors.New("code is empty")
		slog.Info(err.Error())
		return 0, err
	}

	oauth2Config := &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		RedirectURL:  s.cfg.GoogleRedirectURI,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}

	if oauth2Config.ClientID == "" || oauth2Config.ClientSecret == "" {
		err := errors.New("OAuth2 configuration is incomplete")
		slog.Info(err.Error())
		return 0, err
	}

	token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	client := oauth2Config.Client(ctx, token)

	userInfo, err := getGoogleUserInfo(client)
	if err != nil {
		return 0, err
	}

	user, exists, err := s.u.GetByUsername(ctx, userInfo.Email)
	if err != nil {
		return 0, err
	}
	if exists {
		return user.ID, nil
	}

	randomSecret, err := utils.GenerateRandomKey(32)
	if err != nil {
		return 0, err
	}
	hash, err := utils.HashPassword(randomSecret)
	if err != nil {
		return 0, err
	}

	userID, err := s.u.Create(ctx, nil, &models.User{
		Username:     userInfo.Email,
		PasswordHash: hash,
	})
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return userID, nil
}

func getGoogleUserInfo(client *http.Client) (*transfer.GoogleUserInfo, error) {
	userInfoURL := "https://www.googleapis.com/oauth2/v1/userinfo"

	response, err := client.Get(userInfoURL)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error fetching user info: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response status: %d", response.StatusCode)
	}

	var userInfo transfer.GoogleUserInfo
	if err := json.NewDecoder(response.Body).Decode(&userInfo); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error decoding user info: %w", err)
	}

	return &userInfo, nil
}
