package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/surakshalabs/suraksha-backend/internal/data/repos"
	types "github.com/surakshalabs/suraksha-backend/internal/domain"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/ctxutil"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
)

type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
	Institution string `json:"institution"`
	StudentID   string `json:"student_id"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*types.User, error)
	Login(ctx context.Context, email, password string) (*types.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	Authenticate(ctx context.Context, tokenString string) (*ctxutil.RequestData, error)
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) Register(ctx context.Context, input RegisterInput) (*types.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidSubmission)
	}
	if input.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidSubmission)
	}
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrInvalidSubmission)
	}
	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = types.RoleStudent
	}
	if !types.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidSubmission, role)
	}
	institution := strings.TrimSpace(input.Institution)
	if institution == "" {
		institution = "Educational Institution"
	}
	studentID := strings.TrimSpace(input.StudentID)
	if studentID == "" {
		studentID = generateStudentID()
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		ID:          uuid.New(),
		Email:       email,
		Password:    string(hashed),
		FullName:    fullName,
		Role:        role,
		Institution: institution,
		StudentID:   studentID,
		Level:       1,
		LastLoginAt: time.Now(),
	}

	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := as.userRepo.EmailExists(ctx, tx, email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if exists {
			return ErrEmailInUse
		}
		if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	as.log.Info("Registered user", "user_id", user.ID.String(), "role", role)
	return user, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*types.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, nil, ErrInvalidCredentials
	}

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, nil, fmt.Errorf("fetch user by email: %w", err)
	}
	if len(users) == 0 || users[0] == nil {
		return nil, nil, ErrInvalidCredentials
	}
	user := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	var pair *TokenPair
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// One active token pair per user; a new login replaces the old one.
		if err := as.userTokenRepo.FullDeleteByUserID(ctx, tx, user.ID); err != nil {
			return fmt.Errorf("clear user tokens: %w", err)
		}
		var err error
		pair, err = as.issueTokenPair(ctx, tx, user)
		if err != nil {
			return err
		}
		return as.userRepo.UpdateLastLogin(ctx, tx, user.ID, time.Now())
	})
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, ErrNotAuthorized
	}

	var pair *TokenPair
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, err := as.userTokenRepo.GetByRefreshToken(ctx, tx, refreshToken)
		if err != nil {
			return fmt.Errorf("fetch refresh token: %w", err)
		}
		if stored == nil || stored.ExpiresAt.Before(time.Now()) {
			return ErrNotAuthorized
		}
		users, err := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{stored.UserID})
		if err != nil {
			return fmt.Errorf("fetch user: %w", err)
		}
		if len(users) == 0 || users[0] == nil {
			return ErrNotAuthorized
		}
		if err := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{stored.ID}); err != nil {
			return fmt.Errorf("rotate token: %w", err)
		}
		pair, err = as.issueTokenPair(ctx, tx, users[0])
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

func (as *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	return as.userTokenRepo.FullDeleteByUserID(ctx, nil, userID)
}

func (as *authService) Authenticate(ctx context.Context, tokenString string) (*ctxutil.RequestData, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrNotAuthorized
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, ErrNotAuthorized
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrNotAuthorized
	}
	role, _ := claims["role"].(string)

	// The access token must still be on record; logout revokes it.
	stored, err := as.userTokenRepo.GetByAccessToken(ctx, nil, tokenString)
	if err != nil {
		return nil, fmt.Errorf("fetch access token: %w", err)
	}
	if stored == nil || stored.UserID != userID || stored.ExpiresAt.Before(time.Now()) {
		return nil, ErrNotAuthorized
	}

	return &ctxutil.RequestData{
		UserID:      userID,
		Role:        role,
		TokenString: tokenString,
	}, nil
}

func (as *authService) issueTokenPair(ctx context.Context, tx *gorm.DB, user *types.User) (*TokenPair, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(as.accessTTL).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refreshToken := uuid.New().String()

	userToken := &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(as.refreshTTL),
	}
	if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{userToken}); err != nil {
		return nil, fmt.Errorf("store user token: %w", err)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func generateStudentID() string {
	ts := fmt.Sprintf("%d", time.Now().UnixMilli())
	return "SURK" + ts[len(ts)-6:]
}
