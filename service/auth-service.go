package service

import (
	"strings"
	"time"

	"sportsfest/app_error"
	"sportsfest/auth"
	"sportsfest/config"
	"sportsfest/repository"
	"sportsfest/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sessionDuration = 24 * time.Hour

type AuthService struct {
	userRepository    *repository.UserRepository
	sessionRepository *repository.SessionRepository
	logger            *zap.Logger
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		userRepository:    repository.NewUserRepository(db),
		sessionRepository: repository.NewSessionRepository(db),
		logger:            config.Logger(),
	}
}

type LoginResult struct {
	Token       string
	ExpiresAt   time.Time
	Username    string
	Role        string
	LandingPath string
}

func LandingPathForRole(role string) string {
	switch role {
	case repository.RoleFinanceAdmin:
		return "/admin/finance"
	case repository.RoleInventoryAdmin:
		return "/admin/inventory"
	default:
		return "/admin"
	}
}

// Login checks the bootstrap env credentials first, then the admin_users
// table. A successful env-credential login rewrites the matching DB row with
// a fresh hash so both credential sources stay consistent.
func (s *AuthService) Login(username string, password string) (*LoginResult, error) {
	cfg := config.Env()
	role := ""
	var userId *int
	if cfg.AdminUsername != "" && username == cfg.AdminUsername && password == cfg.AdminPassword {
		role = repository.RoleSuperAdmin
		if user, err := s.upsertBootstrapUser(username, password); err != nil {
			s.logger.Warn("failed to mirror bootstrap admin into admin_users", zap.Error(err))
		} else {
			userId = &user.Id
		}
	} else {
		user, err := s.userRepository.GetUserByUsername(username)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, app_error.New(401, "Invalid username or password")
			}
			if isMissingTableError(err) {
				return nil, app_error.New(500, "Database tables are missing. Start the server against an initialized database so the schema can be created before logging in.")
			}
			return nil, err
		}
		if !auth.VerifyPassword(password, user.PasswordHash) {
			return nil, app_error.New(401, "Invalid username or password")
		}
		// Legacy plaintext rows are upgraded on their next successful login.
		if !auth.IsHashed(user.PasswordHash) {
			if hash, err := auth.HashPassword(password); err == nil {
				user.PasswordHash = hash
				if _, err := s.userRepository.SaveUser(user); err != nil {
					s.logger.Warn("failed to upgrade legacy password hash", zap.String("username", username), zap.Error(err))
				}
			}
		}
		role = user.Role
		userId = &user.Id
	}

	expiresAt := time.Now().Add(sessionDuration)
	session := &repository.AdminSession{
		Id:        uuid.NewString(),
		UserId:    userId,
		Username:  username,
		Role:      role,
		ExpiresAt: expiresAt,
	}
	if _, err := s.sessionRepository.CreateSession(session); err != nil {
		if isMissingTableError(err) {
			return nil, app_error.New(500, "Database tables are missing. Start the server against an initialized database so the schema can be created before logging in.")
		}
		return nil, err
	}
	token, err := auth.CreateToken(session.Id, username, role, expiresAt)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:       token,
		ExpiresAt:   expiresAt,
		Username:    username,
		Role:        role,
		LandingPath: LandingPathForRole(role),
	}, nil
}

func (s *AuthService) upsertBootstrapUser(username string, password string) (*repository.AdminUser, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepository.GetUserByUsername(username)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		user = &repository.AdminUser{Username: username}
	}
	user.PasswordHash = hash
	user.Role = repository.RoleSuperAdmin
	return s.userRepository.SaveUser(user)
}

// ResolveSession turns a cookie token into the stored session, or nil for
// anything invalid, expired or unknown. It does not error on bad tokens.
func (s *AuthService) ResolveSession(tokenString string) (*repository.AdminSession, error) {
	token, err := auth.ParseToken(tokenString)
	if err != nil || !token.Valid {
		return nil, nil
	}
	claims := &auth.Claims{}
	claims.FromJWTClaims(token.Claims)
	if err := claims.Valid(); err != nil || claims.SessionId == "" {
		return nil, nil
	}
	session, err := s.sessionRepository.GetSessionById(claims.SessionId)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, nil
	}
	return session, nil
}

func (s *AuthService) Logout(tokenString string) error {
	token, err := auth.ParseToken(tokenString)
	if err != nil || !token.Valid {
		return nil
	}
	claims := &auth.Claims{}
	claims.FromJWTClaims(token.Claims)
	if claims.SessionId == "" {
		return nil
	}
	return s.sessionRepository.DeleteSession(claims.SessionId)
}

var validRoles = []string{
	repository.RoleSuperAdmin,
	repository.RoleAdmin,
	repository.RoleFinanceAdmin,
	repository.RoleInventoryAdmin,
}

func (s *AuthService) GetUsers() ([]*repository.AdminUser, error) {
	return s.userRepository.GetAllUsers()
}

func (s *AuthService) CreateUser(username string, password string, role string) (*repository.AdminUser, error) {
	if err := validateRole(role); err != nil {
		return nil, err
	}
	if _, err := s.userRepository.GetUserByUsername(username); err == nil {
		return nil, app_error.New(400, "Username %q is already taken", username)
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.userRepository.SaveUser(&repository.AdminUser{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	})
}

func (s *AuthService) UpdateUser(id int, password string, role string) (*repository.AdminUser, error) {
	user, err := s.userRepository.GetUserById(id)
	if err != nil {
		return nil, err
	}
	if role != "" {
		if err := validateRole(role); err != nil {
			return nil, err
		}
		user.Role = role
	}
	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	return s.userRepository.SaveUser(user)
}

func (s *AuthService) DeleteUser(id int, actingUsername string) error {
	user, err := s.userRepository.GetUserById(id)
	if err != nil {
		return err
	}
	if user.Username == actingUsername {
		return app_error.New(400, "You cannot delete your own account")
	}
	return s.userRepository.DeleteUser(id)
}

func validateRole(role string) error {
	if !utils.Contains(validRoles, role) {
		return app_error.New(400, "Invalid role %q", role)
	}
	return nil
}

func isMissingTableError(err error) bool {
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "does not exist") || strings.Contains(message, "no such table")
}
