package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/dulceria-api/internal/application/audit"
	"github.com/jhoicas/dulceria-api/internal/application/dto"
	"github.com/jhoicas/dulceria-api/internal/domain"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
	"github.com/jhoicas/dulceria-api/pkg/jwt"
)

const statusActive = "active"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// LockedError login rechazado por bloqueo de IP. errors.Is(err, domain.ErrLocked) es true.
type LockedError struct {
	Remaining time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("%s (%d segundos)", domain.ErrLocked.Error(), int(e.Remaining.Seconds()))
}

func (e *LockedError) Unwrap() error { return domain.ErrLocked }

// AuthUseCase casos de uso de autenticación: login con bloqueo por IP y alta de usuarios.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	throttle *Throttle
	audit    audit.Publisher
	log      zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, throttle *Throttle, publisher audit.Publisher, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, throttle: throttle, audit: publisher, log: log}
}

// RegisterUser crea un usuario con el password hasheado con bcrypt. Lo usan el seed y la administración.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, email, password, name, role string) (*dto.UserResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.Invalid("email", "el email es obligatorio")
	}
	if len(password) < 8 {
		return nil, domain.Invalid("password", "el password debe tener al menos 8 caracteres")
	}
	if !entity.ValidRole(role) {
		return nil, domain.Invalid("role", "rol desconocido")
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       statusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Tras MaxAttempts fallos desde la misma IP devuelve *LockedError hasta que expire el bloqueo.
func (uc *AuthUseCase) Login(ctx context.Context, actor audit.Actor, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if locked, remaining := uc.throttle.Locked(actor.IP); locked {
		return nil, &LockedError{Remaining: remaining}
	}

	user, err := uc.verify(ctx, in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrUserNotFound) {
			if uc.throttle.Fail(actor.IP) {
				uc.log.Warn().Str("ip", actor.IP).Msg("IP bloqueada por intentos fallidos de login")
			}
		}
		return nil, err
	}
	uc.throttle.Reset(actor.IP)

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo registrar último acceso")
	}
	actor.UserID = user.ID
	uc.audit.Publish(audit.Event{
		Actor:       actor,
		Action:      entity.AuditLogin,
		Model:       "Usuario",
		ObjectID:    user.ID,
		Description: "Inicio de sesión de " + user.Email,
	})
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		User:      *toUserResponse(user),
	}, nil
}

func (uc *AuthUseCase) verify(ctx context.Context, in dto.LoginRequest) (*entity.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != statusActive {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

// Me devuelve el usuario del token.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// IsActive indica si el usuario del token sigue existiendo y activo.
func (uc *AuthUseCase) IsActive(ctx context.Context, userID string) (bool, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user != nil && user.Status == statusActive, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
