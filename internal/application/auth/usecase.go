package auth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Farmacias-api/internal/application/dto"
	"github.com/jhoicas/Farmacias-api/internal/domain"
	"github.com/jhoicas/Farmacias-api/internal/domain/entity"
	"github.com/jhoicas/Farmacias-api/internal/domain/repository"
	"github.com/jhoicas/Farmacias-api/internal/domain/validation"
	"github.com/jhoicas/Farmacias-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret             string
	ExpMinutes         int
	RememberExpMinutes int // vigencia cuando el login pide "recordarme"
	Issuer             string
}

// AuthUseCase casos de uso de credenciales: registro, autenticación y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	hashCost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthUseCase construye el caso de uso de auth con bcrypt.DefaultCost.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, hashCost: bcrypt.DefaultCost}
}

// WithHashCost cambia el costo de bcrypt (los tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithHashCost(cost int) *AuthUseCase {
	uc.hashCost = cost
	return uc
}

// RegisterUser valida los campos, normaliza el email, hashea la contraseña y persiste.
// Devuelve validation.Errors si algún campo es inválido y domain.ErrEmailAlreadyExists
// si el email ya existe (sin distinguir mayúsculas). La unicidad la garantiza el índice de la BD;
// la consulta previa solo evita hashear en vano.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	email := validation.NormalizeEmail(in.Email)
	if err := validation.ValidateSignup(in.FirstName, in.LastName, email, in.Password); err != nil {
		return nil, err
	}
	if in.ConfirmPassword != nil {
		if err := validation.ValidatePasswordConfirmation(in.Password, *in.ConfirmPassword); err != nil {
			return nil, err
		}
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword(prehash(in.Password), uc.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Authenticate busca el usuario por email normalizado y compara la contraseña con bcrypt
// (comparación en tiempo constante). Email desconocido y contraseña incorrecta devuelven ambos
// (nil, nil); solo fallos de infraestructura devuelven error. Nunca modifica estado.
func (uc *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Igualar el tiempo de respuesta con el de un usuario existente.
		_ = bcrypt.CompareHashAndPassword(uc.dummy(), prehash(password))
		return nil, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), prehash(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, nil
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}
	return user, nil
}

// Login autentica y genera el JWT. Credenciales inválidas -> domain.ErrUnauthorized, sin distinguir la causa.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	minutes := uc.jwtCfg.ExpMinutes
	if in.RememberMe && uc.jwtCfg.RememberExpMinutes > 0 {
		minutes = uc.jwtCfg.RememberExpMinutes
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, time.Duration(minutes)*time.Minute)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      *toUserResponse(user),
	}, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) dummy() []byte {
	uc.dummyOnce.Do(func() {
		uc.dummyHash, _ = bcrypt.GenerateFromPassword(prehash("dummy-password-0"), uc.hashCost)
	})
	return uc.dummyHash
}

// prehash reduce la contraseña a 44 bytes ASCII (SHA-256 en base64) antes de bcrypt,
// que rechaza entradas de más de 72 bytes. La contraseña no tiene límite superior.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
