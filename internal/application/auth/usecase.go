package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcastano/despensa-api/internal/application/dto"
	"github.com/jcastano/despensa-api/internal/domain"
	"github.com/jcastano/despensa-api/internal/domain/entity"
	"github.com/jcastano/despensa-api/internal/domain/repository"
	"github.com/jcastano/despensa-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro de hogares y login de
// dispositivos con el código de acceso compartido del hogar.
type AuthUseCase struct {
	householdRepo repository.HouseholdRepository
	jwtCfg        JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(householdRepo repository.HouseholdRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{householdRepo: householdRepo, jwtCfg: jwtCfg}
}

// RegisterHousehold crea un hogar: hashea el código de acceso con bcrypt y
// persiste. Devuelve ErrHouseholdExists si el nombre ya está tomado.
func (uc *AuthUseCase) RegisterHousehold(ctx context.Context, in dto.RegisterHouseholdRequest) (*dto.HouseholdResponse, error) {
	if in.Name == "" || in.AccessCode == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.householdRepo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrHouseholdExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.AccessCode), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	h := &entity.Household{
		ID:             uuid.New().String(),
		Name:           in.Name,
		AccessCodeHash: string(hash),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.householdRepo.Create(ctx, h); err != nil {
		return nil, err
	}
	return &dto.HouseholdResponse{ID: h.ID, Name: h.Name, CreatedAt: h.CreatedAt}, nil
}

// Login verifica nombre y código de acceso, genera JWT y retorna el token.
// Un hogar inexistente y un código errado devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	h, err := uc.householdRepo.GetByName(ctx, in.HouseholdName)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.AccessCodeHash), []byte(in.AccessCode)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, h.ID, in.DeviceName, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:       token,
		HouseholdID: h.ID,
		ExpiresIn:   uc.jwtCfg.ExpMinutes * 60,
	}, nil
}
