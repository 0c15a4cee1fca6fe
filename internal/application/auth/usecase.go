package auth

import (
	"crypto/subtle"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/gestor-notas/internal/application/dto"
	"github.com/jhoicas/gestor-notas/internal/domain"
	"github.com/jhoicas/gestor-notas/internal/domain/repository"
	"github.com/jhoicas/gestor-notas/pkg/jwt"
	"github.com/jhoicas/gestor-notas/pkg/logger"
)

// PasswordKey clave de la contraseña del administrador en el almacén de configuración.
const PasswordKey = "adminPassword"

// Subject y rol de la única sesión que existe.
const (
	AdminSubject = "admin"
	AdminRole    = "admin"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y cambio de la contraseña compartida.
type AuthUseCase struct {
	kv              repository.KeyValueStore
	jwtCfg          JWTConfig
	defaultPassword string
	cost            int
	now             func() time.Time
	log             *logger.Logger
}

// Option ajusta el caso de uso.
type Option func(*AuthUseCase)

// WithBcryptCost fija el costo de bcrypt (los tests usan bcrypt.MinCost).
func WithBcryptCost(cost int) Option {
	return func(uc *AuthUseCase) { uc.cost = cost }
}

// WithClock inyecta el reloj usado al emitir tokens.
func WithClock(now func() time.Time) Option {
	return func(uc *AuthUseCase) { uc.now = now }
}

// NewAuthUseCase construye el caso de uso de auth sobre el almacén de configuración.
func NewAuthUseCase(kv repository.KeyValueStore, jwtCfg JWTConfig, defaultPassword string, log *logger.Logger, opts ...Option) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	uc := &AuthUseCase{
		kv:              kv,
		jwtCfg:          jwtCfg,
		defaultPassword: defaultPassword,
		cost:            bcrypt.DefaultCost,
		now:             time.Now,
		log:             log.Component("auth"),
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// EnsureInitialized guarda el hash de la contraseña por defecto si no hay ninguna (primer arranque).
func (uc *AuthUseCase) EnsureInitialized() error {
	stored, found, err := uc.storedPassword()
	if err != nil {
		return err
	}
	if found && stored != "" {
		return nil
	}
	if err := uc.setPassword(uc.defaultPassword); err != nil {
		return err
	}
	uc.log.Info().Msg("contraseña de administrador inicializada con el valor por defecto")
	return nil
}

// Login verifica la contraseña compartida y emite un JWT.
// Un valor heredado guardado en texto plano se reemplaza por su hash tras un login correcto.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	stored, found, err := uc.storedPassword()
	if err != nil {
		return nil, err
	}
	if !found || stored == "" {
		stored = uc.defaultPassword
	}

	if isBcryptHash(stored) {
		if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(in.Password)); err != nil {
			uc.log.Warn().Msg("login rechazado")
			return nil, domain.ErrUnauthorized
		}
	} else {
		if subtle.ConstantTimeCompare([]byte(stored), []byte(in.Password)) != 1 {
			uc.log.Warn().Msg("login rechazado")
			return nil, domain.ErrUnauthorized
		}
		if err := uc.setPassword(in.Password); err != nil {
			return nil, err
		}
		uc.log.Info().Msg("contraseña heredada migrada a bcrypt")
	}

	token, err := jwt.GenerateAt(uc.now(), uc.jwtCfg.Secret, AdminSubject, AdminRole, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresIn: uc.jwtCfg.ExpMinutes * 60}, nil
}

// ChangePassword reemplaza la contraseña compartida.
func (uc *AuthUseCase) ChangePassword(in dto.ChangePasswordRequest) error {
	if strings.TrimSpace(in.Password) == "" {
		return domain.Invalid("password", "requerida")
	}
	if err := uc.setPassword(in.Password); err != nil {
		return err
	}
	uc.log.Info().Msg("contraseña de administrador actualizada")
	return nil
}

// Authenticate valida un token emitido por Login y devuelve su subject y rol.
func (uc *AuthUseCase) Authenticate(token string) (subject, role string, err error) {
	subject, role, err = jwt.Parse(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, token)
	if err != nil {
		uc.log.Debug().Err(err).Msg("token rechazado")
		return "", "", domain.ErrUnauthorized
	}
	return subject, role, nil
}

func (uc *AuthUseCase) storedPassword() (string, bool, error) {
	var stored string
	found, err := uc.kv.Get(PasswordKey, &stored)
	return stored, found, err
}

func (uc *AuthUseCase) setPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return err
	}
	return uc.kv.Set(PasswordKey, string(hash))
}

func isBcryptHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
