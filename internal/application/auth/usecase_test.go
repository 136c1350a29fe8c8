package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Farmacias-api/internal/application/auth"
	"github.com/jhoicas/Farmacias-api/internal/application/dto"
	"github.com/jhoicas/Farmacias-api/internal/domain"
	"github.com/jhoicas/Farmacias-api/internal/domain/validation"
	"github.com/jhoicas/Farmacias-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Farmacias-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

func newAuthUseCase(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	repos := sqlite.NewRepositories(db)
	return auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret: testSecret, ExpMinutes: 60, RememberExpMinutes: 60 * 24 * 30, Issuer: "farmacias-api",
	}).WithHashCost(bcrypt.MinCost)
}

func register(t *testing.T, uc *auth.AuthUseCase, email string) *dto.UserResponse {
	t.Helper()
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		FirstName: "Ana", LastName: "Diaz", Email: email, Password: "abcd1234",
	})
	require.NoError(t, err)
	return u
}

func TestRegisterUser_NormalizaEmail(t *testing.T) {
	uc := newAuthUseCase(t)
	u := register(t, uc, "Ana@X.com")
	assert.Equal(t, "ana@x.com", u.Email)
	assert.NotEmpty(t, u.ID)
}

func TestRegisterUser_EmailDuplicadoSinMayusculas(t *testing.T) {
	uc := newAuthUseCase(t)
	register(t, uc, "a@x.com")

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		FirstName: "Otra", LastName: "Persona", Email: "A@X.com", Password: "abcd1234",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegisterUser_Validacion(t *testing.T) {
	uc := newAuthUseCase(t)
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		FirstName: "A", LastName: "Diaz", Email: "no-es-email", Password: "corta",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.Fields()
	assert.Contains(t, fields, "first_name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	assert.NotContains(t, fields, "last_name")
}

func TestRegisterUser_ConfirmacionDistinta(t *testing.T) {
	uc := newAuthUseCase(t)
	confirm := "otra1234"
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		FirstName: "Ana", LastName: "Diaz", Email: "a@x.com", Password: "abcd1234", ConfirmPassword: &confirm,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthenticate(t *testing.T) {
	uc := newAuthUseCase(t)
	register(t, uc, "a@x.com")
	ctx := context.Background()

	u, err := uc.Authenticate(ctx, "A@x.com", "abcd1234")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "a@x.com", u.Email)

	u, err = uc.Authenticate(ctx, "a@x.com", "incorrecta1")
	require.NoError(t, err)
	assert.Nil(t, u, "contraseña incorrecta no es un error")

	u, err = uc.Authenticate(ctx, "nadie@x.com", "abcd1234")
	require.NoError(t, err)
	assert.Nil(t, u, "email desconocido no es un error")
}

func TestLogin_TokenYRecordarme(t *testing.T) {
	uc := newAuthUseCase(t)
	user := register(t, uc, "a@x.com")
	ctx := context.Background()

	short, err := uc.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "abcd1234"})
	require.NoError(t, err)
	sub, err := jwt.Parse(testSecret, short.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sub)

	long, err := uc.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "abcd1234", RememberMe: true})
	require.NoError(t, err)
	assert.True(t, long.ExpiresAt.After(short.ExpiresAt), "recordarme extiende la vigencia")

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "mala12345"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMe(t *testing.T) {
	uc := newAuthUseCase(t)
	user := register(t, uc, "a@x.com")

	got, err := uc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = uc.Me(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterUser_ContrasenaLarga(t *testing.T) {
	uc := newAuthUseCase(t)
	ctx := context.Background()
	password := strings.Repeat("a", 99) + "1"

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		FirstName: "Ana", LastName: "Diaz", Email: "a@x.com", Password: password,
	})
	require.NoError(t, err, "la contraseña no tiene límite superior")

	u, err := uc.Authenticate(ctx, "a@x.com", password)
	require.NoError(t, err)
	assert.NotNil(t, u)

	// Difiere solo después del byte 72: debe rechazarse igual.
	u, err = uc.Authenticate(ctx, "a@x.com", strings.Repeat("a", 99)+"2")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestRegisterUser_RecortaEspacios(t *testing.T) {
	uc := newAuthUseCase(t)
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		FirstName: " Ana ", LastName: "Diaz  ", Email: "  A@X.com ", Password: "abcd1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
	assert.Equal(t, "Ana", u.FirstName)
	assert.Equal(t, "Diaz", u.LastName)

	found, err := uc.Authenticate(context.Background(), " a@x.com", "abcd1234")
	require.NoError(t, err)
	assert.NotNil(t, found)
}
