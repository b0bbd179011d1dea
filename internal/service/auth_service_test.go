package service

import (
	"context"
	"testing"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/config"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/dto"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (*stubUsuarioRepo, AuthService) {
	repo := newStubUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    168,
	}
	return repo, NewAuthService(repo, cfg)
}

func seedUsuario(repo *stubUsuarioRepo, username, password, rol string, activo bool) uuid.UUID {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	id := uuid.New()
	repo.usuarios[id] = &model.Usuario{
		ID:           id,
		Username:     username,
		Nombre:       "Usuario " + username,
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       activo,
	}
	return id
}

func TestLogin(t *testing.T) {
	repo, svc := newAuthFixture()
	seedUsuario(repo, "caja1", "secreto123", model.RolCaja, true)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "caja1", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, model.RolCaja, resp.User.Rol)
}

func TestLoginPasswordIncorrecta(t *testing.T) {
	repo, svc := newAuthFixture()
	seedUsuario(repo, "caja1", "secreto123", model.RolCaja, true)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "caja1", Password: "otra"})
	assert.Error(t, err)
}

func TestLoginUsuarioInactivo(t *testing.T) {
	repo, svc := newAuthFixture()
	seedUsuario(repo, "caja1", "secreto123", model.RolCaja, false)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "caja1", Password: "secreto123"})
	assert.Error(t, err)
}

func TestRefresh(t *testing.T) {
	repo, svc := newAuthFixture()
	seedUsuario(repo, "admin1", "secreto123", model.RolAdmin, true)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin1", Password: "secreto123"})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "admin1", renovado.User.Username)
}

func TestRefreshTokenInvalido(t *testing.T) {
	_, svc := newAuthFixture()
	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	assert.Error(t, err)
}

func TestRefreshUsuarioDesactivado(t *testing.T) {
	repo, svc := newAuthFixture()
	id := seedUsuario(repo, "caja1", "secreto123", model.RolCaja, true)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "caja1", Password: "secreto123"})
	require.NoError(t, err)

	require.NoError(t, svc.DesactivarUsuario(context.Background(), id))
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.Error(t, err)
}

func TestCrearUsuarioHasheaPassword(t *testing.T) {
	repo, svc := newAuthFixture()

	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "cocina1",
		Nombre:   "Cocinero Uno",
		Password: "secreto123",
		Rol:      model.RolCocina,
	})
	require.NoError(t, err)
	assert.True(t, resp.Activo)

	guardado, err := repo.FindByUsername(context.Background(), "cocina1")
	require.NoError(t, err)
	assert.NotEqual(t, "secreto123", guardado.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(guardado.PasswordHash), []byte("secreto123")))
}

func TestActualizarUsuarioCambiaRolYPassword(t *testing.T) {
	repo, svc := newAuthFixture()
	id := seedUsuario(repo, "caja1", "secreto123", model.RolCaja, true)

	rol := model.RolAdmin
	pass := "nuevaclave9"
	resp, err := svc.ActualizarUsuario(context.Background(), id, dto.ActualizarUsuarioRequest{
		Rol:      &rol,
		Password: &pass,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RolAdmin, resp.Rol)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "caja1", Password: "nuevaclave9"})
	assert.NoError(t, err)
}
