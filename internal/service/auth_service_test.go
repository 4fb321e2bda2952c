package service

import (
	"context"
	"testing"

	"github.com/4ndreams/GPS-sub001/internal/config"
	"github.com/4ndreams/GPS-sub001/internal/dto"
	"github.com/4ndreams/GPS-sub001/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsuarioRepo struct {
	usuarios map[uint]*model.Usuario
	seq      uint
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uint]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	for _, existing := range r.usuarios {
		if existing.Email == u.Email {
			return errNotFound
		}
	}
	r.seq++
	u.ID = r.seq
	cp := *u
	r.usuarios[u.ID] = &cp
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uint) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email && u.Activo {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	if _, ok := r.usuarios[u.ID]; !ok {
		return errNotFound
	}
	cp := *u
	r.usuarios[u.ID] = &cp
	return nil
}

func (r *stubUsuarioRepo) Desactivar(_ context.Context, id uint) error {
	u, ok := r.usuarios[id]
	if !ok {
		return errNotFound
	}
	u.Activo = false
	return nil
}

func newAuthFixture(t *testing.T) (*stubUsuarioRepo, AuthService) {
	t.Helper()
	repo := newStubUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return repo, NewAuthService(repo, cfg)
}

func TestLoginYRefresh(t *testing.T) {
	_, svc := newAuthFixture(t)

	_, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Email:    "fabrica@terplac.cl",
		Nombre:   "Jefa de Fábrica",
		Password: "superSecreta1",
		Rol:      "fabrica",
	})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "fabrica@terplac.cl",
		Password: "superSecreta1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.NotEmpty(t, login.RefreshToken)
	assert.Equal(t, "fabrica", login.User.Rol)
	assert.Equal(t, 8*3600, login.ExpiresIn)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.User.ID, refreshed.User.ID)
}

func TestLoginPasswordIncorrecta(t *testing.T) {
	_, svc := newAuthFixture(t)

	_, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Email:    "tienda@terplac.cl",
		Nombre:   "Vendedor",
		Password: "superSecreta1",
		Rol:      "tienda",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "tienda@terplac.cl",
		Password: "equivocada",
	})
	require.Error(t, err)
	assert.Equal(t, "credenciales invalidas", err.Error())
}

func TestRefreshUsuarioDesactivado(t *testing.T) {
	repo, svc := newAuthFixture(t)

	u, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Email:    "admin@terplac.cl",
		Nombre:   "Admin",
		Password: "superSecreta1",
		Rol:      "administrador",
	})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@terplac.cl",
		Password: "superSecreta1",
	})
	require.NoError(t, err)

	require.NoError(t, repo.Desactivar(context.Background(), u.ID))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	require.Error(t, err)
}

func TestRefreshTokenInvalido(t *testing.T) {
	_, svc := newAuthFixture(t)

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	require.Error(t, err)
}
