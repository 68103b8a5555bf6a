package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aglamorousfortuneteller/crm-api/internal/application/auth"
	"github.com/Aglamorousfortuneteller/crm-api/internal/application/dto"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/entity"
	pkgjwt "github.com/Aglamorousfortuneteller/crm-api/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) AttachToCompany(userID, companyID string, isOwner bool) error {
	u := r.users[userID]
	u.CompanyID = companyID
	u.IsOwner = isOwner
	return nil
}

func (r *fakeUserRepo) DetachByCompany(companyID string) error { return nil }

var jwtCfg = auth.JWTConfig{
	Secret:     "test-secret-key-for-unit-tests",
	ExpMinutes: 60,
	Issuer:     "crm-api-test",
}

func TestRegisterUser_NaceSinEmpresa(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, jwtCfg)

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@example.com",
		Username: "ana",
		Password: "secreto123",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, "ana@example.com", out.Email)
	assert.Empty(t, out.CompanyID, "un usuario nuevo no pertenece a ninguna empresa")
	assert.False(t, out.IsOwner)

	// El hash nunca viaja en el DTO, y el password no se guarda en claro.
	stored, _ := repo.GetByID(out.ID)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, jwtCfg)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@example.com", Username: "ana", Password: "x1"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@example.com", Username: "ana2", Password: "x2"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_CamposVacios(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), jwtCfg)

	for _, in := range []dto.RegisterRequest{
		{Username: "ana", Password: "x"},
		{Email: "a@b.c", Password: "x"},
		{Email: "a@b.c", Username: "ana"},
	} {
		_, err := uc.RegisterUser(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestLogin_DevuelveTokenConClaims(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, jwtCfg)

	reg, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@example.com", Username: "ana", Password: "secreto123"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, reg.ID, out.User.ID)

	userID, companyID, isOwner, err := pkgjwt.Parse(jwtCfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)
	assert.Empty(t, companyID)
	assert.False(t, isOwner)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, jwtCfg)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@example.com", Username: "ana", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "otro"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), jwtCfg)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
