package usecase

import (
	"context"
	"testing"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func authTestConfig() config.Config {
	return config.Config{JWTSecret: "test_secret"}
}

func TestAuthUsecase_Signup_MissingFields(t *testing.T) {
	uc := NewAuthUsecase(authTestConfig(), new(AdminUserRepoMock))

	_, err := uc.Signup(context.Background(), SignupInput{Email: "a@example.com"})
	assertErrContains(t, err, "required")
}

func TestAuthUsecase_Signup_InvalidEmail(t *testing.T) {
	uc := NewAuthUsecase(authTestConfig(), new(AdminUserRepoMock))

	_, err := uc.Signup(context.Background(), SignupInput{Name: "A", Email: "not-an-email", Password: "secret1"})
	assertErrContains(t, err, "invalid email")
}

func TestAuthUsecase_Signup_DuplicateEmail(t *testing.T) {
	users := new(AdminUserRepoMock)
	users.On("FindByEmail", mock.Anything, "a@example.com").Return(model.AdminUser{ID: 1}, nil)

	uc := NewAuthUsecase(authTestConfig(), users)

	_, err := uc.Signup(context.Background(), SignupInput{Name: "A", Email: "A@Example.com", Password: "secret1"})
	assertErrContains(t, err, "already registered")
}

func TestAuthUsecase_Signup_DefaultsToUserRole(t *testing.T) {
	users := new(AdminUserRepoMock)
	users.On("FindByEmail", mock.Anything, "a@example.com").Return(model.AdminUser{}, repo.ErrNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u model.AdminUser) bool {
		if u.Role != model.RoleUser || u.Email != "a@example.com" {
			return false
		}
		//平文は保存されない
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) == nil
	})).Return(model.AdminUser{ID: 5, Name: "A", Email: "a@example.com", Role: model.RoleUser}, nil)

	uc := NewAuthUsecase(authTestConfig(), users)

	out, err := uc.Signup(context.Background(), SignupInput{Name: "A", Email: "a@example.com", Password: "secret1"})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), out.ID)
	assert.Equal(t, "USER", out.Role)
	users.AssertExpectations(t)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	users := new(AdminUserRepoMock)
	users.On("FindByEmail", mock.Anything, "a@example.com").
		Return(model.AdminUser{ID: 1, Email: "a@example.com", PasswordHash: string(hash)}, nil)

	uc := NewAuthUsecase(authTestConfig(), users)

	_, err := uc.Login(context.Background(), LoginInput{Email: "a@example.com", Password: "wrong"})
	assertErrContains(t, err, "invalid credentials")
}

func TestAuthUsecase_Login_UnknownEmailSameError(t *testing.T) {
	users := new(AdminUserRepoMock)
	users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(model.AdminUser{}, repo.ErrNotFound)

	uc := NewAuthUsecase(authTestConfig(), users)

	_, err := uc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever"})
	assertErrContains(t, err, "invalid credentials")
}

func TestAuthUsecase_Login_IssuesVerifiableToken(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	users := new(AdminUserRepoMock)
	users.On("FindByEmail", mock.Anything, "staff@vitalimes.in").
		Return(model.AdminUser{ID: 3, Name: "Staff", Email: "staff@vitalimes.in", PasswordHash: string(hash), Role: model.RoleStaff}, nil)

	uc := NewAuthUsecase(authTestConfig(), users)

	out, err := uc.Login(context.Background(), LoginInput{Email: "staff@vitalimes.in", Password: "correct"})
	assert.NoError(t, err)
	assert.Equal(t, "STAFF", out.User.Role)

	token, err := jwt.Parse(out.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test_secret"), nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(3), claims["id"])
	assert.Equal(t, "STAFF", claims["role"])
	assert.Equal(t, "staff@vitalimes.in", claims["email"])
}
