package auth

import (
	"context"
	"testing"

	"studyrooms/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type stubJWT struct{}

func (stubJWT) GenerateToken(userID int64, role string) (string, error) {
	return "token", nil
}

func TestRegister_Success(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "mira@uni-hohenheim.de").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(users, stubJWT{})

	user, token, err := svc.Register(context.Background(), RegisterRequest{
		Email:       "Mira@Uni-Hohenheim.de",
		Password:    "superSecret1",
		DisplayName: "Mira",
	})

	require.NoError(t, err)
	assert.Equal(t, "token", token)
	assert.Equal(t, "mira@uni-hohenheim.de", user.Email)
	assert.Empty(t, user.PasswordHash, "hash must not leave the service")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "mira@uni-hohenheim.de").
		Return(&domain.User{ID: 1, Email: "mira@uni-hohenheim.de"}, nil)

	svc := NewService(users, stubJWT{})

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Email:       "mira@uni-hohenheim.de",
		Password:    "superSecret1",
		DisplayName: "Mira",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("rightPassword"), bcrypt.DefaultCost)
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "mira@uni-hohenheim.de").
		Return(&domain.User{ID: 1, Email: "mira@uni-hohenheim.de", PasswordHash: string(hash)}, nil)

	svc := NewService(users, stubJWT{})

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "mira@uni-hohenheim.de",
		Password: "wrongPassword",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "nobody@uni-hohenheim.de").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(users, stubJWT{})

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@uni-hohenheim.de",
		Password: "whatever1",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
