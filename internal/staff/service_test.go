package staff

import (
	"context"
	"testing"
	"time"

	"eventcraft/internal/shared/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateAccount(ctx context.Context, account *Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *mockRepository) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	args := m.Called(ctx, email)
	if account := args.Get(0); account != nil {
		return account.(*Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) GetAccountByID(ctx context.Context, id string) (*Account, error) {
	args := m.Called(ctx, id)
	if account := args.Get(0); account != nil {
		return account.(*Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) UpdateAccountPassword(ctx context.Context, accountID string, hashedPassword string) error {
	args := m.Called(ctx, accountID, hashedPassword)
	return args.Error(0)
}

func (m *mockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
}

func testAccount(password string) *Account {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &Account{
		ID:        uuid.New(),
		FirstName: "Maria",
		LastName:  "Santos",
		Email:     "maria@example.com",
		Password:  string(hashed),
		Role:      RoleStaff,
	}
}

func TestLogin_TokenRoundTrip(t *testing.T) {
	account := testAccount("correct-horse")
	repo := new(mockRepository)
	repo.On("GetAccountByEmail", mock.Anything, account.Email).Return(account, nil)

	service := NewService(repo, testConfig())
	resp, err := service.Login(context.Background(), &LoginRequest{
		Email:    account.Email,
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)

	claims, err := service.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, account.ID.String(), claims.UserID)
	assert.Equal(t, account.Email, claims.Email)
	assert.Equal(t, string(RoleStaff), claims.Role)
	assert.Equal(t, "access", claims.Type)

	claims, err = service.ValidateToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.Type)
}

func TestLogin_WrongPassword(t *testing.T) {
	account := testAccount("correct-horse")
	repo := new(mockRepository)
	repo.On("GetAccountByEmail", mock.Anything, account.Email).Return(account, nil)

	service := NewService(repo, testConfig())
	_, err := service.Login(context.Background(), &LoginRequest{
		Email:    account.Email,
		Password: "battery-staple",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownAccount(t *testing.T) {
	repo := new(mockRepository)
	repo.On("GetAccountByEmail", mock.Anything, "nobody@example.com").
		Return(nil, ErrAccountNotFound)

	service := NewService(repo, testConfig())
	_, err := service.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	repo := new(mockRepository)
	repo.On("EmailExists", mock.Anything, "paolo@example.com").Return(false, nil)
	repo.On("CreateAccount", mock.Anything, mock.MatchedBy(func(account *Account) bool {
		return account.Password != "plaintext" &&
			bcrypt.CompareHashAndPassword([]byte(account.Password), []byte("plaintext")) == nil &&
			account.Role == RoleStaff
	})).Return(nil)

	service := NewService(repo, testConfig())
	resp, err := service.Register(context.Background(), &RegisterRequest{
		FirstName: "Paolo",
		LastName:  "Reyes",
		Email:     "paolo@example.com",
		Password:  "plaintext",
		Role:      "janitor", // not a valid role
	})
	require.NoError(t, err)
	assert.Equal(t, string(RoleStaff), resp.Account.Role)
	repo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(mockRepository)
	repo.On("EmailExists", mock.Anything, "maria@example.com").Return(true, nil)

	service := NewService(repo, testConfig())
	_, err := service.Register(context.Background(), &RegisterRequest{
		Email:    "maria@example.com",
		Password: "pw",
	})
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	account := testAccount("pw")
	repo := new(mockRepository)
	repo.On("GetAccountByEmail", mock.Anything, account.Email).Return(account, nil)

	service := NewService(repo, testConfig())
	resp, err := service.Login(context.Background(), &LoginRequest{
		Email:    account.Email,
		Password: "pw",
	})
	require.NoError(t, err)

	_, err = service.RefreshToken(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshToken_IssuesNewPair(t *testing.T) {
	account := testAccount("pw")
	repo := new(mockRepository)
	repo.On("GetAccountByEmail", mock.Anything, account.Email).Return(account, nil)
	repo.On("GetAccountByID", mock.Anything, account.ID.String()).Return(account, nil)

	service := NewService(repo, testConfig())
	resp, err := service.Login(context.Background(), &LoginRequest{
		Email:    account.Email,
		Password: "pw",
	})
	require.NoError(t, err)

	pair, err := service.RefreshToken(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	claims, err := service.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, account.ID.String(), claims.UserID)
}

func TestValidateToken_GarbageRejected(t *testing.T) {
	service := NewService(new(mockRepository), testConfig())

	_, err := service.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = service.ValidateToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
