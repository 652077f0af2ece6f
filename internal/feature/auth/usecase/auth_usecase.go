package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"prep_tracker/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 6
	maxPasswordLength = 128
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用側（usecase）で定義します。
type UserRepository interface {
	// Create は新しいユーザーを保存します。ユーザー名が重複する場合はErrUsernameTakenを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername は該当ユーザーがいない場合ErrUserNotFoundを返します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID は該当ユーザーがいない場合ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// JWTGenerator issues signed tokens.
type JWTGenerator interface {
	GenerateToken(userID uint, username string) (string, error)
}

// Session is what a successful register or login hands back to the client.
type Session struct {
	Token string
	User  *entity.User
}

// authUsecase は認証のビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	jwtGenerator JWTGenerator
	revoker      TokenRevoker
	cost         int
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, jwtGenerator JWTGenerator, revoker TokenRevoker) *authUsecase {
	return &authUsecase{
		users:        users,
		jwtGenerator: jwtGenerator,
		revoker:      revoker,
		cost:         bcrypt.DefaultCost,
	}
}

func validateCredentials(username, password string) error {
	if n := utf8.RuneCountInString(username); n < minUsernameLength || n > maxUsernameLength {
		return ErrInvalidUsername
	}
	if n := len(password); n < minPasswordLength || n > maxPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}

// Register はパスワードをハッシュ化してユーザーを作成し、そのままサインインさせます。
func (u *authUsecase) Register(ctx context.Context, username, password string) (*Session, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	_, err := u.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, ErrUsernameTaken
	case !errors.Is(err, ErrUserNotFound):
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Username: username, Password: string(hashed)}
	// 同名の同時登録はユニークインデックスで検出されます。
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return u.issue(user)
}

// Login はユーザーを認証し、成功時に署名済みトークンを返します。
// 存在しないユーザー名でもbcryptを実行し、応答時間から登録の有無が分からないようにします。
func (u *authUsecase) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // dummy hash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issue(user)
}

// Logout はtokenIDのトークンを有効期限まで失効させます。
func (u *authUsecase) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if u.revoker == nil {
		return nil
	}
	if err := u.revoker.Revoke(ctx, tokenID, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// Me returns the user behind an authenticated request.
func (u *authUsecase) Me(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

func (u *authUsecase) issue(user *entity.User) (*Session, error) {
	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &Session{Token: token, User: user}, nil
}
