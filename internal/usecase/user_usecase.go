package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 保存済みハッシュと平文の照合。
type PasswordVerifier interface {
	Verify(hash, plain string) bool
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type BcryptPasswordVerifier struct{}

func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// UserUsecaseは会員登録・ログインの処理。
type UserUsecase struct {
	userRepo repo.UserRepository
	hasher   PasswordHasher
	verifier PasswordVerifier
}

// DI
func NewUserUsecase(userRepo repo.UserRepository, hasher PasswordHasher, verifier PasswordVerifier) *UserUsecase {
	return &UserUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		verifier: verifier,
	}
}

// 会員登録の入力
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// 会員登録。roleが空ならCUSTOMERにする。
func (u *UserUsecase) Signup(ctx context.Context, in SignupInput) (model.User, error) {
	role := model.Role(in.Role)
	if strings.TrimSpace(in.Role) == "" {
		role = model.RoleCustomer
	}
	return u.save(ctx, in, role)
}

// 管理者作成。入力のroleに関わらずADMINにする。
func (u *UserUsecase) CreateAdmin(ctx context.Context, in SignupInput) (model.User, error) {
	return u.save(ctx, in, model.RoleAdmin)
}

func (u *UserUsecase) save(ctx context.Context, in SignupInput, role model.Role) (model.User, error) {
	// パスワードをハッシュ化（平文は保存しない）
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "hash error")
	}

	user := &model.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
		Role:     role,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 返すときはpasswordを空にして漏洩防止
	safeUser := *user
	safeUser.Password = ""
	return safeUser, nil
}

// ログイン照合。emailは完全一致（大文字小文字も区別）、パスワードはbcryptで照合。
// 認証失敗はエラーではなくok=falseで返す。
func (u *UserUsecase) Login(ctx context.Context, email, password string) (model.User, bool, error) {
	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return model.User{}, false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return model.User{}, false, nil
	}

	if !u.verifier.Verify(user.Password, password) {
		return model.User{}, false, nil
	}

	safeUser := *user
	safeUser.Password = ""
	return safeUser, true, nil
}
