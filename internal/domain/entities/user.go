package entities

import (
	"errors"
	"time"

	"github.com/rafabene/votex-backend/internal/domain/valueobjects"
)

var (
	ErrInvalidUserData = errors.New("invalid user data")
)

// User representa um usuário do sistema
type User struct {
	ID           valueobjects.UserID
	Username     string
	Email        valueobjects.Email
	PasswordHash string
	AvatarPath   *string
	CreatedAt    time.Time
}

// NewUser cria um usuário derivando o ID a partir do username
func NewUser(username string, email valueobjects.Email, passwordHash string) (*User, error) {
	id, err := valueobjects.DeriveUserID(username)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           id,
		Username:     valueobjects.NormalizeUsername(username),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// SetAvatar atualiza o caminho do avatar
func (u *User) SetAvatar(path string) {
	u.AvatarPath = &path
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.ID == "" {
		return errors.New("id is required")
	}

	if u.Email.String() == "" {
		return errors.New("email is required")
	}

	if u.Username == "" {
		return errors.New("username is required")
	}

	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}

	return nil
}
