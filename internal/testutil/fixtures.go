package testutil

import (
	"context"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	"github.com/rafabene/votex-backend/internal/domain/repositories"
	"github.com/rafabene/votex-backend/internal/domain/valueobjects"
)

// MustUser cria e persiste um usuário com hash de senha fictício
func MustUser(t TB, repo repositories.UserRepository, username, email string) *entities.User {
	t.Helper()

	addr, err := valueobjects.NewEmail(email)
	if err != nil {
		t.Fatalf("invalid email %q: %v", email, err)
	}

	user, err := entities.NewUser(username, addr, "hash")
	if err != nil {
		t.Fatalf("failed to build user: %v", err)
	}

	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}
