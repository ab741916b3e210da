package valueobjects

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	domainerrors "github.com/rafabene/votex-backend/internal/domain/errors"
)

// UserID é o identificador estável de um usuário.
//
// O valor é o SHA-256 (hex minúsculo) do username sem espaços nas bordas.
// Nunca deve ser regenerado para um username existente: as páginas de
// votação, posts e votos referenciam este valor.
type UserID string

// DeriveUserID calcula o UserID a partir do username
func DeriveUserID(username string) (UserID, error) {
	normalized := NormalizeUsername(username)
	if normalized == "" {
		return "", domainerrors.ErrInvalidUsername
	}

	sum := sha256.Sum256([]byte(normalized))
	return UserID(hex.EncodeToString(sum[:])), nil
}

// NormalizeUsername remove espaços nas bordas do username
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

func (id UserID) String() string {
	return string(id)
}
