package ports

import "time"

// PasswordHasher abstrai o algoritmo de hash de senha
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenClaims são os dados extraídos de um token de sessão válido
type TokenClaims struct {
	UserID    string
	ExpiresAt time.Time
}

// TokenIssuer emite e valida tokens de sessão
type TokenIssuer interface {
	Issue(userID string) (token string, expiresAt time.Time, err error)
	Parse(token string) (*TokenClaims, error)
}
