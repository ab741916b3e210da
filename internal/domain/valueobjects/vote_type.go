package valueobjects

import (
	domainerrors "github.com/rafabene/votex-backend/internal/domain/errors"
)

// VoteType é o tipo binário de um voto (1 = positivo, 0 = negativo)
type VoteType int

const (
	VoteDown VoteType = 0
	VoteUp   VoteType = 1
)

// NewVoteType valida o valor recebido do cliente
func NewVoteType(v int) (VoteType, error) {
	switch VoteType(v) {
	case VoteUp, VoteDown:
		return VoteType(v), nil
	default:
		return 0, domainerrors.ErrInvalidVoteType
	}
}

// IsUp indica voto positivo
func (t VoteType) IsUp() bool {
	return t == VoteUp
}

func (t VoteType) String() string {
	if t == VoteUp {
		return "up"
	}
	return "down"
}
