package entities

import (
	"time"

	"github.com/rafabene/votex-backend/internal/domain/valueobjects"
)

// Vote é o voto de um usuário em um post.
// Existe no máximo um por par (PostID, VoterUserID).
type Vote struct {
	ID          string
	PostID      string
	VoterUserID string
	VotePageID  string
	Type        valueobjects.VoteType
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// VoteWithRelations inclui o post e o eleitor
type VoteWithRelations struct {
	Vote
	Post  *Post
	Voter *User
}

// Tally é a contagem de votos de um post
type Tally struct {
	Upvotes   int64
	Downvotes int64
}

// Total retorna a soma de votos
func (t Tally) Total() int64 {
	return t.Upvotes + t.Downvotes
}

// Add contabiliza um voto
func (t *Tally) Add(voteType valueobjects.VoteType) {
	if voteType.IsUp() {
		t.Upvotes++
		return
	}
	t.Downvotes++
}

// TallyOf calcula a contagem a partir de uma lista de votos
func TallyOf(votes []*Vote) Tally {
	var t Tally
	for _, v := range votes {
		t.Add(v.Type)
	}
	return t
}

// CastOutcome descreve o efeito de um voto lançado
type CastOutcome string

const (
	CastCreated CastOutcome = "created"
	CastUpdated CastOutcome = "updated"
	CastRemoved CastOutcome = "removed"
)

// Decide aplica a máquina de estados de votação.
//
//	sem voto          -> created
//	mesmo tipo        -> removed (toggle-off)
//	tipo diferente    -> updated
func Decide(existing *Vote, requested valueobjects.VoteType) CastOutcome {
	switch {
	case existing == nil:
		return CastCreated
	case existing.Type == requested:
		return CastRemoved
	default:
		return CastUpdated
	}
}
