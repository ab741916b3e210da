package entities

import (
	"errors"
	"time"
)

// Post é uma sugestão publicada em uma página de votação
type Post struct {
	ID          string
	VotePageID  string
	Title       string
	Description string
	Category    string
	Status      string
	OwnerUserID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Update altera os campos editáveis. Página e dono não mudam.
func (p *Post) Update(title, description, status, category string) {
	p.Title = title
	p.Description = description
	p.Status = status
	p.Category = category
	p.UpdatedAt = time.Now().UTC()
}

// Validate valida regras de negócio da entidade Post
func (p *Post) Validate() error {
	if p.ID == "" {
		return errors.New("post id is required")
	}

	if p.VotePageID == "" {
		return errors.New("vote page is required")
	}

	if p.Title == "" {
		return errors.New("title is required")
	}

	if p.OwnerUserID == "" {
		return errors.New("owner is required")
	}

	return nil
}

// PostWithVotes é um post com votos, autor e contagem
type PostWithVotes struct {
	Post
	Author *User
	Votes  []*Vote
	Tally  Tally
}

// PostSort define a ordenação de posts numa listagem
type PostSort string

const (
	SortNewest        PostSort = "newest"
	SortMostVotes     PostSort = "mostVotes"
	SortMostUpvotes   PostSort = "mostUpvotes"
	SortMostDownvotes PostSort = "mostDownvotes"
)

// ParsePostSort converte o valor da query string, usando SortNewest como padrão
func ParsePostSort(s string) PostSort {
	switch PostSort(s) {
	case SortMostVotes, SortMostUpvotes, SortMostDownvotes:
		return PostSort(s)
	default:
		return SortNewest
	}
}
