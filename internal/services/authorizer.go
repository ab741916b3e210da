package services

import (
	"github.com/rafabene/votex-backend/internal/domain/entities"
	"github.com/rafabene/votex-backend/internal/domain/errors"
)

// Authorizer concentra as regras de acesso a páginas, posts, votos e
// comentários. Todos os métodos retornam errors.ErrForbidden quando negam.
type Authorizer struct{}

// NewAuthorizer cria um novo Authorizer
func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

// RequireSelf exige que o usuário autenticado seja o dono do recurso de usuário
func (a *Authorizer) RequireSelf(requesterUserID, userID string) error {
	if requesterUserID == "" || requesterUserID != userID {
		return errors.ErrForbidden
	}
	return nil
}

// CanViewVotePage exige que o usuário seja membro (ou dono) da página
func (a *Authorizer) CanViewVotePage(userID string, page *entities.VotePage) error {
	if page == nil || !page.IsMember(userID) {
		return errors.ErrForbidden
	}
	return nil
}

// CanManageVotePage exige que o usuário seja o dono da página
func (a *Authorizer) CanManageVotePage(userID string, page *entities.VotePage) error {
	if page == nil || !page.IsOwner(userID) {
		return errors.ErrForbidden
	}
	return nil
}

// CanEditPost permite ao autor do post ou ao dono da página.
// page pode ser nil quando a página já não existe.
func (a *Authorizer) CanEditPost(userID string, post *entities.Post, page *entities.VotePage) error {
	if post.OwnerUserID == userID {
		return nil
	}
	if page != nil && page.IsOwner(userID) {
		return nil
	}
	return errors.ErrForbidden
}

// CanDeleteVote permite ao eleitor ou ao dono da página
func (a *Authorizer) CanDeleteVote(userID string, vote *entities.Vote, page *entities.VotePage) error {
	if vote.VoterUserID == userID {
		return nil
	}
	if page != nil && page.IsOwner(userID) {
		return nil
	}
	return errors.ErrForbidden
}

// CanEditComment permite apenas ao autor
func (a *Authorizer) CanEditComment(userID string, comment *entities.Comment) error {
	if comment.OwnerUserID != userID {
		return errors.ErrForbidden
	}
	return nil
}
