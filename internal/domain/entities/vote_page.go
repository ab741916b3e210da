package entities

import (
	"errors"
	"time"
)

// TutorialPageName é o nome da página criada no registro
const TutorialPageName = "Tutorial"

// VotePage representa um quadro de sugestões.
// O dono é sempre membro.
type VotePage struct {
	ID            string
	Name          string
	OwnerUserID   string
	MemberUserIDs []string
	CreatedAt     time.Time
}

// NewVotePage cria uma página garantindo que o dono esteja entre os membros
func NewVotePage(id, name, ownerUserID string, members []string) (*VotePage, error) {
	page := &VotePage{
		ID:          id,
		Name:        name,
		OwnerUserID: ownerUserID,
		CreatedAt:   time.Now().UTC(),
	}
	page.SetMembers(members)

	if err := page.Validate(); err != nil {
		return nil, err
	}
	return page, nil
}

// NewTutorialPage cria a página padrão de um usuário recém-registrado
func NewTutorialPage(ownerUserID string) *VotePage {
	return &VotePage{
		ID:            TutorialPageID(ownerUserID),
		Name:          TutorialPageName,
		OwnerUserID:   ownerUserID,
		MemberUserIDs: []string{ownerUserID},
		CreatedAt:     time.Now().UTC(),
	}
}

// TutorialPageID retorna o ID da página tutorial de um usuário
func TutorialPageID(ownerUserID string) string {
	return ownerUserID + "-tutorial"
}

// SetMembers substitui o conjunto de membros, removendo duplicatas e
// reinserindo o dono na primeira posição.
func (p *VotePage) SetMembers(members []string) {
	seen := map[string]bool{p.OwnerUserID: true}
	result := []string{p.OwnerUserID}

	for _, m := range members {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		result = append(result, m)
	}

	p.MemberUserIDs = result
}

// Rename altera o nome da página
func (p *VotePage) Rename(name string) {
	p.Name = name
}

// IsOwner verifica se o usuário é o dono
func (p *VotePage) IsOwner(userID string) bool {
	return p.OwnerUserID == userID
}

// IsMember verifica se o usuário tem acesso à página
func (p *VotePage) IsMember(userID string) bool {
	if p.IsOwner(userID) {
		return true
	}
	for _, m := range p.MemberUserIDs {
		if m == userID {
			return true
		}
	}
	return false
}

// Validate valida regras de negócio da entidade VotePage
func (p *VotePage) Validate() error {
	if p.ID == "" {
		return errors.New("vote page id is required")
	}

	if p.Name == "" {
		return errors.New("name is required")
	}

	if p.OwnerUserID == "" {
		return errors.New("owner is required")
	}

	return nil
}

// VotePageSummary é uma página com contagens agregadas
type VotePageSummary struct {
	VotePage
	PostsCount int64
	VotesCount int64
}

// VotePageDetails é uma página com todos os filhos carregados
type VotePageDetails struct {
	VotePage
	Owner *User
	Posts []*PostWithVotes
	Votes []*VoteWithRelations
}
