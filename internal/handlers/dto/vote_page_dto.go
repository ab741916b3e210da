package dto

import (
	"time"

	"github.com/rafabene/votex-backend/internal/domain/entities"
)

// SaveVotePageRequest cria (ou atualiza, se o solicitante for o dono) uma página
type SaveVotePageRequest struct {
	VotePageID string   `json:"votePageId" binding:"omitempty,slug,max=128"`
	Name       string   `json:"name" binding:"required,max=200"`
	Users      []string `json:"users" binding:"omitempty,dive,required"`
}

// UpdateVotePageRequest substitui nome e membros de uma página
type UpdateVotePageRequest struct {
	Name  string   `json:"name" binding:"required,max=200"`
	Users []string `json:"users" binding:"omitempty,dive,required"`
}

// VotePageResponse representa uma página de votação
type VotePageResponse struct {
	VotePageID string    `json:"votePageId"`
	Name       string    `json:"name"`
	CreatedBy  string    `json:"createdBy"`
	Users      []string  `json:"users"`
	CreatedAt  time.Time `json:"createdAt"`
}

// VotePageSummaryResponse inclui as contagens exibidas na listagem
type VotePageSummaryResponse struct {
	VotePageResponse
	PostsCount int64 `json:"postsCount"`
	VotesCount int64 `json:"votesCount"`
}

// VotePageDetailsResponse é a página com posts, votos e dono
type VotePageDetailsResponse struct {
	VotePageResponse
	Owner      *UserResponse  `json:"owner"`
	Posts      []PostResponse `json:"posts"`
	Votes      []VoteResponse `json:"votes"`
	PostsCount int            `json:"postsCount"`
	VotesCount int            `json:"votesCount"`
}

func ToVotePageResponse(page *entities.VotePage) VotePageResponse {
	users := page.MemberUserIDs
	if users == nil {
		users = []string{}
	}
	return VotePageResponse{
		VotePageID: page.ID,
		Name:       page.Name,
		CreatedBy:  page.OwnerUserID,
		Users:      users,
		CreatedAt:  page.CreatedAt,
	}
}

func ToVotePageSummaryResponses(pages []*entities.VotePageSummary) []VotePageSummaryResponse {
	responses := make([]VotePageSummaryResponse, len(pages))
	for i, page := range pages {
		responses[i] = VotePageSummaryResponse{
			VotePageResponse: ToVotePageResponse(&page.VotePage),
			PostsCount:       page.PostsCount,
			VotesCount:       page.VotesCount,
		}
	}
	return responses
}

func ToVotePageDetailsResponse(details *entities.VotePageDetails) VotePageDetailsResponse {
	return VotePageDetailsResponse{
		VotePageResponse: ToVotePageResponse(&details.VotePage),
		Owner:            toUserResponsePtr(details.Owner),
		Posts:            ToPostWithVotesResponses(details.Posts),
		Votes:            ToVoteWithRelationsResponses(details.Votes),
		PostsCount:       len(details.Posts),
		VotesCount:       len(details.Votes),
	}
}
