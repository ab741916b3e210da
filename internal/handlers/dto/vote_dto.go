package dto

import (
	"time"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	"github.com/rafabene/votex-backend/internal/services"
)

// CastVoteRequest lança um voto. userId é ignorado em favor do token.
type CastVoteRequest struct {
	PostID     string `json:"postId" binding:"required,max=64"`
	UserID     string `json:"userId"`
	VotePageID string `json:"votePageId" binding:"omitempty,slug,max=128"`
	VoteType   *int   `json:"voteType" binding:"required,votetype"`
}

// VoteResponse representa um voto, opcionalmente com post e eleitor
type VoteResponse struct {
	ID         string        `json:"id"`
	PostID     string        `json:"postId"`
	UserID     string        `json:"userId"`
	VotePageID string        `json:"votePageId"`
	VoteType   int           `json:"voteType"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
	Post       *PostResponse `json:"post,omitempty"`
	Voter      *UserResponse `json:"voter,omitempty"`
}

// TallyResponse é a contagem de votos de um post
type TallyResponse struct {
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
}

// CastVoteResponse descreve o efeito do voto; em "removed" o voto é o que foi retirado
type CastVoteResponse struct {
	Outcome string       `json:"outcome"`
	Vote    VoteResponse `json:"vote"`
	TallyResponse
}

func ToVoteResponse(vote *entities.Vote) VoteResponse {
	return VoteResponse{
		ID:         vote.ID,
		PostID:     vote.PostID,
		UserID:     vote.VoterUserID,
		VotePageID: vote.VotePageID,
		VoteType:   int(vote.Type),
		CreatedAt:  vote.CreatedAt,
		UpdatedAt:  vote.UpdatedAt,
	}
}

func ToVoteResponses(votes []*entities.Vote) []VoteResponse {
	if votes == nil {
		return nil
	}
	responses := make([]VoteResponse, len(votes))
	for i, vote := range votes {
		responses[i] = ToVoteResponse(vote)
	}
	return responses
}

func ToVoteWithRelationsResponses(votes []*entities.VoteWithRelations) []VoteResponse {
	responses := make([]VoteResponse, len(votes))
	for i, vote := range votes {
		r := ToVoteResponse(&vote.Vote)
		if vote.Post != nil {
			post := ToPostResponse(vote.Post)
			r.Post = &post
		}
		r.Voter = toUserResponsePtr(vote.Voter)
		responses[i] = r
	}
	return responses
}

func ToTallyResponse(tally entities.Tally) TallyResponse {
	return TallyResponse{Upvotes: tally.Upvotes, Downvotes: tally.Downvotes}
}

func ToCastVoteResponse(result *services.CastResult) CastVoteResponse {
	return CastVoteResponse{
		Outcome:       string(result.Outcome),
		Vote:          ToVoteResponse(result.Vote),
		TallyResponse: ToTallyResponse(result.Tally),
	}
}
