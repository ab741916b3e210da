package dto

import (
	"time"

	"github.com/rafabene/votex-backend/internal/domain/entities"
)

// UpsertPostRequest cria um post ou, com postId existente, o atualiza.
// createdBy é ignorado: o autor é sempre o usuário autenticado.
type UpsertPostRequest struct {
	PostID      string `json:"postId" binding:"omitempty,max=64"`
	VotePageID  string `json:"votePageId" binding:"omitempty,slug,max=128"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=5000"`
	Status      string `json:"status" binding:"max=50"`
	Category    string `json:"category" binding:"max=50"`
	CreatedBy   string `json:"createdBy"`
}

// PostResponse representa um post; votos, autor e contagem só aparecem nas listagens
type PostResponse struct {
	PostID      string         `json:"postId"`
	VotePageID  string         `json:"votePageId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	Category    string         `json:"category"`
	CreatedBy   string         `json:"createdBy"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Creator     *UserResponse  `json:"creator,omitempty"`
	Votes       []VoteResponse `json:"votes,omitempty"`
	Upvotes     *int64         `json:"upvotes,omitempty"`
	Downvotes   *int64         `json:"downvotes,omitempty"`
}

func ToPostResponse(post *entities.Post) PostResponse {
	return PostResponse{
		PostID:      post.ID,
		VotePageID:  post.VotePageID,
		Title:       post.Title,
		Description: post.Description,
		Status:      post.Status,
		Category:    post.Category,
		CreatedBy:   post.OwnerUserID,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

func ToPostWithVotesResponse(post *entities.PostWithVotes) PostResponse {
	r := ToPostResponse(&post.Post)
	r.Creator = toUserResponsePtr(post.Author)
	r.Votes = ToVoteResponses(post.Votes)
	if r.Votes == nil {
		r.Votes = []VoteResponse{}
	}
	up, down := post.Tally.Upvotes, post.Tally.Downvotes
	r.Upvotes = &up
	r.Downvotes = &down
	return r
}

func ToPostWithVotesResponses(posts []*entities.PostWithVotes) []PostResponse {
	responses := make([]PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = ToPostWithVotesResponse(post)
	}
	return responses
}
