package services

import (
	"context"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	"github.com/rafabene/votex-backend/internal/domain/repositories"
)

// postAssembler carrega votos e autores de uma lista de posts
type postAssembler struct {
	userRepo repositories.UserRepository
	voteRepo repositories.VoteRepository
}

func (a *postAssembler) usersByID(ctx context.Context, ids []string) (map[string]*entities.User, error) {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	users, err := a.userRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entities.User, len(users))
	for _, u := range users {
		byID[u.ID.String()] = u
	}
	return byID, nil
}

// withVotes monta os posts com votos, autor e contagem
func (a *postAssembler) withVotes(ctx context.Context, posts []*entities.Post) ([]*entities.PostWithVotes, error) {
	postIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}

	votes, err := a.voteRepo.ListByPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	votesByPost := make(map[string][]*entities.Vote, len(posts))
	for _, v := range votes {
		votesByPost[v.PostID] = append(votesByPost[v.PostID], v)
	}

	authorIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		authorIDs = append(authorIDs, p.OwnerUserID)
	}
	authors, err := a.usersByID(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	result := make([]*entities.PostWithVotes, 0, len(posts))
	for _, p := range posts {
		postVotes := votesByPost[p.ID]
		if postVotes == nil {
			postVotes = []*entities.Vote{}
		}
		result = append(result, &entities.PostWithVotes{
			Post:   *p,
			Author: authors[p.OwnerUserID],
			Votes:  postVotes,
			Tally:  entities.TallyOf(postVotes),
		})
	}
	return result, nil
}

// withRelations anexa post e eleitor a cada voto
func (a *postAssembler) withRelations(ctx context.Context, votes []*entities.Vote, posts map[string]*entities.Post) ([]*entities.VoteWithRelations, error) {
	voterIDs := make([]string, 0, len(votes))
	for _, v := range votes {
		voterIDs = append(voterIDs, v.VoterUserID)
	}
	voters, err := a.usersByID(ctx, voterIDs)
	if err != nil {
		return nil, err
	}

	result := make([]*entities.VoteWithRelations, 0, len(votes))
	for _, v := range votes {
		result = append(result, &entities.VoteWithRelations{
			Vote:  *v,
			Post:  posts[v.PostID],
			Voter: voters[v.VoterUserID],
		})
	}
	return result, nil
}
