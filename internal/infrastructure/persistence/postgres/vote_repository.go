package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/votex-backend/internal/domain/errors"
	"github.com/rafabene/votex-backend/internal/domain/repositories"
	"github.com/rafabene/votex-backend/internal/domain/valueobjects"
)

// VoteRepository implementa repositories.VoteRepository
type VoteRepository struct {
	db *gorm.DB
}

// NewVoteRepository cria um novo VoteRepository
func NewVoteRepository(db *gorm.DB) repositories.VoteRepository {
	return &VoteRepository{db: db}
}

type tallyRow struct {
	VoteType int   `gorm:"column:vote_type"`
	Count    int64 `gorm:"column:count"`
}

func (r *VoteRepository) Create(ctx context.Context, vote *entities.Vote) error {
	model := r.toModel(vote)

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", repositories.ErrDuplicateVote, err)
		}
		return err
	}

	vote.CreatedAt = fromMillis(model.CreatedAt)
	vote.UpdatedAt = fromMillis(model.UpdatedAt)
	return nil
}

func (r *VoteRepository) UpdateType(ctx context.Context, id string, voteType valueobjects.VoteType) error {
	db := r.getDB(ctx)
	result := db.Model(&VoteModel{}).
		Where("vote_id = ?", id).
		Updates(map[string]interface{}{
			"vote_type":  int(voteType),
			"updated_at": time.Now().UnixMilli(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrVoteNotFound
	}
	return nil
}

func (r *VoteRepository) FindByID(ctx context.Context, id string) (*entities.Vote, error) {
	return r.first(r.getDB(ctx).Where("vote_id = ?", id))
}

func (r *VoteRepository) FindByPostAndVoter(ctx context.Context, postID, voterUserID string) (*entities.Vote, error) {
	return r.first(r.getDB(ctx).Where("post_id = ? AND voter_user_id = ?", postID, voterUserID))
}

func (r *VoteRepository) ListByPost(ctx context.Context, postID string) ([]*entities.Vote, error) {
	return r.find(r.getDB(ctx).Where("post_id = ?", postID))
}

func (r *VoteRepository) ListByPosts(ctx context.Context, postIDs []string) ([]*entities.Vote, error) {
	if len(postIDs) == 0 {
		return []*entities.Vote{}, nil
	}
	return r.find(r.getDB(ctx).Where("post_id IN ?", postIDs))
}

func (r *VoteRepository) ListByVotePage(ctx context.Context, votePageID string) ([]*entities.Vote, error) {
	return r.find(r.getDB(ctx).Where("vote_page_id = ?", votePageID))
}

// Tally conta os votos do post agrupados por tipo
func (r *VoteRepository) Tally(ctx context.Context, postID string) (entities.Tally, error) {
	var rows []tallyRow

	db := r.getDB(ctx)
	if err := db.Model(&VoteModel{}).
		Select("vote_type, COUNT(*) AS count").
		Where("post_id = ?", postID).
		Group("vote_type").
		Scan(&rows).Error; err != nil {
		return entities.Tally{}, err
	}

	var tally entities.Tally
	for _, row := range rows {
		if valueobjects.VoteType(row.VoteType).IsUp() {
			tally.Upvotes += row.Count
		} else {
			tally.Downvotes += row.Count
		}
	}
	return tally, nil
}

func (r *VoteRepository) Delete(ctx context.Context, id string) error {
	db := r.getDB(ctx)
	return db.Where("vote_id = ?", id).Delete(&VoteModel{}).Error
}

func (r *VoteRepository) first(query *gorm.DB) (*entities.Vote, error) {
	var model VoteModel
	if err := query.First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return r.toEntity(&model), nil
}

func (r *VoteRepository) find(query *gorm.DB) ([]*entities.Vote, error) {
	var models []*VoteModel
	if err := query.Order("created_at, vote_id").Find(&models).Error; err != nil {
		return nil, err
	}

	votes := make([]*entities.Vote, 0, len(models))
	for _, m := range models {
		votes = append(votes, r.toEntity(m))
	}
	return votes, nil
}

func (r *VoteRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Conversores
func (r *VoteRepository) toModel(vote *entities.Vote) *VoteModel {
	return &VoteModel{
		VoteID:      vote.ID,
		PostID:      vote.PostID,
		VoterUserID: vote.VoterUserID,
		VotePageID:  vote.VotePageID,
		VoteType:    int(vote.Type),
		CreatedAt:   toMillis(vote.CreatedAt),
		UpdatedAt:   toMillis(vote.UpdatedAt),
	}
}

func (r *VoteRepository) toEntity(model *VoteModel) *entities.Vote {
	return &entities.Vote{
		ID:          model.VoteID,
		PostID:      model.PostID,
		VoterUserID: model.VoterUserID,
		VotePageID:  model.VotePageID,
		Type:        valueobjects.VoteType(model.VoteType),
		CreatedAt:   fromMillis(model.CreatedAt),
		UpdatedAt:   fromMillis(model.UpdatedAt),
	}
}
