package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/votex-backend/internal/domain/errors"
	"github.com/rafabene/votex-backend/internal/domain/repositories"
)

// VotePageRepository implementa repositories.VotePageRepository.
// Os membros ficam em vote_page_members, na ordem em que foram informados.
type VotePageRepository struct {
	db *gorm.DB
}

// NewVotePageRepository cria um novo VotePageRepository
func NewVotePageRepository(db *gorm.DB) repositories.VotePageRepository {
	return &VotePageRepository{db: db}
}

// votePageSummaryRow recebe o resultado da listagem com contagens
type votePageSummaryRow struct {
	VotePageModel
	PostsCount int64 `gorm:"column:posts_count"`
	VotesCount int64 `gorm:"column:votes_count"`
}

func (r *VotePageRepository) Create(ctx context.Context, page *entities.VotePage) error {
	model := r.toModel(page)

	err := inTransaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return r.replaceMembers(tx, page.ID, page.MemberUserIDs)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrVotePageIDTaken
		}
		return err
	}

	page.CreatedAt = fromMillis(model.CreatedAt)
	return nil
}

func (r *VotePageRepository) Update(ctx context.Context, page *entities.VotePage) error {
	return inTransaction(ctx, r.db, func(tx *gorm.DB) error {
		result := tx.Model(&VotePageModel{}).
			Where("vote_page_id = ?", page.ID).
			Update("name", page.Name)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrVotePageNotFound
		}
		return r.replaceMembers(tx, page.ID, page.MemberUserIDs)
	})
}

func (r *VotePageRepository) FindByID(ctx context.Context, id string) (*entities.VotePage, error) {
	var model VotePageModel

	db := r.getDB(ctx)
	if err := db.Where("vote_page_id = ?", id).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	members, err := r.membersOf(db, []string{id})
	if err != nil {
		return nil, err
	}

	return r.toEntity(&model, members[id]), nil
}

func (r *VotePageRepository) ListAccessibleTo(ctx context.Context, userID string) ([]*entities.VotePageSummary, error) {
	var rows []votePageSummaryRow

	db := r.getDB(ctx)
	memberOf := db.Model(&VotePageMemberModel{}).Select("vote_page_id").Where("user_id = ?", userID)

	err := db.Table("vote_pages AS vp").
		Select(`vp.*,
			(SELECT COUNT(*) FROM posts p WHERE p.vote_page_id = vp.vote_page_id) AS posts_count,
			(SELECT COUNT(*) FROM votes v WHERE v.vote_page_id = vp.vote_page_id) AS votes_count`).
		Where("vp.owner_user_id = ? OR vp.vote_page_id IN (?)", userID, memberOf).
		Order("vp.created_at, vp.vote_page_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.VotePageID)
	}

	members, err := r.membersOf(db, ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]*entities.VotePageSummary, 0, len(rows))
	for i := range rows {
		page := r.toEntity(&rows[i].VotePageModel, members[rows[i].VotePageID])
		summaries = append(summaries, &entities.VotePageSummary{
			VotePage:   *page,
			PostsCount: rows[i].PostsCount,
			VotesCount: rows[i].VotesCount,
		})
	}

	return summaries, nil
}

// Delete remove a página junto com membros, posts e votos
func (r *VotePageRepository) Delete(ctx context.Context, id string) error {
	return inTransaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("vote_page_id = ?", id).Delete(&VoteModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vote_page_id = ?", id).Delete(&PostModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vote_page_id = ?", id).Delete(&VotePageMemberModel{}).Error; err != nil {
			return err
		}
		return tx.Where("vote_page_id = ?", id).Delete(&VotePageModel{}).Error
	})
}

func (r *VotePageRepository) replaceMembers(tx *gorm.DB, votePageID string, members []string) error {
	if err := tx.Where("vote_page_id = ?", votePageID).Delete(&VotePageMemberModel{}).Error; err != nil {
		return err
	}
	if len(members) == 0 {
		return nil
	}

	rows := make([]VotePageMemberModel, 0, len(members))
	for i, userID := range members {
		rows = append(rows, VotePageMemberModel{
			VotePageID: votePageID,
			UserID:     userID,
			Position:   i,
		})
	}
	return tx.Create(&rows).Error
}

func (r *VotePageRepository) membersOf(db *gorm.DB, votePageIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(votePageIDs))
	if len(votePageIDs) == 0 {
		return result, nil
	}

	var rows []VotePageMemberModel
	if err := db.Where("vote_page_id IN ?", votePageIDs).
		Order("vote_page_id, seq").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.VotePageID] = append(result[row.VotePageID], row.UserID)
	}
	return result, nil
}

func (r *VotePageRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Conversores
func (r *VotePageRepository) toModel(page *entities.VotePage) *VotePageModel {
	return &VotePageModel{
		VotePageID:  page.ID,
		Name:        page.Name,
		OwnerUserID: page.OwnerUserID,
		CreatedAt:   toMillis(page.CreatedAt),
	}
}

func (r *VotePageRepository) toEntity(model *VotePageModel, members []string) *entities.VotePage {
	if members == nil {
		members = []string{}
	}
	return &entities.VotePage{
		ID:            model.VotePageID,
		Name:          model.Name,
		OwnerUserID:   model.OwnerUserID,
		MemberUserIDs: members,
		CreatedAt:     fromMillis(model.CreatedAt),
	}
}
