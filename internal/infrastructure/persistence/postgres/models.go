package postgres

// UserModel é o model GORM para usuários
type UserModel struct {
	UserID       string  `gorm:"column:user_id;type:varchar(64);primaryKey"`
	Username     string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string  `gorm:"type:varchar(255);not null"`
	AvatarPath   *string `gorm:"type:varchar(500)"`
	CreatedAt    int64   `gorm:"autoCreateTime:milli;index"`
	UpdatedAt    int64   `gorm:"autoUpdateTime:milli"`
}

func (UserModel) TableName() string {
	return "users"
}

// VotePageModel é o model GORM para páginas de votação
type VotePageModel struct {
	VotePageID  string `gorm:"column:vote_page_id;type:varchar(255);primaryKey"`
	Name        string `gorm:"type:varchar(255);not null"`
	OwnerUserID string `gorm:"column:owner_user_id;type:varchar(64);not null;index"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;index"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli"`
}

func (VotePageModel) TableName() string {
	return "vote_pages"
}

// VotePageMemberModel é a tabela de junção página <-> usuário
type VotePageMemberModel struct {
	VotePageID string `gorm:"column:vote_page_id;type:varchar(255);primaryKey"`
	UserID     string `gorm:"column:user_id;type:varchar(64);primaryKey;index"`
	Position   int    `gorm:"column:seq;not null;default:0"`
}

func (VotePageMemberModel) TableName() string {
	return "vote_page_members"
}

// PostModel é o model GORM para posts
type PostModel struct {
	PostID      string `gorm:"column:post_id;type:varchar(64);primaryKey"`
	VotePageID  string `gorm:"column:vote_page_id;type:varchar(255);not null;index"`
	Title       string `gorm:"type:varchar(500);not null"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"type:varchar(100)"`
	Status      string `gorm:"type:varchar(100)"`
	OwnerUserID string `gorm:"column:owner_user_id;type:varchar(64);not null;index"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;index"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli"`
}

func (PostModel) TableName() string {
	return "posts"
}

// VoteModel é o model GORM para votos.
// idx_votes_post_voter garante um voto por usuário por post.
type VoteModel struct {
	VoteID      string `gorm:"column:vote_id;type:varchar(64);primaryKey"`
	PostID      string `gorm:"column:post_id;type:varchar(64);not null;uniqueIndex:idx_votes_post_voter,priority:1"`
	VoterUserID string `gorm:"column:voter_user_id;type:varchar(64);not null;uniqueIndex:idx_votes_post_voter,priority:2"`
	VotePageID  string `gorm:"column:vote_page_id;type:varchar(255);not null;index"`
	VoteType    int    `gorm:"column:vote_type;not null"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli"`
}

func (VoteModel) TableName() string {
	return "votes"
}

// CommentModel é o model GORM para comentários
type CommentModel struct {
	CommentID   string `gorm:"column:comment_id;type:varchar(64);primaryKey"`
	OwnerUserID string `gorm:"column:owner_user_id;type:varchar(64);not null;index"`
	Content     string `gorm:"type:text;not null"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli"`
}

func (CommentModel) TableName() string {
	return "comments"
}

// AllModels lista os models migrados na inicialização
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&VotePageModel{},
		&VotePageMemberModel{},
		&PostModel{},
		&VoteModel{},
		&CommentModel{},
	}
}
