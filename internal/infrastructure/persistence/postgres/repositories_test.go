package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/votex-backend/internal/domain/errors"
	"github.com/rafabene/votex-backend/internal/domain/repositories"
	"github.com/rafabene/votex-backend/internal/domain/valueobjects"
	"github.com/rafabene/votex-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/votex-backend/internal/testutil"
)

type repos struct {
	users    repositories.UserRepository
	pages    repositories.VotePageRepository
	posts    repositories.PostRepository
	votes    repositories.VoteRepository
	comments repositories.CommentRepository
}

func newRepos(t *testing.T) repos {
	db := testutil.NewTestDB(t)
	return repos{
		users:    postgres.NewUserRepository(db),
		pages:    postgres.NewVotePageRepository(db),
		posts:    postgres.NewPostRepository(db),
		votes:    postgres.NewVoteRepository(db),
		comments: postgres.NewCommentRepository(db),
	}
}

func newPost(id, votePageID, owner string) *entities.Post {
	return &entities.Post{
		ID:          id,
		VotePageID:  votePageID,
		Title:       "title " + id,
		Description: "desc",
		Category:    "feature",
		Status:      "open",
		OwnerUserID: owner,
	}
}

func newVote(id, postID, voter, votePageID string, voteType valueobjects.VoteType) *entities.Vote {
	return &entities.Vote{
		ID:          id,
		PostID:      postID,
		VoterUserID: voter,
		VotePageID:  votePageID,
		Type:        voteType,
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("cria e busca por id e email", func(t *testing.T) {
		r := newRepos(t)
		alice := testutil.MustUser(t, r.users, "alice", "Alice@Example.com")

		found, err := r.users.FindByID(ctx, alice.ID.String())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "alice", found.Username)
		assert.Equal(t, "alice@example.com", found.Email.String())
		assert.False(t, found.CreatedAt.IsZero())

		byEmail, err := r.users.FindByEmail(ctx, "ALICE@example.com")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, alice.ID, byEmail.ID)
	})

	t.Run("retorna nil quando não existe", func(t *testing.T) {
		r := newRepos(t)

		found, err := r.users.FindByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, found)

		exists, err := r.users.Exists(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("rejeita username duplicado", func(t *testing.T) {
		r := newRepos(t)
		testutil.MustUser(t, r.users, "alice", "a@x.io")

		email, _ := valueobjects.NewEmail("other@x.io")
		dup, err := entities.NewUser("alice", email, "hash")
		require.NoError(t, err)

		err = r.users.Create(ctx, dup)
		assert.Error(t, err)
	})

	t.Run("busca sugestões sem diferenciar maiúsculas", func(t *testing.T) {
		r := newRepos(t)
		alice := testutil.MustUser(t, r.users, "alice", "alice@x.io")
		testutil.MustUser(t, r.users, "Alicia", "alicia@x.io")
		testutil.MustUser(t, r.users, "bob", "bob@x.io")

		found, err := r.users.Search(ctx, repositories.UserSearchFilters{Query: "ALI"})
		require.NoError(t, err)
		assert.Len(t, found, 2)

		found, err = r.users.Search(ctx, repositories.UserSearchFilters{
			Query:         "ali",
			ExcludeUserID: alice.ID.String(),
		})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Alicia", found[0].Username)
	})

	t.Run("curingas na busca são literais", func(t *testing.T) {
		r := newRepos(t)
		testutil.MustUser(t, r.users, "alice", "alice@x.io")
		testutil.MustUser(t, r.users, "bob", "bob@x.io")
		testutil.MustUser(t, r.users, "dev_ops", "ops@x.io")
		testutil.MustUser(t, r.users, "100%real", "real@x.io")

		for _, q := range []string{"%", "_", `\`, "a%e"} {
			found, err := r.users.Search(ctx, repositories.UserSearchFilters{Query: q})
			require.NoError(t, err)
			for _, u := range found {
				assert.NotEqual(t, "alice", u.Username, "query %q", q)
				assert.NotEqual(t, "bob", u.Username, "query %q", q)
			}
		}

		found, err := r.users.Search(ctx, repositories.UserSearchFilters{Query: "_"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "dev_ops", found[0].Username)

		found, err = r.users.Search(ctx, repositories.UserSearchFilters{Query: "0%r"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "100%real", found[0].Username)
	})

	t.Run("limita sugestões a dez", func(t *testing.T) {
		r := newRepos(t)
		for _, name := range []string{"u01", "u02", "u03", "u04", "u05", "u06", "u07", "u08", "u09", "u10", "u11", "u12"} {
			testutil.MustUser(t, r.users, name, name+"@x.io")
		}

		found, err := r.users.Search(ctx, repositories.UserSearchFilters{Query: "u", Limit: 50})
		require.NoError(t, err)
		assert.Len(t, found, 10)
	})

	t.Run("atualiza avatar", func(t *testing.T) {
		r := newRepos(t)
		alice := testutil.MustUser(t, r.users, "alice", "alice@x.io")

		require.NoError(t, r.users.UpdateAvatar(ctx, alice.ID.String(), "/avatars/alice.png"))

		found, err := r.users.FindByID(ctx, alice.ID.String())
		require.NoError(t, err)
		require.NotNil(t, found.AvatarPath)
		assert.Equal(t, "/avatars/alice.png", *found.AvatarPath)

		err = r.users.UpdateAvatar(ctx, "missing", "/x.png")
		assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	})

	t.Run("busca vários por id", func(t *testing.T) {
		r := newRepos(t)
		alice := testutil.MustUser(t, r.users, "alice", "alice@x.io")
		bob := testutil.MustUser(t, r.users, "bob", "bob@x.io")

		found, err := r.users.FindByIDs(ctx, []string{alice.ID.String(), bob.ID.String(), "missing"})
		require.NoError(t, err)
		assert.Len(t, found, 2)

		found, err = r.users.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestVotePageRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("preserva a ordem dos membros", func(t *testing.T) {
		r := newRepos(t)
		page, err := entities.NewVotePage("roadmap", "Roadmap", "owner", []string{"m2", "m1", "owner"})
		require.NoError(t, err)
		require.NoError(t, r.pages.Create(ctx, page))

		found, err := r.pages.FindByID(ctx, "roadmap")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, []string{"owner", "m2", "m1"}, found.MemberUserIDs)
		assert.Equal(t, "Roadmap", found.Name)
	})

	t.Run("rejeita id já usado", func(t *testing.T) {
		r := newRepos(t)
		require.NoError(t, r.pages.Create(ctx, entities.NewTutorialPage("owner")))

		err := r.pages.Create(ctx, entities.NewTutorialPage("owner"))
		assert.ErrorIs(t, err, domainerrors.ErrVotePageIDTaken)
	})

	t.Run("atualiza nome e membros", func(t *testing.T) {
		r := newRepos(t)
		page, _ := entities.NewVotePage("roadmap", "Roadmap", "owner", []string{"m1"})
		require.NoError(t, r.pages.Create(ctx, page))

		page.Rename("Roadmap 2025")
		page.SetMembers([]string{"m3"})
		require.NoError(t, r.pages.Update(ctx, page))

		found, err := r.pages.FindByID(ctx, "roadmap")
		require.NoError(t, err)
		assert.Equal(t, "Roadmap 2025", found.Name)
		assert.Equal(t, []string{"owner", "m3"}, found.MemberUserIDs)
	})

	t.Run("lista páginas acessíveis com contagens", func(t *testing.T) {
		r := newRepos(t)
		own, _ := entities.NewVotePage("own", "Own", "alice", nil)
		shared, _ := entities.NewVotePage("shared", "Shared", "bob", []string{"alice"})
		hidden, _ := entities.NewVotePage("hidden", "Hidden", "bob", nil)
		for _, p := range []*entities.VotePage{own, shared, hidden} {
			require.NoError(t, r.pages.Create(ctx, p))
		}

		require.NoError(t, r.posts.Create(ctx, newPost("p1", "shared", "bob")))
		require.NoError(t, r.posts.Create(ctx, newPost("p2", "shared", "alice")))
		require.NoError(t, r.votes.Create(ctx, newVote("v1", "p1", "alice", "shared", valueobjects.VoteUp)))

		list, err := r.pages.ListAccessibleTo(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, list, 2)

		byID := map[string]*entities.VotePageSummary{}
		for _, s := range list {
			byID[s.ID] = s
		}
		require.Contains(t, byID, "own")
		require.Contains(t, byID, "shared")
		assert.Equal(t, int64(2), byID["shared"].PostsCount)
		assert.Equal(t, int64(1), byID["shared"].VotesCount)
		assert.Equal(t, int64(0), byID["own"].PostsCount)
		assert.Equal(t, []string{"bob", "alice"}, byID["shared"].MemberUserIDs)
	})

	t.Run("exclusão remove posts e votos", func(t *testing.T) {
		r := newRepos(t)
		page, _ := entities.NewVotePage("roadmap", "Roadmap", "owner", nil)
		require.NoError(t, r.pages.Create(ctx, page))
		require.NoError(t, r.posts.Create(ctx, newPost("p1", "roadmap", "owner")))
		require.NoError(t, r.votes.Create(ctx, newVote("v1", "p1", "owner", "roadmap", valueobjects.VoteUp)))

		require.NoError(t, r.pages.Delete(ctx, "roadmap"))

		found, err := r.pages.FindByID(ctx, "roadmap")
		require.NoError(t, err)
		assert.Nil(t, found)

		post, err := r.posts.FindByID(ctx, "p1")
		require.NoError(t, err)
		assert.Nil(t, post)

		vote, err := r.votes.FindByID(ctx, "v1")
		require.NoError(t, err)
		assert.Nil(t, vote)
	})
}

func TestPostRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("atualiza campos editáveis", func(t *testing.T) {
		r := newRepos(t)
		post := newPost("p1", "roadmap", "alice")
		require.NoError(t, r.posts.Create(ctx, post))

		post.Update("New title", "New desc", "done", "bug")
		require.NoError(t, r.posts.Update(ctx, post))

		found, err := r.posts.FindByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "New title", found.Title)
		assert.Equal(t, "done", found.Status)
		assert.Equal(t, "bug", found.Category)
		assert.Equal(t, "alice", found.OwnerUserID)
	})

	t.Run("ID repetido vira ErrDuplicatePost", func(t *testing.T) {
		r := newRepos(t)
		require.NoError(t, r.posts.Create(ctx, newPost("p1", "roadmap", "alice")))

		err := r.posts.Create(ctx, newPost("p1", "roadmap", "bob"))
		assert.ErrorIs(t, err, repositories.ErrDuplicatePost)
	})

	t.Run("atualizar post inexistente", func(t *testing.T) {
		r := newRepos(t)
		err := r.posts.Update(ctx, newPost("missing", "roadmap", "alice"))
		assert.ErrorIs(t, err, domainerrors.ErrPostNotFound)
	})

	t.Run("lista apenas posts da página", func(t *testing.T) {
		r := newRepos(t)
		require.NoError(t, r.posts.Create(ctx, newPost("p1", "a", "alice")))
		require.NoError(t, r.posts.Create(ctx, newPost("p2", "a", "alice")))
		require.NoError(t, r.posts.Create(ctx, newPost("p3", "b", "alice")))

		posts, err := r.posts.ListByVotePage(ctx, "a")
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})

	t.Run("exclusão remove os votos do post", func(t *testing.T) {
		r := newRepos(t)
		require.NoError(t, r.posts.Create(ctx, newPost("p1", "a", "alice")))
		require.NoError(t, r.posts.Create(ctx, newPost("p2", "a", "alice")))
		require.NoError(t, r.votes.Create(ctx, newVote("v1", "p1", "bob", "a", valueobjects.VoteUp)))
		require.NoError(t, r.votes.Create(ctx, newVote("v2", "p2", "bob", "a", valueobjects.VoteUp)))

		require.NoError(t, r.posts.Delete(ctx, "p1"))

		votes, err := r.votes.ListByVotePage(ctx, "a")
		require.NoError(t, err)
		require.Len(t, votes, 1)
		assert.Equal(t, "v2", votes[0].ID)
	})
}

func TestVoteRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("índice único por post e eleitor", func(t *testing.T) {
		r := newRepos(t)
		require.NoError(t, r.votes.Create(ctx, newVote("v1", "p1", "alice", "a", valueobjects.VoteUp)))

		err := r.votes.Create(ctx, newVote("v2", "p1", "alice", "a", valueobjects.VoteDown))
		require.Error(t, err)
		assert.True(t, errors.Is(err, repositories.ErrDuplicateVote))

		// Outro eleitor no mesmo post é permitido
		require.NoError(t, r.votes.Create(ctx, newVote("v3", "p1", "bob", "a", valueobjects.VoteDown)))
	})

	t.Run("busca por post e eleitor", func(t *testing.T) {
		r := newRepos(t)
		require.NoError(t, r.votes.Create(ctx, newVote("v1", "p1", "alice", "a", valueobjects.VoteUp)))

		found, err := r.votes.FindByPostAndVoter(ctx, "p1", "alice")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "v1", found.ID)
		assert.Equal(t, valueobjects.VoteUp, found.Type)

		none, err := r.votes.FindByPostAndVoter(ctx, "p1", "bob")
		require.NoError(t, err)
		assert.Nil(t, none)
	})

	t.Run("altera tipo e conta votos", func(t *testing.T) {
		r := newRepos(t)
		require.NoError(t, r.votes.Create(ctx, newVote("v1", "p1", "alice", "a", valueobjects.VoteUp)))
		require.NoError(t, r.votes.Create(ctx, newVote("v2", "p1", "bob", "a", valueobjects.VoteUp)))
		require.NoError(t, r.votes.Create(ctx, newVote("v3", "p1", "carol", "a", valueobjects.VoteUp)))

		require.NoError(t, r.votes.UpdateType(ctx, "v3", valueobjects.VoteDown))

		tally, err := r.votes.Tally(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, entities.Tally{Upvotes: 2, Downvotes: 1}, tally)

		empty, err := r.votes.Tally(ctx, "p2")
		require.NoError(t, err)
		assert.Equal(t, int64(0), empty.Total())
	})

	t.Run("lista por vários posts", func(t *testing.T) {
		r := newRepos(t)
		require.NoError(t, r.votes.Create(ctx, newVote("v1", "p1", "alice", "a", valueobjects.VoteUp)))
		require.NoError(t, r.votes.Create(ctx, newVote("v2", "p2", "alice", "a", valueobjects.VoteDown)))
		require.NoError(t, r.votes.Create(ctx, newVote("v3", "p3", "alice", "a", valueobjects.VoteDown)))

		votes, err := r.votes.ListByPosts(ctx, []string{"p1", "p2"})
		require.NoError(t, err)
		assert.Len(t, votes, 2)

		byPost, err := r.votes.ListByPost(ctx, "p3")
		require.NoError(t, err)
		require.Len(t, byPost, 1)
		assert.Equal(t, "v3", byPost[0].ID)
	})

	t.Run("exclusão", func(t *testing.T) {
		r := newRepos(t)
		require.NoError(t, r.votes.Create(ctx, newVote("v1", "p1", "alice", "a", valueobjects.VoteUp)))
		require.NoError(t, r.votes.Delete(ctx, "v1"))

		found, err := r.votes.FindByID(ctx, "v1")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestCommentRepository(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	comment := &entities.Comment{ID: "c1", OwnerUserID: "alice", Content: "first"}
	require.NoError(t, r.comments.Create(ctx, comment))
	assert.False(t, comment.CreatedAt.IsZero())

	comment.Content = "edited"
	require.NoError(t, r.comments.Update(ctx, comment))

	found, err := r.comments.FindByID(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "edited", found.Content)

	require.NoError(t, r.comments.Delete(ctx, "c1"))
	found, err = r.comments.FindByID(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, found)

	err = r.comments.Update(ctx, &entities.Comment{ID: "missing", Content: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrCommentNotFound)
}

func TestUnitOfWork(t *testing.T) {
	ctx := context.Background()

	t.Run("rollback desfaz escritas", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		uow := postgres.NewUnitOfWork(db)
		pages := postgres.NewVotePageRepository(db)

		boom := errors.New("boom")
		err := uow.WithTransaction(ctx, func(txCtx context.Context) error {
			if err := pages.Create(txCtx, entities.NewTutorialPage("alice")); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		found, err := pages.FindByID(ctx, entities.TutorialPageID("alice"))
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("commit persiste escritas", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		uow := postgres.NewUnitOfWork(db)
		pages := postgres.NewVotePageRepository(db)

		err := uow.WithTransaction(ctx, func(txCtx context.Context) error {
			return pages.Create(txCtx, entities.NewTutorialPage("alice"))
		})
		require.NoError(t, err)

		found, err := pages.FindByID(ctx, entities.TutorialPageID("alice"))
		require.NoError(t, err)
		assert.NotNil(t, found)
	})
}
