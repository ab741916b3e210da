package services_test

import (
	"context"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	"github.com/rafabene/votex-backend/internal/domain/errors"
	"github.com/rafabene/votex-backend/internal/domain/ports"
	"github.com/rafabene/votex-backend/internal/domain/repositories"
	"github.com/rafabene/votex-backend/internal/domain/valueobjects"
	"github.com/rafabene/votex-backend/internal/services"
)

// staleReadPostRepo não enxerga o post nas primeiras leituras, como se outro
// request o tivesse criado logo depois da consulta.
type staleReadPostRepo struct {
	repositories.PostRepository
	staleReads atomic.Int32
}

func (r *staleReadPostRepo) FindByID(ctx context.Context, id string) (*entities.Post, error) {
	if r.staleReads.Add(-1) >= 0 {
		return nil, nil
	}
	return r.PostRepository.FindByID(ctx, id)
}

var _ = Describe("PostService", func() {
	var (
		f     *fixture
		alice *entities.User
		bob   *entities.User
		carol *entities.User
		page  *entities.VotePage
	)

	BeforeEach(func() {
		f = newFixture()
		alice = f.register("alice")
		bob = f.register("bob")
		carol = f.register("carol")
		page = f.page(alice, "roadmap", bob)
	})

	Describe("Upsert", func() {
		It("cria com ID de 32 hex e publica o evento", func() {
			post := f.post(bob, page, "Add dark mode")
			Expect(post.ID).To(MatchRegexp(`^[0-9a-f]{32}$`))
			Expect(post.OwnerUserID).To(Equal(bob.ID.String()))
			Expect(f.events.Types()).To(ContainElement(ports.EventPostSaved))
		})

		It("atualiza campos mantendo página e dono", func() {
			post := f.post(bob, page, "Add dark mode")

			updated, created, err := f.posts.Upsert(f.ctx, services.UpsertPostInput{
				PostID:          post.ID,
				VotePageID:      "ignored",
				Title:           "Dark mode",
				Status:          "planned",
				Category:        "ui",
				RequesterUserID: bob.ID.String(),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeFalse())
			Expect(updated.Title).To(Equal("Dark mode"))
			Expect(updated.VotePageID).To(Equal("roadmap"))
			Expect(updated.OwnerUserID).To(Equal(bob.ID.String()))
		})

		It("criação concorrente com o mesmo ID vira atualização", func() {
			post := f.post(bob, page, "Add dark mode")

			repo := &staleReadPostRepo{PostRepository: f.postRepo}
			repo.staleReads.Store(1)
			svc := services.NewPostService(repo, f.votePageRepo, f.userRepo, f.voteRepo, f.authz, f.events, f.logger)

			updated, created, err := svc.Upsert(f.ctx, services.UpsertPostInput{
				PostID:          post.ID,
				VotePageID:      page.ID,
				Title:           "Dark mode",
				RequesterUserID: bob.ID.String(),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeFalse())
			Expect(updated.ID).To(Equal(post.ID))
			Expect(updated.Title).To(Equal("Dark mode"))

			stored, err := f.postRepo.FindByID(f.ctx, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Title).To(Equal("Dark mode"))
		})

		It("dono da página também edita, terceiros não", func() {
			post := f.post(bob, page, "Idea")

			_, _, err := f.posts.Upsert(f.ctx, services.UpsertPostInput{
				PostID: post.ID, Title: "By owner", RequesterUserID: alice.ID.String(),
			})
			Expect(err).NotTo(HaveOccurred())

			_, _, err = f.posts.Upsert(f.ctx, services.UpsertPostInput{
				PostID: post.ID, Title: "By carol", RequesterUserID: carol.ID.String(),
			})
			Expect(err).To(MatchError(errors.ErrForbidden))
		})

		It("exige página existente e membro", func() {
			_, _, err := f.posts.Upsert(f.ctx, services.UpsertPostInput{
				VotePageID: "missing", Title: "x", RequesterUserID: alice.ID.String(),
			})
			Expect(err).To(MatchError(errors.ErrVotePageNotFound))

			_, _, err = f.posts.Upsert(f.ctx, services.UpsertPostInput{
				VotePageID: "roadmap", Title: "x", RequesterUserID: carol.ID.String(),
			})
			Expect(err).To(MatchError(errors.ErrForbidden))

			_, _, err = f.posts.Upsert(f.ctx, services.UpsertPostInput{
				VotePageID: "roadmap", Title: " ", RequesterUserID: alice.ID.String(),
			})
			Expect(err).To(MatchError(errors.ErrValidation))
		})
	})

	Describe("ListByVotePage", func() {
		It("ordena por votos", func() {
			quiet := f.post(alice, page, "Quiet")
			loved := f.post(alice, page, "Loved")
			hated := f.post(alice, page, "Hated")

			cast := func(p *entities.Post, u *entities.User, t valueobjects.VoteType) {
				_, err := f.votes.Cast(f.ctx, services.CastVoteInput{PostID: p.ID, VoterUserID: u.ID.String(), Type: t})
				Expect(err).NotTo(HaveOccurred())
			}
			cast(loved, alice, valueobjects.VoteUp)
			cast(loved, bob, valueobjects.VoteUp)
			cast(hated, alice, valueobjects.VoteDown)
			cast(hated, bob, valueobjects.VoteDown)
			cast(hated, alice, valueobjects.VoteDown) // toggle-off
			cast(quiet, bob, valueobjects.VoteDown)
			cast(quiet, alice, valueobjects.VoteDown)
			cast(quiet, alice, valueobjects.VoteUp)

			titles := func(sortBy entities.PostSort) []string {
				posts, err := f.posts.ListByVotePage(f.ctx, bob.ID.String(), "roadmap", sortBy)
				Expect(err).NotTo(HaveOccurred())
				result := []string{}
				for _, p := range posts {
					result = append(result, p.Title)
				}
				return result
			}

			Expect(titles(entities.SortMostUpvotes)[0]).To(Equal("Loved"))
			Expect(titles(entities.SortMostDownvotes)[0]).To(Or(Equal("Quiet"), Equal("Hated")))
			Expect(titles(entities.SortMostVotes)[2]).To(Equal("Hated"))
		})

		It("falha para página inexistente ou não membro", func() {
			_, err := f.posts.ListByVotePage(f.ctx, alice.ID.String(), "missing", entities.SortNewest)
			Expect(err).To(MatchError(errors.ErrVotePageNotFound))

			_, err = f.posts.ListByVotePage(f.ctx, carol.ID.String(), "roadmap", entities.SortNewest)
			Expect(err).To(MatchError(errors.ErrForbidden))
		})
	})

	Describe("Delete", func() {
		It("remove o post com seus votos", func() {
			post := f.post(bob, page, "Idea")
			_, err := f.votes.Cast(f.ctx, services.CastVoteInput{PostID: post.ID, VoterUserID: alice.ID.String(), Type: valueobjects.VoteUp})
			Expect(err).NotTo(HaveOccurred())

			Expect(f.posts.Delete(f.ctx, carol.ID.String(), post.ID)).To(MatchError(errors.ErrForbidden))
			Expect(f.posts.Delete(f.ctx, bob.ID.String(), post.ID)).To(Succeed())
			Expect(f.posts.Delete(f.ctx, bob.ID.String(), post.ID)).To(MatchError(errors.ErrPostNotFound))

			_, err = f.votes.Tally(f.ctx, bob.ID.String(), post.ID)
			Expect(err).To(MatchError(errors.ErrPostNotFound))
			Expect(f.events.Types()).To(ContainElement(ports.EventPostDeleted))
		})
	})
})

var _ = Describe("SortPosts", func() {
	It("usa mais recentes primeiro por padrão", func() {
		now := time.Now()
		posts := []*entities.PostWithVotes{
			{Post: entities.Post{ID: "old", CreatedAt: now.Add(-time.Hour)}},
			{Post: entities.Post{ID: "new", CreatedAt: now}},
		}

		services.SortPosts(posts, entities.SortNewest)
		Expect(posts[0].ID).To(Equal("new"))
	})

	It("mantém a ordem original em empates", func() {
		posts := []*entities.PostWithVotes{
			{Post: entities.Post{ID: "a"}, Tally: entities.Tally{Upvotes: 1}},
			{Post: entities.Post{ID: "b"}, Tally: entities.Tally{Upvotes: 3}},
			{Post: entities.Post{ID: "c"}, Tally: entities.Tally{Upvotes: 1}},
		}

		services.SortPosts(posts, entities.SortMostUpvotes)
		Expect([]string{posts[0].ID, posts[1].ID, posts[2].ID}).To(Equal([]string{"b", "a", "c"}))
	})
})
