package services_test

import (
	"context"
	"sync"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	"github.com/rafabene/votex-backend/internal/domain/errors"
	"github.com/rafabene/votex-backend/internal/domain/ports"
	"github.com/rafabene/votex-backend/internal/domain/repositories"
	"github.com/rafabene/votex-backend/internal/domain/valueobjects"
	"github.com/rafabene/votex-backend/internal/services"
)

// staleReadVoteRepo simula uma corrida: as primeiras leituras por
// (post, eleitor) não enxergam o voto já gravado por outro request.
type staleReadVoteRepo struct {
	repositories.VoteRepository
	staleReads atomic.Int32
}

func (r *staleReadVoteRepo) FindByPostAndVoter(ctx context.Context, postID, voterUserID string) (*entities.Vote, error) {
	if r.staleReads.Add(-1) >= 0 {
		return nil, nil
	}
	return r.VoteRepository.FindByPostAndVoter(ctx, postID, voterUserID)
}

var _ = Describe("VoteService", func() {
	var (
		f     *fixture
		alice *entities.User
		bob   *entities.User
		carol *entities.User
		page  *entities.VotePage
		post  *entities.Post
	)

	cast := func(svc *services.VoteService, voter *entities.User, voteType valueobjects.VoteType) *services.CastResult {
		GinkgoHelper()
		result, err := svc.Cast(f.ctx, services.CastVoteInput{
			PostID:      post.ID,
			VoterUserID: voter.ID.String(),
			VotePageID:  page.ID,
			Type:        voteType,
		})
		Expect(err).NotTo(HaveOccurred())
		return result
	}

	expectConsistentTally := func() entities.Tally {
		GinkgoHelper()
		tally, err := f.votes.Tally(f.ctx, alice.ID.String(), post.ID)
		Expect(err).NotTo(HaveOccurred())
		votes, err := f.votes.ListByPost(f.ctx, alice.ID.String(), post.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(tally.Total()).To(BeEquivalentTo(len(votes)))
		return tally
	}

	BeforeEach(func() {
		f = newFixture()
		alice = f.register("alice")
		bob = f.register("bob")
		carol = f.register("carol")
		page = f.page(alice, "roadmap", bob)
		post = f.post(alice, page, "Add dark mode")
	})

	Describe("Cast", func() {
		It("segue a máquina de estados created -> updated -> removed", func() {
			first := cast(f.votes, bob, valueobjects.VoteUp)
			Expect(first.Outcome).To(Equal(entities.CastCreated))
			Expect(first.Tally).To(Equal(entities.Tally{Upvotes: 1}))

			second := cast(f.votes, bob, valueobjects.VoteDown)
			Expect(second.Outcome).To(Equal(entities.CastUpdated))
			Expect(second.Vote.ID).To(Equal(first.Vote.ID))
			Expect(second.Tally).To(Equal(entities.Tally{Downvotes: 1}))

			third := cast(f.votes, bob, valueobjects.VoteDown)
			Expect(third.Outcome).To(Equal(entities.CastRemoved))
			Expect(third.Tally).To(Equal(entities.Tally{}))

			expectConsistentTally()
			Expect(f.events.Types()).To(ContainElement(ports.EventVoteCast))
		})

		It("cenário alice e bob", func() {
			Expect(cast(f.votes, bob, valueobjects.VoteUp).Tally).To(Equal(entities.Tally{Upvotes: 1, Downvotes: 0}))
			Expect(cast(f.votes, bob, valueobjects.VoteUp).Tally).To(Equal(entities.Tally{Upvotes: 0, Downvotes: 0}))

			Expect(f.votePages.Delete(f.ctx, bob.ID.String(), page.ID)).To(MatchError(errors.ErrForbidden))
		})

		It("valida post, página e membro", func() {
			_, err := f.votes.Cast(f.ctx, services.CastVoteInput{PostID: "missing", VoterUserID: bob.ID.String(), Type: valueobjects.VoteUp})
			Expect(err).To(MatchError(errors.ErrPostNotFound))

			_, err = f.votes.Cast(f.ctx, services.CastVoteInput{PostID: post.ID, VoterUserID: bob.ID.String(), VotePageID: "other", Type: valueobjects.VoteUp})
			Expect(err).To(MatchError(errors.ErrVotePageMismatch))

			_, err = f.votes.Cast(f.ctx, services.CastVoteInput{PostID: post.ID, VoterUserID: carol.ID.String(), Type: valueobjects.VoteUp})
			Expect(err).To(MatchError(errors.ErrForbidden))

			_, err = f.votes.Cast(f.ctx, services.CastVoteInput{PostID: post.ID, VoterUserID: bob.ID.String(), Type: valueobjects.VoteType(7)})
			Expect(err).To(MatchError(errors.ErrInvalidVoteType))
		})

		It("mantém no máximo um voto por eleitor sob concorrência", func() {
			const casts = 9
			var (
				wg       sync.WaitGroup
				failures atomic.Int32
			)

			for i := 0; i < casts; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					defer GinkgoRecover()
					_, err := f.votes.Cast(f.ctx, services.CastVoteInput{
						PostID:      post.ID,
						VoterUserID: bob.ID.String(),
						Type:        valueobjects.VoteUp,
					})
					if err != nil {
						failures.Add(1)
					}
				}()
			}
			wg.Wait()

			Expect(failures.Load()).To(BeZero())
			votes, err := f.voteRepo.ListByPost(f.ctx, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(len(votes)).To(BeNumerically("<=", 1))
			expectConsistentTally()
		})

		It("eleitores distintos votam em paralelo", func() {
			var wg sync.WaitGroup
			for _, voter := range []*entities.User{alice, bob} {
				wg.Add(1)
				go func(u *entities.User) {
					defer wg.Done()
					defer GinkgoRecover()
					_, err := f.votes.Cast(f.ctx, services.CastVoteInput{PostID: post.ID, VoterUserID: u.ID.String(), Type: valueobjects.VoteUp})
					Expect(err).NotTo(HaveOccurred())
				}(voter)
			}
			wg.Wait()

			Expect(expectConsistentTally()).To(Equal(entities.Tally{Upvotes: 2}))
		})

		Context("quando outro request grava o voto primeiro", func() {
			It("converte o conflito em atualização do vencedor", func() {
				cast(f.votes, bob, valueobjects.VoteUp)

				racing := &staleReadVoteRepo{VoteRepository: f.voteRepo}
				racing.staleReads.Store(1)

				result := cast(f.voteServiceWith(racing), bob, valueobjects.VoteDown)
				Expect(result.Outcome).To(Equal(entities.CastUpdated))
				Expect(result.Tally).To(Equal(entities.Tally{Downvotes: 1}))
				expectConsistentTally()
			})

			It("não altera o vencedor do mesmo tipo", func() {
				cast(f.votes, bob, valueobjects.VoteUp)

				racing := &staleReadVoteRepo{VoteRepository: f.voteRepo}
				racing.staleReads.Store(1)

				result := cast(f.voteServiceWith(racing), bob, valueobjects.VoteUp)
				Expect(result.Outcome).To(Equal(entities.CastUpdated))
				Expect(result.Tally).To(Equal(entities.Tally{Upvotes: 1}))
			})
		})
	})

	Describe("ListByPost", func() {
		It("inclui eleitor e post", func() {
			cast(f.votes, bob, valueobjects.VoteUp)
			cast(f.votes, alice, valueobjects.VoteDown)

			votes, err := f.votes.ListByPost(f.ctx, bob.ID.String(), post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(votes).To(HaveLen(2))
			for _, v := range votes {
				Expect(v.Voter).NotTo(BeNil())
				Expect(v.Post.ID).To(Equal(post.ID))
			}
		})

		It("nega votos e contagem a quem não é membro", func() {
			cast(f.votes, bob, valueobjects.VoteUp)

			_, err := f.votes.ListByPost(f.ctx, carol.ID.String(), post.ID)
			Expect(err).To(MatchError(errors.ErrForbidden))

			_, err = f.votes.Tally(f.ctx, carol.ID.String(), post.ID)
			Expect(err).To(MatchError(errors.ErrForbidden))
		})

		It("retorna not found antes de checar acesso", func() {
			_, err := f.votes.ListByPost(f.ctx, carol.ID.String(), "missing")
			Expect(err).To(MatchError(errors.ErrPostNotFound))
		})
	})

	Describe("Delete", func() {
		It("permite ao eleitor e ao dono da página", func() {
			bobVote := cast(f.votes, bob, valueobjects.VoteUp).Vote
			aliceVote := cast(f.votes, alice, valueobjects.VoteUp).Vote

			Expect(f.votes.Delete(f.ctx, carol.ID.String(), bobVote.ID)).To(MatchError(errors.ErrForbidden))
			Expect(f.votes.Delete(f.ctx, alice.ID.String(), bobVote.ID)).To(Succeed())
			Expect(f.votes.Delete(f.ctx, bob.ID.String(), aliceVote.ID)).To(MatchError(errors.ErrForbidden))
			Expect(f.votes.Delete(f.ctx, alice.ID.String(), aliceVote.ID)).To(Succeed())
			Expect(f.votes.Delete(f.ctx, alice.ID.String(), aliceVote.ID)).To(MatchError(errors.ErrVoteNotFound))

			Expect(f.events.Types()).To(ContainElement(ports.EventVoteDeleted))
		})
	})
})
