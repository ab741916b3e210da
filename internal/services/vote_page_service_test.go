package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	"github.com/rafabene/votex-backend/internal/domain/errors"
	"github.com/rafabene/votex-backend/internal/domain/valueobjects"
	"github.com/rafabene/votex-backend/internal/services"
)

var _ = Describe("VotePageService", func() {
	var (
		f     *fixture
		alice *entities.User
		bob   *entities.User
		carol *entities.User
	)

	BeforeEach(func() {
		f = newFixture()
		alice = f.register("alice")
		bob = f.register("bob")
		carol = f.register("carol")
	})

	Describe("Create", func() {
		It("inclui o dono entre os membros sem duplicar", func() {
			page, err := f.votePages.Create(f.ctx, services.SaveVotePageInput{
				OwnerUserID:   alice.ID.String(),
				VotePageID:    "roadmap",
				Name:          "Roadmap",
				MemberUserIDs: []string{bob.ID.String(), bob.ID.String(), alice.ID.String()},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.MemberUserIDs).To(Equal([]string{alice.ID.String(), bob.ID.String()}))
		})

		It("gera um ID quando vazio", func() {
			page, err := f.votePages.Create(f.ctx, services.SaveVotePageInput{
				OwnerUserID: alice.ID.String(),
				Name:        "Sem id",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.ID).NotTo(BeEmpty())
		})

		It("rejeita dono inexistente, ID ocupado e membro desconhecido", func() {
			_, err := f.votePages.Create(f.ctx, services.SaveVotePageInput{
				OwnerUserID: "ghost", VotePageID: "x", Name: "X",
			})
			Expect(err).To(MatchError(errors.ErrOwnerNotFound))

			f.page(alice, "roadmap")
			_, err = f.votePages.Create(f.ctx, services.SaveVotePageInput{
				OwnerUserID: bob.ID.String(), VotePageID: "roadmap", Name: "Mine",
			})
			Expect(err).To(MatchError(errors.ErrVotePageIDTaken))

			_, err = f.votePages.Create(f.ctx, services.SaveVotePageInput{
				OwnerUserID: alice.ID.String(), VotePageID: "other", Name: "Other",
				MemberUserIDs: []string{"ghost"},
			})
			Expect(err).To(MatchError(errors.ErrUnknownMember))

			_, err = f.votePages.Create(f.ctx, services.SaveVotePageInput{
				OwnerUserID: alice.ID.String(), VotePageID: "blank", Name: "  ",
			})
			Expect(err).To(MatchError(errors.ErrValidation))
		})
	})

	Describe("Save", func() {
		It("atualiza quando o dono reenvia o mesmo ID", func() {
			f.page(alice, "roadmap")

			page, created, err := f.votePages.Save(f.ctx, services.SaveVotePageInput{
				OwnerUserID:   alice.ID.String(),
				VotePageID:    "roadmap",
				Name:          "Roadmap v2",
				MemberUserIDs: []string{carol.ID.String()},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeFalse())
			Expect(page.Name).To(Equal("Roadmap v2"))
			Expect(page.MemberUserIDs).To(Equal([]string{alice.ID.String(), carol.ID.String()}))
		})

		It("proíbe sobrescrever página de outro dono", func() {
			f.page(alice, "roadmap")

			_, _, err := f.votePages.Save(f.ctx, services.SaveVotePageInput{
				OwnerUserID: bob.ID.String(), VotePageID: "roadmap", Name: "Hijack",
			})
			Expect(err).To(MatchError(errors.ErrForbidden))
		})

		It("cria quando o ID é novo", func() {
			_, created, err := f.votePages.Save(f.ctx, services.SaveVotePageInput{
				OwnerUserID: bob.ID.String(), VotePageID: "fresh", Name: "Fresh",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeTrue())
		})
	})

	Describe("ListAccessibleTo", func() {
		It("retorna a página sse o usuário é dono ou membro", func() {
			f.page(alice, "shared", bob)
			f.page(alice, "private")

			ids := func(u *entities.User) []string {
				pages, err := f.votePages.ListAccessibleTo(f.ctx, u.ID.String())
				Expect(err).NotTo(HaveOccurred())
				result := []string{}
				for _, p := range pages {
					result = append(result, p.ID)
				}
				return result
			}

			Expect(ids(alice)).To(ConsistOf(entities.TutorialPageID(alice.ID.String()), "shared", "private"))
			Expect(ids(bob)).To(ConsistOf(entities.TutorialPageID(bob.ID.String()), "shared"))
			Expect(ids(carol)).To(ConsistOf(entities.TutorialPageID(carol.ID.String())))
		})
	})

	Describe("GetDetails", func() {
		It("carrega posts, votos e dono para membros", func() {
			page := f.page(alice, "roadmap", bob)
			post := f.post(alice, page, "Add dark mode")
			_, err := f.votes.Cast(f.ctx, services.CastVoteInput{
				PostID: post.ID, VoterUserID: bob.ID.String(), Type: valueobjects.VoteUp,
			})
			Expect(err).NotTo(HaveOccurred())

			details, err := f.votePages.GetDetails(f.ctx, bob.ID.String(), "roadmap")
			Expect(err).NotTo(HaveOccurred())
			Expect(details.Owner.Username).To(Equal("alice"))
			Expect(details.Posts).To(HaveLen(1))
			Expect(details.Posts[0].Author.Username).To(Equal("alice"))
			Expect(details.Posts[0].Tally).To(Equal(entities.Tally{Upvotes: 1}))
			Expect(details.Votes).To(HaveLen(1))
			Expect(details.Votes[0].Voter.Username).To(Equal("bob"))
			Expect(details.Votes[0].Post.Title).To(Equal("Add dark mode"))
		})

		It("nega acesso a não membros", func() {
			f.page(alice, "roadmap")

			_, err := f.votePages.GetDetails(f.ctx, carol.ID.String(), "roadmap")
			Expect(err).To(MatchError(errors.ErrForbidden))

			_, err = f.votePages.GetDetails(f.ctx, alice.ID.String(), "missing")
			Expect(err).To(MatchError(errors.ErrVotePageNotFound))
		})
	})

	Describe("Delete", func() {
		It("só o dono remove, e depois a página não existe", func() {
			page := f.page(alice, "roadmap", bob)
			post := f.post(bob, page, "Idea")
			_, err := f.votes.Cast(f.ctx, services.CastVoteInput{
				PostID: post.ID, VoterUserID: bob.ID.String(), Type: valueobjects.VoteDown,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(f.votePages.Delete(f.ctx, bob.ID.String(), "roadmap")).To(MatchError(errors.ErrForbidden))
			Expect(f.votePages.Delete(f.ctx, alice.ID.String(), "roadmap")).To(Succeed())
			Expect(f.votePages.Delete(f.ctx, alice.ID.String(), "roadmap")).To(MatchError(errors.ErrVotePageNotFound))

			votes, err := f.voteRepo.ListByVotePage(f.ctx, "roadmap")
			Expect(err).NotTo(HaveOccurred())
			Expect(votes).To(BeEmpty())
		})
	})
})
