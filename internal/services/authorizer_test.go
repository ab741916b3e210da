package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	"github.com/rafabene/votex-backend/internal/domain/errors"
	"github.com/rafabene/votex-backend/internal/domain/valueobjects"
	"github.com/rafabene/votex-backend/internal/services"
)

var _ = Describe("Authorizer", func() {
	authz := services.NewAuthorizer()
	page := &entities.VotePage{ID: "p", OwnerUserID: "owner", MemberUserIDs: []string{"owner", "member"}}

	DescribeTable("CanViewVotePage",
		func(userID string, allowed bool) {
			err := authz.CanViewVotePage(userID, page)
			if allowed {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(err).To(MatchError(errors.ErrForbidden))
			}
		},
		Entry("dono", "owner", true),
		Entry("membro", "member", true),
		Entry("estranho", "stranger", false),
	)

	It("só o dono gerencia a página", func() {
		Expect(authz.CanManageVotePage("owner", page)).To(Succeed())
		Expect(authz.CanManageVotePage("member", page)).To(MatchError(errors.ErrForbidden))
		Expect(authz.CanManageVotePage("owner", nil)).To(MatchError(errors.ErrForbidden))
	})

	It("autor do post ou dono da página editam", func() {
		post := &entities.Post{ID: "x", OwnerUserID: "member"}
		Expect(authz.CanEditPost("member", post, page)).To(Succeed())
		Expect(authz.CanEditPost("owner", post, page)).To(Succeed())
		Expect(authz.CanEditPost("owner", post, nil)).To(MatchError(errors.ErrForbidden))
		Expect(authz.CanEditPost("stranger", post, page)).To(MatchError(errors.ErrForbidden))
	})

	It("eleitor ou dono da página removem votos", func() {
		vote := &entities.Vote{ID: "v", VoterUserID: "member", Type: valueobjects.VoteUp}
		Expect(authz.CanDeleteVote("member", vote, page)).To(Succeed())
		Expect(authz.CanDeleteVote("owner", vote, page)).To(Succeed())
		Expect(authz.CanDeleteVote("stranger", vote, page)).To(MatchError(errors.ErrForbidden))
	})

	It("RequireSelf compara ids", func() {
		Expect(authz.RequireSelf("a", "a")).To(Succeed())
		Expect(authz.RequireSelf("a", "b")).To(MatchError(errors.ErrForbidden))
		Expect(authz.RequireSelf("", "")).To(MatchError(errors.ErrForbidden))
	})
})
