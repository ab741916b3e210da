package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/votex-backend/internal/domain/errors"
	"github.com/rafabene/votex-backend/internal/services"
)

var _ = Describe("CommentService", func() {
	var f *fixture

	BeforeEach(func() {
		f = newFixture()
	})

	It("cria, edita e remove comentários do autor", func() {
		comment, created, err := f.comments.Upsert(f.ctx, services.UpsertCommentInput{
			OwnerUserID: "alice",
			Content:     "first",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(created).To(BeTrue())

		edited, created, err := f.comments.Upsert(f.ctx, services.UpsertCommentInput{
			CommentID:   comment.ID,
			OwnerUserID: "alice",
			Content:     "edited",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(created).To(BeFalse())
		Expect(edited.Content).To(Equal("edited"))

		_, _, err = f.comments.Upsert(f.ctx, services.UpsertCommentInput{
			CommentID:   comment.ID,
			OwnerUserID: "bob",
			Content:     "hijack",
		})
		Expect(err).To(MatchError(errors.ErrForbidden))

		Expect(f.comments.Delete(f.ctx, "bob", comment.ID)).To(MatchError(errors.ErrForbidden))
		Expect(f.comments.Delete(f.ctx, "alice", comment.ID)).To(Succeed())
		Expect(f.comments.Delete(f.ctx, "alice", comment.ID)).To(MatchError(errors.ErrCommentNotFound))
	})

	It("rejeita conteúdo vazio", func() {
		_, _, err := f.comments.Upsert(f.ctx, services.UpsertCommentInput{OwnerUserID: "alice", Content: "  "})
		Expect(err).To(MatchError(errors.ErrValidation))
	})
})
