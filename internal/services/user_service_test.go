package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	"github.com/rafabene/votex-backend/internal/domain/errors"
	"github.com/rafabene/votex-backend/internal/services"
)

var _ = Describe("UserService", func() {
	var f *fixture

	BeforeEach(func() {
		f = newFixture()
	})

	Describe("Register", func() {
		It("cria o usuário e exatamente uma página Tutorial", func() {
			result, err := f.users.Register(f.ctx, services.RegisterInput{
				Username: "  alice ",
				Email:    "Alice@Example.com",
				Password: "secret",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(result.User.ID.String()).To(Equal("2bd806c97f0e00af1a1fc3328fa763a9269723c8db8fac4f93af71db186d6e90"))
			Expect(result.User.Username).To(Equal("alice"))
			Expect(result.User.PasswordHash).NotTo(Equal("secret"))

			Expect(result.VotePage.ID).To(Equal(entities.TutorialPageID(result.User.ID.String())))
			Expect(result.VotePage.Name).To(Equal(entities.TutorialPageName))

			pages, err := f.votePages.ListAccessibleTo(f.ctx, result.User.ID.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(pages).To(HaveLen(1))
			Expect(pages[0].Name).To(Equal("Tutorial"))
			Expect(pages[0].MemberUserIDs).To(Equal([]string{result.User.ID.String()}))
		})

		It("rejeita username repetido", func() {
			f.register("alice")

			_, err := f.users.Register(f.ctx, services.RegisterInput{
				Username: "alice",
				Email:    "other@example.com",
				Password: "secret",
			})
			Expect(err).To(MatchError(errors.ErrUsernameAlreadyExists))
		})

		It("rejeita email repetido", func() {
			f.register("alice")

			_, err := f.users.Register(f.ctx, services.RegisterInput{
				Username: "alice2",
				Email:    "ALICE@example.com",
				Password: "secret",
			})
			Expect(err).To(MatchError(errors.ErrEmailAlreadyExists))
		})

		It("valida os campos", func() {
			_, err := f.users.Register(f.ctx, services.RegisterInput{Username: " ", Email: "a@x.io", Password: "p"})
			Expect(err).To(MatchError(errors.ErrInvalidUsername))

			_, err = f.users.Register(f.ctx, services.RegisterInput{Username: "a", Email: "nope", Password: "p"})
			Expect(err).To(MatchError(errors.ErrInvalidEmail))

			_, err = f.users.Register(f.ctx, services.RegisterInput{Username: "a", Email: "a@x.io", Password: ""})
			Expect(err).To(MatchError(errors.ErrInvalidPassword))
		})

		It("desfaz o usuário se a página tutorial falhar", func() {
			alice := f.register("alice")
			// Ocupa o ID da página tutorial que "bob" receberia
			bobID := "81b637d8fcd2c6da6359e6963113a1170de795e4b725b84d1e0b4cfd9ec58ce9"
			Expect(f.votePageRepo.Create(f.ctx, &entities.VotePage{
				ID:            entities.TutorialPageID(bobID),
				Name:          "squatter",
				OwnerUserID:   alice.ID.String(),
				MemberUserIDs: []string{alice.ID.String()},
			})).To(Succeed())

			_, err := f.users.Register(f.ctx, services.RegisterInput{
				Username: "bob",
				Email:    "bob@example.com",
				Password: "secret",
			})
			Expect(err).To(MatchError(errors.ErrRegistrationIncomplete))

			exists, err := f.users.Exists(f.ctx, bobID)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("Authenticate", func() {
		It("emite token para credenciais válidas", func() {
			alice := f.register("alice")

			cred, err := f.users.Authenticate(f.ctx, "alice@example.com", "pw-alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(cred.Token).NotTo(BeEmpty())
			Expect(cred.User.ID).To(Equal(alice.ID))
			Expect(cred.ExpiresAt).To(BeTemporally(">", alice.CreatedAt))
		})

		It("rejeita senha errada e email desconhecido", func() {
			f.register("alice")

			_, err := f.users.Authenticate(f.ctx, "alice@example.com", "wrong")
			Expect(err).To(MatchError(errors.ErrInvalidCredentials))

			_, err = f.users.Authenticate(f.ctx, "ghost@example.com", "pw-alice")
			Expect(err).To(MatchError(errors.ErrInvalidCredentials))
		})
	})

	Describe("consultas", func() {
		It("verifica existência e username", func() {
			alice := f.register("alice")

			exists, err := f.users.Exists(f.ctx, alice.ID.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())

			_, err = f.users.Exists(f.ctx, "")
			Expect(err).To(MatchError(errors.ErrValidation))

			name, err := f.users.Username(f.ctx, alice.ID.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal("alice"))

			_, err = f.users.Username(f.ctx, "missing")
			Expect(err).To(MatchError(errors.ErrUserNotFound))
		})

		It("sugere usuários excluindo o solicitante", func() {
			alice := f.register("alice")
			f.register("alicia")
			f.register("bob")

			found, err := f.users.Suggestions(f.ctx, "ali", alice.ID.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(HaveLen(1))
			Expect(found[0].Username).To(Equal("alicia"))
		})
	})

	Describe("UpdateAvatar", func() {
		It("permite apenas ao próprio usuário", func() {
			alice := f.register("alice")
			bob := f.register("bob")

			user, err := f.users.UpdateAvatar(f.ctx, alice.ID.String(), alice.ID.String(), "/avatars/a.png")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.AvatarPath).NotTo(BeNil())
			Expect(*user.AvatarPath).To(Equal("/avatars/a.png"))

			_, err = f.users.UpdateAvatar(f.ctx, bob.ID.String(), alice.ID.String(), "/avatars/b.png")
			Expect(err).To(MatchError(errors.ErrForbidden))
		})
	})
})
