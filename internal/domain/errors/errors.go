package errors

import "errors"

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound           = errors.New("error.user_not_found")
	ErrOwnerNotFound          = errors.New("error.owner_not_found")
	ErrVotePageNotFound       = errors.New("error.vote_page_not_found")
	ErrPostNotFound           = errors.New("error.post_not_found")
	ErrVoteNotFound           = errors.New("error.vote_not_found")
	ErrCommentNotFound        = errors.New("error.comment_not_found")
	ErrUsernameAlreadyExists  = errors.New("error.username_already_exists")
	ErrEmailAlreadyExists     = errors.New("error.email_already_exists")
	ErrVotePageIDTaken        = errors.New("error.vote_page_id_taken")
	ErrInvalidCredentials     = errors.New("error.invalid_credentials")
	ErrUnauthorized           = errors.New("error.unauthorized")
	ErrForbidden              = errors.New("error.forbidden")
	ErrRegistrationIncomplete = errors.New("error.registration_incomplete")
)

// Domain errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrValidation       = errors.New("error.validation")
	ErrInvalidEmail     = errors.New("error.invalid_email")
	ErrInvalidUsername  = errors.New("error.invalid_username")
	ErrInvalidPassword  = errors.New("error.invalid_password")
	ErrInvalidVoteType  = errors.New("error.invalid_vote_type")
	ErrUnknownMember    = errors.New("error.unknown_member")
	ErrVotePageMismatch = errors.New("error.vote_page_mismatch")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeConflict     = "/problems/conflict"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
	ProblemTypeRateLimited  = "/problems/rate-limited"
)

// Kind agrupa os erros de domínio nas categorias que a camada HTTP traduz
// para status codes.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicate
	KindNotFound
	KindForbidden
	KindUnauthenticated
)

var kinds = map[error]Kind{
	ErrValidation:       KindValidation,
	ErrInvalidEmail:     KindValidation,
	ErrInvalidUsername:  KindValidation,
	ErrInvalidPassword:  KindValidation,
	ErrInvalidVoteType:  KindValidation,
	ErrUnknownMember:    KindValidation,
	ErrVotePageMismatch: KindValidation,

	ErrUsernameAlreadyExists: KindDuplicate,
	ErrEmailAlreadyExists:    KindDuplicate,
	ErrVotePageIDTaken:       KindDuplicate,

	ErrUserNotFound:     KindNotFound,
	ErrOwnerNotFound:    KindNotFound,
	ErrVotePageNotFound: KindNotFound,
	ErrPostNotFound:     KindNotFound,
	ErrVoteNotFound:     KindNotFound,
	ErrCommentNotFound:  KindNotFound,

	ErrForbidden: KindForbidden,

	ErrUnauthorized:       KindUnauthenticated,
	ErrInvalidCredentials: KindUnauthenticated,
}

// KindOf classifica um erro percorrendo a cadeia de wrapping.
// Erros desconhecidos são internos.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	for sentinel, kind := range kinds {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindInternal
}

// MessageID retorna o sentinel conhecido na cadeia do erro, que também é a
// chave de tradução. Retorna string vazia para erros internos.
func MessageID(err error) string {
	for sentinel := range kinds {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return ""
}

// DomainError representa um erro de domínio com contexto adicional
type DomainError struct {
	Type    string
	Title   string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MessageIDs lista as chaves de tradução de todos os erros conhecidos
func MessageIDs() []string {
	ids := make([]string, 0, len(kinds)+1)
	for sentinel := range kinds {
		ids = append(ids, sentinel.Error())
	}
	return append(ids, ErrRegistrationIncomplete.Error())
}
