package ports

// Tipos de evento publicados para assinantes de uma página
const (
	EventVoteCast    = "vote.cast"
	EventVoteDeleted = "vote.deleted"
	EventPostSaved   = "post.saved"
	EventPostDeleted = "post.deleted"
)

// Event é uma notificação sobre uma mudança numa página de votação
type Event struct {
	Type       string `json:"type"`
	VotePageID string `json:"votePageId"`
	Payload    any    `json:"payload"`
}

// EventPublisher entrega eventos aos assinantes de uma página
type EventPublisher interface {
	Publish(event Event)
}

// NopPublisher descarta todos os eventos
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
