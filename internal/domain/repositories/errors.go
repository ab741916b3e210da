package repositories

import "errors"

var (
	// ErrDuplicateVote sinaliza violação do índice único (post, eleitor)
	ErrDuplicateVote = errors.New("duplicate vote for post and voter")
	// ErrDuplicatePost sinaliza que outro request já criou o post com o mesmo ID
	ErrDuplicatePost = errors.New("duplicate post id")
)
