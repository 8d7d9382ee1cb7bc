package repository

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"lostandfound-backend/internal/models"
)

type ChatRepository interface {
	SaveMessage(msg *models.ChatMessage) error
	ListForMatch(matchID int64) ([]*models.ChatMessage, error)
}

type chatRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewChatRepository(db *sqlx.DB, logger *zap.Logger) ChatRepository {
	return &chatRepository{db: db, logger: logger}
}

func (r *chatRepository) SaveMessage(msg *models.ChatMessage) error {
	query := `INSERT INTO chat_messages (match_id, sender_id, message) VALUES ($1, $2, $3)
	          RETURNING id, created_at`
	return r.db.QueryRowx(query, msg.MatchID, msg.SenderID, msg.Message).
		Scan(&msg.ID, &msg.CreatedAt)
}

func (r *chatRepository) ListForMatch(matchID int64) ([]*models.ChatMessage, error) {
	var messages []*models.ChatMessage
	err := r.db.Select(&messages,
		`SELECT id, match_id, sender_id, message, is_read, created_at
		 FROM chat_messages WHERE match_id = $1 ORDER BY created_at ASC`, matchID)
	return messages, err
}
