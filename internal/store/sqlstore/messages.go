package sqlstore

import (
	"time"

	"github.com/ndiaz/fitlink/internal/models"
)

func (s *SQLStore) SaveMessage(groupID, senderID int64, content string) (*models.Message, error) {
	msg := &models.Message{
		GroupID:   groupID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	query := s.rebind("INSERT INTO messages (group_id, sender_id, content, created_at) VALUES (?, ?, ?, ?) RETURNING id")
	err := s.db.QueryRow(query, groupID, senderID, content, msg.CreatedAt).Scan(&msg.ID)
	if err != nil {
		return nil, err
	}

	// Sender name rides along on broadcast payloads.
	nameQuery := s.rebind("SELECT name FROM users WHERE id = ?")
	if err := s.db.QueryRow(nameQuery, senderID).Scan(&msg.SenderName); err != nil {
		msg.SenderName = ""
	}
	return msg, nil
}

// AppendGroupMessage records the message reference on its owning group.
func (s *SQLStore) AppendGroupMessage(groupID, messageID int64) error {
	query := s.rebind("INSERT INTO group_messages (group_id, message_id) VALUES (?, ?) ON CONFLICT DO NOTHING")
	_, err := s.db.Exec(query, groupID, messageID)
	return err
}

func (s *SQLStore) GetGroupMessages(groupID int64) ([]models.Message, error) {
	query := s.rebind(`
		SELECT m.id, m.group_id, m.sender_id, COALESCE(u.name, ''), m.content, m.created_at
		FROM messages m
		LEFT JOIN users u ON m.sender_id = u.id
		WHERE m.group_id = ?
		ORDER BY m.created_at ASC, m.id ASC
	`)
	rows, err := s.db.Query(query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.GroupID, &m.SenderID, &m.SenderName, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
