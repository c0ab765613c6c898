package sqlstore

import (
	"database/sql"
	"time"

	"github.com/ndiaz/fitlink/internal/models"
)

func (s *SQLStore) CreateUser(user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	query := s.rebind("INSERT INTO users (name, display_name, email, password, role) VALUES (?, ?, ?, ?, ?) RETURNING id")
	return s.db.QueryRow(query, user.Name, user.DisplayName, user.Email, user.Password, user.Role).Scan(&user.ID)
}

func (s *SQLStore) GetUserByEmail(email string) (*models.User, error) {
	query := s.rebind(`
		SELECT id, name, COALESCE(display_name, ''), email, password, role, created_at
		FROM users WHERE email = ? AND deleted_at IS NULL
	`)
	return s.scanUser(s.db.QueryRow(query, email))
}

func (s *SQLStore) GetUserByID(id int64) (*models.User, error) {
	query := s.rebind(`
		SELECT id, name, COALESCE(display_name, ''), email, password, role, created_at
		FROM users WHERE id = ? AND deleted_at IS NULL
	`)
	return s.scanUser(s.db.QueryRow(query, id))
}

func (s *SQLStore) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.DisplayName, &user.Email, &user.Password, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *SQLStore) SoftDeleteUser(id int64) error {
	query := s.rebind("UPDATE users SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL")
	res, err := s.db.Exec(query, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound(sql.ErrNoRows)
	}
	return nil
}

func (s *SQLStore) PurgeDeletedUsers(before time.Time) (int64, error) {
	query := s.rebind("DELETE FROM users WHERE deleted_at IS NOT NULL AND deleted_at < ?")
	res, err := s.db.Exec(query, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
