package sqlstore

import (
	"database/sql"

	"github.com/ndiaz/fitlink/internal/models"
)

const groupColumns = "id, name, COALESCE(sport, ''), COALESCE(activity, ''), location, latitude, longitude, organizer_id, created_at"

func (s *SQLStore) CreateGroup(g *models.Group) (int64, error) {
	var id int64
	query := s.rebind("INSERT INTO sport_groups (name, sport, activity, location, latitude, longitude, organizer_id) VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id")
	err := s.db.QueryRow(query, g.Name, g.Sport, g.Activity, g.Location, g.Latitude, g.Longitude, g.OrganizerID).Scan(&id)
	if err != nil {
		return 0, err
	}
	g.ID = id
	return id, nil
}

func (s *SQLStore) GetGroup(id int64) (*models.Group, error) {
	query := s.rebind("SELECT " + groupColumns + " FROM sport_groups WHERE id = ?")
	return scanGroup(s.db.QueryRow(query, id))
}

func (s *SQLStore) GetAllGroups() ([]models.Group, error) {
	rows, err := s.db.Query("SELECT " + groupColumns + " FROM sport_groups ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	return collectGroups(rows)
}

func (s *SQLStore) SearchGroups(term string) ([]models.Group, error) {
	query := s.rebind("SELECT " + groupColumns + " FROM sport_groups WHERE name LIKE ? OR sport LIKE ? OR activity LIKE ? ORDER BY name")
	pattern := "%" + term + "%"
	rows, err := s.db.Query(query, pattern, pattern, pattern)
	if err != nil {
		return nil, err
	}
	return collectGroups(rows)
}

func (s *SQLStore) UpdateGroup(g *models.Group) error {
	query := s.rebind("UPDATE sport_groups SET name = ?, sport = ?, activity = ?, location = ?, latitude = ?, longitude = ? WHERE id = ?")
	res, err := s.db.Exec(query, g.Name, g.Sport, g.Activity, g.Location, g.Latitude, g.Longitude, g.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound(sql.ErrNoRows)
	}
	return nil
}

func (s *SQLStore) DeleteGroup(id int64) error {
	// Delete dependents first (foreign key constraints)
	for _, q := range []string{
		"DELETE FROM group_messages WHERE group_id = ?",
		"DELETE FROM messages WHERE group_id = ?",
		"DELETE FROM group_members WHERE group_id = ?",
		"DELETE FROM sport_groups WHERE id = ?",
	} {
		if _, err := s.db.Exec(s.rebind(q), id); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLStore) AddGroupMember(groupID, userID int64) error {
	query := s.rebind("INSERT INTO group_members (group_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING")
	_, err := s.db.Exec(query, groupID, userID)
	return err
}

func (s *SQLStore) RemoveGroupMember(groupID, userID int64) error {
	query := s.rebind("DELETE FROM group_members WHERE group_id = ? AND user_id = ?")
	_, err := s.db.Exec(query, groupID, userID)
	return err
}

func (s *SQLStore) IsGroupMember(groupID, userID int64) (bool, error) {
	var exists bool
	query := s.rebind("SELECT EXISTS(SELECT 1 FROM group_members WHERE group_id = ? AND user_id = ?)")
	err := s.db.QueryRow(query, groupID, userID).Scan(&exists)
	return exists, err
}

func (s *SQLStore) GetGroupMembers(groupID int64) ([]models.User, error) {
	query := s.rebind(`
		SELECT u.id, u.name, COALESCE(u.display_name, ''), u.email, u.role
		FROM users u
		JOIN group_members m ON u.id = m.user_id
		WHERE m.group_id = ? AND u.deleted_at IS NULL
		ORDER BY u.name
	`)
	rows, err := s.db.Query(query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.DisplayName, &u.Email, &u.Role); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *SQLStore) GetGroupsByMember(userID int64) ([]models.Group, error) {
	query := s.rebind(`
		SELECT g.id, g.name, COALESCE(g.sport, ''), COALESCE(g.activity, ''), g.location, g.latitude, g.longitude, g.organizer_id, g.created_at
		FROM sport_groups g
		JOIN group_members m ON g.id = m.group_id
		WHERE m.user_id = ?
		ORDER BY g.name
	`)
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	return collectGroups(rows)
}

func scanGroup(row *sql.Row) (*models.Group, error) {
	var g models.Group
	err := row.Scan(&g.ID, &g.Name, &g.Sport, &g.Activity, &g.Location, &g.Latitude, &g.Longitude, &g.OrganizerID, &g.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func collectGroups(rows *sql.Rows) ([]models.Group, error) {
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Sport, &g.Activity, &g.Location, &g.Latitude, &g.Longitude, &g.OrganizerID, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
