package sqlstore

import "github.com/ndiaz/fitlink/internal/models"

func (s *SQLStore) OverviewStats() (*models.OverviewStats, error) {
	stats := &models.OverviewStats{ByType: map[string]int64{}}

	counts := []struct {
		query string
		dest  *int64
	}{
		{"SELECT COUNT(*) FROM users WHERE deleted_at IS NULL", &stats.Users},
		{"SELECT COUNT(*) FROM sport_groups", &stats.Groups},
		{"SELECT COUNT(*) FROM messages", &stats.Messages},
		{"SELECT COUNT(*) FROM workouts", &stats.Workouts},
		{"SELECT COUNT(*) FROM contracts", &stats.Contracts},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, err
		}
	}

	rows, err := s.db.Query("SELECT type, COUNT(*) FROM workouts GROUP BY type")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var typ string
		var n int64
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, err
		}
		stats.ByType[typ] = n
	}
	return stats, rows.Err()
}

func (s *SQLStore) UserStats(userID int64) (*models.UserStats, error) {
	stats := &models.UserStats{ByType: map[string]int64{}}

	query := s.rebind("SELECT COUNT(*), COALESCE(SUM(duration_minutes), 0) FROM workouts WHERE creator_id = ?")
	if err := s.db.QueryRow(query, userID).Scan(&stats.Workouts, &stats.TotalMinutes); err != nil {
		return nil, err
	}

	query = s.rebind("SELECT COUNT(*) FROM group_members WHERE user_id = ?")
	if err := s.db.QueryRow(query, userID).Scan(&stats.Groups); err != nil {
		return nil, err
	}

	query = s.rebind("SELECT COUNT(*) FROM messages WHERE sender_id = ?")
	if err := s.db.QueryRow(query, userID).Scan(&stats.Messages); err != nil {
		return nil, err
	}

	query = s.rebind("SELECT type, COUNT(*) FROM workouts WHERE creator_id = ? GROUP BY type")
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var typ string
		var n int64
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, err
		}
		stats.ByType[typ] = n
	}
	return stats, rows.Err()
}
