package sqlstore

import (
	"github.com/ndiaz/fitlink/internal/models"
	"github.com/ndiaz/fitlink/internal/store"
)

func (s *SQLStore) CreateWorkout(w *models.Workout) (int64, error) {
	var id int64
	query := s.rebind("INSERT INTO workouts (creator_id, name, type, duration_minutes, intensity, notes, performed_at) VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id")
	err := s.db.QueryRow(query, w.CreatorID, w.Name, w.Type, w.DurationMinutes, w.Intensity, w.Notes, w.PerformedAt).Scan(&id)
	if err != nil {
		return 0, err
	}
	w.ID = id
	return id, nil
}

func (s *SQLStore) GetWorkout(id int64) (*models.Workout, error) {
	var w models.Workout
	query := s.rebind(`
		SELECT id, creator_id, name, type, duration_minutes, COALESCE(intensity, ''), COALESCE(notes, ''), performed_at, created_at
		FROM workouts WHERE id = ?
	`)
	err := s.db.QueryRow(query, id).Scan(&w.ID, &w.CreatorID, &w.Name, &w.Type, &w.DurationMinutes, &w.Intensity, &w.Notes, &w.PerformedAt, &w.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &w, nil
}

func (s *SQLStore) UpdateWorkout(w *models.Workout) error {
	query := s.rebind("UPDATE workouts SET name = ?, type = ?, duration_minutes = ?, intensity = ?, notes = ?, performed_at = ? WHERE id = ?")
	res, err := s.db.Exec(query, w.Name, w.Type, w.DurationMinutes, w.Intensity, w.Notes, w.PerformedAt, w.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *SQLStore) DeleteWorkout(id int64) error {
	query := s.rebind("DELETE FROM workouts WHERE id = ?")
	_, err := s.db.Exec(query, id)
	return err
}

func (s *SQLStore) ListWorkouts(filter store.WorkoutFilter) ([]models.Workout, error) {
	query := `
		SELECT id, creator_id, name, type, duration_minutes, COALESCE(intensity, ''), COALESCE(notes, ''), performed_at, created_at
		FROM workouts WHERE 1=1
	`
	args := []any{}
	if filter.CreatorID != 0 {
		query += " AND creator_id = ?"
		args = append(args, filter.CreatorID)
	}
	if filter.Type != "" {
		query += " AND type = ?"
		args = append(args, filter.Type)
	}
	query += " ORDER BY performed_at DESC"

	rows, err := s.db.Query(s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []models.Workout
	for rows.Next() {
		var w models.Workout
		if err := rows.Scan(&w.ID, &w.CreatorID, &w.Name, &w.Type, &w.DurationMinutes, &w.Intensity, &w.Notes, &w.PerformedAt, &w.CreatedAt); err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}
