package sqlstore

import (
	"database/sql"

	"github.com/ndiaz/fitlink/internal/models"
)

// Rating and review count are derived from trainer_reviews on every read.
const trainerColumns = `
	t.id, t.user_id, t.specialty, COALESCE(t.bio, ''), t.hourly_rate,
	COALESCE((SELECT AVG(rating) FROM trainer_reviews r WHERE r.trainer_id = t.id), 0),
	(SELECT COUNT(*) FROM trainer_reviews r WHERE r.trainer_id = t.id),
	t.created_at
`

func (s *SQLStore) CreateTrainer(t *models.Trainer) (int64, error) {
	var id int64
	query := s.rebind("INSERT INTO trainers (user_id, specialty, bio, hourly_rate) VALUES (?, ?, ?, ?) RETURNING id")
	err := s.db.QueryRow(query, t.UserID, t.Specialty, t.Bio, t.HourlyRate).Scan(&id)
	if err != nil {
		return 0, err
	}
	t.ID = id
	return id, nil
}

func (s *SQLStore) GetTrainer(id int64) (*models.Trainer, error) {
	query := s.rebind("SELECT " + trainerColumns + " FROM trainers t WHERE t.id = ?")
	return scanTrainer(s.db.QueryRow(query, id))
}

func (s *SQLStore) GetTrainerByUser(userID int64) (*models.Trainer, error) {
	query := s.rebind("SELECT " + trainerColumns + " FROM trainers t WHERE t.user_id = ?")
	return scanTrainer(s.db.QueryRow(query, userID))
}

func (s *SQLStore) ListTrainers(specialty string) ([]models.Trainer, error) {
	query := "SELECT " + trainerColumns + " FROM trainers t"
	args := []any{}
	if specialty != "" {
		query += " WHERE t.specialty = ?"
		args = append(args, specialty)
	}
	query += " ORDER BY t.created_at DESC"

	rows, err := s.db.Query(s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trainers []models.Trainer
	for rows.Next() {
		var t models.Trainer
		if err := rows.Scan(&t.ID, &t.UserID, &t.Specialty, &t.Bio, &t.HourlyRate, &t.Rating, &t.Reviews, &t.CreatedAt); err != nil {
			return nil, err
		}
		trainers = append(trainers, t)
	}
	return trainers, rows.Err()
}

func (s *SQLStore) AddTrainerReview(r *models.TrainerReview) (int64, error) {
	var id int64
	query := s.rebind("INSERT INTO trainer_reviews (trainer_id, author_id, rating, comment) VALUES (?, ?, ?, ?) RETURNING id")
	err := s.db.QueryRow(query, r.TrainerID, r.AuthorID, r.Rating, r.Comment).Scan(&id)
	if err != nil {
		return 0, err
	}
	r.ID = id
	return id, nil
}

func (s *SQLStore) GetTrainerReviews(trainerID int64) ([]models.TrainerReview, error) {
	query := s.rebind(`
		SELECT id, trainer_id, author_id, rating, COALESCE(comment, ''), created_at
		FROM trainer_reviews WHERE trainer_id = ? ORDER BY created_at DESC
	`)
	rows, err := s.db.Query(query, trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.TrainerReview
	for rows.Next() {
		var r models.TrainerReview
		if err := rows.Scan(&r.ID, &r.TrainerID, &r.AuthorID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func scanTrainer(row *sql.Row) (*models.Trainer, error) {
	var t models.Trainer
	err := row.Scan(&t.ID, &t.UserID, &t.Specialty, &t.Bio, &t.HourlyRate, &t.Rating, &t.Reviews, &t.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}
