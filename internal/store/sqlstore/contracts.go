package sqlstore

import (
	"database/sql"

	"github.com/ndiaz/fitlink/internal/models"
)

func (s *SQLStore) CreateContract(c *models.Contract) (int64, error) {
	if c.Status == "" {
		c.Status = models.ContractPending
	}
	var id int64
	query := s.rebind("INSERT INTO contracts (trainer_id, client_id, status, start_date, end_date) VALUES (?, ?, ?, ?, ?) RETURNING id")
	err := s.db.QueryRow(query, c.TrainerID, c.ClientID, c.Status, c.StartDate, c.EndDate).Scan(&id)
	if err != nil {
		return 0, err
	}
	c.ID = id
	return id, nil
}

func (s *SQLStore) GetContract(id int64) (*models.Contract, error) {
	var c models.Contract
	query := s.rebind("SELECT id, trainer_id, client_id, status, start_date, end_date, created_at FROM contracts WHERE id = ?")
	err := s.db.QueryRow(query, id).Scan(&c.ID, &c.TrainerID, &c.ClientID, &c.Status, &c.StartDate, &c.EndDate, &c.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *SQLStore) UpdateContractStatus(id int64, status string) error {
	query := s.rebind("UPDATE contracts SET status = ? WHERE id = ?")
	res, err := s.db.Exec(query, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound(sql.ErrNoRows)
	}
	return nil
}

// GetContractsByUser returns contracts where the user is the client or the trainer.
func (s *SQLStore) GetContractsByUser(userID int64) ([]models.Contract, error) {
	query := s.rebind(`
		SELECT c.id, c.trainer_id, c.client_id, c.status, c.start_date, c.end_date, c.created_at
		FROM contracts c
		LEFT JOIN trainers t ON c.trainer_id = t.id
		WHERE c.client_id = ? OR t.user_id = ?
		ORDER BY c.created_at DESC
	`)
	rows, err := s.db.Query(query, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []models.Contract
	for rows.Next() {
		var c models.Contract
		if err := rows.Scan(&c.ID, &c.TrainerID, &c.ClientID, &c.Status, &c.StartDate, &c.EndDate, &c.CreatedAt); err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}
