package store

import (
	"errors"
	"time"

	"github.com/ndiaz/fitlink/internal/models"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// WorkoutFilter narrows ListWorkouts results. Zero values mean "any".
type WorkoutFilter struct {
	CreatorID int64
	Type      string
}

type Store interface {
	// User operations
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
	SoftDeleteUser(id int64) error
	PurgeDeletedUsers(before time.Time) (int64, error)

	// Group operations
	CreateGroup(g *models.Group) (int64, error)
	GetGroup(id int64) (*models.Group, error)
	GetAllGroups() ([]models.Group, error)
	SearchGroups(term string) ([]models.Group, error)
	UpdateGroup(g *models.Group) error
	DeleteGroup(id int64) error
	AddGroupMember(groupID, userID int64) error
	RemoveGroupMember(groupID, userID int64) error
	IsGroupMember(groupID, userID int64) (bool, error)
	GetGroupMembers(groupID int64) ([]models.User, error)
	GetGroupsByMember(userID int64) ([]models.Group, error)

	// Message operations
	SaveMessage(groupID, senderID int64, content string) (*models.Message, error)
	AppendGroupMessage(groupID, messageID int64) error
	GetGroupMessages(groupID int64) ([]models.Message, error)

	// Trainer operations
	CreateTrainer(t *models.Trainer) (int64, error)
	GetTrainer(id int64) (*models.Trainer, error)
	GetTrainerByUser(userID int64) (*models.Trainer, error)
	ListTrainers(specialty string) ([]models.Trainer, error)
	AddTrainerReview(r *models.TrainerReview) (int64, error)
	GetTrainerReviews(trainerID int64) ([]models.TrainerReview, error)

	// Contract operations
	CreateContract(c *models.Contract) (int64, error)
	GetContract(id int64) (*models.Contract, error)
	UpdateContractStatus(id int64, status string) error
	GetContractsByUser(userID int64) ([]models.Contract, error)

	// Workout operations
	CreateWorkout(w *models.Workout) (int64, error)
	GetWorkout(id int64) (*models.Workout, error)
	UpdateWorkout(w *models.Workout) error
	DeleteWorkout(id int64) error
	ListWorkouts(filter WorkoutFilter) ([]models.Workout, error)

	// Statistics
	OverviewStats() (*models.OverviewStats, error)
	UserStats(userID int64) (*models.UserStats, error)
}
