package models

import "time"

type User struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	DisplayName string     `json:"displayName,omitempty"`
	Email       string     `json:"email"`
	Password    string     `json:"-"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"createdAt"`
	DeletedAt   *time.Time `json:"-"`
}

const (
	RoleUser    = "user"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"
)

type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Sport       string    `json:"sport,omitempty"`
	Activity    string    `json:"activity,omitempty"`
	Location    string    `json:"location"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	OrganizerID int64     `json:"organizerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Message struct {
	ID         int64     `json:"id"`
	GroupID    int64     `json:"groupId"`
	SenderID   int64     `json:"senderId"`
	SenderName string    `json:"senderName,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Trainer struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	Specialty  string    `json:"specialty"`
	Bio        string    `json:"bio,omitempty"`
	HourlyRate float64   `json:"hourlyRate"`
	Rating     float64   `json:"rating"`
	Reviews    int       `json:"reviews"`
	CreatedAt  time.Time `json:"createdAt"`
}

type TrainerReview struct {
	ID        int64     `json:"id"`
	TrainerID int64     `json:"trainerId"`
	AuthorID  int64     `json:"authorId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Contract statuses. A contract starts out pending; the trainer accepts or
// declines it, and an accepted contract ends as completed or cancelled.
const (
	ContractPending   = "pending"
	ContractAccepted  = "accepted"
	ContractDeclined  = "declined"
	ContractCompleted = "completed"
	ContractCancelled = "cancelled"
)

type Contract struct {
	ID        int64     `json:"id"`
	TrainerID int64     `json:"trainerId"`
	ClientID  int64     `json:"clientId"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
}

type Workout struct {
	ID              int64     `json:"id"`
	CreatorID       int64     `json:"creatorId"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	DurationMinutes int       `json:"durationMinutes"`
	Intensity       string    `json:"intensity,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	PerformedAt     time.Time `json:"performedAt"`
	CreatedAt       time.Time `json:"createdAt"`
}

type OverviewStats struct {
	Users     int64            `json:"users"`
	Groups    int64            `json:"groups"`
	Messages  int64            `json:"messages"`
	Workouts  int64            `json:"workouts"`
	Contracts int64            `json:"contracts"`
	ByType    map[string]int64 `json:"workoutsByType"`
}

type UserStats struct {
	Workouts     int64            `json:"workouts"`
	TotalMinutes int64            `json:"totalMinutes"`
	Groups       int64            `json:"groups"`
	Messages     int64            `json:"messages"`
	ByType       map[string]int64 `json:"workoutsByType"`
}
