package sqlstore

import (
	"testing"
	"time"

	"github.com/ndiaz/fitlink/internal/models"
	"github.com/ndiaz/fitlink/internal/store"
)

func createTestTrainer(t *testing.T, userID int64) *models.Trainer {
	t.Helper()
	trainer := &models.Trainer{UserID: userID, Specialty: "strength", HourlyRate: 40}
	if _, err := testStore.CreateTrainer(trainer); err != nil {
		t.Fatalf("CreateTrainer failed: %v", err)
	}
	return trainer
}

func TestTrainerReviews(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	coach := createTestUser(t, "coach", "coach@example.com")
	client := createTestUser(t, "client", "client@example.com")
	trainer := createTestTrainer(t, coach.ID)

	for _, rating := range []int{5, 3} {
		review := &models.TrainerReview{TrainerID: trainer.ID, AuthorID: client.ID, Rating: rating}
		if _, err := testStore.AddTrainerReview(review); err != nil {
			t.Fatalf("AddTrainerReview failed: %v", err)
		}
	}

	got, err := testStore.GetTrainer(trainer.ID)
	if err != nil {
		t.Fatalf("GetTrainer failed: %v", err)
	}
	if got.Reviews != 2 {
		t.Errorf("Expected 2 reviews, got %d", got.Reviews)
	}
	if got.Rating != 4 {
		t.Errorf("Expected average rating 4, got %v", got.Rating)
	}

	reviews, err := testStore.GetTrainerReviews(trainer.ID)
	if err != nil {
		t.Fatalf("GetTrainerReviews failed: %v", err)
	}
	if len(reviews) != 2 {
		t.Errorf("Expected 2 reviews, got %d", len(reviews))
	}
}

func TestListTrainersBySpecialty(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	u1 := createTestUser(t, "coach1", "coach1@example.com")
	u2 := createTestUser(t, "coach2", "coach2@example.com")
	createTestTrainer(t, u1.ID)
	testStore.CreateTrainer(&models.Trainer{UserID: u2.ID, Specialty: "yoga"})

	trainers, err := testStore.ListTrainers("yoga")
	if err != nil {
		t.Fatalf("ListTrainers failed: %v", err)
	}
	if len(trainers) != 1 || trainers[0].Specialty != "yoga" {
		t.Errorf("Expected 1 yoga trainer, got %v", trainers)
	}

	all, _ := testStore.ListTrainers("")
	if len(all) != 2 {
		t.Errorf("Expected 2 trainers, got %d", len(all))
	}
}

func TestContractLifecycle(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	coach := createTestUser(t, "coach", "coach@example.com")
	client := createTestUser(t, "client", "client@example.com")
	trainer := createTestTrainer(t, coach.ID)

	contract := &models.Contract{
		TrainerID: trainer.ID,
		ClientID:  client.ID,
		StartDate: time.Now().UTC(),
		EndDate:   time.Now().UTC().Add(30 * 24 * time.Hour),
	}
	if _, err := testStore.CreateContract(contract); err != nil {
		t.Fatalf("CreateContract failed: %v", err)
	}
	if contract.Status != models.ContractPending {
		t.Errorf("Expected pending status, got %s", contract.Status)
	}

	if err := testStore.UpdateContractStatus(contract.ID, models.ContractAccepted); err != nil {
		t.Fatalf("UpdateContractStatus failed: %v", err)
	}

	got, err := testStore.GetContract(contract.ID)
	if err != nil {
		t.Fatalf("GetContract failed: %v", err)
	}
	if got.Status != models.ContractAccepted {
		t.Errorf("Expected accepted status, got %s", got.Status)
	}

	// Both parties see the contract.
	for _, userID := range []int64{coach.ID, client.ID} {
		contracts, err := testStore.GetContractsByUser(userID)
		if err != nil {
			t.Fatalf("GetContractsByUser failed: %v", err)
		}
		if len(contracts) != 1 {
			t.Errorf("Expected 1 contract for user %d, got %d", userID, len(contracts))
		}
	}
}

func TestWorkoutCRUD(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	user := createTestUser(t, "alice", "alice@example.com")

	workout := &models.Workout{
		CreatorID:       user.ID,
		Name:            "Intervals",
		Type:            "cardio",
		DurationMinutes: 45,
		PerformedAt:     time.Now().UTC(),
	}
	if _, err := testStore.CreateWorkout(workout); err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}

	workout.DurationMinutes = 50
	if err := testStore.UpdateWorkout(workout); err != nil {
		t.Fatalf("UpdateWorkout failed: %v", err)
	}

	got, err := testStore.GetWorkout(workout.ID)
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	if got.DurationMinutes != 50 {
		t.Errorf("Expected duration 50, got %d", got.DurationMinutes)
	}

	workouts, err := testStore.ListWorkouts(store.WorkoutFilter{CreatorID: user.ID, Type: "cardio"})
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(workouts) != 1 {
		t.Errorf("Expected 1 workout, got %d", len(workouts))
	}

	if err := testStore.DeleteWorkout(workout.ID); err != nil {
		t.Fatalf("DeleteWorkout failed: %v", err)
	}
	if _, err := testStore.GetWorkout(workout.ID); err == nil {
		t.Error("Expected error after delete, got nil")
	}
}

func TestStats(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	user := createTestUser(t, "alice", "alice@example.com")
	group := createTestGroup(t, "Runners", user.ID)
	testStore.AddGroupMember(group.ID, user.ID)
	testStore.SaveMessage(group.ID, user.ID, "hi")
	testStore.CreateWorkout(&models.Workout{CreatorID: user.ID, Name: "Run", Type: "cardio", DurationMinutes: 30, PerformedAt: time.Now().UTC()})
	testStore.CreateWorkout(&models.Workout{CreatorID: user.ID, Name: "Squats", Type: "strength", DurationMinutes: 20, PerformedAt: time.Now().UTC()})

	overview, err := testStore.OverviewStats()
	if err != nil {
		t.Fatalf("OverviewStats failed: %v", err)
	}
	if overview.Users != 1 || overview.Groups != 1 || overview.Messages != 1 || overview.Workouts != 2 {
		t.Errorf("Unexpected overview: %+v", overview)
	}
	if overview.ByType["cardio"] != 1 || overview.ByType["strength"] != 1 {
		t.Errorf("Unexpected workout type counts: %v", overview.ByType)
	}

	userStats, err := testStore.UserStats(user.ID)
	if err != nil {
		t.Fatalf("UserStats failed: %v", err)
	}
	if userStats.Workouts != 2 || userStats.TotalMinutes != 50 || userStats.Groups != 1 || userStats.Messages != 1 {
		t.Errorf("Unexpected user stats: %+v", userStats)
	}
}
