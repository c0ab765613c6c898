package sqlstore

import (
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ndiaz/fitlink/internal/models"
)

var testStore *SQLStore

func SetupTestDB(t *testing.T) {
	var err error
	testStore, err = New("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
}

func TeardownTestDB() {
	testStore.db.Close()
}

func createTestUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "hashed"}
	if err := testStore.CreateUser(user); err != nil {
		t.Fatalf("Failed to create user %s: %v", name, err)
	}
	return user
}

func createTestGroup(t *testing.T, name string, organizerID int64) *models.Group {
	t.Helper()
	group := &models.Group{Name: name, Location: "Berlin", OrganizerID: organizerID}
	if _, err := testStore.CreateGroup(group); err != nil {
		t.Fatalf("Failed to create group %s: %v", name, err)
	}
	return group
}
