package sqlstore

import (
	"errors"
	"testing"

	"github.com/ndiaz/fitlink/internal/store"
)

func TestCreateAndGetGroup(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	organizer := createTestUser(t, "alice", "alice@example.com")
	group := createTestGroup(t, "Morning Runners", organizer.ID)

	got, err := testStore.GetGroup(group.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if got.Name != "Morning Runners" {
		t.Errorf("Expected name 'Morning Runners', got '%s'", got.Name)
	}
	if got.OrganizerID != organizer.ID {
		t.Errorf("Expected organizer %d, got %d", organizer.ID, got.OrganizerID)
	}

	if _, err := testStore.GetGroup(9999); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGroupMembership(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	organizer := createTestUser(t, "alice", "alice@example.com")
	member := createTestUser(t, "bob", "bob@example.com")
	group := createTestGroup(t, "Lifters", organizer.ID)

	if err := testStore.AddGroupMember(group.ID, member.ID); err != nil {
		t.Fatalf("AddGroupMember failed: %v", err)
	}
	// Adding twice must not fail.
	if err := testStore.AddGroupMember(group.ID, member.ID); err != nil {
		t.Fatalf("AddGroupMember (duplicate) failed: %v", err)
	}

	isMember, err := testStore.IsGroupMember(group.ID, member.ID)
	if err != nil {
		t.Fatalf("IsGroupMember failed: %v", err)
	}
	if !isMember {
		t.Error("Expected user to be a member")
	}

	members, err := testStore.GetGroupMembers(group.ID)
	if err != nil {
		t.Fatalf("GetGroupMembers failed: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("Expected 1 member, got %d", len(members))
	}

	groups, err := testStore.GetGroupsByMember(member.ID)
	if err != nil {
		t.Fatalf("GetGroupsByMember failed: %v", err)
	}
	if len(groups) != 1 || groups[0].ID != group.ID {
		t.Errorf("Expected member's groups to contain %d, got %v", group.ID, groups)
	}

	if err := testStore.RemoveGroupMember(group.ID, member.ID); err != nil {
		t.Fatalf("RemoveGroupMember failed: %v", err)
	}
	isMember, _ = testStore.IsGroupMember(group.ID, member.ID)
	if isMember {
		t.Error("Expected user to no longer be a member")
	}
}

func TestSearchGroups(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	organizer := createTestUser(t, "alice", "alice@example.com")
	createTestGroup(t, "Morning Runners", organizer.ID)
	createTestGroup(t, "Evening Yoga", organizer.ID)
	createTestGroup(t, "Run Club", organizer.ID)

	groups, err := testStore.SearchGroups("Run")
	if err != nil {
		t.Fatalf("SearchGroups failed: %v", err)
	}
	if len(groups) != 2 {
		t.Errorf("Expected 2 groups, got %d", len(groups))
	}
}

func TestDeleteGroup(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	organizer := createTestUser(t, "alice", "alice@example.com")
	group := createTestGroup(t, "Doomed", organizer.ID)
	testStore.AddGroupMember(group.ID, organizer.ID)
	msg, _ := testStore.SaveMessage(group.ID, organizer.ID, "bye")
	testStore.AppendGroupMessage(group.ID, msg.ID)

	if err := testStore.DeleteGroup(group.ID); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}

	if _, err := testStore.GetGroup(group.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	messages, _ := testStore.GetGroupMessages(group.ID)
	if len(messages) != 0 {
		t.Error("Expected messages to be deleted with the group")
	}
}
