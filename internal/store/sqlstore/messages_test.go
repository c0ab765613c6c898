package sqlstore

import "testing"

func TestSaveMessage(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	user := createTestUser(t, "alice", "alice@example.com")
	group := createTestGroup(t, "Runners", user.ID)

	msg, err := testStore.SaveMessage(group.ID, user.ID, "Hello")
	if err != nil {
		t.Fatalf("SaveMessage failed: %v", err)
	}
	if msg.ID == 0 {
		t.Error("Expected non-zero message ID")
	}
	if msg.SenderName != "alice" {
		t.Errorf("Expected sender name 'alice', got '%s'", msg.SenderName)
	}

	messages, err := testStore.GetGroupMessages(group.ID)
	if err != nil {
		t.Fatalf("GetGroupMessages failed: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}
	if messages[0].Content != "Hello" {
		t.Errorf("Expected content 'Hello', got '%s'", messages[0].Content)
	}
}

func TestMessageOrdering(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	user := createTestUser(t, "alice", "alice@example.com")
	group := createTestGroup(t, "Runners", user.ID)

	for _, content := range []string{"first", "second", "third"} {
		if _, err := testStore.SaveMessage(group.ID, user.ID, content); err != nil {
			t.Fatalf("SaveMessage failed: %v", err)
		}
	}

	messages, err := testStore.GetGroupMessages(group.ID)
	if err != nil {
		t.Fatalf("GetGroupMessages failed: %v", err)
	}
	want := []string{"first", "second", "third"}
	if len(messages) != len(want) {
		t.Fatalf("Expected %d messages, got %d", len(want), len(messages))
	}
	for i, content := range want {
		if messages[i].Content != content {
			t.Errorf("Expected message %d to be %q, got %q", i, content, messages[i].Content)
		}
	}
}

func TestAppendGroupMessage(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	user := createTestUser(t, "alice", "alice@example.com")
	group := createTestGroup(t, "Runners", user.ID)
	msg, _ := testStore.SaveMessage(group.ID, user.ID, "Hello")

	if err := testStore.AppendGroupMessage(group.ID, msg.ID); err != nil {
		t.Fatalf("AppendGroupMessage failed: %v", err)
	}
	// Appending the same reference twice is a no-op.
	if err := testStore.AppendGroupMessage(group.ID, msg.ID); err != nil {
		t.Fatalf("AppendGroupMessage (duplicate) failed: %v", err)
	}
}
