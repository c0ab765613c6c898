package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"

	"github.com/ndiaz/fitlink/internal/auth"
	"github.com/ndiaz/fitlink/internal/middleware"
	"github.com/ndiaz/fitlink/internal/models"
	"github.com/ndiaz/fitlink/internal/store/sqlstore"
)

func newTestTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", time.Hour)
}

func createUser(t *testing.T, store *sqlstore.SQLStore, name, email, password string) *models.User {
	t.Helper()
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	user := &models.User{Name: name, Email: email, Password: string(hashed)}
	if err := store.CreateUser(user); err != nil {
		t.Fatal(err)
	}
	return user
}

func TestSignup(t *testing.T) {
	store, err := sqlstore.New("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	handler := &AuthHandler{Store: store, Tokens: newTestTokens()}

	body, _ := json.Marshal(SignupRequest{Name: "alice", Email: "alice@example.com", Password: "password123"})

	rr := httptest.NewRecorder()
	http.HandlerFunc(handler.Signup).ServeHTTP(rr, httptest.NewRequest("POST", "/signup", bytes.NewBuffer(body)))

	if status := rr.Code; status != http.StatusCreated {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusCreated)
	}

	// Duplicate email
	rr = httptest.NewRecorder()
	http.HandlerFunc(handler.Signup).ServeHTTP(rr, httptest.NewRequest("POST", "/signup", bytes.NewBuffer(body)))

	if status := rr.Code; status != http.StatusConflict {
		t.Errorf("handler returned wrong status code for duplicate email: got %v want %v",
			status, http.StatusConflict)
	}

	// Invalid email
	bad, _ := json.Marshal(SignupRequest{Name: "bob", Email: "not-an-email", Password: "password123"})
	rr = httptest.NewRecorder()
	http.HandlerFunc(handler.Signup).ServeHTTP(rr, httptest.NewRequest("POST", "/signup", bytes.NewBuffer(bad)))

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code for invalid email: got %v want %v",
			status, http.StatusBadRequest)
	}
}

func TestLogin(t *testing.T) {
	store, _ := sqlstore.New("sqlite3", ":memory:")
	tokens := newTestTokens()
	handler := &AuthHandler{Store: store, Tokens: tokens}

	user := createUser(t, store, "alice", "alice@example.com", "password123")

	body, _ := json.Marshal(Credentials{Email: "alice@example.com", Password: "password123"})
	rr := httptest.NewRecorder()
	http.HandlerFunc(handler.Login).ServeHTTP(rr, httptest.NewRequest("POST", "/login", bytes.NewBuffer(body)))

	if status := rr.Code; status != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v",
			status, http.StatusOK)
	}

	var resp map[string]string
	json.NewDecoder(rr.Body).Decode(&resp)
	userID, err := tokens.Verify(resp["access_token"])
	if err != nil {
		t.Fatalf("Login returned an unverifiable token: %v", err)
	}
	if userID != user.ID {
		t.Errorf("Expected token for user %d, got %d", user.ID, userID)
	}

	// Wrong password
	body, _ = json.Marshal(Credentials{Email: "alice@example.com", Password: "wrong"})
	rr = httptest.NewRecorder()
	http.HandlerFunc(handler.Login).ServeHTTP(rr, httptest.NewRequest("POST", "/login", bytes.NewBuffer(body)))

	if status := rr.Code; status != http.StatusUnauthorized {
		t.Errorf("handler returned wrong status code for bad password: got %v want %v",
			status, http.StatusUnauthorized)
	}
}

func TestDeleteMe(t *testing.T) {
	store, _ := sqlstore.New("sqlite3", ":memory:")
	tokens := newTestTokens()
	handler := &AuthHandler{Store: store, Tokens: tokens}

	user := createUser(t, store, "alice", "alice@example.com", "password123")
	token, _ := tokens.Generate(user.ID, user.Email)

	req := httptest.NewRequest("DELETE", "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	middleware.Auth(tokens)(http.HandlerFunc(handler.DeleteMe)).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusNoContent {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusNoContent)
	}

	if _, err := store.GetUserByID(user.ID); err == nil {
		t.Error("Expected user lookup to fail after soft delete")
	}
}
