package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/uxrlabs/uxr-tracker-backend/models"
)

type fakeUserStore struct {
	users map[uuid.UUID]*models.User
}

func (s *fakeUserStore) FindByID(id uuid.UUID) (*models.User, error) {
	return s.users[id], nil
}

func (s *fakeUserStore) FindByEmail(email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func testAuthSetup(t *testing.T, role string) (*JWTService, *fakeUserStore, models.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	user := models.User{
		ID:       uuid.New(),
		Email:    "admin@uxr.team",
		Password: string(hash),
		Name:     "UXR Admin",
		Role:     role,
	}
	store := &fakeUserStore{users: map[uuid.UUID]*models.User{user.ID: &user}}
	return NewJWTService([]byte("test-secret"), time.Hour), store, user
}

func protectedEcho(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			t.Errorf("user missing from context: %v", err)
		}
		if !user.IsAdmin() {
			t.Error("only admins should reach the handler")
		}
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuthMiddleware_RejectsMissingToken(t *testing.T) {
	jwtService, store, _ := testAuthSetup(t, models.RoleAdmin)
	mw := newAuthMiddleware(store, jwtService)

	handler := mw.authenticate(protectedEcho(t))

	for _, header := range []string{"", "Basic abc", "Bearer not.a.token"} {
		req := httptest.NewRequest("GET", "/projects", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuthMiddleware_RejectsNonAdmin(t *testing.T) {
	jwtService, store, viewer := testAuthSetup(t, models.RoleViewer)
	mw := newAuthMiddleware(store, jwtService)

	token, err := jwtService.GenerateToken(viewer)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw.authenticate(protectedEcho(t)).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("viewer token: expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RejectsDeletedUser(t *testing.T) {
	jwtService, store, admin := testAuthSetup(t, models.RoleAdmin)
	mw := newAuthMiddleware(store, jwtService)

	token, err := jwtService.GenerateToken(admin)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	delete(store.users, admin.ID)

	req := httptest.NewRequest("GET", "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw.authenticate(protectedEcho(t)).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("deleted user: expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_AdminPassesThrough(t *testing.T) {
	jwtService, store, admin := testAuthSetup(t, models.RoleAdmin)
	mw := newAuthMiddleware(store, jwtService)

	token, err := jwtService.GenerateToken(admin)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw.authenticate(protectedEcho(t)).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("admin token: expected 200, got %d", rec.Code)
	}
}

func TestLogin_Succeeds(t *testing.T) {
	jwtService, store, admin := testAuthSetup(t, models.RoleAdmin)
	handler := newAuthHandler(store, jwtService)

	body, _ := json.Marshal(loginRequest{Email: admin.Email, Password: "correct horse"})
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.login().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response parse failed: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}
	if resp.User.Email != admin.Email {
		t.Errorf("unexpected user: %+v", resp.User)
	}

	claims, err := jwtService.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token should validate: %v", err)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("expected admin role claim, got %s", claims.Role)
	}
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	jwtService, store, admin := testAuthSetup(t, models.RoleAdmin)
	handler := newAuthHandler(store, jwtService)

	cases := []loginRequest{
		{Email: admin.Email, Password: "wrong"},
		{Email: "nobody@uxr.team", Password: "correct horse"},
	}
	for _, c := range cases {
		body, _ := json.Marshal(c)
		rec := httptest.NewRecorder()
		handler.login().ServeHTTP(rec, httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body)))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", c.Email, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.login().ServeHTTP(rec, httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte(`{}`))))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty credentials: expected 400, got %d", rec.Code)
	}
}
