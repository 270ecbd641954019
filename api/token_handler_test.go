package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/uxrlabs/uxr-tracker-backend/models"
)

type fakeTokenStore struct {
	tokens map[string]*models.ApiToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*models.ApiToken{}}
}

func (s *fakeTokenStore) FindAll() ([]*models.ApiToken, error) {
	out := make([]*models.ApiToken, 0, len(s.tokens))
	for _, t := range s.tokens {
		out = append(out, t)
	}
	return out, nil
}

func (s *fakeTokenStore) Upsert(service, tokenValue string) (*models.ApiToken, error) {
	if existing, ok := s.tokens[service]; ok {
		existing.Token = tokenValue
		existing.IsActive = true
		return existing, nil
	}
	token := &models.ApiToken{
		ID:       uuid.New(),
		Service:  service,
		Token:    tokenValue,
		IsActive: true,
	}
	s.tokens[service] = token
	return token, nil
}

func TestGetTokens_RedactsSecrets(t *testing.T) {
	store := newFakeTokenStore()
	store.tokens[models.ServiceQualtrics] = &models.ApiToken{
		ID:       uuid.New(),
		Service:  models.ServiceQualtrics,
		Token:    "qualtrics-secret-ABCD",
		IsActive: true,
	}
	handler := newTokenHandler(store)

	rec := httptest.NewRecorder()
	handler.getTokens().ServeHTTP(rec, httptest.NewRequest("GET", "/tokens", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp TokenCollection
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response parse failed: %v", err)
	}
	if len(resp.Tokens) != 1 {
		t.Fatalf("expected 1 token, got %d", len(resp.Tokens))
	}
	if resp.Tokens[0].Token != "***ABCD" {
		t.Errorf("expected redacted token ***ABCD, got %q", resp.Tokens[0].Token)
	}
	if strings.Contains(rec.Body.String(), "qualtrics-secret") {
		t.Error("response must never carry the full secret")
	}
	if !resp.Tokens[0].IsActive || resp.Tokens[0].Service != models.ServiceQualtrics {
		t.Errorf("unexpected token view: %+v", resp.Tokens[0])
	}
}

func TestUpsertToken_StoresAndRedacts(t *testing.T) {
	store := newFakeTokenStore()
	handler := newTokenHandler(store)

	body, _ := json.Marshal(tokenRequest{Service: models.ServiceGreatQuestion, Token: "gq-secret-WXYZ"})
	rec := httptest.NewRecorder()
	handler.upsertToken().ServeHTTP(rec, httptest.NewRequest("POST", "/tokens", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var view TokenView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("response parse failed: %v", err)
	}
	if view.Token != "***WXYZ" {
		t.Errorf("expected redacted token ***WXYZ, got %q", view.Token)
	}
	if strings.Contains(rec.Body.String(), "gq-secret") {
		t.Error("response must never carry the full secret")
	}
	// The stored row keeps the full value for client calls.
	if store.tokens[models.ServiceGreatQuestion].Token != "gq-secret-WXYZ" {
		t.Errorf("store should keep the full secret, got %q", store.tokens[models.ServiceGreatQuestion].Token)
	}

	// Replacing the token for the same service reuses the row.
	body, _ = json.Marshal(tokenRequest{Service: models.ServiceGreatQuestion, Token: "gq-rotated-1234"})
	rec = httptest.NewRecorder()
	handler.upsertToken().ServeHTTP(rec, httptest.NewRequest("POST", "/tokens", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on rotation, got %d", rec.Code)
	}
	if len(store.tokens) != 1 {
		t.Errorf("rotation must not create a second row, got %d", len(store.tokens))
	}
}

func TestUpsertToken_Validation(t *testing.T) {
	handler := newTokenHandler(newFakeTokenStore())

	cases := []tokenRequest{
		{Service: "surveymonkey", Token: "x"},
		{Service: models.ServiceQualtrics, Token: ""},
	}
	for _, c := range cases {
		body, _ := json.Marshal(c)
		rec := httptest.NewRecorder()
		handler.upsertToken().ServeHTTP(rec, httptest.NewRequest("POST", "/tokens", bytes.NewReader(body)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%+v: expected 400, got %d", c, rec.Code)
		}
	}
}

func TestRedactToken_ShortValues(t *testing.T) {
	short := redactToken(&models.ApiToken{ID: uuid.New(), Token: "abc"})
	if short.Token != "***abc" {
		t.Errorf("short token: expected ***abc, got %q", short.Token)
	}
	empty := redactToken(&models.ApiToken{ID: uuid.New()})
	if empty.Token != "" {
		t.Errorf("empty token should stay empty, got %q", empty.Token)
	}
}
