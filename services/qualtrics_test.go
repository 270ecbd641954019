package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/uxrlabs/uxr-tracker-backend/errs"
)

func TestQualtricsClient_ListProjects(t *testing.T) {
	var gotToken, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-API-TOKEN")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":{"elements":[
			{"id":"SV_123","name":"Onboarding survey","creationDate":"2025-01-15T10:00:00Z"},
			{"id":"SV_456","name":"Pricing survey","creationDate":"not-a-date"}
		],"nextPage":null}}`))
	}))
	defer server.Close()

	client := NewQualtricsClient("secret-token", server.URL)
	projects, err := client.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}

	if gotToken != "secret-token" {
		t.Errorf("expected X-API-TOKEN header, got %q", gotToken)
	}
	if gotPath != "/API/v3/surveys" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].ID != "SV_123" || projects[0].Name != "Onboarding survey" {
		t.Errorf("unexpected first project: %+v", projects[0])
	}
	if projects[0].CreatedAt == nil {
		t.Error("valid creationDate should be parsed")
	}
	if projects[1].CreatedAt != nil {
		t.Error("unparseable creationDate should be dropped, not fail the call")
	}
}

func TestQualtricsClient_RejectedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewQualtricsClient("bad-token", server.URL)
	_, err := client.ListProjects(context.Background())
	if err == nil {
		t.Fatal("expected error for rejected token")
	}
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected ApiErr, got %T", err)
	}
}

func TestQualtricsClient_GetMetricsDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewQualtricsClient("token", server.URL)
	metrics := client.GetMetrics(context.Background(), "SV_123")
	if metrics == nil || len(metrics) != 0 {
		t.Errorf("metrics failure should degrade to empty map, got %v", metrics)
	}
	if count := client.GetParticipantCount(context.Background(), "SV_123"); count != 0 {
		t.Errorf("count failure should degrade to zero, got %d", count)
	}
}

func TestQualtricsClient_GetParticipantCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/API/v3/surveys/SV_123/response-counts" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"result":{"auditable":42,"generated":50,"deleted":8}}`))
	}))
	defer server.Close()

	client := NewQualtricsClient("token", server.URL)
	if count := client.GetParticipantCount(context.Background(), "SV_123"); count != 42 {
		t.Errorf("expected 42, got %d", count)
	}
}
