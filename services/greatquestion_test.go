package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGreatQuestionClient_ListProjects(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/v1/projects" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":[
			{"id":"proj_1","name":"Diary study","description":"Two week diary","created_at":"2025-02-01T09:00:00Z"}
		]}`))
	}))
	defer server.Close()

	client := NewGreatQuestionClient("gq-token", server.URL)
	projects, err := client.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}

	if gotAuth != "Bearer gq-token" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	p := projects[0]
	if p.ID != "proj_1" || p.Name != "Diary study" {
		t.Errorf("unexpected project: %+v", p)
	}
	if p.Description == nil || *p.Description != "Two week diary" {
		t.Errorf("unexpected description: %v", p.Description)
	}
	if p.CreatedAt == nil {
		t.Error("created_at should be parsed")
	}
}

func TestGreatQuestionClient_GetProjectPropagatesErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewGreatQuestionClient("token", server.URL)
	if _, err := client.GetProject(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for missing project")
	}
}

func TestGreatQuestionClient_ParticipantCountIsListLength(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/projects/proj_1/participants" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"a"},{"id":"b"},{"id":"c"}]}`))
	}))
	defer server.Close()

	client := NewGreatQuestionClient("token", server.URL)
	if count := client.GetParticipantCount(context.Background(), "proj_1"); count != 3 {
		t.Errorf("expected 3, got %d", count)
	}
}

func TestGreatQuestionClient_MetricsDegrade(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewGreatQuestionClient("token", server.URL)
	metrics := client.GetMetrics(context.Background(), "proj_1")
	if len(metrics) != 0 {
		t.Errorf("failed metrics fetch should degrade to empty map, got %v", metrics)
	}
}
