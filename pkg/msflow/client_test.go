package msflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sitelog/sitelog/pkg/msauth"
	"github.com/sitelog/sitelog/pkg/timesheet"
)

type plainProvider struct{}

func (plainProvider) Token(ctx context.Context) (msauth.Token, error) {
	return msauth.Token{DisplayName: "Alex Mason", AccessToken: "token"}, nil
}

func (plainProvider) Client(ctx context.Context) (*http.Client, error) {
	return http.DefaultClient, nil
}

func TestFetchReferenceDataMergesManagersAndAdmins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Managers": ["Jane Smith", "Bob Jones"],
			"Admins": ["Alex Mason"],
			"Plants": ["Excavator"],
			"Projects": ["JSBHQ", "Riverside"]
		}`))
	}))
	defer server.Close()

	client := NewClient(plainProvider{}, server.URL, server.URL)
	data, err := client.FetchReferenceData(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"Jane Smith", "Bob Jones", "Alex Mason"}, data.Employees)
	assert.Equal(t, []string{"Excavator"}, data.Plant)
	assert.Equal(t, []string{"JSBHQ", "Riverside"}, data.Sites)
	assert.Equal(t, []string{"Alex Mason"}, data.Admins)
}

func TestFetchReferenceDataReportsBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "flow disabled", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(plainProvider{}, server.URL, server.URL)
	_, err := client.FetchReferenceData(context.Background())

	assert.ErrorContains(t, err, "unexpected status 502")
}

func TestSubmitPostsPayload(t *testing.T) {
	var received timesheet.Payload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewClient(plainProvider{}, server.URL, server.URL)
	payload := timesheet.Payload{
		Details: []any{"Alex Mason", float64(19768), "JSBHQ", "", "Poured slab"},
		Plants:  [][]any{{"Excavator", "Trenching"}},
	}

	assert.NoError(t, client.Submit(context.Background(), payload))
	assert.Equal(t, "Alex Mason", received.Details[0])
	assert.Equal(t, [][]any{{"Excavator", "Trenching"}}, received.Plants)
}

func TestSubmitReportsBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(plainProvider{}, server.URL, server.URL)
	err := client.Submit(context.Background(), timesheet.Payload{})

	assert.ErrorContains(t, err, "unexpected status 429")
}
