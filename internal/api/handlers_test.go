package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reputation-bot/internal/features/reputation"
)

type fakeLister struct {
	records []reputation.Reputation
	err     error
}

func (f *fakeLister) List(_ context.Context) ([]reputation.Reputation, error) {
	return f.records, f.err
}

func doRequest(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func TestListReputations(t *testing.T) {
	srv := NewServer(&fakeLister{records: []reputation.Reputation{
		{ID: 3, TelegramID: "103", UserName: "carol", UserAvatar: "http://a/3.jpg", FullName: "Carol C", Reputation: 5},
		{ID: 1, TelegramID: "101", UserName: "alice", UserAvatar: "", FullName: "Alice A", Reputation: 3},
		{ID: 2, TelegramID: "102", UserName: "bob", UserAvatar: "", FullName: "Bob B", Reputation: 1},
	}}, 8080)

	rec := doRequest(t, srv, "/reputations")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"id":3,"telegramId":"103","userName":"carol","userAvatar":"http://a/3.jpg","fullName":"Carol C","reputation":5},
		{"id":1,"telegramId":"101","userName":"alice","userAvatar":"","fullName":"Alice A","reputation":3},
		{"id":2,"telegramId":"102","userName":"bob","userAvatar":"","fullName":"Bob B","reputation":1}
	]`, rec.Body.String())
}

func TestListReputations_Empty(t *testing.T) {
	srv := NewServer(&fakeLister{}, 8080)

	rec := doRequest(t, srv, "/reputations")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListReputations_StoreFailure(t *testing.T) {
	srv := NewServer(&fakeLister{err: errors.New("база недоступна")}, 8080)

	rec := doRequest(t, srv, "/reputations")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLiveness(t *testing.T) {
	srv := NewServer(&fakeLister{}, 8080)

	rec := doRequest(t, srv, "/health/live")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
