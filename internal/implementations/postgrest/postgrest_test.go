package postgrest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"waitlist/internal/core/domain/waitlist"

	"github.com/stretchr/testify/require"
)

const (
	API_KEY = "test-anon-key"
	EMAIL   = waitlist.Email("a@b.com")
)

func newRepository(t *testing.T, handler http.HandlerFunc) *Repository {
	return newRepositoryWithRepresentation(t, handler, true)
}

func newRepositoryWithRepresentation(t *testing.T, handler http.HandlerFunc, returnRepresentation bool) *Repository {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	baseURL, err := url.Parse(server.URL)
	require.Nil(t, err)
	return New(*baseURL, API_KEY, time.Second, returnRepresentation)
}

func TestInsertMinimalSuccessWithoutBody(t *testing.T) {
	var gotPrefer string
	repo := newRepositoryWithRepresentation(t, func(rw http.ResponseWriter, r *http.Request) {
		gotPrefer = r.Header.Get("Prefer")
		rw.WriteHeader(http.StatusCreated)
	}, false)

	rec, err := repo.Insert(context.Background(), EMAIL)

	assert := require.New(t)
	assert.Nil(err)
	assert.Equal("return=minimal", gotPrefer)
	assert.Equal(waitlist.Record{Email: EMAIL}, rec)
}

// An insert-only row level security policy rejects reading the row back.
func TestInsertMinimalOnInsertOnlyTable(t *testing.T) {
	repo := newRepositoryWithRepresentation(t, func(rw http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Prefer") == "return=representation" {
			rw.WriteHeader(http.StatusUnauthorized)
			rw.Write([]byte(`{"code": "42501", "message": "new row violates row-level security policy for table \"waitlist\""}`))
			return
		}
		rw.WriteHeader(http.StatusCreated)
	}, false)

	_, err := repo.Insert(context.Background(), EMAIL)

	require.Nil(t, err)
}

func TestInsertMinimalDuplicate(t *testing.T) {
	repo := newRepositoryWithRepresentation(t, func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusConflict)
		rw.Write([]byte(`{"code": "23505", "message": "duplicate key value violates unique constraint \"waitlist_email_key\""}`))
	}, false)

	_, err := repo.Insert(context.Background(), EMAIL)

	require.True(t, errors.Is(err, waitlist.ErrEmailAlreadyExists))
}

func TestInsertSuccess(t *testing.T) {
	var (
		gotPath    string
		gotHeaders http.Header
		gotBody    []map[string]string
	)
	repo := newRepository(t, func(rw http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeaders = r.Header.Clone()
		json.NewDecoder(r.Body).Decode(&gotBody)
		rw.WriteHeader(http.StatusCreated)
		rw.Write([]byte(`[{"id": 7, "email": "a@b.com", "created_at": "2026-10-18T09:30:00.123456+00:00"}]`))
	})

	rec, err := repo.Insert(context.Background(), EMAIL)

	assert := require.New(t)
	assert.Nil(err)
	assert.Equal("/rest/v1/waitlist", gotPath)
	assert.Equal(API_KEY, gotHeaders.Get("apikey"))
	assert.Equal("Bearer "+API_KEY, gotHeaders.Get("Authorization"))
	assert.Equal("return=representation", gotHeaders.Get("Prefer"))
	assert.Equal([]map[string]string{{"email": "a@b.com"}}, gotBody)
	assert.Equal(waitlist.ID(7), rec.ID)
	assert.Equal(EMAIL, rec.Email)
	assert.Equal(time.Date(2026, 10, 18, 9, 30, 0, 123456000, time.UTC), rec.CreatedAt)
}

func TestInsertDuplicate(t *testing.T) {
	repo := newRepository(t, func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusConflict)
		rw.Write([]byte(`{"code": "23505", "details": "Key (email)=(a@b.com) already exists.", "hint": null, "message": "duplicate key value violates unique constraint \"waitlist_email_key\""}`))
	})

	_, err := repo.Insert(context.Background(), EMAIL)

	assert := require.New(t)
	assert.True(errors.Is(err, waitlist.ErrEmailAlreadyExists))
	assert.Equal(`duplicate key value violates unique constraint "waitlist_email_key"`, err.Error())
}

func TestInsertFailures(t *testing.T) {
	cases := []struct {
		id       string
		status   int
		body     string
		expected string
	}{
		{
			id:       "postgrest error",
			status:   http.StatusNotFound,
			body:     `{"code": "42P01", "message": "relation \"public.waitlist\" does not exist"}`,
			expected: `relation "public.waitlist" does not exist`,
		},
		{
			id:       "unstructured error",
			status:   http.StatusBadGateway,
			body:     `upstream unavailable`,
			expected: "got unsuccessful response from store (502): upstream unavailable",
		},
		{
			id:       "unexpected row count",
			status:   http.StatusCreated,
			body:     `[]`,
			expected: "store returned 0 rows for a single insert",
		},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			repo := newRepository(t, func(rw http.ResponseWriter, r *http.Request) {
				rw.WriteHeader(testcase.status)
				rw.Write([]byte(testcase.body))
			})

			_, err := repo.Insert(context.Background(), EMAIL)

			assert := require.New(t)
			assert.NotNil(err)
			assert.False(errors.Is(err, waitlist.ErrEmailAlreadyExists))
			assert.Equal(testcase.expected, err.Error())
		})
	}
}

func TestInsertTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)
	baseURL, err := url.Parse(server.URL)
	require.Nil(t, err)
	repo := New(*baseURL, API_KEY, 20*time.Millisecond, false)

	_, err = repo.Insert(context.Background(), EMAIL)

	require.NotNil(t, err)
}
