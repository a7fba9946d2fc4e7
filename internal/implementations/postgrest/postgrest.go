// Package postgrest appends waitlist records through a PostgREST endpoint,
// such as the one Supabase exposes under /rest/v1.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"waitlist/internal/core/domain/waitlist"
)

const pgUniqueViolationCode = "23505"

type insertRow struct {
	Email string `json:"email"`
}

type returnedRow struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

type Repository struct {
	httpClient           http.Client
	baseURL              url.URL
	apiKey               string
	returnRepresentation bool
}

// New returns a repository that only needs INSERT permission on the table:
// the store is asked not to return the row, so the Record carries the email
// alone. With returnRepresentation the inserted row is read back, which also
// requires SELECT permission for the key.
func New(baseURL url.URL, apiKey string, timeout time.Duration, returnRepresentation bool) *Repository {
	return &Repository{
		httpClient:           http.Client{Timeout: timeout},
		baseURL:              baseURL,
		apiKey:               apiKey,
		returnRepresentation: returnRepresentation,
	}
}

func (r *Repository) Insert(ctx context.Context, email waitlist.Email) (rec waitlist.Record, err error) {
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode([]insertRow{{Email: string(email)}}); err != nil {
		return rec, err
	}

	endpoint := r.baseURL.JoinPath("rest", "v1", waitlist.TableName)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), &body)
	if err != nil {
		return rec, err
	}
	request.Header.Set("apikey", r.apiKey)
	request.Header.Set("Authorization", "Bearer "+r.apiKey)
	request.Header.Set("Content-Type", "application/json")
	if r.returnRepresentation {
		request.Header.Set("Prefer", "return=representation")
	} else {
		request.Header.Set("Prefer", "return=minimal")
	}

	resp, err := r.httpClient.Do(request)
	if err != nil {
		return rec, err
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return rec, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return rec, decodeError(email, resp.StatusCode, content)
	}

	if !r.returnRepresentation {
		return waitlist.Record{Email: email}, nil
	}

	rows := []returnedRow{}
	if err := json.Unmarshal(content, &rows); err != nil {
		return rec, fmt.Errorf("could not decode store response: %w", err)
	}
	if len(rows) != 1 {
		return rec, fmt.Errorf("store returned %d rows for a single insert", len(rows))
	}
	return waitlist.Record{
		ID:        waitlist.ID(rows[0].ID),
		Email:     waitlist.Email(rows[0].Email),
		CreatedAt: rows[0].CreatedAt.UTC(),
	}, nil
}

func decodeError(email waitlist.Email, status int, content []byte) error {
	apiErr := apiError{}
	if err := json.Unmarshal(content, &apiErr); err != nil || apiErr.Message == "" {
		return fmt.Errorf("got unsuccessful response from store (%d): %s", status, string(content))
	}
	if apiErr.Code == pgUniqueViolationCode || status == http.StatusConflict {
		return &waitlist.EmailAlreadyExistsError{Email: email, Cause: apiErr.Message}
	}
	return errors.New(apiErr.Message)
}
