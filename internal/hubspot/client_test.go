package hubspot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peted77/hubspot-fun/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-token",
		WithBaseURL(server.URL),
		WithCallSpacing(0),
		WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient("   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrAccessTokenRequired)
}

func TestFetchRecord(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/crm/v3/objects/contacts/1277", r.URL.Path)
		assert.Equal(t, "firstname,lastname", r.URL.Query().Get("properties"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(Record{
			ID:         "1277",
			Properties: map[string]string{"firstname": "Jane", "lastname": "Doe"},
		})
	})

	record, err := client.FetchRecord(context.Background(), ObjectTypeContacts, "1277",
		[]string{"firstname", "lastname"})
	require.NoError(t, err)
	assert.Equal(t, "1277", record.ID)
	assert.Equal(t, "Jane", record.Property(PropFirstName))
}

func TestFetchRecordNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"status":"error"}`, http.StatusNotFound)
	})

	_, err := client.FetchRecord(context.Background(), ObjectTypeContacts, "999", nil)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.False(t, errors.IsRateLimited(err))
}

func TestSearchSendsFilterGroups(t *testing.T) {
	var got SearchRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/crm/v3/objects/contacts/search", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_ = json.NewEncoder(w).Encode(searchResponse{
			Total:   1,
			Results: []Record{{ID: "55", Properties: map[string]string{"email": "jane@acme.com"}}},
		})
	})

	req := SearchRequest{
		FilterGroups: []FilterGroup{{Filters: []Filter{
			{PropertyName: PropFirstName, Operator: OperatorEQ, Value: "Jane"},
			{PropertyName: PropLastName, Operator: OperatorEQ, Value: "Doe"},
		}}},
		Properties: []string{PropEmail},
		Limit:      10,
	}

	records, err := client.Search(context.Background(), ObjectTypeContacts, req)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "55", records[0].ID)

	assert.Equal(t, req.FilterGroups, got.FilterGroups)
	assert.Equal(t, 10, got.Limit)
	assert.Empty(t, got.Query)
}

func TestSearchFreeText(t *testing.T) {
	var got SearchRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(searchResponse{})
	})

	_, err := client.Search(context.Background(), ObjectTypeContacts, SearchRequest{Query: "janedoe", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "janedoe", got.Query)
	assert.Empty(t, got.FilterGroups)
}

func TestSearchRateLimited(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"category":"RATE_LIMITS"}`, http.StatusTooManyRequests)
	})

	_, err := client.Search(context.Background(), ObjectTypeCompanies, SearchRequest{Query: "acme"})
	require.Error(t, err)
	assert.True(t, errors.IsRateLimited(err))
}

func TestUpdate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/crm/v3/objects/contacts/1277", r.URL.Path)

		var body updateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"phone": "+13053914414"}, body.Properties)

		w.WriteHeader(http.StatusOK)
	})

	err := client.Update(context.Background(), ObjectTypeContacts, "1277",
		map[string]string{"phone": "+13053914414"})
	require.NoError(t, err)
}

func TestMerge(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/crm/v3/objects/companies/merge", r.URL.Path)

		var body mergeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "100", body.PrimaryObjectID)
		assert.Equal(t, "200", body.ObjectIDToMerge)

		w.WriteHeader(http.StatusOK)
	})

	err := client.Merge(context.Background(), ObjectTypeCompanies, "100", "200")
	require.NoError(t, err)
}

func TestMergeServerErrorIsNotRetryable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	err := client.Merge(context.Background(), ObjectTypeCompanies, "100", "200")
	require.Error(t, err)
	assert.False(t, errors.IsRateLimited(err))

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "boom", apiErr.Message)
}

func TestCallSpacing(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(searchResponse{})
	})
	// Re-pace the shared limiter; the first call is free, the second
	// must wait out the spacing.
	WithCallSpacing(40 * time.Millisecond)(client)

	start := time.Now()
	_, err := client.Search(context.Background(), ObjectTypeContacts, SearchRequest{Query: "a"})
	require.NoError(t, err)
	_, err = client.Search(context.Background(), ObjectTypeContacts, SearchRequest{Query: "b"})
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}
