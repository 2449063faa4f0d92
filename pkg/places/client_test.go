package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextSearch_SendsRequestAndParsesResponse(t *testing.T) {
	var gotKey, gotMask string
	var gotBody textSearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Goog-Api-Key")
		gotMask = r.Header.Get("X-Goog-FieldMask")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{
			"places": [{
				"id": "abc123",
				"displayName": {"text": "Joe's Cafe"},
				"formattedAddress": "12 Main Street, Dublin",
				"internationalPhoneNumber": "+353 1 234 5678",
				"websiteUri": "https://joescafe.ie",
				"rating": 4.6,
				"primaryType": "cafe",
				"location": {"latitude": 53.35, "longitude": -6.26}
			}],
			"nextPageToken": "page-2"
		}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := c.TextSearch(context.Background(), "cafe in Dublin", "prev-token")

	require.NoError(t, err)
	assert.Equal(t, "test-key", gotKey)
	assert.Contains(t, gotMask, "places.displayName")
	assert.Equal(t, "cafe in Dublin", gotBody.TextQuery)
	assert.Equal(t, "prev-token", gotBody.PageToken)

	require.Len(t, resp.Places, 1)
	p := resp.Places[0]
	assert.Equal(t, "Joe's Cafe", p.DisplayName.Text)
	assert.Equal(t, "+353 1 234 5678", p.Phone())
	assert.Equal(t, 4.6, p.Rating)
	assert.Equal(t, 53.35, p.Location.Latitude)
	assert.Equal(t, "page-2", resp.NextPageToken)
}

func TestTextSearch_RetriesTransientStatus(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"places":[]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := c.TextSearch(context.Background(), "cafe in Dublin", "")

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestTextSearch_PermanentErrorNotRetried(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		http.Error(w, "bad field mask", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := c.TextSearch(context.Background(), "cafe in Dublin", "")

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestPlacePhone_PrefersInternational(t *testing.T) {
	p := Place{NationalPhoneNumber: "01 234 5678", InternationalPhoneNumber: "+353 1 234 5678"}
	assert.Equal(t, "+353 1 234 5678", p.Phone())

	p.InternationalPhoneNumber = ""
	assert.Equal(t, "01 234 5678", p.Phone())
}
