package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFetcher_StripsHTMLToText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>Joe's Cafe</title><style>body{color:red}</style></head>
<body><nav>Home | About</nav><script>track()</script>
<p>Contact us at info@joescafe.ie or call 01 234 5678.</p>
<footer>Copyright</footer></body></html>`))
	}))
	defer srv.Close()

	f := NewLocalFetcher(5*time.Second, 64)
	page, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "Joe's Cafe", page.Title)
	assert.Contains(t, page.Text, "info@joescafe.ie")
	assert.NotContains(t, page.Text, "track()")
	assert.NotContains(t, page.Text, "color:red")
	assert.NotContains(t, page.Text, "Home | About")
	assert.NotContains(t, page.Text, "Copyright")
	assert.Equal(t, "local_http", page.Channel)
}

func TestLocalFetcher_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewLocalFetcher(5*time.Second, 64)
	_, err := f.Fetch(context.Background(), srv.URL)

	assert.Error(t, err)
}

func TestLocalFetcher_BlockedPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Checking your browser before accessing the site."))
	}))
	defer srv.Close()

	f := NewLocalFetcher(5*time.Second, 64)
	_, err := f.Fetch(context.Background(), srv.URL)

	assert.Error(t, err)
}

func TestLocalFetcher_BodyLimitRespected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html><body>"))
		big := make([]byte, 10*1024)
		for i := range big {
			big[i] = 'x'
		}
		w.Write(big)
		w.Write([]byte("</body></html>"))
	}))
	defer srv.Close()

	f := NewLocalFetcher(5*time.Second, 1)
	page, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.LessOrEqual(t, len(page.Text), 1024+16)
}

func TestLocalFetcher_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	f := NewLocalFetcher(5*time.Second, 64)
	_, err := f.Fetch(ctx, srv.URL)

	assert.Error(t, err)
}
