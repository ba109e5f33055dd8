package main

import (
	"bytes"
	"html"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-playground/form/v4"
	"github.com/mabego/galeria/internal/models/mocks"
	"github.com/mabego/galeria/internal/router"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// csrfTokenRX captures the CSRF token value from a rendered form.
var csrfTokenRX = regexp.MustCompile(`<input type="hidden" name="csrf_token" value="(.+)">`)

func extractCSRFToken(t *testing.T, body string) string {
	t.Helper()

	matches := csrfTokenRX.FindStringSubmatch(body)
	if len(matches) < 2 {
		t.Fatal("no csrf token found in body")
	}

	return html.UnescapeString(matches[1])
}

// newTestApplication creates an instance of the application struct with mock data.
func newTestApplication(t *testing.T) (*application, *mocks.ItemModel) {
	t.Helper()

	templateCache, err := newTemplateCache()
	require.NoError(t, err)

	sessionManager := scs.New()
	sessionManager.Lifetime = 12 * time.Hour
	sessionManager.Cookie.Secure = true

	items := &mocks.ItemModel{}

	return &application{
		logger:         zap.NewNop(),
		admins:         &mocks.AdminModel{},
		items:          items,
		site:           router.Site(),
		templateCache:  templateCache,
		formDecoder:    form.NewDecoder(),
		sessionManager: sessionManager,
	}, items
}

// A custom testServer type that embeds an httptest.Server instance.
type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	t.Helper()

	ts := httptest.NewTLSServer(h)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	// Response cookies are stored and sent with later requests from the test server client.
	ts.Client().Jar = jar

	// Return redirects to the test instead of following them.
	ts.Client().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &testServer{ts}
}

// get makes a GET request to a given url path using the test server client and returns the response
// status code, headers, and body.
func (ts *testServer) get(t *testing.T, urlPath string) (int, http.Header, string) {
	t.Helper()

	rs, err := ts.Client().Get(ts.URL + urlPath)
	require.NoError(t, err)
	defer rs.Body.Close()

	body, err := io.ReadAll(rs.Body)
	require.NoError(t, err)

	return rs.StatusCode, rs.Header, string(bytes.TrimSpace(body))
}

// postForm sends POST requests to the test server.
func (ts *testServer) postForm(t *testing.T, urlPath string, form url.Values) (int, http.Header, string) {
	t.Helper()

	rs, err := ts.Client().PostForm(ts.URL+urlPath, form)
	require.NoError(t, err)
	defer rs.Body.Close()

	body, err := io.ReadAll(rs.Body)
	require.NoError(t, err)

	return rs.StatusCode, rs.Header, string(bytes.TrimSpace(body))
}

// login signs the test client in as the mock admin and returns a fresh CSRF token.
func (ts *testServer) login(t *testing.T) string {
	t.Helper()

	_, _, body := ts.get(t, "/admin/login")
	csrfToken := extractCSRFToken(t, body)

	form := url.Values{}
	form.Add("email", "admin@example.com")
	form.Add("password", "pa$$word")
	form.Add("csrf_token", csrfToken)

	code, headers, _ := ts.postForm(t, "/admin/login", form)
	require.Equal(t, http.StatusSeeOther, code)
	require.Equal(t, "/admin", headers.Get("Location"))

	_, _, body = ts.get(t, "/admin")
	return extractCSRFToken(t, body)
}
