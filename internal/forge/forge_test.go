package forge

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDecodeTitleResponse(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantKind   ResultKind
		wantTitle  string
	}{
		{"ok", http.StatusOK, `{"title": "Fix the thing"}`, Found, "Fix the thing"},
		{"not found", http.StatusNotFound, `{}`, NotFound, ""},
		{"unauthorized", http.StatusUnauthorized, `{}`, Unauthorized, ""},
		{"server error", http.StatusInternalServerError, `oops`, Errored, ""},
		{"invalid json", http.StatusOK, `not json`, Errored, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("User-Agent") != userAgent {
					t.Errorf("expected User-Agent %q, got %q", userAgent, r.Header.Get("User-Agent"))
				}
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			// Send the request the way the clients do (github.go/bitbucket.go
			// set the User-Agent header on every API request).
			req, err := http.NewRequest(http.MethodGet, server.URL, nil)
			if err != nil {
				t.Fatal(err)
			}
			req.Header.Set("User-Agent", userAgent)
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			got := decodeTitleResponse(resp)
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
		})
	}
}

func TestAttachCredentials_SetsBasicAuthWhenLookupMatches(t *testing.T) {
	orig := lookupCredentials
	lookupCredentials = func(host string) (string, string, bool) {
		if host == "github.com" {
			return "octocat", "sekrit", true
		}
		return "", "", false
	}
	defer func() { lookupCredentials = orig }()

	req, err := http.NewRequest(http.MethodGet, "https://api.github.com/repos/a/b/pulls/1", nil)
	if err != nil {
		t.Fatal(err)
	}
	attachCredentials(req, "https://github.com/a/b/pull/1")

	user, pass, ok := req.BasicAuth()
	if !ok || user != "octocat" || pass != "sekrit" {
		t.Fatalf("BasicAuth() = (%q, %q, %v), want (octocat, sekrit, true)", user, pass, ok)
	}
}

func TestAttachCredentials_NoOpWhenLookupMisses(t *testing.T) {
	orig := lookupCredentials
	lookupCredentials = func(host string) (string, string, bool) { return "", "", false }
	defer func() { lookupCredentials = orig }()

	req, err := http.NewRequest(http.MethodGet, "https://api.github.com/repos/a/b/pulls/1", nil)
	if err != nil {
		t.Fatal(err)
	}
	attachCredentials(req, "https://github.com/a/b/pull/1")

	if _, _, ok := req.BasicAuth(); ok {
		t.Fatal("BasicAuth() set despite no matching credentials")
	}
}

func TestSelectClient(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
		wantOK    bool
	}{
		{"github two segments", "https://github.com/kalkin-go/glv", "kalkin-go", "glv", true},
		{"github too many segments", "https://github.com/kalkin-go/glv/extra", "", "", false},
		{"bitbucket server", "https://bitbucket.example.com/scm/ws/repo.git", "scm", "ws", true},
		{"unrecognized host", "https://gitlab.com/a/b", "", "", false},
		{"invalid url", "://not a url", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, owner, repo, ok := SelectClient(tt.url)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if client == nil {
				t.Error("client is nil despite ok=true")
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("owner/repo = %q/%q, want %q/%q", owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}
