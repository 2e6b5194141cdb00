// Package forge implements the code-forge PR-title HTTP clients described
// in spec.md §4.3/§6. The status-code handling (200 with JSON decode, 404,
// 401; every other status is an error) is grounded on
// internal/github/client.go.
package forge

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kalkin-go/glv/internal/credentials"
)

// ResultKind classifies the outcome of a PR title fetch.
type ResultKind int

const (
	// Found means the title was fetched successfully.
	Found ResultKind = iota
	// NotFound means the forge returned 404: log at info, emit nothing.
	NotFound
	// Unauthorized means the forge returned 401: the worker must stop.
	Unauthorized
	// Errored means any other non-2xx status or an invalid JSON body.
	Errored
)

// Result is the outcome of one PR title fetch.
type Result struct {
	Kind  ResultKind
	Title string
	Err   error
}

// Client fetches a pull request's title from a code-forge host.
type Client interface {
	FetchPRTitle(host, owner, repo, prID string) Result
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

const userAgent = "glv"

// lookupCredentials resolves a host's auth from ~/.netrc (spec.md §6: PR
// fetches authenticate from the credentials file). Overridable in tests.
var lookupCredentials credentials.Lookup = credentials.NetrcLookup()

// attachCredentials adds HTTP Basic auth to req when lookupCredentials has
// an entry for rawURL's host; it is a no-op otherwise, matching the forges'
// own anonymous-by-default behaviour.
func attachCredentials(req *http.Request, rawURL string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return
	}
	user, token, ok := lookupCredentials(u.Hostname())
	if !ok {
		return
	}
	req.SetBasicAuth(user, token)
}

// SelectClient implements the host-routing rule from spec.md §4.3: hosts
// matching github.com with exactly two path segments route to GitHub;
// hosts whose domain contains "bitbucket" route to Bitbucket Server.
// Returns nil, false if no backend recognizes the host/path combination.
func SelectClient(rawURL string) (client Client, owner, repo string, ok bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", "", false
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	segments = nonEmpty(segments)

	switch {
	case u.Host == "github.com" && len(segments) == 2:
		return &githubClient{}, segments[0], segments[1], true
	case strings.Contains(u.Host, "bitbucket") && len(segments) >= 2:
		return &bitbucketClient{host: u.Host}, segments[0], segments[1], true
	default:
		return nil, "", "", false
	}
}

func nonEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
