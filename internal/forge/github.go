package forge

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type githubClient struct{}

// FetchPRTitle implements spec.md §6: GET
// https://api.github.com/repos/{owner}/{repo}/pulls/{pr}, UA header required,
// JSON field "title".
func (c *githubClient) FetchPRTitle(host, owner, repo, prID string) Result {
	apiURL := fmt.Sprintf("https://api.github.com/repos/%s/%s/pulls/%s", owner, repo, prID)
	req, err := http.NewRequest(http.MethodGet, apiURL, nil)
	if err != nil {
		return Result{Kind: Errored, Err: err}
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)
	attachCredentials(req, host)

	resp, err := httpClient.Do(req)
	if err != nil {
		return Result{Kind: Errored, Err: err}
	}
	defer resp.Body.Close()

	return decodeTitleResponse(resp)
}

func decodeTitleResponse(resp *http.Response) Result {
	switch resp.StatusCode {
	case http.StatusOK:
		var body struct {
			Title string `json:"title"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return Result{Kind: Errored, Err: err}
		}
		return Result{Kind: Found, Title: body.Title}
	case http.StatusNotFound:
		return Result{Kind: NotFound}
	case http.StatusUnauthorized:
		return Result{Kind: Unauthorized}
	default:
		b, _ := io.ReadAll(resp.Body)
		return Result{Kind: Errored, Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(b))}
	}
}
