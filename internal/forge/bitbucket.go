package forge

import (
	"fmt"
	"net/http"
)

type bitbucketClient struct {
	host string
}

// FetchPRTitle implements spec.md §6: GET
// https://{host}/rest/api/1.0/projects/{workspace}/repos/{slug}/pull-requests/{pr},
// JSON field "title".
func (c *bitbucketClient) FetchPRTitle(host, owner, repo, prID string) Result {
	apiURL := fmt.Sprintf("https://%s/rest/api/1.0/projects/%s/repos/%s/pull-requests/%s", c.host, owner, repo, prID)
	req, err := http.NewRequest(http.MethodGet, apiURL, nil)
	if err != nil {
		return Result{Kind: Errored, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	attachCredentials(req, host)

	resp, err := httpClient.Do(req)
	if err != nil {
		return Result{Kind: Errored, Err: err}
	}
	defer resp.Body.Close()

	return decodeTitleResponse(resp)
}
