package github

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"

	"pr-size-check/internal/host/httpretry"
)

// newHTTPClient chains retry, secondary-rate-limit waiting and token auth
// into one http.Client shared by the REST and GraphQL clients. retries is
// the number of additional attempts beyond the first.
func newHTTPClient(token string, retries int, delayUnit time.Duration) (*http.Client, error) {
	waiter, err := github_ratelimit.NewRateLimitWaiter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = retries
	rc.RetryWaitMax = 30 * time.Second
	rc.Backoff = httpretry.LinearBackoff(delayUnit)
	rc.CheckRetry = httpretry.Policy
	rc.Logger = nil
	rc.HTTPClient.Transport = &oauth2.Transport{
		Base:   waiter,
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
	}

	return rc.StandardClient(), nil
}
