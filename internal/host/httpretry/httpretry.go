// Package httpretry holds the retry discipline shared by both hosting
// providers: transient failures (HTTP 429 and 5xx) are retried with a
// linearly increasing delay, everything else propagates immediately.
package httpretry

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// DefaultDelayUnit is the base delay between attempts; retry n waits n units.
const DefaultDelayUnit = time.Second

// LinearBackoff returns a backoff that waits unit*(attempt+1), capped at max.
func LinearBackoff(unit time.Duration) retryablehttp.Backoff {
	return func(_, max time.Duration, attemptNum int, _ *http.Response) time.Duration {
		delay := unit * time.Duration(attemptNum+1)
		if max > 0 && delay > max {
			return max
		}
		return delay
	}
}

// Policy retries rate limiting and server-side errors. Transport-level
// failures defer to the library's default policy, which already knows the
// permanent ones (bad scheme, too many redirects, TLS verification).
func Policy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil || resp == nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return true, nil
	}
	return false, nil
}
