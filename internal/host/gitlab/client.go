package gitlab

import (
	gitlab "gitlab.com/gitlab-org/api/client-go"

	"pr-size-check/internal/host/httpretry"
)

// NewClient builds a GitLab client whose embedded retryablehttp transport
// follows the shared linear-backoff retry discipline. baseURL is optional
// and defaults to gitlab.com.
func NewClient(token, baseURL string, retries int) (*gitlab.Client, error) {
	opts := []gitlab.ClientOptionFunc{
		gitlab.WithCustomRetryMax(retries),
		gitlab.WithCustomBackoff(httpretry.LinearBackoff(httpretry.DefaultDelayUnit)),
	}
	if baseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(baseURL))
	}

	return gitlab.NewClient(token, opts...)
}
