package cmd

import (
	"fmt"

	hostgithub "pr-size-check/internal/host/github"
	hostgitlab "pr-size-check/internal/host/gitlab"
	"pr-size-check/internal/host/types"
)

// newProvider builds the hosting provider for the detected context.
func newProvider(rc runContext, token string, retries int) (types.Provider, error) {
	if rc.Provider == providerGitLab {
		client, err := hostgitlab.NewClient(token, flagBaseURL, retries)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitLab client: %w", err)
		}
		return hostgitlab.NewFetcher(client, rc.Project, rc.Number), nil
	}

	fetcher, err := hostgithub.NewFetcher(token, rc.Owner, rc.Repo, rc.Number, retries)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return fetcher, nil
}
