package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"pr-size-check/internal/host/types"
)

// Provider names.
const (
	providerGitHub = "github"
	providerGitLab = "gitlab"
)

// runContext identifies the pull or merge request this invocation targets.
type runContext struct {
	Provider string
	Owner    string // github only
	Repo     string // github only
	Project  string // gitlab full project path or numeric ID
	Number   int    // PR number / MR IID
}

// detectContext resolves the provider and the target pull request from
// flags and CI environment variables. A run with no associated pull request
// is fatal before any network call.
func detectContext(providerFlag, repoFlag string, prFlag int) (runContext, error) {
	provider := strings.ToLower(providerFlag)
	if provider == "" {
		if os.Getenv("GITLAB_CI") != "" {
			provider = providerGitLab
		} else {
			provider = providerGitHub
		}
	}

	switch provider {
	case providerGitHub:
		repo := repoFlag
		if repo == "" {
			repo = os.Getenv("GITHUB_REPOSITORY")
		}
		owner, name, ok := strings.Cut(repo, "/")
		if !ok || owner == "" || name == "" {
			return runContext{}, fmt.Errorf("repository not set: pass --repo owner/name or set GITHUB_REPOSITORY")
		}

		number := prFlag
		if number == 0 {
			number = prNumberFromRef(os.Getenv("GITHUB_REF"))
		}
		if number == 0 {
			return runContext{}, fmt.Errorf("%w: pass --pr or run on a pull_request event", types.ErrNoPullRequest)
		}

		return runContext{Provider: providerGitHub, Owner: owner, Repo: name, Number: number}, nil

	case providerGitLab:
		project := repoFlag
		if project == "" {
			project = os.Getenv("CI_PROJECT_PATH")
		}
		if project == "" {
			return runContext{}, fmt.Errorf("project not set: pass --repo group/project or set CI_PROJECT_PATH")
		}

		number := prFlag
		if number == 0 {
			number, _ = strconv.Atoi(os.Getenv("CI_MERGE_REQUEST_IID"))
		}
		if number == 0 {
			return runContext{}, fmt.Errorf("%w: pass --pr or run in a merge request pipeline", types.ErrNoPullRequest)
		}

		return runContext{Provider: providerGitLab, Project: project, Number: number}, nil

	default:
		return runContext{}, fmt.Errorf("unknown provider %q: must be %q or %q", provider, providerGitHub, providerGitLab)
	}
}

// prNumberFromRef extracts the pull request number from a GitHub Actions
// ref of the form refs/pull/<number>/merge.
func prNumberFromRef(ref string) int {
	rest, ok := strings.CutPrefix(ref, "refs/pull/")
	if !ok {
		return 0
	}
	numStr, _, _ := strings.Cut(rest, "/")
	n, err := strconv.Atoi(numStr)
	if err != nil {
		return 0
	}
	return n
}

// resolveToken resolves the credential: primary environment variable, then
// the fallback variable, then the explicit input. Empty means no credential.
func resolveToken(provider, input string) string {
	envVars := []string{"GITHUB_TOKEN", "GH_TOKEN"}
	if provider == providerGitLab {
		envVars = []string{"GITLAB_TOKEN", "CI_JOB_TOKEN"}
	}
	for _, name := range envVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return input
}
