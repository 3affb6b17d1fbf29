// Package cmd contains the CLI for the checker, built with Cobra. Inputs
// can come from flags or from GitHub-Action-style INPUT_* environment
// variables; flags win.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pr-size-check/internal"
	"pr-size-check/internal/config"
	"pr-size-check/internal/host/types"
	"pr-size-check/internal/logger"
	"pr-size-check/internal/report"
)

var (
	flagProvider  string
	flagRepo      string
	flagPR        int
	flagBaseURL   string
	flagConfigDir string

	// Policy inputs stay strings so unparseable values can fall through the
	// config tiers instead of failing flag parsing.
	flagMaxLines  string
	flagMaxFiles  string
	flagTestPaths string
	flagExclude   string
	flagMode      string
	flagRetries   string
	flagToken     string
)

var rootCmd = &cobra.Command{
	Use:   "pr-size-check",
	Short: "Checks a pull request against size and test-coverage policy",
	Long: `pr-size-check inspects the files changed by a pull request, sums the line
deltas, and reports whether the change exceeds the configured thresholds or
lacks test coverage. Violations are posted as one advisory comment on the
pull request; in fail mode they also fail the run.

Configuration precedence: explicit inputs, then the repository config file
(` + config.FileNames[0] + ` or ` + config.FileNames[1] + `), then built-in defaults.`,
	SilenceUsage: true,
	RunE:         run,
}

// Execute runs the root command. It is called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVar(&flagProvider, "provider", "", "Hosting provider: github or gitlab (default: autodetect)")
	rootCmd.Flags().StringVar(&flagRepo, "repo", "", "Repository (owner/name, or GitLab project path)")
	rootCmd.Flags().IntVar(&flagPR, "pr", 0, "Pull request number / merge request IID")
	rootCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "GitLab base URL for self-managed instances")
	rootCmd.Flags().StringVar(&flagConfigDir, "config-dir", ".", "Directory to look up the repository config file in")

	rootCmd.Flags().StringVar(&flagMaxLines, "max-lines", "", "Maximum total changed lines")
	rootCmd.Flags().StringVar(&flagMaxFiles, "max-files", "", "Maximum changed file count")
	rootCmd.Flags().StringVar(&flagTestPaths, "test-paths", "", "Comma-separated test directory names")
	rootCmd.Flags().StringVar(&flagExclude, "exclude", "", "Comma-separated glob patterns to exclude")
	rootCmd.Flags().StringVar(&flagMode, "mode", "", "warn (advisory) or fail (violations fail the run)")
	rootCmd.Flags().StringVar(&flagRetries, "retries", "", "Retry attempts for transient API failures")
	rootCmd.Flags().StringVar(&flagToken, "token", "", "API token (env vars take precedence)")
}

func run(cmd *cobra.Command, _ []string) error {
	logger.Setup(config.LoadSettings())

	overrides := config.Overrides{
		MaxLines:  inputOrEnv(flagMaxLines, "INPUT_MAX_LINES"),
		MaxFiles:  inputOrEnv(flagMaxFiles, "INPUT_MAX_FILES"),
		TestPaths: inputOrEnv(flagTestPaths, "INPUT_TEST_PATHS"),
		Exclude:   inputOrEnv(flagExclude, "INPUT_EXCLUDE"),
		Mode:      inputOrEnv(flagMode, "INPUT_MODE"),
		Retries:   inputOrEnv(flagRetries, "INPUT_RETRIES"),
	}
	cfg := config.Resolve(overrides, flagConfigDir)

	runCtx, err := detectContext(flagProvider, flagRepo, flagPR)
	if err != nil {
		return err
	}

	token := resolveToken(runCtx.Provider, inputOrEnv(flagToken, "INPUT_TOKEN"))
	if token == "" {
		return fmt.Errorf("%w: set GITHUB_TOKEN (or GITLAB_TOKEN) or pass --token", types.ErrNoCredential)
	}

	provider, err := newProvider(runCtx, token, cfg.RetryCount)
	if err != nil {
		return err
	}

	outcome, err := internal.NewChecker(provider, cfg).Run(cmd.Context())
	if err != nil {
		return err
	}
	if outcome == report.OutcomeFailure {
		return fmt.Errorf("pull request violates the size policy (mode=%s)", cfg.Mode)
	}
	return nil
}

// inputOrEnv prefers the flag value and falls back to the action-style
// INPUT_* environment variable.
func inputOrEnv(flagVal, envName string) string {
	if flagVal != "" {
		return flagVal
	}
	return os.Getenv(envName)
}
