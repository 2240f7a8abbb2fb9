package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/reecepbcups/jinc/logger"
)

var (
	releaseCheckTimeout = 5 * time.Second
	howToInstallBinary  = "go install github.com/reecepbcups/jinc@__VERSION__"
	BinaryToGHApi       = "https://api.github.com/repos/reecepbcups/jinc/releases"
)

type Release struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	TagName     string `json:"tag_name"`
	PublishedAt string `json:"published_at"`
	HTMLURL     string `json:"html_url"`

	Prerelease bool `json:"prerelease"`
	Draft      bool `json:"draft"`
}

func GetLatestGithubReleases(ctx context.Context, apiRepoURL string) ([]Release, error) {
	ctx, cancel := context.WithTimeout(ctx, releaseCheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiRepoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status from %s: %s", apiRepoURL, res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	var releases []Release
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, err
	}

	return releases, nil
}

// GetRealLatestReleases returns the newest prerelease and the newest official
// release tags. Drafts and tags that are not valid semver are skipped.
func GetRealLatestReleases(r []Release) (string, string) {
	latestPre := ""
	latestOfficial := ""

	for _, rel := range r {
		if rel.Draft || !semver.IsValid(rel.TagName) {
			continue
		}
		if rel.Prerelease {
			if latestPre == "" || semver.Compare(latestPre, rel.TagName) < 0 {
				latestPre = rel.TagName
			}
		} else {
			if latestOfficial == "" || semver.Compare(latestOfficial, rel.TagName) < 0 {
				latestOfficial = rel.TagName
			}
		}
	}

	return latestPre, latestOfficial
}

// IsOutOfDate returns true if current is older than latest. A dev build counts as v0.0.0.
func IsOutOfDate(current, latest string) bool {
	if latest == "" {
		return false
	}
	if current == "dev" || !semver.IsValid(current) {
		current = "v0.0.0"
	}
	return semver.Compare(current, latest) < 0
}

func GetInstallMsg(msg, latestVer string) string {
	return strings.ReplaceAll(msg, "__VERSION__", latestVer)
}

func checkForUpdate(cmd *cobra.Command) error {
	releases, err := GetLatestGithubReleases(cmd.Context(), BinaryToGHApi)
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}

	latestPre, latestOfficial := GetRealLatestReleases(releases)
	logger.GetLogger().Debug("Fetched releases", "count", len(releases), "latest", latestOfficial, "prerelease", latestPre)

	out := cmd.OutOrStdout()
	if latestOfficial == "" {
		fmt.Fprintln(out, "No published releases found.")
		return nil
	}

	if !IsOutOfDate(version, latestOfficial) {
		fmt.Fprintf(out, "jinc %s is up to date.\n", version)
		return nil
	}

	fmt.Fprintf(out, "A newer jinc release is available: %s (running %s)\n", latestOfficial, version)
	fmt.Fprintf(out, "Install it with: %s\n", GetInstallMsg(howToInstallBinary, latestOfficial))
	return nil
}
