package release

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// githubRelease is the minimal shape of the GitHub releases API response.
type githubRelease struct {
	TagName string `json:"tag_name"`
}

// CheckLatest fetches the latest release tag from GitHub. It returns the
// tag when it is newer than currentVersion, empty string otherwise.
func CheckLatest(owner, repo, currentVersion string) (string, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", owner, repo)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github api returned %d", resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}
	if release.TagName == "" {
		return "", nil
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	current := strings.TrimPrefix(currentVersion, "v")
	if isNewer(latest, current) {
		return release.TagName, nil
	}
	return "", nil
}

// isNewer returns true if a > b using plain string comparison, which is
// good enough for semver-like tags.
func isNewer(a, b string) bool {
	if b == "" || b == "dev" {
		return true
	}
	return a > b
}
