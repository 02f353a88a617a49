package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/InfinityTools/go-logging"
	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// UpdateRepo is the GitHub repository release checks run against.
const UpdateRepo = "Fepozopo/rasterfx"

// semver substring like v1.2.3 or 1.2.3-rc.1 inside a tag name
var semverRe = regexp.MustCompile(`v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

type githubRelease struct {
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
	Assets     []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// pickLatestRelease returns the highest published, non-prerelease
// version among releases, preferring an asset built for a platform.
func pickLatestRelease(releases []githubRelease) (*selfupdate.Release, bool) {
	type candidate struct {
		ver      semver.Version
		assetURL string
	}
	var candidates []candidate
	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		match := semverRe.FindString(r.TagName)
		if match == "" {
			match = semverRe.FindString(r.Name)
		}
		if match == "" {
			continue
		}
		v, err := semver.Parse(strings.TrimPrefix(match, "v"))
		if err != nil {
			continue
		}
		assetURL := ""
		for _, a := range r.Assets {
			name := strings.ToLower(a.Name)
			if strings.Contains(name, "linux") || strings.Contains(name, "darwin") || strings.Contains(name, "windows") ||
				strings.Contains(name, "amd64") || strings.Contains(name, "arm64") {
				assetURL = a.BrowserDownloadURL
				break
			}
			if assetURL == "" {
				assetURL = a.BrowserDownloadURL
			}
		}
		candidates = append(candidates, candidate{ver: v, assetURL: assetURL})
	}
	if len(candidates) == 0 {
		return nil, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ver.GT(candidates[j].ver)
	})
	return &selfupdate.Release{Version: candidates[0].ver, AssetURL: candidates[0].assetURL}, true
}

// detectLatest queries the GitHub releases API of repo.
func detectLatest(ctx context.Context, repo string) (*selfupdate.Release, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("https://api.github.com/repos/%s/releases", repo), nil)
	if err != nil {
		return nil, false, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("github API request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed reading github response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, string(body))
	}
	var releases []githubRelease
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, false, fmt.Errorf("failed to decode github releases: %w", err)
	}
	rel, found := pickLatestRelease(releases)
	return rel, found, nil
}

// CheckForUpdates reports whether a newer release exists and, when apply
// is set, replaces the running executable with it.
func CheckForUpdates(ctx context.Context, w io.Writer, apply bool) error {
	fmt.Fprintf(w, "Current version: %s\n", Version)
	latest, found, err := detectLatest(ctx, UpdateRepo)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if !found {
		fmt.Fprintf(w, "No releases found for %s.\n", UpdateRepo)
		return nil
	}
	fmt.Fprintf(w, "Latest version: %s\n", latest.Version)

	currentVer, err := semver.Parse(Version)
	if err != nil {
		logging.Warnf("Could not parse current version %q: %v\n", Version, err)
	} else if latest.Version.LTE(currentVer) {
		fmt.Fprintf(w, "You are already running the latest version: %s.\n", currentVer)
		return nil
	}
	if latest.AssetURL == "" {
		fmt.Fprintf(w, "Version %s is available but has no downloadable asset.\n", latest.Version)
		return nil
	}
	if !apply {
		fmt.Fprintf(w, "Version %s is available. Run again with --%s to install it.\n", latest.Version, CMDOPT_YES)
		return nil
	}

	logging.Infof("Updating to %s\n", latest.Version)
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	fmt.Fprintf(w, "Updated to version %s.\n", latest.Version)
	return nil
}
