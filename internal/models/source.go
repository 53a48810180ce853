package models

import (
	"path"
	"regexp"
	"strings"
)

// Both blob and raw forms are accepted:
// - https://github.com/owner/repo/blob/main/src/main.c
// - https://raw.githubusercontent.com/owner/repo/main/src/main.c
var (
	GitHubBlobURLPattern = regexp.MustCompile(`^(?:https?://)?(?:www\.)?github\.com/([a-zA-Z0-9_.-]+)/([a-zA-Z0-9_.-]+)/blob/([^/]+)/(.+?)/?$`)
	GitHubRawURLPattern  = regexp.MustCompile(`^(?:https?://)?raw\.githubusercontent\.com/([a-zA-Z0-9_.-]+)/([a-zA-Z0-9_.-]+)/([^/]+)/(.+?)/?$`)
)

// GitHubFile identifies a single file at a ref in a GitHub repository.
type GitHubFile struct {
	Owner string
	Repo  string
	Ref   string
	Path  string
}

// Name returns the base name of the file.
func (f GitHubFile) Name() string {
	return path.Base(f.Path)
}

// ParseGitHubFileURL extracts owner, repo, ref and path from a file URL.
func ParseGitHubFileURL(url string) (GitHubFile, error) {
	url = strings.TrimSpace(url)
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}

	for _, pattern := range []*regexp.Regexp{GitHubBlobURLPattern, GitHubRawURLPattern} {
		if m := pattern.FindStringSubmatch(url); len(m) == 5 {
			return GitHubFile{Owner: m[1], Repo: m[2], Ref: m[3], Path: m[4]}, nil
		}
	}
	return GitHubFile{}, ErrInvalidSourceURL
}
