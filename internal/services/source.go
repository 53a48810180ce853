package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/go-github/v75/github"
	"golang.org/x/oauth2"

	"github.com/rahul4469/compiler-craft/internal/models"
)

const DefaultMaxSourceBytes = 200_000

// SourceFile is source text loaded from an upload or a remote file.
type SourceFile struct {
	Filename string `json:"filename"`
	Code     string `json:"code"`
}

// DecodeSourceText returns data as source text. Content that is not UTF-8
// or looks binary is rejected with a models.FileError.
func DecodeSourceText(data []byte, maxBytes int) (string, error) {
	if maxBytes > 0 && len(data) > maxBytes {
		return "", fmt.Errorf("%d bytes exceeds limit of %d: %w", len(data), maxBytes, models.ErrSourceTooLarge)
	}
	if !utf8.Valid(data) || isBinaryContent(string(data)) {
		return "", models.FileError{Issue: "content is not text"}
	}
	return string(data), nil
}

// isBinaryContent checks if content appears to be binary.
func isBinaryContent(content string) bool {
	if strings.Contains(content, "\x00") {
		return true
	}

	nonPrintable := 0
	for _, r := range content {
		if r < 32 && r != '\n' && r != '\r' && r != '\t' {
			nonPrintable++
		}
	}

	// More than 10% control characters is treated as binary.
	return len(content) > 0 && float64(nonPrintable)/float64(len(content)) > 0.1
}

// GitHubSource loads single source files from GitHub repositories.
type GitHubSource struct {
	client   *github.Client
	maxBytes int
}

// NewGitHubSource creates a GitHub client. An empty token makes anonymous
// requests; baseURL overrides the API endpoint (GitHub Enterprise, tests).
func NewGitHubSource(token, baseURL string, maxBytes int) (*GitHubSource, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API base URL: %w", err)
		}
		client.BaseURL = u
	}

	if maxBytes <= 0 {
		maxBytes = DefaultMaxSourceBytes
	}

	return &GitHubSource{client: client, maxBytes: maxBytes}, nil
}

// Fetch downloads the file named by a github.com blob URL or a
// raw.githubusercontent.com URL.
func (s *GitHubSource) Fetch(ctx context.Context, rawURL string) (*SourceFile, error) {
	file, err := models.ParseGitHubFileURL(rawURL)
	if err != nil {
		return nil, err
	}

	opts := &github.RepositoryContentGetOptions{Ref: file.Ref}
	content, dir, _, err := s.client.Repositories.GetContents(ctx, file.Owner, file.Repo, file.Path, opts)
	if err != nil {
		var errResp *github.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
			return nil, models.FileError{Issue: fmt.Sprintf("%s not found in %s/%s@%s", file.Path, file.Owner, file.Repo, file.Ref)}
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", file.Path, err)
	}
	if content == nil || dir != nil {
		return nil, models.FileError{Issue: file.Path + " is a directory"}
	}
	if content.GetSize() > s.maxBytes {
		return nil, fmt.Errorf("%s is %d bytes: %w", file.Path, content.GetSize(), models.ErrSourceTooLarge)
	}

	decoded, err := content.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", file.Path, err)
	}

	code, err := DecodeSourceText([]byte(decoded), s.maxBytes)
	if err != nil {
		return nil, err
	}

	return &SourceFile{Filename: file.Name(), Code: code}, nil
}
