package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGitHubFileURL(t *testing.T) {
	tests := []struct {
		url  string
		want GitHubFile
	}{
		{
			url:  "https://github.com/golang/go/blob/master/src/fmt/print.go",
			want: GitHubFile{Owner: "golang", Repo: "go", Ref: "master", Path: "src/fmt/print.go"},
		},
		{
			url:  "github.com/acme/compilers/blob/v1.2/lexer.c?plain=1#L10",
			want: GitHubFile{Owner: "acme", Repo: "compilers", Ref: "v1.2", Path: "lexer.c"},
		},
		{
			url:  "https://raw.githubusercontent.com/acme/compilers/main/examples/hello.py",
			want: GitHubFile{Owner: "acme", Repo: "compilers", Ref: "main", Path: "examples/hello.py"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := ParseGitHubFileURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "print.go", tests[0].want.Name())
}

func TestParseGitHubFileURL_Invalid(t *testing.T) {
	for _, url := range []string{
		"",
		"https://github.com/acme/compilers",
		"https://gitlab.com/acme/compilers/blob/main/a.c",
		"https://github.com/acme/compilers/tree/main/src",
	} {
		_, err := ParseGitHubFileURL(url)
		assert.True(t, errors.Is(err, ErrInvalidSourceURL), url)
	}
}
