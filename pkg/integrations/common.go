package integrations

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/paritytech-secops/sbom-analyzer/pkg/cache"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a package or resource doesn't exist in the registry.
	ErrNotFound = cache.ErrNotFound

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = cache.ErrNetwork
)

// NewHTTPClient creates an HTTP client with a standard timeout for registry requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NormalizePkgName converts a package name to its canonical form.
// Applies lowercase and replaces underscores with hyphens, following PEP 503
// normalization rules used by PyPI and other registries.
func NormalizePkgName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

var repoURLReplacer = strings.NewReplacer(
	"git@github.com:", "https://github.com/",
	"git://github.com/", "https://github.com/",
)

// NormalizeRepoURL converts various repository URL formats to canonical HTTPS form.
// Handles git@, git://, and git+ prefixes, and removes .git suffixes.
// Returns empty string if raw is empty.
func NormalizeRepoURL(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "git+")
	s = repoURLReplacer.Replace(s)
	return strings.TrimSuffix(s, ".git")
}

// repoURLRegex matches hosted repository URLs and captures the owner and
// repository name path segments. Trailing segments (tree/..., subdirectories)
// are tolerated.
var repoURLRegex = regexp.MustCompile(`^https://[\w-]+\.[\w.-]+/([^/?#]+)/([^/?#]+)`)

// SplitRepoURL extracts the owner and repository name from a hosted
// repository URL such as https://github.com/serde-rs/serde or
// https://gitlab.com/group/project/-/tree/main.
// The URL is normalized first, so git@ and .git forms work too.
// Returns ok=false when the URL doesn't look like owner/repo hosting.
func SplitRepoURL(raw string) (owner, repo string, ok bool) {
	m := repoURLRegex.FindStringSubmatch(NormalizeRepoURL(raw))
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSuffix(m[2], ".git"), true
}

// URLEncode percent-encodes a string for use in URLs.
// This is a convenience wrapper around [url.QueryEscape].
func URLEncode(s string) string { return url.QueryEscape(s) }
