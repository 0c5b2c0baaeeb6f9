package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/oasvet"
	"github.com/erraggy/oasvet/oaserrors"
)

// FetchFunc retrieves and parses the document identified by an absolute URI.
// It matches validator.Fetcher.
type FetchFunc func(ctx context.Context, uri string) (any, error)

// FileFetcher returns a FetchFunc reading "file" URIs and plain paths.
// Relative paths are joined to baseDir, and any path that escapes baseDir is
// rejected.
func FileFetcher(baseDir string) FetchFunc {
	return func(ctx context.Context, uri string) (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path, err := filePathFromURI(uri)
		if err != nil {
			return nil, err
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		path = filepath.Clean(path)

		absBase, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, fmt.Errorf("loader: failed to resolve base directory: %w", err)
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("loader: failed to resolve file path: %w", err)
		}
		rel, err := filepath.Rel(absBase, absPath)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, &oaserrors.ReferenceError{
				Ref:     uri,
				Kind:    oaserrors.RefUnresolved,
				Message: "path escapes the base directory",
			}
		}
		return ParseFile(absPath)
	}
}

func filePathFromURI(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("loader: invalid document URI %q: %w", uri, err)
	}
	switch u.Scheme {
	case "":
		return filepath.FromSlash(u.Path), nil
	case "file":
		return filepath.FromSlash(u.Path), nil
	default:
		return "", fmt.Errorf("loader: unsupported scheme %q for file fetcher", u.Scheme)
	}
}

// HTTPFetcher returns a FetchFunc for http and https URIs. A nil client uses
// one with a 30 second timeout; an empty userAgent uses oasvet.UserAgent().
func HTTPFetcher(client *http.Client, userAgent string) FetchFunc {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if userAgent == "" {
		userAgent = oasvet.UserAgent()
	}
	return func(ctx context.Context, uri string) (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
		if err != nil {
			return nil, fmt.Errorf("loader: failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := client.Do(req) //nolint:gosec // URI comes from the document being validated
		if err != nil {
			return nil, fmt.Errorf("loader: failed to fetch %s: %w", uri, err)
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("loader: HTTP %d fetching %s", resp.StatusCode, uri)
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, MaxFileSize+1))
		if err != nil {
			return nil, fmt.Errorf("loader: failed to read response body: %w", err)
		}
		if int64(len(data)) > MaxFileSize {
			return nil, &oaserrors.ResourceLimitError{
				ResourceType: "file_size",
				Limit:        MaxFileSize,
				Message:      uri,
			}
		}
		return parse(uri, data)
	}
}

// Mux dispatches http and https URIs to httpFetch and everything else to
// fileFetch. Either may be nil, in which case URIs of that family fail.
func Mux(fileFetch, httpFetch FetchFunc) FetchFunc {
	return func(ctx context.Context, uri string) (any, error) {
		if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
			if httpFetch == nil {
				return nil, fmt.Errorf("loader: remote references are disabled: %s", uri)
			}
			return httpFetch(ctx, uri)
		}
		if fileFetch == nil {
			return nil, fmt.Errorf("loader: file references are disabled: %s", uri)
		}
		return fileFetch(ctx, uri)
	}
}

// FileURI returns the absolute "file" URI for path, suitable as the base URI
// of a document so that relative references resolve next to it.
func FileURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}
