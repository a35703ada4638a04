package assets

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// The Source class wraps a streamable model file or remote resource.
type Source struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this source.
func (s *Source) Path() string {
	if s.IsRemote() {
		return s.url.String()
	}
	return s.url.Path
}

// Return the remote path to this source. If this is a remote source then
// this method returns the base path (without leading /) of the remote URL.
// Otherwise, this method returns the same value as Path().
func (s *Source) RemotePath() string {
	if s.IsRemote() {
		return path.Base(s.url.Path)
	}
	return s.Path()
}

// Returns true if the source is streamed over http/https.
func (s *Source) IsRemote() bool {
	return s.url.Scheme != ""
}

// Ext returns the lower case extension of the source without the dot, used
// as the format hint for in-memory imports.
func (s *Source) Ext() string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(s.url.Path), "."))
}

// Create a new Source data stream. If relTo is specified and pathToSource
// does not define a scheme, then the path to the new Source will be generated
// by concatenating the base path of relTo and pathToSource.
//
// This function can handle http/https URLs by delegating to the net/http package.
// The caller must make sure to close the returned Source to prevent leaks.
func NewSource(pathToSource string, relTo *Source) (*Source, error) {
	// Replace backslashes with forward slashes and try parsing as a URL
	u, err := url.Parse(strings.Replace(pathToSource, `\`, `/`, -1))
	if err != nil {
		return nil, err
	}

	// If this is a relative url, clone parent url and adjust its path
	if u.Scheme == "" && relTo != nil {
		rel := u.Path
		u, _ = url.Parse(relTo.url.String())
		prefix := u.Path
		if u.Scheme == "" {
			prefix, err = filepath.Abs(relTo.url.Path)
			if err != nil {
				return nil, fmt.Errorf("source: could not detect abs path for %s; %s", relTo.url.String(), err.Error())
			}
		}
		u.Path = path.Dir(filepath.ToSlash(prefix)) + "/" + rel
	}

	var reader io.ReadCloser
	switch u.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(u.Path))
		if err != nil {
			return nil, err
		}
	case "http", "https":
		resp, err := http.Get(u.String())
		if err != nil {
			return nil, fmt.Errorf("source: could not fetch '%s': %s", u.String(), err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("source: could not fetch '%s': status %d", u.String(), resp.StatusCode)
		}
		reader = resp.Body
	default:
		return nil, fmt.Errorf("source: unsupported scheme '%s'", u.Scheme)
	}

	return &Source{
		ReadCloser: reader,
		url:        u,
	}, nil
}

// Create a source from a reader.
func NewSourceFromStream(name string, r io.Reader) *Source {
	u, err := url.Parse(name)
	if err != nil {
		u = &url.URL{Path: name}
	}
	return &Source{
		ReadCloser: io.NopCloser(r),
		url:        u,
	}
}
