package tools

import (
	"errors"
	"net/url"
	"strings"
)

func FullURL(baseURL, path string) string {
	if baseURL == "" {
		return ""
	}
	if baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	if path == "" {
		return baseURL
	}
	if path[0] == '/' {
		path = path[1:]
	}
	return baseURL + "/" + path
}

// SplitAPIURL returns scheme://host of rawURL and its path with a trailing slash.
func SplitAPIURL(rawURL string) (origin string, path string, err error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", "", errors.New("missing scheme or host")
	}
	origin = u.Scheme + "://" + u.Host
	path = u.Path
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return origin, path, nil
}
