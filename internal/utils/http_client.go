package utils

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly and keeps a
// cookie jar so server-set cookies (refresh token, CSRF) are replayed.
type HTTPClient struct {
	*resty.Client
	baseURL *url.URL
}

// TraceIDHeader carries the id that joins client and backend logs of one
// request.
const TraceIDHeader = "X-Trace-ID"

// NewHTTPClient creates a client for baseURL with the given request timeout.
// Every request gets a fresh trace id unless the caller set one.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	traceIDs := NewUUIDGenerator()
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			if r.Header.Get(TraceIDHeader) == "" {
				r.SetHeader(TraceIDHeader, traceIDs.Generate())
			}
			return nil
		})

	return &HTTPClient{Client: client, baseURL: u}, nil
}

// Cookie returns the value of the named cookie the jar would send to path
// on the base URL, or "" when absent.
func (c *HTTPClient) Cookie(path, name string) string {
	jar := c.GetClient().Jar
	if jar == nil {
		return ""
	}
	for _, ck := range jar.Cookies(c.cookieURL(path)) {
		if ck.Name == name {
			return ck.Value
		}
	}

	return ""
}

// SetCookieValue stores a cookie scoped to path on the base URL, used to
// restore a persisted session. An empty value removes the cookie.
func (c *HTTPClient) SetCookieValue(path, name, value string) {
	jar := c.GetClient().Jar
	if jar == nil {
		return
	}

	ck := &http.Cookie{Name: name, Value: value, Path: path}
	if value == "" {
		ck.MaxAge = -1
	}
	jar.SetCookies(c.cookieURL(path), []*http.Cookie{ck})
}

// cookieURL is the absolute path on the base URL's host. The jar never
// matches a relative path against a cookie's Path attribute.
func (c *HTTPClient) cookieURL(path string) *url.URL {
	return c.baseURL.ResolveReference(&url.URL{Path: "/" + strings.TrimPrefix(path, "/")})
}
