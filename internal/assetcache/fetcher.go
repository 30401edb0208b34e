package assetcache

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

// ErrNetworkUnavailable 表示当前处于离线状态，网络请求未被发出。
var ErrNetworkUnavailable = errors.New("network unavailable: offline")

// Fetcher 执行一次网络请求。网络错误原样返回，不构造兜底响应。
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (*Response, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, req Request) (*Response, error)

// Fetch makes FetcherFunc satisfy Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}

// HTTPFetcher 将请求键拼接到源站地址后，通过共享 http.Client 发出。
type HTTPFetcher struct {
	client *http.Client
	origin *url.URL
}

// NewHTTPFetcher 构造指向 origin 的 Fetcher。
func NewHTTPFetcher(client *http.Client, origin string) (*HTTPFetcher, error) {
	if client == nil {
		return nil, errors.New("http client is required")
	}
	parsed, err := url.Parse(strings.TrimSuffix(origin, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid origin: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid origin: %s", origin)
	}
	return &HTTPFetcher{client: client, origin: parsed}, nil
}

// Fetch 实现 Fetcher。
func (f *HTTPFetcher) Fetch(ctx context.Context, req Request) (*Response, error) {
	target := f.resolve(req.Key)
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target.String(), nil)
	if err != nil {
		return nil, err
	}
	copyHeaders(httpReq.Header, req.Header)

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target.String(), err)
	}

	header := make(http.Header, len(resp.Header))
	copyHeaders(header, resp.Header)
	return &Response{
		Status: resp.StatusCode,
		Header: header,
		Body:   resp.Body,
		Size:   resp.ContentLength,
		Source: SourceNetwork,
	}, nil
}

func (f *HTTPFetcher) resolve(key string) *url.URL {
	rawPath, rawQuery, _ := strings.Cut(key, "?")
	if !strings.HasPrefix(rawPath, "/") {
		rawPath = "/" + rawPath
	}
	u := *f.origin
	u.Path = strings.TrimSuffix(f.origin.Path, "/") + rawPath
	u.RawQuery = rawQuery
	return &u
}

// OfflineAwareFetcher 在离线时直接失败，避免在断网状态下发出真实请求。
type OfflineAwareFetcher struct {
	Next   Fetcher
	Online func() bool
}

// Fetch 实现 Fetcher。
func (f OfflineAwareFetcher) Fetch(ctx context.Context, req Request) (*Response, error) {
	if f.Online != nil && !f.Online() {
		return nil, fmt.Errorf("fetch %s: %w", req.Key, ErrNetworkUnavailable)
	}
	return f.Next.Fetch(ctx, req)
}

// hopByHopHeaders 定义 RFC 7230 中禁止代理转发的头部。
var hopByHopHeaders = map[string]struct{}{
	"Connection":          {},
	"Keep-Alive":          {},
	"Proxy-Authenticate":  {},
	"Proxy-Authorization": {},
	"Te":                  {},
	"Trailer":             {},
	"Transfer-Encoding":   {},
	"Upgrade":             {},
	"Proxy-Connection":    {},
}

func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		if _, hop := hopByHopHeaders[textproto.CanonicalMIMEHeaderKey(key)]; hop {
			continue
		}
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}
