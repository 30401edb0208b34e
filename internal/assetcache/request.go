package assetcache

import (
	"bytes"
	"io"
	"net/http"
)

// Request 描述一次资源请求。Key 为路径加查询串，缓存按 Key 精确匹配。
type Request struct {
	Method string
	Key    string
	Header http.Header
}

// NewRequest 构造 GET 请求。
func NewRequest(key string) Request {
	return Request{Method: http.MethodGet, Key: key}
}

// cacheable 与浏览器缓存一致：只有 GET/HEAD 会在缓存中查找。
func (r Request) cacheable() bool {
	return r.Method == "" || r.Method == http.MethodGet || r.Method == http.MethodHead
}

// Source 标识响应来源。
type Source string

const (
	SourceCache   Source = "cache"
	SourceNetwork Source = "network"
)

// Response 是 Resolve 的结果。调用方负责关闭 Body。
type Response struct {
	Status int
	Header http.Header
	Body   io.ReadCloser
	Size   int64
	Source Source
}

// FromCache 表示响应是否来自缓存命中。
func (r *Response) FromCache() bool {
	return r != nil && r.Source == SourceCache
}

// NewBytesResponse 以内存正文构造网络响应，主要供自定义 Fetcher 与测试使用。
func NewBytesResponse(status int, contentType string, body []byte) *Response {
	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &Response{
		Status: status,
		Header: header,
		Body:   io.NopCloser(bytes.NewReader(body)),
		Size:   int64(len(body)),
		Source: SourceNetwork,
	}
}
