package assetcache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/nabha-learn/nabha-shell/internal/cache"
	"github.com/nabha-learn/nabha-shell/internal/logging"
)

const defaultConcurrency = 4

// Options 汇总 AssetCache 的依赖。Store/Fetcher/Version 必填。
type Options struct {
	Version     string
	Manifest    Manifest
	Store       cache.Store
	Fetcher     Fetcher
	Clients     *ClientSet
	Logger      *logrus.Logger
	Concurrency int
}

// AssetCache 管理一代命名缓存：安装清单、激活时清理旧缓存、缓存优先解析请求。
type AssetCache struct {
	version     string
	manifest    Manifest
	store       cache.Store
	fetcher     Fetcher
	clients     *ClientSet
	logger      *logrus.Logger
	concurrency int
}

// New 校验依赖并构造 AssetCache。Manifest 为空时使用 DefaultManifest。
func New(opts Options) (*AssetCache, error) {
	if strings.TrimSpace(opts.Version) == "" {
		return nil, errors.New("cache version is required")
	}
	if opts.Store == nil {
		return nil, errors.New("cache store is required")
	}
	if opts.Fetcher == nil {
		return nil, errors.New("fetcher is required")
	}
	manifest := opts.Manifest
	if len(manifest) == 0 {
		manifest = DefaultManifest()
	}
	clients := opts.Clients
	if clients == nil {
		clients = NewClientSet()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &AssetCache{
		version:     opts.Version,
		manifest:    append(Manifest(nil), manifest...),
		store:       opts.Store,
		fetcher:     opts.Fetcher,
		clients:     clients,
		logger:      logger,
		concurrency: concurrency,
	}, nil
}

// Version 返回当前缓存版本名。
func (a *AssetCache) Version() string { return a.version }

// Manifest 返回清单副本。
func (a *AssetCache) Manifest() Manifest { return append(Manifest(nil), a.manifest...) }

// Clients 返回受控客户端集合。
func (a *AssetCache) Clients() *ClientSet { return a.clients }

// InstallReport 汇总一次安装的结果。部分失败是可接受的。
type InstallReport struct {
	Version string            `json:"version"`
	Stored  []string          `json:"stored"`
	Failed  map[string]string `json:"failed,omitempty"`
	Elapsed time.Duration     `json:"elapsed"`
}

// Complete 表示清单中的全部资源都已写入。
func (r InstallReport) Complete() bool {
	return len(r.Failed) == 0
}

// Install 打开（必要时创建）当前版本的缓存，并抓取写入清单中的每个资源。
// 单个资源失败只记录日志，不影响其它资源，也不重试。
func (a *AssetCache) Install(ctx context.Context) InstallReport {
	started := time.Now()
	report := InstallReport{Version: a.version, Failed: map[string]string{}}

	if err := a.store.Open(ctx, a.version); err != nil {
		a.logger.WithError(err).WithFields(logrus.Fields{
			"action": "install",
			"cache":  a.version,
		}).Error("cache_open_failed")
		for _, key := range a.manifest {
			report.Failed[key] = err.Error()
		}
		report.Elapsed = time.Since(started)
		return report
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(a.concurrency)
	for _, key := range a.manifest {
		group.Go(func() error {
			err := a.installEntry(groupCtx, key)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed[key] = err.Error()
				a.logger.WithError(err).WithFields(logrus.Fields{
					"action": "install",
					"cache":  a.version,
					"key":    key,
				}).Warn("install_entry_failed")
				return nil
			}
			report.Stored = append(report.Stored, key)
			return nil
		})
	}
	_ = group.Wait()

	sort.Slice(report.Stored, func(i, j int) bool {
		return a.manifestIndex(report.Stored[i]) < a.manifestIndex(report.Stored[j])
	})
	report.Elapsed = time.Since(started)

	a.logger.WithFields(logrus.Fields{
		"action":     "install",
		"cache":      a.version,
		"stored":     len(report.Stored),
		"failed":     len(report.Failed),
		"elapsed_ms": report.Elapsed.Milliseconds(),
	}).Info("install_complete")
	return report
}

func (a *AssetCache) installEntry(ctx context.Context, key string) error {
	resp, err := a.fetcher.Fetch(ctx, NewRequest(key))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.Status < 200 || resp.Status > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d", resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = inferContentType(key)
	}
	_, err = a.store.Put(ctx, cache.Locator{CacheName: a.version, Key: key}, resp.Body, cache.PutOptions{
		ModTime:     lastModified(resp.Header),
		ContentType: contentType,
	})
	return err
}

func (a *AssetCache) manifestIndex(key string) int {
	for i, entry := range a.manifest {
		if entry == key {
			return i
		}
	}
	return len(a.manifest)
}

// ActivateReport 汇总一次激活的结果。
type ActivateReport struct {
	Version string            `json:"version"`
	Deleted []string          `json:"deleted"`
	Failed  map[string]string `json:"failed,omitempty"`
	Claimed int               `json:"claimed"`
}

// Activate 删除所有名称不等于当前版本的缓存，然后接管已打开的客户端视图。
// 删除失败只记录日志，残留的旧缓存留待下一次激活；已删除的缓存无法恢复。
func (a *AssetCache) Activate(ctx context.Context) ActivateReport {
	report := ActivateReport{Version: a.version, Failed: map[string]string{}}

	names, err := a.store.Names(ctx)
	if err != nil {
		a.logger.WithError(err).WithFields(logrus.Fields{
			"action": "activate",
			"cache":  a.version,
		}).Error("cache_enumerate_failed")
	}
	for _, name := range names {
		if name == a.version {
			continue
		}
		if _, err := a.store.Delete(ctx, name); err != nil {
			report.Failed[name] = err.Error()
			a.logger.WithError(err).WithFields(logrus.Fields{
				"action": "activate",
				"cache":  name,
			}).Warn("cache_delete_failed")
			continue
		}
		report.Deleted = append(report.Deleted, name)
	}

	report.Claimed = a.clients.Claim(a.version)

	a.logger.WithFields(logrus.Fields{
		"action":  "activate",
		"cache":   a.version,
		"deleted": report.Deleted,
		"claimed": report.Claimed,
	}).Info("activate_complete")
	return report
}

// Start 按生命周期顺序执行 Install 与 Activate：安装完全结束后才开始激活。
func (a *AssetCache) Start(ctx context.Context) (InstallReport, ActivateReport) {
	installed := a.Install(ctx)
	activated := a.Activate(ctx)
	return installed, activated
}

// Resolve 以缓存优先策略解析请求：命中则直接返回缓存响应，不产生网络请求；
// 未命中则发起网络请求并原样返回，响应不会写入缓存。网络错误直接向上传递。
func (a *AssetCache) Resolve(ctx context.Context, req Request) (*Response, error) {
	if resp, ok := a.lookup(ctx, req); ok {
		return resp, nil
	}
	return a.fetcher.Fetch(ctx, req)
}

// Passthrough 跳过缓存直接走网络，用于尚未被任何版本接管的客户端。
func (a *AssetCache) Passthrough(ctx context.Context, req Request) (*Response, error) {
	return a.fetcher.Fetch(ctx, req)
}

func (a *AssetCache) lookup(ctx context.Context, req Request) (*Response, bool) {
	if !req.cacheable() {
		return nil, false
	}
	result, err := a.store.Get(ctx, cache.Locator{CacheName: a.version, Key: req.Key})
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			a.logger.WithError(err).WithFields(logging.RequestFields(a.version, req.Key, "", false)).
				Warn("cache_get_failed")
		}
		return nil, false
	}

	header := http.Header{}
	contentType := result.Entry.ContentType
	if contentType == "" {
		contentType = inferContentType(req.Key)
	}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	header.Set("Content-Length", strconv.FormatInt(result.Entry.SizeBytes, 10))
	if !result.Entry.ModTime.IsZero() {
		header.Set("Last-Modified", result.Entry.ModTime.UTC().Format(http.TimeFormat))
	}
	return &Response{
		Status: http.StatusOK,
		Header: header,
		Body:   result.Reader,
		Size:   result.Entry.SizeBytes,
		Source: SourceCache,
	}, true
}

// CachedKeys 返回当前版本缓存中清单资源的命中情况，供诊断接口使用。
func (a *AssetCache) CachedKeys(ctx context.Context) map[string]bool {
	status := make(map[string]bool, len(a.manifest))
	for _, key := range a.manifest {
		result, err := a.store.Get(ctx, cache.Locator{CacheName: a.version, Key: key})
		if err == nil {
			result.Reader.Close()
		}
		status[key] = err == nil
	}
	return status
}

func inferContentType(key string) string {
	clean, _, _ := strings.Cut(key, "?")
	if clean == "" || strings.HasSuffix(clean, "/") {
		return "text/html; charset=utf-8"
	}
	return mime.TypeByExtension(path.Ext(clean))
}

func lastModified(header http.Header) time.Time {
	if raw := header.Get("Last-Modified"); raw != "" {
		if parsed, err := http.ParseTime(raw); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}
