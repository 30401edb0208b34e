package assetcache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabha-learn/nabha-shell/internal/cache"
	"github.com/nabha-learn/nabha-shell/internal/logging"
)

// fakeNetwork 是可切换在线状态、记录请求次数的内存源站。
type fakeNetwork struct {
	mu      sync.Mutex
	offline bool
	bodies  map[string]string
	calls   map[string]int
}

func newFakeNetwork() *fakeNetwork {
	return &fakeNetwork{
		bodies: map[string]string{
			"/":           "<html>root</html>",
			"/index.html": "<html>index</html>",
			"/style.css":  "body{}",
			"/app.js":     "console.log('nabha')",
			"/lesson.png": "png",
		},
		calls: map[string]int{},
	}
}

func (n *fakeNetwork) Fetch(_ context.Context, req Request) (*Response, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls[req.Key]++
	if n.offline {
		return nil, ErrNetworkUnavailable
	}
	body, ok := n.bodies[req.Key]
	if !ok {
		return NewBytesResponse(http.StatusNotFound, "text/plain", []byte("missing")), nil
	}
	return NewBytesResponse(http.StatusOK, "", []byte(body)), nil
}

func (n *fakeNetwork) setOffline(v bool) {
	n.mu.Lock()
	n.offline = v
	n.mu.Unlock()
}

func (n *fakeNetwork) callCount(key string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[key]
}

func (n *fakeNetwork) totalCalls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	total := 0
	for _, c := range n.calls {
		total += c
	}
	return total
}

func newTestCache(t *testing.T, version string, fetcher Fetcher) (*AssetCache, cache.Store) {
	t.Helper()
	store, err := cache.NewStore(t.TempDir())
	require.NoError(t, err)
	ac, err := New(Options{
		Version: version,
		Store:   store,
		Fetcher: fetcher,
		Logger:  logging.Discard(),
	})
	require.NoError(t, err)
	return ac, store
}

func readBody(t *testing.T, resp *Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func TestInstallThenResolveServesManifestFromCache(t *testing.T) {
	network := newFakeNetwork()
	ac, _ := newTestCache(t, "nabha-shell-v1", network)
	ctx := context.Background()

	report := ac.Install(ctx)
	require.True(t, report.Complete(), "failed: %v", report.Failed)
	assert.Equal(t, []string(DefaultManifest()), report.Stored)

	network.setOffline(true)
	before := network.totalCalls()
	for _, key := range DefaultManifest() {
		resp, err := ac.Resolve(ctx, NewRequest(key))
		require.NoError(t, err, key)
		assert.True(t, resp.FromCache(), key)
		assert.Equal(t, network.bodies[key], readBody(t, resp))
	}
	assert.Equal(t, before, network.totalCalls(), "cache hits must not touch the network")
}

func TestResolveMissFetchesWithoutStoring(t *testing.T) {
	network := newFakeNetwork()
	ac, store := newTestCache(t, "nabha-shell-v1", network)
	ctx := context.Background()
	ac.Install(ctx)

	for i := 0; i < 2; i++ {
		resp, err := ac.Resolve(ctx, NewRequest("/lesson.png"))
		require.NoError(t, err)
		assert.False(t, resp.FromCache())
		assert.Equal(t, "png", readBody(t, resp))
	}
	assert.Equal(t, 2, network.callCount("/lesson.png"))

	_, err := store.Get(ctx, cache.Locator{CacheName: "nabha-shell-v1", Key: "/lesson.png"})
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

func TestResolveOfflineMissPropagatesFailure(t *testing.T) {
	network := newFakeNetwork()
	ac, _ := newTestCache(t, "nabha-shell-v1", network)
	ctx := context.Background()
	ac.Install(ctx)
	network.setOffline(true)

	resp, err := ac.Resolve(ctx, NewRequest("/lesson.png"))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrNetworkUnavailable)
}

func TestResolveAliasesOfManifestKeysMissWhileOffline(t *testing.T) {
	network := newFakeNetwork()
	ac, _ := newTestCache(t, "nabha-shell-v1", network)
	ctx := context.Background()
	require.True(t, ac.Install(ctx).Complete())
	network.setOffline(true)

	for _, key := range []string{
		"/_root",
		"//index.html",
		"/./style.css",
		"/x/../app.js",
		"/app.js/",
		"/index.html.nabha-meta",
	} {
		resp, err := ac.Resolve(ctx, NewRequest(key))
		assert.Nil(t, resp, key)
		assert.ErrorIs(t, err, ErrNetworkUnavailable, key)
	}
}

func TestResolveNonGetBypassesCache(t *testing.T) {
	network := newFakeNetwork()
	ac, _ := newTestCache(t, "nabha-shell-v1", network)
	ctx := context.Background()
	ac.Install(ctx)
	before := network.callCount("/app.js")

	resp, err := ac.Resolve(ctx, Request{Method: http.MethodPost, Key: "/app.js"})
	require.NoError(t, err)
	resp.Body.Close()
	assert.False(t, resp.FromCache())
	assert.Equal(t, before+1, network.callCount("/app.js"))
}

func TestInstallPartialFailureIsNonFatal(t *testing.T) {
	network := newFakeNetwork()
	delete(network.bodies, "/style.css")
	ac, _ := newTestCache(t, "nabha-shell-v1", network)
	ctx := context.Background()

	report := ac.Install(ctx)
	assert.False(t, report.Complete())
	assert.Contains(t, report.Failed, "/style.css")
	assert.Equal(t, []string{"/", "/index.html", "/app.js"}, report.Stored)

	status := ac.CachedKeys(ctx)
	assert.False(t, status["/style.css"])
	assert.True(t, status["/app.js"])
}

func TestInstallFetchErrorIsRecorded(t *testing.T) {
	failing := FetcherFunc(func(context.Context, Request) (*Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	})
	ac, _ := newTestCache(t, "nabha-shell-v1", failing)
	report := ac.Install(context.Background())
	assert.Len(t, report.Failed, len(DefaultManifest()))
	assert.Empty(t, report.Stored)
}

func TestActivateLeavesOnlyCurrentVersion(t *testing.T) {
	network := newFakeNetwork()
	ac, store := newTestCache(t, "nabha-shell-v2", network)
	ctx := context.Background()
	for _, old := range []string{"nabha-shell-v1", "runtime-images", "nabha-shell-v0"} {
		require.NoError(t, store.Open(ctx, old))
	}

	installed, activated := ac.Start(ctx)
	require.True(t, installed.Complete())
	assert.ElementsMatch(t, []string{"nabha-shell-v0", "nabha-shell-v1", "runtime-images"}, activated.Deleted)

	names, err := store.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"nabha-shell-v2"}, names)
}

// flakyDeleteStore 让指定名称的 Delete 失败，其余操作交给真实存储。
type flakyDeleteStore struct {
	cache.Store
	failName string
}

func (s flakyDeleteStore) Delete(ctx context.Context, name string) (bool, error) {
	if name == s.failName {
		return false, errors.New("device busy")
	}
	return s.Store.Delete(ctx, name)
}

func TestActivateDeleteFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()
	base, err := cache.NewStore(t.TempDir())
	require.NoError(t, err)
	for _, old := range []string{"nabha-shell-v0", "nabha-shell-v1", "runtime-images"} {
		require.NoError(t, base.Open(ctx, old))
	}
	store := flakyDeleteStore{Store: base, failName: "nabha-shell-v1"}

	ac, err := New(Options{
		Version: "nabha-shell-v2",
		Store:   store,
		Fetcher: newFakeNetwork(),
		Logger:  logging.Discard(),
	})
	require.NoError(t, err)
	ac.Clients().Register("tab-1")

	installed, activated := ac.Start(ctx)
	require.True(t, installed.Complete())
	assert.ElementsMatch(t, []string{"nabha-shell-v0", "runtime-images"}, activated.Deleted)
	require.Contains(t, activated.Failed, "nabha-shell-v1")
	assert.Contains(t, activated.Failed["nabha-shell-v1"], "device busy")
	assert.Equal(t, 1, activated.Claimed)
	assert.Equal(t, "nabha-shell-v2", ac.Clients().Controller("tab-1"))

	names, err := base.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"nabha-shell-v1", "nabha-shell-v2"}, names)
}

func TestActivateClaimsOpenClients(t *testing.T) {
	network := newFakeNetwork()
	ac, _ := newTestCache(t, "nabha-shell-v1", network)
	clients := ac.Clients()

	assert.Equal(t, "", clients.Register("tab-1"))
	assert.Equal(t, "", clients.Register("tab-2"))

	report := ac.Activate(context.Background())
	assert.Equal(t, 2, report.Claimed)
	assert.Equal(t, "nabha-shell-v1", clients.Controller("tab-1"))
	assert.Equal(t, "nabha-shell-v1", clients.Register("tab-3"))
}

func TestConcurrentResolve(t *testing.T) {
	network := newFakeNetwork()
	ac, _ := newTestCache(t, "nabha-shell-v1", network)
	ctx := context.Background()
	ac.Install(ctx)

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := DefaultManifest()[i%len(DefaultManifest())]
			resp, err := ac.Resolve(ctx, NewRequest(key))
			if err != nil {
				errs <- err
				return
			}
			defer resp.Body.Close()
			if !resp.FromCache() {
				errs <- fmt.Errorf("%s not served from cache", key)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestNewValidatesOptions(t *testing.T) {
	store, err := cache.NewStore(t.TempDir())
	require.NoError(t, err)
	_, err = New(Options{Store: store, Fetcher: newFakeNetwork()})
	assert.Error(t, err)
	_, err = New(Options{Version: "v1", Fetcher: newFakeNetwork()})
	assert.Error(t, err)
	_, err = New(Options{Version: "v1", Store: store})
	assert.Error(t, err)
}

func TestHTTPFetcherAgainstOrigin(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css")
		w.Header().Set("Connection", "close")
		fmt.Fprintf(w, "%s?%s", r.URL.Path, r.URL.RawQuery)
	}))
	defer origin.Close()

	fetcher, err := NewHTTPFetcher(origin.Client(), origin.URL+"/")
	require.NoError(t, err)

	resp, err := fetcher.Fetch(context.Background(), NewRequest("/style.css?v=3"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "text/css", resp.Header.Get("Content-Type"))
	assert.Empty(t, resp.Header.Get("Connection"))
	assert.Equal(t, "/style.css?v=3", readBody(t, resp))
}

func TestOfflineAwareFetcher(t *testing.T) {
	network := newFakeNetwork()
	online := false
	fetcher := OfflineAwareFetcher{Next: network, Online: func() bool { return online }}

	_, err := fetcher.Fetch(context.Background(), NewRequest("/app.js"))
	assert.ErrorIs(t, err, ErrNetworkUnavailable)
	assert.Equal(t, 0, network.callCount("/app.js"))

	online = true
	resp, err := fetcher.Fetch(context.Background(), NewRequest("/app.js"))
	require.NoError(t, err)
	resp.Body.Close()
}

func TestManifestIsCopied(t *testing.T) {
	m := DefaultManifest()
	m[0] = "/mutated"
	assert.Equal(t, "/", DefaultManifest()[0])
	assert.True(t, DefaultManifest().Contains("/app.js"))
	assert.Len(t, DefaultManifest(), 4)
}
