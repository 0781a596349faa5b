package requestcache

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonResponse(body string) *Response {
	return &Response{
		Status: 200,
		Header: http.Header{"Content-Type": []string{"application/json"}},
		Body:   []byte(body),
	}
}

func TestExecuteCachesWithinTTL(t *testing.T) {
	var calls int32
	cache := New(200 * time.Millisecond)
	fn := func(ctx context.Context) (*Response, error) {
		atomic.AddInt32(&calls, 1)
		return jsonResponse(`{"ok":true}`), nil
	}

	first, err := cache.Execute(context.Background(), "k", fn)
	require.NoError(t, err)
	second, err := cache.Execute(context.Background(), "k", fn)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second call within TTL must not hit the network")
	assert.Equal(t, first.Body, second.Body)

	time.Sleep(250 * time.Millisecond)
	_, err = cache.Execute(context.Background(), "k", fn)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "call after TTL expiry must hit the network again")
}

func TestExecuteCollapsesConcurrentCalls(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	cache := New(time.Second)
	fn := func(ctx context.Context) (*Response, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return jsonResponse(`{"ok":true}`), nil
	}

	var wg sync.WaitGroup
	results := make([]*Response, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := cache.Execute(context.Background(), "k", fn)
			require.NoError(t, err)
			results[i] = resp
		}(i)
	}

	// Let both goroutines reach the cache before the call completes.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "identical concurrent calls must share one network call")
	assert.Equal(t, results[0].Body, results[1].Body)
}

func TestExecuteDoesNotCacheFailures(t *testing.T) {
	var calls int32
	cache := New(time.Second)

	t.Run("non-JSON response", func(t *testing.T) {
		fn := func(ctx context.Context) (*Response, error) {
			atomic.AddInt32(&calls, 1)
			return &Response{
				Status: 200,
				Header: http.Header{"Content-Type": []string{"text/html"}},
				Body:   []byte("<html>error</html>"),
			}, nil
		}
		_, err := cache.Execute(context.Background(), "html", fn)
		require.NoError(t, err)
		_, err = cache.Execute(context.Background(), "html", fn)
		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("error status", func(t *testing.T) {
		atomic.StoreInt32(&calls, 0)
		fn := func(ctx context.Context) (*Response, error) {
			atomic.AddInt32(&calls, 1)
			resp := jsonResponse(`{"message":"boom"}`)
			resp.Status = 500
			return resp, nil
		}
		_, err := cache.Execute(context.Background(), "err", fn)
		require.NoError(t, err)
		_, err = cache.Execute(context.Background(), "err", fn)
		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})
}

func TestCloneIsolation(t *testing.T) {
	cache := New(time.Second)
	fn := func(ctx context.Context) (*Response, error) {
		return jsonResponse(`{"n":1}`), nil
	}

	first, err := cache.Execute(context.Background(), "k", fn)
	require.NoError(t, err)
	first.Body[0] = 'X'

	second, err := cache.Execute(context.Background(), "k", fn)
	require.NoError(t, err)
	assert.Equal(t, byte('{'), second.Body[0], "mutating one caller's body must not corrupt the cache")
}

func TestKeyDistinguishesDescriptors(t *testing.T) {
	base := Key("GET", "http://x/state-legislation?page=1", nil)
	assert.NotEqual(t, base, Key("POST", "http://x/state-legislation?page=1", nil))
	assert.NotEqual(t, base, Key("GET", "http://x/state-legislation?page=2", nil))
	assert.NotEqual(t, base, Key("GET", "http://x/state-legislation?page=1", []byte(`{"a":1}`)))
	assert.Equal(t, base, Key("GET", "http://x/state-legislation?page=1", nil))
}
