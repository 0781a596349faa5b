package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legis-catalog-client/internal/dto"
	"legis-catalog-client/internal/entity"
	"legis-catalog-client/internal/pkg/logger"
	"legis-catalog-client/internal/repository/memory"
	"legis-catalog-client/pkg/legiscan"
	"legis-catalog-client/pkg/requestcache"
)

type syncFixture struct {
	svc      ISyncService
	bills    *memory.BillCollectionRepository
	sessions *memory.SessionCatalogRepository
	reviews  *memory.MarkSetRepository
}

func newSyncFixture(t *testing.T, handler http.Handler, cacheTTL time.Duration) *syncFixture {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := legiscan.NewClient(legiscan.Config{
		BaseURL:            srv.URL,
		InteractiveTimeout: 5 * time.Second,
		BulkTimeout:        5 * time.Second,
		ReconcileTimeout:   5 * time.Second,
	}, requestcache.New(cacheTTL))

	f := &syncFixture{
		bills:    memory.NewBillCollectionRepository(),
		sessions: memory.NewSessionCatalogRepository(),
		reviews:  memory.NewMarkSetRepository(),
	}
	f.svc = NewSyncService(client, f.bills, f.sessions, f.reviews, logger.NewNopLogger(), 20)
	return f
}

func TestFetchPageNormalizesBareArray(t *testing.T) {
	f := newSyncFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		okJSON(w, `[{"title":"A","category":"Government","status":"Referred to Committee on Appropriations","bill_number":"AB 12","introduced_date":"2024-03-01"}]`)
	}), time.Millisecond)

	res, err := f.svc.FetchPage(context.Background(), &dto.FetchPageRequest{Jurisdiction: "CA", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, res.BillsFetched)

	all := f.bills.All()
	require.Len(t, all, 1)
	b := all[0]
	assert.Equal(t, "CA-AB 12", b.Id)
	assert.Equal(t, "A", b.Title)
	assert.Equal(t, entity.CategoryCivic, b.Category)
	assert.Equal(t, entity.StageCommittee, b.StatusStage)
	require.NotNil(t, b.IntroducedDate)
	assert.Equal(t, 2024, b.IntroducedDate.Year())
}

func TestFetchPagePreservesLocalMarks(t *testing.T) {
	f := newSyncFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		okJSON(w, `{"results":[{"id":"b1","title":"A"}],"total":1,"page":1,"totalPages":1}`)
	}), time.Millisecond)
	f.reviews.Add("b1")

	_, err := f.svc.FetchPage(context.Background(), &dto.FetchPageRequest{Jurisdiction: "CA", Page: 1})
	require.NoError(t, err)

	bill, ok := f.bills.FindById("b1")
	require.True(t, ok)
	assert.True(t, bill.Reviewed, "reviewed marks must survive a window re-fetch")
}

func TestFetchPageRegistersObservedSessions(t *testing.T) {
	f := newSyncFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		okJSON(w, `[{"id":"b1","title":"A","session_name":"2023 Special Session"}]`)
	}), time.Millisecond)
	f.sessions.ReplaceEndpointSourced([]*entity.SessionDescriptor{
		{SessionId: "2115", SessionName: "2024 Regular Session", IsActive: true},
	})

	_, err := f.svc.FetchPage(context.Background(), &dto.FetchPageRequest{Jurisdiction: "CA", Page: 1})
	require.NoError(t, err)

	all := f.sessions.All()
	require.Len(t, all, 2)
	assert.True(t, f.sessions.NameKnown("2023 Special Session"))
	d, ok := f.sessions.ById(entity.ObservedSessionIdPrefix + "2023 Special Session")
	require.True(t, ok)
	assert.True(t, d.Observed)
}

func TestFetchRecentDistinguishesSuccessStates(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
		wantRefresh bool
	}{
		{
			name:        "nothing new",
			body:        `{"success":true,"billsFound":0,"billsProcessed":0}`,
			wantMessage: "No new bills found.",
		},
		{
			name:        "found but already present",
			body:        `{"success":true,"billsFound":4,"billsProcessed":0}`,
			wantMessage: "4 bills found; all already present.",
		},
		{
			name:        "processed",
			body:        `{"success":true,"billsFound":4,"billsProcessed":2,"mostRecentDateBefore":"2024-02-01"}`,
			wantMessage: "Processed 2 of 4 new bills.",
			wantRefresh: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pageCalls int32
			mux := http.NewServeMux()
			mux.HandleFunc("/legiscan/fetch-recent", func(w http.ResponseWriter, r *http.Request) {
				okJSON(w, tt.body)
			})
			mux.HandleFunc("/state-legislation", func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&pageCalls, 1)
				okJSON(w, `{"results":[{"id":"b1","title":"A"}],"total":1}`)
			})
			f := newSyncFixture(t, mux, time.Millisecond)

			res, err := f.svc.FetchRecent(context.Background(), &dto.FetchRecentRequest{Jurisdiction: "CA"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantMessage, res.Message)
			if tt.wantRefresh {
				assert.Equal(t, int32(1), atomic.LoadInt32(&pageCalls), "processed bills must refresh the window")
			} else {
				assert.Equal(t, int32(0), atomic.LoadInt32(&pageCalls))
			}
		})
	}
}

// The reconciliation strategy resumes by re-invoking the same operation
// until RemainingBills reaches zero; a zero-work invocation is a no-op
// success.
func TestCheckForUpdatesResumesToCompletion(t *testing.T) {
	var reconcileCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/legiscan/check-and-update", func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&reconcileCalls, 1) {
		case 1:
			okJSON(w, `{"success":true,"apiBillsFound":40,"existingBills":35,"missingBills":5,"processedBills":2,"remainingBills":3}`)
		case 2:
			okJSON(w, `{"success":true,"apiBillsFound":40,"existingBills":38,"missingBills":3,"processedBills":3,"remainingBills":0}`)
		default:
			okJSON(w, `{"success":true,"apiBillsFound":40,"existingBills":40,"missingBills":0,"processedBills":0,"remainingBills":0}`)
		}
	})
	mux.HandleFunc("/state-legislation", func(w http.ResponseWriter, r *http.Request) {
		okJSON(w, `{"results":[{"id":"b1","title":"A"}],"total":1}`)
	})
	f := newSyncFixture(t, mux, time.Millisecond)
	req := &dto.ReconcileRequest{Jurisdiction: "CA"}

	first, err := f.svc.CheckForUpdates(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 3, first.RemainingBills)

	time.Sleep(5 * time.Millisecond) // step past the request-cache TTL

	second, err := f.svc.CheckForUpdates(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, second.RemainingBills)

	time.Sleep(5 * time.Millisecond)

	// Zero remaining work: still success, not an error.
	third, err := f.svc.CheckForUpdates(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Collection is up to date.", third.Message)
}

func TestSameClassFetchRefusedWhileInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	f := newSyncFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		okJSON(w, `[]`)
	}), time.Millisecond)

	firstDone := make(chan error, 1)
	go func() {
		_, err := f.svc.FetchPage(context.Background(), &dto.FetchPageRequest{Jurisdiction: "CA", Page: 1})
		firstDone <- err
	}()
	<-entered

	assert.Equal(t, []string{FetchClassWindowed}, f.svc.ActiveFetches())

	_, err := f.svc.FetchPage(context.Background(), &dto.FetchPageRequest{Jurisdiction: "CA", Page: 2})
	var inFlight *FetchInFlightError
	require.ErrorAs(t, err, &inFlight)
	assert.Equal(t, FetchClassWindowed, inFlight.Class)

	close(release)
	require.NoError(t, <-firstDone)
	assert.Empty(t, f.svc.ActiveFetches())
}

// Two identical windowed fetches issued 200ms apart must reach the upstream
// exactly once: the second is served from the request cache.
func TestDuplicateWindowedFetchHitsUpstreamOnce(t *testing.T) {
	var calls int32
	f := newSyncFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		okJSON(w, `{"results":[{"id":"b1","title":"A"}],"total":1}`)
	}), time.Second)

	_, err := f.svc.FetchPage(context.Background(), &dto.FetchPageRequest{Jurisdiction: "CA", Page: 1})
	require.NoError(t, err)

	time.Sleep(200 * time.Millisecond)

	_, err = f.svc.FetchPage(context.Background(), &dto.FetchPageRequest{Jurisdiction: "CA", Page: 1})
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

// The page-1 refresh after an incremental fetch takes the windowed guard,
// so it can never interleave with a user-initiated page fetch. While one is
// running the refresh yields; the running fetch loads the fresh data anyway.
func TestPostSyncRefreshYieldsToWindowedFetch(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var pageCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/legiscan/fetch-recent", func(w http.ResponseWriter, r *http.Request) {
		okJSON(w, `{"success":true,"billsFound":2,"billsProcessed":2}`)
	})
	mux.HandleFunc("/state-legislation", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&pageCalls, 1) == 1 {
			close(entered)
			<-release
		}
		okJSON(w, `{"results":[{"id":"b1","title":"A"}],"total":1}`)
	})
	f := newSyncFixture(t, mux, time.Millisecond)

	pageDone := make(chan error, 1)
	go func() {
		_, err := f.svc.FetchPage(context.Background(), &dto.FetchPageRequest{Jurisdiction: "CA", Page: 1})
		pageDone <- err
	}()
	<-entered

	res, err := f.svc.FetchRecent(context.Background(), &dto.FetchRecentRequest{Jurisdiction: "CA"})
	require.NoError(t, err)
	assert.Equal(t, "Processed 2 of 2 new bills.", res.Message)

	close(release)
	require.NoError(t, <-pageDone)

	assert.Equal(t, int32(1), atomic.LoadInt32(&pageCalls),
		"refresh must yield to the in-flight page fetch instead of interleaving")
}

func TestFetchPageErrorSurfacesTaxonomy(t *testing.T) {
	f := newSyncFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>Bad Gateway</html>"))
	}), time.Millisecond)

	_, err := f.svc.FetchPage(context.Background(), &dto.FetchPageRequest{Jurisdiction: "CA", Page: 1})
	var ctErr *legiscan.UnexpectedContentTypeError
	require.ErrorAs(t, err, &ctErr)
	assert.Empty(t, f.svc.ActiveFetches(), "guard must clear after a failed fetch")
}
