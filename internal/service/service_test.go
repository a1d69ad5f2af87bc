package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/deppfellow/portfolio-api/internal/errs"
	"github.com/deppfellow/portfolio-api/internal/model"
	"github.com/deppfellow/portfolio-api/internal/repository/repositorytest"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/storage/storagetest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{Logger: &logger}
}

func requireHTTPStatus(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	require.Equal(t, status, httpErr.Status)
	return httpErr
}

func strPtr(s string) *string { return &s }

func TestBlogService(t *testing.T) {
	ctx := context.Background()
	blogs := repositorytest.NewCollection[model.Blog]()
	svc := NewBlogService(newTestServer(), blogs)

	created, err := svc.Create(ctx, model.BlogFields{
		Title:   "Hello",
		Content: "Body",
		Author:  "Ann",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Zero(t, created.Views)
	assert.Equal(t, []string{}, created.Tags)

	t.Run("get counts one view per read", func(t *testing.T) {
		for want := int64(1); want <= 3; want++ {
			got, err := svc.Get(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, want, got.Views)
			assert.Equal(t, "Hello", got.Title)
		}
	})

	t.Run("missing post is 404", func(t *testing.T) {
		_, err := svc.Get(ctx, "nope")
		httpErr := requireHTTPStatus(t, err, http.StatusNotFound)
		assert.Equal(t, "Blog post not found", httpErr.Message)

		_, err = svc.Update(ctx, "nope", model.BlogFields{Title: "x", Content: "y", Author: "z"})
		requireHTTPStatus(t, err, http.StatusNotFound)

		requireHTTPStatus(t, svc.Delete(ctx, "nope"), http.StatusNotFound)
	})

	t.Run("update replaces editable fields and keeps views", func(t *testing.T) {
		before, ok := blogs.Raw(created.ID)
		require.True(t, ok)

		updated, err := svc.Update(ctx, created.ID, model.BlogFields{
			Title:    "Changed",
			Content:  "New body",
			Author:   "Bob",
			ImageURL: strPtr("https://img.example.com/a.png"),
			Tags:     []string{"go"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Changed", updated.Title)
		assert.Equal(t, "https://img.example.com/a.png", *updated.ImageURL)
		assert.Equal(t, []string{"go"}, updated.Tags)
		assert.Equal(t, before["views"], float64(updated.Views))
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	})

	t.Run("concurrent reads lose no views", func(t *testing.T) {
		post, err := svc.Create(ctx, model.BlogFields{Title: "t", Content: "c", Author: "a"})
		require.NoError(t, err)

		const readers = 50
		var wg sync.WaitGroup
		for i := 0; i < readers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = svc.Get(ctx, post.ID)
			}()
		}
		wg.Wait()

		raw, _ := blogs.Raw(post.ID)
		assert.Equal(t, float64(readers), raw["views"])
	})

	t.Run("list is newest first", func(t *testing.T) {
		list, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.False(t, list[0].CreatedAt.Before(list[1].CreatedAt))
	})

	t.Run("store failure is 500 with details", func(t *testing.T) {
		failing := repositorytest.NewCollection[model.Blog]()
		failing.Err = errors.New("deadline exceeded")
		_, err := NewBlogService(newTestServer(), failing).List(ctx)
		httpErr := requireHTTPStatus(t, err, http.StatusInternalServerError)
		assert.Equal(t, "Failed to fetch blog posts", httpErr.Message)
		assert.Equal(t, "deadline exceeded", httpErr.Details)
	})

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, ok := blogs.Raw(created.ID)
	assert.False(t, ok)
}

func TestProductServiceListFiltersByCategory(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(newTestServer(), repositorytest.NewCollection[model.Product]())

	_, err := svc.Create(ctx, model.ProductFields{Name: "a", Description: "d", Price: 1, Category: "books"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, model.ProductFields{Name: "b", Description: "d", Price: 2, Category: "games"})
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	books, err := svc.List(ctx, "books")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "a", books[0].Name)

	none, err := svc.List(ctx, "music")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	requireHTTPStatus(t, svc.Update(ctx, "missing", model.ProductFields{Name: "x"}), http.StatusNotFound)
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []string
	err   error
	done  chan struct{}
}

func (f *fakeNotifier) SendFormReceivedEmail(_ context.Context, to, name string) error {
	f.mu.Lock()
	f.calls = append(f.calls, to+"|"+name)
	f.mu.Unlock()
	if f.done != nil {
		f.done <- struct{}{}
	}
	return f.err
}

func TestFormServiceSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("stores pending form and notifies sender", func(t *testing.T) {
		forms := repositorytest.NewCollection[model.FormSubmission]()
		notifier := &fakeNotifier{}
		svc := NewFormService(newTestServer(), forms, notifier)

		form, err := svc.Submit(ctx, &model.SubmitFormRequest{
			Name: "Jane &amp; Co", Email: "jane@example.com", Number: "123", Message: "hi", Subject: "s",
		})
		require.NoError(t, err)
		require.NoError(t, svc.Wait(ctx))

		assert.Equal(t, model.FormStatusPending, form.Status)
		assert.Equal(t, 1, forms.Len())
		assert.Equal(t, []string{"jane@example.com|Jane & Co"}, notifier.calls)
	})

	t.Run("notification failure does not fail the submission", func(t *testing.T) {
		forms := repositorytest.NewCollection[model.FormSubmission]()
		notifier := &fakeNotifier{err: errors.New("provider down")}
		svc := NewFormService(newTestServer(), forms, notifier)

		_, err := svc.Submit(ctx, &model.SubmitFormRequest{Name: "J", Email: "j@example.com", Number: "1", Message: "m", Subject: "s"})
		require.NoError(t, err)
		require.NoError(t, svc.Wait(ctx))
		assert.Equal(t, 1, forms.Len())
		assert.Len(t, notifier.calls, 1)
	})

	t.Run("store failure skips notification", func(t *testing.T) {
		forms := repositorytest.NewCollection[model.FormSubmission]()
		forms.Err = errors.New("unavailable")
		notifier := &fakeNotifier{}
		svc := NewFormService(newTestServer(), forms, notifier)

		_, err := svc.Submit(ctx, &model.SubmitFormRequest{Name: "J", Email: "j@example.com"})
		httpErr := requireHTTPStatus(t, err, http.StatusInternalServerError)
		assert.Equal(t, "Failed to submit form", httpErr.Message)
		require.NoError(t, svc.Wait(ctx))
		assert.Empty(t, notifier.calls)
	})

	t.Run("wait honours context", func(t *testing.T) {
		notifier := &fakeNotifier{done: make(chan struct{})}
		svc := NewFormService(newTestServer(), repositorytest.NewCollection[model.FormSubmission](), notifier)

		_, err := svc.Submit(ctx, &model.SubmitFormRequest{Name: "J", Email: "j@example.com"})
		require.NoError(t, err)

		short, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, svc.Wait(short), context.DeadlineExceeded)

		<-notifier.done
		require.NoError(t, svc.Wait(ctx))
	})
}

func TestFormServiceUpdateStatus(t *testing.T) {
	ctx := context.Background()
	forms := repositorytest.NewCollection[model.FormSubmission]()
	svc := NewFormService(newTestServer(), forms, nil)

	form, err := svc.Submit(ctx, &model.SubmitFormRequest{Name: "J", Email: "j@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, form.ID, model.FormStatusCompleted))
	require.NoError(t, svc.UpdateStatus(ctx, form.ID, model.FormStatusCompleted))

	raw, _ := forms.Raw(form.ID)
	assert.Equal(t, model.FormStatusCompleted, raw["status"])
	assert.NotNil(t, raw["updatedAt"])

	requireHTTPStatus(t, svc.UpdateStatus(ctx, "missing", model.FormStatusPending), http.StatusNotFound)
}

func TestSubscriptionService(t *testing.T) {
	ctx := context.Background()
	subscribers := repositorytest.NewCollection[model.Subscriber]()
	svc := NewSubscriptionService(newTestServer(), subscribers)

	require.NoError(t, svc.Subscribe(ctx, "a@example.com"))

	err := svc.Subscribe(ctx, "a@example.com")
	httpErr := requireHTTPStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Email already subscribed", httpErr.Message)
	assert.Equal(t, errs.CodeAlreadySubscribed, httpErr.Code)
	assert.Equal(t, 1, subscribers.Len())

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a@example.com", list[0].ID)

	require.NoError(t, svc.Unsubscribe(ctx, "a@example.com"))
	require.NoError(t, svc.Unsubscribe(ctx, "a@example.com"))
	assert.Zero(t, subscribers.Len())
}

func TestSubscriptionServiceConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	subscribers := repositorytest.NewCollection[model.Subscriber]()
	svc := NewSubscriptionService(newTestServer(), subscribers)

	var ok atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if svc.Subscribe(ctx, "race@example.com") == nil {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, 1, subscribers.Len())
}

func TestVisitorServiceHit(t *testing.T) {
	ctx := context.Background()

	t.Run("sequential", func(t *testing.T) {
		svc := NewVisitorService(newTestServer(), repositorytest.NewCollection[model.VisitorCounter]())

		first, err := svc.Hit(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), first.Count)
		assert.Equal(t, VisitorCountInitialized, first.Message)

		for want := int64(2); want <= 5; want++ {
			got, err := svc.Hit(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got.Count)
			assert.Equal(t, VisitorCountUpdated, got.Message)
		}
	})

	t.Run("concurrent calls lose no updates", func(t *testing.T) {
		counters := repositorytest.NewCollection[model.VisitorCounter]()
		svc := NewVisitorService(newTestServer(), counters)

		const callers = 100
		var wg sync.WaitGroup
		var failures atomic.Int32
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := svc.Hit(ctx); err != nil {
					failures.Add(1)
				}
			}()
		}
		wg.Wait()

		require.Zero(t, failures.Load())
		raw, ok := counters.Raw(model.VisitorCounterID)
		require.True(t, ok)
		assert.Equal(t, float64(callers), raw["count"])
	})

	t.Run("store failure", func(t *testing.T) {
		counters := repositorytest.NewCollection[model.VisitorCounter]()
		counters.Err = errors.New("boom")
		_, err := NewVisitorService(newTestServer(), counters).Hit(ctx)
		httpErr := requireHTTPStatus(t, err, http.StatusInternalServerError)
		assert.Equal(t, "Failed to update visitor count", httpErr.Message)
	})
}

func TestBlobName(t *testing.T) {
	assert.Equal(t, "report.pdf", BlobName("report", "x.pdf"))
	assert.Equal(t, "report.gz", BlobName("report", "archive.tar.gz"))
	assert.Equal(t, "report", BlobName("report", "README"))
	assert.Equal(t, "logo.png", BlobName("logo", "dir/sub/pic.png"))
}

func TestAssetService(t *testing.T) {
	ctx := context.Background()
	assets := repositorytest.NewCollection[model.Asset]()
	blobs := storagetest.NewStore()
	svc := NewAssetService(newTestServer(), assets, blobs)

	_, err := svc.List(ctx)
	httpErr := requireHTTPStatus(t, err, http.StatusNotFound)
	assert.Equal(t, "No assets found", httpErr.Message)

	url, err := svc.Upload(ctx, "report", Upload{OriginalName: "x.pdf", ContentType: "application/pdf", Data: []byte("%PDF")})
	require.NoError(t, err)
	assert.Equal(t, storagetest.BaseURL+"report.pdf", url)

	obj, ok := blobs.Object("report.pdf")
	require.True(t, ok)
	assert.Equal(t, "application/pdf", obj.ContentType)

	got, err := svc.URL(ctx, "report.pdf")
	require.NoError(t, err)
	assert.Equal(t, url, got)

	_, err = svc.URL(ctx, "report")
	httpErr = requireHTTPStatus(t, err, http.StatusNotFound)
	assert.Equal(t, "File not found", httpErr.Message)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "x.pdf", list[0].FileName)

	t.Run("blob failure writes no metadata", func(t *testing.T) {
		failingBlobs := storagetest.NewStore()
		failingBlobs.Err = errors.New("403")
		meta := repositorytest.NewCollection[model.Asset]()

		_, err := NewAssetService(newTestServer(), meta, failingBlobs).Upload(ctx, "a", Upload{OriginalName: "a.txt"})
		requireHTTPStatus(t, err, http.StatusInternalServerError)
		assert.Zero(t, meta.Len())
	})
}
