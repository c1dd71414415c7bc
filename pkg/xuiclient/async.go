package xuiclient

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/panics"

	"xui-panel-client/internal/models"
)

// Future is the pending result of an asynchronous call
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func goFuture[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)

		var pc panics.Catcher
		pc.Try(func() {
			f.value, f.err = fn()
		})
		if r := pc.Recovered(); r != nil {
			f.err = r.AsError()
		}
	}()
	return f
}

// Done is closed once the result is available
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await waits for the result. Giving up on ctx does not cancel the call; the
// call follows the context it was started with.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// AsyncSettingAPI exposes the SettingAPI operations without blocking the
// caller: each call runs in its own goroutine and returns a Future.
type AsyncSettingAPI struct {
	api *SettingAPI
}

// NewAsyncSettingAPI creates an asynchronous settings API over the given transport
func NewAsyncSettingAPI(transport Transport, logger logrus.FieldLogger) *AsyncSettingAPI {
	return &AsyncSettingAPI{api: NewSettingAPI(transport, logger)}
}

// GetAll starts SettingAPI.GetAll
func (a *AsyncSettingAPI) GetAll(ctx context.Context) *Future[models.PanelSettings] {
	return goFuture(func() (models.PanelSettings, error) {
		return a.api.GetAll(ctx)
	})
}

// Update starts SettingAPI.Update
func (a *AsyncSettingAPI) Update(ctx context.Context, settings models.PanelSettings) *Future[struct{}] {
	return goFuture(func() (struct{}, error) {
		return struct{}{}, a.api.Update(ctx, settings)
	})
}

// RestartPanel starts SettingAPI.RestartPanel
func (a *AsyncSettingAPI) RestartPanel(ctx context.Context) *Future[struct{}] {
	return goFuture(func() (struct{}, error) {
		return struct{}{}, a.api.RestartPanel(ctx)
	})
}
