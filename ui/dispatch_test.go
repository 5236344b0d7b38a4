package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/use-agent/reviewui/models"
)

func TestDispatch_NoHandler(t *testing.T) {
	d := NewDispatcher()
	err := d.Dispatch(context.Background(), ExportButton, EventClick).Wait(context.Background())
	if !errors.Is(err, ErrNoHandler) {
		t.Fatalf("err = %v, want ErrNoHandler", err)
	}
}

func TestDispatch_RunsHandlersInOrderAndKeepsFirstError(t *testing.T) {
	d := NewDispatcher()
	var order []int
	errFirst := errors.New("first")

	d.On(ScrapeForm, EventSubmit, func(context.Context) error { order = append(order, 1); return errFirst })
	d.On(ScrapeForm, EventSubmit, func(context.Context) error { order = append(order, 2); return errors.New("second") })
	d.On(ExportButton, EventClick, func(context.Context) error { order = append(order, 99); return nil })

	task := d.Dispatch(context.Background(), ScrapeForm, EventSubmit)
	if err := task.Wait(context.Background()); !errors.Is(err, errFirst) {
		t.Fatalf("err = %v", err)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v", order)
	}
	if !errors.Is(task.Err(), errFirst) {
		t.Errorf("Err() = %v", task.Err())
	}
}

func TestDispatch_RecoversPanics(t *testing.T) {
	d := NewDispatcher()
	d.On(ExportButton, EventClick, func(context.Context) error { panic("boom") })

	if err := d.Dispatch(context.Background(), ExportButton, EventClick).Wait(context.Background()); err == nil {
		t.Fatal("expected an error from a panicking handler")
	}
}

func TestTask_WaitHonoursContext(t *testing.T) {
	d := NewDispatcher()
	release := make(chan struct{})
	d.On(ScrapeForm, EventSubmit, func(context.Context) error { <-release; return nil })

	task := d.Dispatch(context.Background(), ScrapeForm, EventSubmit)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := task.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
	if task.Err() != nil {
		t.Error("Err() should be nil before completion")
	}

	close(release)
	<-task.Done()
}

func TestBlobStore_CreateResolveRevoke(t *testing.T) {
	s := NewBlobStore()
	b := &models.Blob{Data: []byte("x")}

	href := s.Create(b)
	if got, ok := s.Resolve(href); !ok || got != b {
		t.Fatalf("resolve %s failed", href)
	}
	if other := s.Create(b); other == href {
		t.Error("object URLs must be unique")
	}

	s.Revoke(href)
	if _, ok := s.Resolve(href); ok {
		t.Error("revoked URL still resolves")
	}
	if err := (Anchor{Href: href, Download: "a.xlsx"}).Click(context.Background(), s, DirDownloader{Dir: t.TempDir()}); err == nil {
		t.Error("clicking a revoked anchor should fail")
	}
}

func TestNewPage_InitialVisibility(t *testing.T) {
	p := NewPage()
	for _, id := range []ElementID{Loading, ErrorBanner, ResultsSection} {
		if p.Visible(id) {
			t.Errorf("%s visible initially", id)
		}
	}
	for _, id := range []ElementID{ScrapeForm, ExportButton, ReviewsList} {
		if !p.Visible(id) {
			t.Errorf("%s hidden initially", id)
		}
	}
	if len(p.Snapshot()) != len(AllElements) {
		t.Errorf("snapshot has %d elements", len(p.Snapshot()))
	}
}
