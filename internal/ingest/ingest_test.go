package ingest

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"orderqa/internal/metrics"
)

// fakeStore records puts and can be told to fail.
type fakeStore struct {
	arrival time.Time
	name    string
	payload []byte
	puts    int
	fail    bool
}

func (f *fakeStore) Put(arrival time.Time, name string, payload []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	f.arrival = arrival
	f.name = name
	f.payload = payload
	f.puts++
	return nil
}

func (f *fakeStore) Close() error { return nil }

func newTestHandler(store *fakeStore) *Handler {
	h := NewHandler(store, zap.NewNop(), metrics.NewRegistry())
	h.now = func() time.Time { return time.Date(2017, 1, 2, 15, 4, 5, 0, time.UTC) }
	h.newID = func() string { return "fixed-id" }
	return h
}

func TestHandle_StoresPayloadVerbatim(t *testing.T) {
	store := &fakeStore{}
	h := newTestHandler(store)

	payload := []byte(`{"orderId":"o1","status":"created"}`)
	if err := h.Handle(payload); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if store.puts != 1 {
		t.Fatalf("want 1 put, got %d", store.puts)
	}
	if !bytes.Equal(store.payload, payload) {
		t.Fatalf("payload altered: %s", store.payload)
	}
	want := ObjectName(time.Date(2017, 1, 2, 15, 4, 5, 0, time.UTC), "fixed-id")
	if store.name != want {
		t.Fatalf("object name: got %s want %s", store.name, want)
	}
}

func TestHandle_MalformedPayloadStillStored(t *testing.T) {
	// Ingestion validates nothing: garbage goes to storage like anything
	// else, so one bad event cannot block the stream.
	store := &fakeStore{}
	h := newTestHandler(store)

	if err := h.Handle([]byte("not json at all")); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if store.puts != 1 {
		t.Fatalf("malformed payload should still be stored")
	}
}

func TestHandle_StoreFailureSurfaces(t *testing.T) {
	store := &fakeStore{fail: true}
	h := newTestHandler(store)

	if err := h.Handle([]byte("{}")); err == nil {
		t.Fatalf("expected error from failing store")
	}
}
