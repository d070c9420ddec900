package feed

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testDay(t *testing.T) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return time.Date(2025, time.January, 5, 12, 0, 0, 0, loc)
}

func TestFetch(t *testing.T) {
	var gotDates []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		gotDates = append(gotDates, date)
		if date == "" {
			w.Write([]byte(`[{"source":"X","link":"http://x","state":"CA","city":"LA","platform":"YT","status":"live"}]`))
			return
		}
		w.Write([]byte(`[{"source":"Y","link":"http://y","state":"OR","city":"Portland","platform":"TW"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, newTestLogger())
	snap, err := client.Fetch(context.Background(), testDay(t))
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(gotDates) != 2 {
		t.Fatalf("got %d requests, want 2", len(gotDates))
	}
	if gotDates[0] != "" {
		t.Errorf("recent request had date param %q, want none", gotDates[0])
	}
	if gotDates[1] != "2025-01-05" {
		t.Errorf("archive request date = %q, want 2025-01-05", gotDates[1])
	}

	if len(snap.Recent) != 1 || snap.Recent[0].Source != "X" || snap.Recent[0].Status != "live" {
		t.Errorf("Recent = %+v, want one record for X", snap.Recent)
	}
	if len(snap.Archived) != 1 || snap.Archived[0].Source != "Y" || snap.Archived[0].Status != "" {
		t.Errorf("Archived = %+v, want one statusless record for Y", snap.Archived)
	}
}

func TestFetchPreservesFeedQueryParams(t *testing.T) {
	var archiveQuery = make(map[string]string)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("date") != "" {
			for k := range r.URL.Query() {
				archiveQuery[k] = r.URL.Query().Get(k)
			}
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	// The configured feed URL already carries a query string
	client := NewClient(srv.URL+"/api/streams.json?region=pnw", newTestLogger())
	if _, err := client.Fetch(context.Background(), testDay(t)); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if archiveQuery["region"] != "pnw" {
		t.Errorf("archive request lost region param: %v", archiveQuery)
	}
	if archiveQuery["date"] != "2025-01-05" {
		t.Errorf("archive request date = %q, want 2025-01-05", archiveQuery["date"])
	}
}

func TestFetchNoPartialSnapshots(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "recent request fails",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("date") == "" {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				w.Write([]byte(`[]`))
			},
		},
		{
			name: "archive request fails",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("date") != "" {
					w.WriteHeader(http.StatusBadGateway)
					return
				}
				w.Write([]byte(`[]`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"not":"an array"}`))
			},
		},
		{
			name: "non-2xx with body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`not found`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewClient(srv.URL, newTestLogger())
			if _, err := client.Fetch(context.Background(), testDay(t)); err == nil {
				t.Fatal("Fetch() expected error, got nil")
			}
		})
	}
}

func TestFetchConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	client := NewClient(srv.URL, newTestLogger())
	if _, err := client.Fetch(context.Background(), testDay(t)); err == nil {
		t.Fatal("Fetch() expected error, got nil")
	}
}

func TestFetchEmptyLists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, newTestLogger())
	snap, err := client.Fetch(context.Background(), testDay(t))
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(snap.Recent) != 0 || len(snap.Archived) != 0 {
		t.Errorf("Fetch() = %+v, want empty snapshot", snap)
	}
}
