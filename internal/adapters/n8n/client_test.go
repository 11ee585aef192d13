package n8n

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestValidateURL(t *testing.T) {
	cases := []struct {
		url  string
		want error
	}{
		{"", ErrURLRequired},
		{"   ", ErrURLRequired},
		{"ftp://host/webhook/x", ErrURLScheme},
		{"host/webhook/x", ErrURLScheme},
		{"http://host/api/trigger", ErrURLShape},
		{"http://host/webhook/meta-sentiment", nil},
		{"https://my-n8n.example.com/hook", nil},
		{"http://host/webhook/meta-sentiment/", nil},
	}
	for _, c := range cases {
		if got := ValidateURL(c.url); !errors.Is(got, c.want) {
			t.Fatalf("ValidateURL(%q) = %v, want %v", c.url, got, c.want)
		}
	}
}

func TestNew_RejectsBadURL(t *testing.T) {
	if _, err := New("http://host/api/trigger", 0, 0); !errors.Is(err, ErrURLShape) {
		t.Fatalf("expected ErrURLShape, got %v", err)
	}
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	c, err := New(ts.URL+"/webhook/test", 5*time.Second, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, ts
}

func TestRun_Success(t *testing.T) {
	var gotMethod, gotBody, gotCT string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotCT = r.Header.Get("Content-Type")
		b := make([]byte, 16)
		n, _ := r.Body.Read(b)
		gotBody = string(b[:n])
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sentiment":{"positiveCount":2}}`))
	})

	out, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if gotMethod != http.MethodPost || gotBody != "{}" || gotCT != "application/json" {
		t.Fatalf("bad request: method=%s body=%q ct=%q", gotMethod, gotBody, gotCT)
	}
	m, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", out)
	}
	if _, ok := m["sentiment"]; !ok {
		t.Fatalf("payload not decoded: %v", m)
	}
}

func TestRun_RemoteError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(strings.Repeat("x", 500)))
	})

	_, err := c.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "n8n returned 500") {
		t.Fatalf("missing status in error: %v", err)
	}
	// body excerpt is capped
	if strings.Count(err.Error(), "x") != 200 {
		t.Fatalf("excerpt not capped at 200: %v", err)
	}
}

func TestRun_ErrorExcerptKeepsRuneBoundaries(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(strings.Repeat("é", 300)))
	})

	_, err := c.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !utf8.ValidString(err.Error()) {
		t.Fatalf("error message is not valid UTF-8: %q", err.Error())
	}
	if n := strings.Count(err.Error(), "é"); n != 200 {
		t.Fatalf("excerpt not capped at 200 characters: got %d", n)
	}
}

func TestRun_InvalidJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := c.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "invalid JSON") {
		t.Fatalf("expected invalid JSON error, got %v", err)
	}
}

func TestRun_EmptyBodyIsEmptyObject(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	out, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(out, map[string]any{}) {
		t.Fatalf("expected empty object, got %#v", out)
	}
}

func TestRun_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL + "/webhook/test"
	ts.Close()

	c, err := New(url, time.Second, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "cannot reach n8n") {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestRun_ContextCanceled(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Drain the body: the server only watches for client disconnect (and
		// cancels r.Context()) once the request body has been consumed.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}
