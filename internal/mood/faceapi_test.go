package mood

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// testImage returns a tiny valid PNG.
func testImage(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestClient(t *testing.T, responseJSON string, status int) (*FaceAPIClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(status)
		w.Write([]byte(responseJSON))
	}))
	return NewFaceAPIClient(srv.URL, 0.5, 5*time.Second, 2), srv
}

func TestDetectSingleFace(t *testing.T) {
	c, srv := newTestClient(t, `{"success":true,"faces":[
		{"bbox_width":0.4,"bbox_height":0.5,"emotion":"happy","confidence":0.93}
	]}`, 200)
	defer srv.Close()

	got, err := c.Detect(context.Background(), testImage(t))
	if err != nil {
		t.Fatal(err)
	}
	if got.Label != "happy" || got.Confidence != 0.93 {
		t.Errorf("got %+v, want happy/0.93", got)
	}
}

func TestDetectPicksLargestFace(t *testing.T) {
	c, srv := newTestClient(t, `{"success":true,"faces":[
		{"bbox_width":0.1,"bbox_height":0.1,"emotion":"sad","confidence":0.99},
		{"bbox_width":0.5,"bbox_height":0.6,"emotion":"happy","confidence":0.88},
		{"bbox_width":0.2,"bbox_height":0.2,"emotion":"angry","confidence":0.95}
	]}`, 200)
	defer srv.Close()

	got, err := c.Detect(context.Background(), testImage(t))
	if err != nil {
		t.Fatal(err)
	}
	if got.Label != "happy" {
		t.Errorf("got %q, want emotion of largest face", got.Label)
	}
}

func TestDetectLowConfidenceDegradesToUnknown(t *testing.T) {
	c, srv := newTestClient(t, `{"success":true,"faces":[
		{"bbox_width":0.4,"bbox_height":0.4,"emotion":"happy","confidence":0.31}
	]}`, 200)
	defer srv.Close()

	got, err := c.Detect(context.Background(), testImage(t))
	if err != nil {
		t.Fatal(err)
	}
	if got.Label != LabelUnknown || got.Confidence != 0 {
		t.Errorf("got %+v, want unknown result", got)
	}
}

func TestDetectNoFaces(t *testing.T) {
	c, srv := newTestClient(t, `{"success":true,"faces":[]}`, 200)
	defer srv.Close()

	got, err := c.Detect(context.Background(), testImage(t))
	if err != nil {
		t.Fatal(err)
	}
	if got.Label != LabelUnknown {
		t.Errorf("got %q, want unknown", got.Label)
	}
}

func TestDetectServiceError(t *testing.T) {
	c, srv := newTestClient(t, `backend exploded`, 500)
	defer srv.Close()

	if _, err := c.Detect(context.Background(), testImage(t)); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestDetectMalformedImage(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()
	c := NewFaceAPIClient(srv.URL, 0.5, 5*time.Second, 2)

	_, err := c.Detect(context.Background(), []byte("definitely not an image"))
	if !errors.Is(err, ErrBadImage) {
		t.Fatalf("got %v, want ErrBadImage", err)
	}
	if called {
		t.Error("malformed image must be rejected before any network call")
	}

	_, err = c.Detect(context.Background(), nil)
	if !errors.Is(err, ErrBadImage) {
		t.Fatalf("got %v, want ErrBadImage for empty payload", err)
	}
}
