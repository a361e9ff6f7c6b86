package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSimple(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("<html><body><p>hello</p></body></html>"))
	}))
	defer srv.Close()

	Configure(Options{UserAgent: "pinpoint-test"})
	defer Configure(DefaultOptions())

	res, err := Simple(context.Background(), srv.URL+"/page")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.HTML, "<p>hello</p>") {
		t.Errorf("unexpected body %q", res.HTML)
	}
	if res.UsedBrowser || res.FinalURL != srv.URL+"/page" {
		t.Errorf("unexpected result %+v", res)
	}
	if gotUA != "pinpoint-test" {
		t.Errorf("expected configured user agent, got %q", gotUA)
	}

	if _, err := Simple(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("expected an error for a 404")
	}
}

func TestConfigure(t *testing.T) {
	defer Configure(DefaultOptions())

	Configure(Options{TimeoutSeconds: 5})
	if Timeout().Seconds() != 5 {
		t.Errorf("expected 5s timeout, got %v", Timeout())
	}
	if opts.UserAgent != DefaultOptions().UserAgent {
		t.Error("expected an empty user agent to keep the current one")
	}
}

func TestIsBlockedResponse(t *testing.T) {
	tests := []struct {
		html    string
		blocked bool
		reason  string
	}{
		{"<title>Just a moment...</title>", true, "Cloudflare challenge"},
		{`<script src="https://ct.captcha-delivery.com/c.js"></script>`, true, "DataDome bot protection"},
		{"<html><body>a normal page</body></html>", false, ""},
	}
	for _, tt := range tests {
		blocked, reason := IsBlockedResponse(tt.html)
		if blocked != tt.blocked || reason != tt.reason {
			t.Errorf("IsBlockedResponse(%q) = %v %q, want %v %q", tt.html, blocked, reason, tt.blocked, tt.reason)
		}
	}
}

func TestMarkHiddenScript(t *testing.T) {
	if !strings.Contains(markHiddenScript, "data-pinpoint-hidden") {
		t.Error("expected the script to stamp the dom hidden marker")
	}
}
