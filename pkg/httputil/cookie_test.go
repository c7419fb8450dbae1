package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSetSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "tok", time.Hour, true)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies", len(cookies))
	}
	c := cookies[0]
	if c.Name != SessionCookieName || c.Value != "tok" || !c.HttpOnly || !c.Secure {
		t.Fatalf("unexpected cookie %+v", c)
	}
	if c.SameSite != http.SameSiteNoneMode || c.MaxAge != 3600 {
		t.Fatalf("unexpected cookie %+v", c)
	}
}

func TestGetTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		header string
		want   string
		ok     bool
	}{
		{name: "cookie", cookie: "from-cookie", header: "Bearer from-header", want: "from-cookie", ok: true},
		{name: "bearer", header: "Bearer from-header", want: "from-header", ok: true},
		{name: "raw header", header: "raw", want: "raw", ok: true},
		{name: "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			got, err := GetTokenFromRequest(req)
			if (err == nil) != tt.ok || got != tt.want {
				t.Fatalf("GetTokenFromRequest = %q, %v", got, err)
			}
		})
	}
}
