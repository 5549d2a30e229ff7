package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRTMStart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rtm.start" {
			t.Errorf("path = %q, want /rtm.start", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("token") != "xoxp-t" {
			t.Errorf("token = %q, want xoxp-t", r.PostForm.Get("token"))
		}
		if r.PostForm.Get("mpim_aware") != "1" {
			t.Error("mpim_aware flag missing")
		}
		w.Write([]byte(`{
			"ok": true,
			"url": "wss://example.test/ws",
			"team": {"id": "T1", "name": "acme"},
			"self": {"id": "U0", "name": "me"},
			"users": [{"id": "U0"}, {"id": "U1"}],
			"channels": [{"id": "C1", "name": "general"}]
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "xoxp-t", nil)
	snap, err := c.RTMStart(context.Background())
	if err != nil {
		t.Fatalf("RTMStart() error = %v", err)
	}
	if snap.URL != "wss://example.test/ws" {
		t.Errorf("URL = %q", snap.URL)
	}
	if snap.Team == nil || snap.Team.Name != "acme" {
		t.Errorf("Team = %+v", snap.Team)
	}
	if len(snap.Users) != 2 || len(snap.Channels) != 1 {
		t.Errorf("users=%d channels=%d", len(snap.Users), len(snap.Channels))
	}
}

func TestCallServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok": false, "error": "invalid_auth"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "bad-token", nil)
	_, err := c.RTMStart(context.Background())
	if !errors.Is(err, ErrInvalidAuth) {
		t.Errorf("error = %v, want ErrInvalidAuth", err)
	}
}

func TestCallUnknownErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok": false, "error": "flux_capacitor_missing"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "t", nil)
	err := c.AddReaction(context.Background(), "thumbsup", "C1", "1.0")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.Code != "flux_capacitor_missing" {
		t.Errorf("code = %q", apiErr.Code)
	}
}

func TestWriteMethods(t *testing.T) {
	var gotPath string
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		r.ParseForm()
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "t", nil)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		path string
		form map[string]string
	}{
		{
			"add reaction",
			func() error { return c.AddReaction(ctx, "eyes", "C1", "1.0") },
			"/reactions.add",
			map[string]string{"name": "eyes", "channel": "C1", "timestamp": "1.0"},
		},
		{
			"remove reaction",
			func() error { return c.RemoveReaction(ctx, "eyes", "C1", "1.0") },
			"/reactions.remove",
			map[string]string{"name": "eyes", "channel": "C1", "timestamp": "1.0"},
		},
		{
			"update message",
			func() error { return c.UpdateMessage(ctx, "C1", "1.0", "fixed") },
			"/chat.update",
			map[string]string{"channel": "C1", "ts": "1.0", "text": "fixed"},
		},
		{
			"delete message",
			func() error { return c.DeleteMessage(ctx, "C1", "1.0") },
			"/chat.delete",
			map[string]string{"channel": "C1", "ts": "1.0"},
		},
		{
			"mark channel",
			func() error { return c.MarkChannel(ctx, "C1", "2.0") },
			"/channels.mark",
			map[string]string{"channel": "C1", "ts": "2.0"},
		},
		{
			"set presence",
			func() error { return c.SetPresence(ctx, "away") },
			"/users.setPresence",
			map[string]string{"presence": "away"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err != nil {
				t.Fatalf("call error = %v", err)
			}
			if gotPath != tt.path {
				t.Errorf("path = %q, want %q", gotPath, tt.path)
			}
			for k, v := range tt.form {
				if gotForm[k] != v {
					t.Errorf("form[%s] = %q, want %q", k, gotForm[k], v)
				}
			}
			if gotForm["token"] != "t" {
				t.Error("token missing from form")
			}
		})
	}
}

func TestClassify(t *testing.T) {
	if err := classify("rate_limited"); !errors.Is(err, ErrRateLimited) {
		t.Errorf("classify(rate_limited) = %v", err)
	}
	err := classify("something_else")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "something_else" {
		t.Errorf("classify(something_else) = %v", err)
	}
}
