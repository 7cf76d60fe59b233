// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	require := require.New(t)

	r := newRouter()
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	require.NoError(r.AddRouter("/ext", "/rpc", ok))
	require.ErrorIs(r.AddRouter("/ext", "/rpc", ok), errAlreadyReserved)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ext/rpc", nil))
	require.Equal(http.StatusOK, rec.Code)
	require.Equal("ok", rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ext/missing", nil))
	require.Equal(http.StatusNotFound, rec.Code)
}

func TestFilterInvalidHosts(t *testing.T) {
	ok := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	tests := []struct {
		name     string
		allowed  []string
		host     string
		expected int
	}{
		{name: "no list", host: "evil.org", expected: http.StatusOK},
		{name: "wildcard", allowed: []string{"*"}, host: "evil.org", expected: http.StatusOK},
		{name: "listed", allowed: []string{"mint.example"}, host: "MINT.example:9650", expected: http.StatusOK},
		{name: "ip", allowed: []string{"mint.example"}, host: "127.0.0.1:9650", expected: http.StatusOK},
		{name: "unlisted", allowed: []string{"mint.example"}, host: "evil.org", expected: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host
			rec := httptest.NewRecorder()
			filterInvalidHosts(ok, tt.allowed).ServeHTTP(rec, req)
			require.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestServerDispatch(t *testing.T) {
	require := require.New(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)

	var wrapped atomic.Bool
	s := New(logging.NoLog{}, listener, NewDefaultHTTPConfig(), []string{"*"}, nil,
		WrapperFunc(func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				wrapped.Store(true)
				h.ServeHTTP(w, r)
			})
		}),
	)
	require.NoError(s.AddRoute(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	}), "/ext", "/ping"))

	done := make(chan error, 1)
	go func() { done <- s.Dispatch() }()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://"+s.Addr().String()+"/ext/ping", nil)
	require.NoError(err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(err)
	require.NoError(resp.Body.Close())
	require.Equal("pong", string(body))
	require.True(wrapped.Load())

	require.NoError(s.Shutdown())
	require.NoError(<-done)
}
