// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/gorilla/mux"
)

var errAlreadyReserved = errors.New("route is either already aliased or already maps to a handle")

type router struct {
	lock   sync.RWMutex
	router *mux.Router

	reserved map[string]struct{}
}

func newRouter() *router {
	return &router{
		router:   mux.NewRouter(),
		reserved: make(map[string]struct{}),
	}
}

func (r *router) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	r.router.ServeHTTP(writer, request)
}

func (r *router) AddRouter(base, endpoint string, handler http.Handler) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	url := base + endpoint
	if _, exists := r.reserved[url]; exists {
		return fmt.Errorf("%w: %s", errAlreadyReserved, url)
	}
	r.reserved[url] = struct{}{}
	r.router.Handle(url, handler)
	return nil
}

// filterInvalidHosts answers 403 to requests whose Host is not allowed. An
// empty list or a "*" entry allows every host.
func filterInvalidHosts(handler http.Handler, allowed []string) http.Handler {
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return handler
	}
	hosts := make([]string, len(allowed))
	for i, h := range allowed {
		hosts[i] = strings.ToLower(h)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.Host)
		if err != nil {
			host = r.Host
		}
		// Direct IP access is always allowed.
		if net.ParseIP(host) != nil || slices.Contains(hosts, strings.ToLower(host)) {
			handler.ServeHTTP(w, r)
			return
		}
		http.Error(w, "invalid host specified", http.StatusForbidden)
	})
}
