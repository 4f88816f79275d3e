// Copyright 2014 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package http serves writer metrics while a conversion runs.
package http

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cayleygraph/rdfwriter/clog"
)

type statusWriter struct {
	http.ResponseWriter
	code *int
}

func (w *statusWriter) WriteHeader(code int) {
	*(w.code) = code
	w.ResponseWriter.WriteHeader(code)
}

func LogRequest(handler httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
		if !clog.V(2) {
			handler(w, req, params)
			return
		}
		start := time.Now()
		code := 200
		rw := &statusWriter{ResponseWriter: w, code: &code}
		clog.Infof("started %s %s for %s", req.Method, req.URL.Path, req.RemoteAddr)
		handler(rw, req, params)
		clog.Infof("completed %v %s %s in %v", code, http.StatusText(code), req.URL.Path, time.Since(start))
	}
}

// NewRouter returns a router exposing /metrics and /health.
func NewRouter() *httprouter.Router {
	r := httprouter.New()
	metrics := promhttp.Handler()
	r.GET("/metrics", LogRequest(func(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
		metrics.ServeHTTP(w, req)
	}))
	r.GET("/health", LogRequest(func(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
		HandleHealth(w, req)
	}))
	return r
}

// Serve starts serving NewRouter on addr in the background. The returned
// function shuts the server down.
func Serve(addr string) (stop func(), _ error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{Handler: NewRouter()}
	go func() {
		if err := srv.Serve(lis); err != nil && err != http.ErrServerClosed {
			clog.Errorf("metrics server: %v", err)
		}
	}()
	clog.Infof("serving metrics on http://%s/metrics", lis.Addr())
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
