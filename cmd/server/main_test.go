package main

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

func TestServe_WaitsForInFlightRequests(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	started := make(chan struct{})
	var handlerDone atomic.Bool
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		time.Sleep(200 * time.Millisecond)
		handlerDone.Store(true)
		w.WriteHeader(http.StatusNoContent)
	})}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	served := make(chan error, 1)
	go func() { served <- serve(ctx, srv, ln, 5*time.Second) }()

	resp := make(chan *http.Response, 1)
	go func() {
		r, err := http.Get("http://" + ln.Addr().String() + "/slow")
		if err != nil {
			t.Errorf("request: %v", err)
			resp <- nil
			return
		}
		resp <- r
	}()

	<-started
	cancel()

	if err := <-served; err != nil {
		t.Fatalf("serve: %v", err)
	}
	if !handlerDone.Load() {
		t.Error("serve returned before the in-flight request finished")
	}
	if r := <-resp; r != nil {
		r.Body.Close()
		if r.StatusCode != http.StatusNoContent {
			t.Errorf("status = %d, want 204", r.StatusCode)
		}
	}
}

func TestServe_ReturnsAfterCancelWithNoTraffic(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- serve(ctx, &http.Server{Handler: http.NotFoundHandler()}, ln, time.Second) }()

	cancel()
	select {
	case err := <-served:
		if err != nil {
			t.Errorf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
