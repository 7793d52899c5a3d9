package http

import (
	"net/http"
	"time"
)

func NewServer(handler http.Handler, addr string, timeout time.Duration) *http.Server {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
		IdleTimeout:       60 * time.Second,
	}
}
