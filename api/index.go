package handler

import (
	"net/http"
	"sync"

	"guesthouse/config"
	"guesthouse/di"
	"guesthouse/shared/logger"
)

var (
	service http.Handler
	once    sync.Once
)

// Handler is the serverless entrypoint. The service graph is built on the
// first request and reused by warm invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		logger.InitLogger(config.Get())

		service = di.InitializeService()
	})

	r.RequestURI = r.URL.String()
	service.ServeHTTP(w, r)
}
