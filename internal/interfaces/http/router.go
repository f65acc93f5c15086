package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"f3manager/internal/infrastructure/config"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

// Router owns the gin engine and the container behind it.
type Router struct {
	*Container

	mu     sync.Mutex
	server *http.Server
	closed bool
}

// NewRouter builds the container and an engine without default middlewares.
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	if err := utils.RegisterGinValidators(); err != nil {
		return nil, err
	}

	container, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	container.engine = gin.New()

	return &Router{Container: container}, nil
}

// GetEngine returns the gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server and blocks until it stops. A graceful Shutdown
// makes Run return nil.
func (r *Router) Run(addr string) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.engine,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	r.server = srv
	r.mu.Unlock()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and releases the container.
func (r *Router) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	srv := r.server
	r.mu.Unlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}
	r.Container.Shutdown()
	return err
}
