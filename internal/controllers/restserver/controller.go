package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/chrissnell/panchanga/internal/log"
	"github.com/chrissnell/panchanga/internal/types"
	"github.com/chrissnell/panchanga/pkg/config"
	"github.com/chrissnell/panchanga/pkg/panchanga"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Calculator builds Panchangas for the configured observer
type Calculator interface {
	Panchanga(at time.Time) (*panchanga.Panchanga, error)
	Location() *time.Location
	Observer() types.Location
}

// Controller represents the REST server controller
type Controller struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	restConfig config.RESTServerData
	Server     http.Server
	calculator Calculator
	logger     *zap.SugaredLogger
	handlers   *Handlers
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, rc config.RESTServerData, calc Calculator, logger *zap.SugaredLogger) (*Controller, error) {
	if calc == nil {
		return nil, fmt.Errorf("REST server requires a calculator")
	}

	// If a ListenAddr was not provided, listen on all interfaces
	if rc.ListenAddr == "" {
		logger.Info("rest.listen-addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		rc.ListenAddr = config.DefaultListenAddr
	}

	// Set default HTTP port if not specified
	if rc.Port == 0 {
		logger.Infof("rest.port not provided; defaulting to %d", config.DefaultPort)
		rc.Port = config.DefaultPort
	}

	ctrl := &Controller{
		ctx:        ctx,
		wg:         wg,
		restConfig: rc,
		calculator: calc,
		logger:     logger,
	}
	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server.Addr = fmt.Sprintf("%v:%v", rc.ListenAddr, rc.Port)
	ctrl.Server.Handler = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{logger}),
	)(handlers.CompressHandler(ctrl.setupRouter()))
	ctrl.Server.ReadHeaderTimeout = 10 * time.Second

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Infof("Starting REST server on %s", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if c.restConfig.Cert != "" && c.restConfig.Key != "" {
			if err := c.Server.ListenAndServeTLS(c.restConfig.Cert, c.restConfig.Key); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.Server.Shutdown(shutdownCtx)
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(log.HTTPMiddleware(c.logger))

	router.HandleFunc("/panchanga", c.handlers.GetPanchanga).Methods(http.MethodGet)
	router.HandleFunc("/tithi", c.handlers.GetTithi).Methods(http.MethodGet)
	router.HandleFunc("/nakshatra", c.handlers.GetNakshatra).Methods(http.MethodGet)
	router.HandleFunc("/yoga", c.handlers.GetYoga).Methods(http.MethodGet)
	router.HandleFunc("/karana", c.handlers.GetKarana).Methods(http.MethodGet)
	router.HandleFunc("/vara", c.handlers.GetVara).Methods(http.MethodGet)

	return router
}

// recoveryLogger adapts zap to the Println logger gorilla/handlers expects
type recoveryLogger struct {
	logger *zap.SugaredLogger
}

func (r recoveryLogger) Println(v ...interface{}) {
	r.logger.Error(v...)
}
