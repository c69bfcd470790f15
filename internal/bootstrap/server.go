package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/backoffice/api"
	"github.com/Domenick1991/backoffice/config"
	backofficeapi "github.com/Domenick1991/backoffice/internal/api/backoffice_service_api"
	"github.com/Domenick1991/backoffice/internal/service/backoffice"
	"github.com/Domenick1991/backoffice/internal/service/flights"
	"github.com/Domenick1991/backoffice/internal/service/operators"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
)

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
}

// Services groups the use cases exposed over HTTP and gRPC.
type Services struct {
	Flights    flights.FlightUseCase
	Backoffice backoffice.Dispatcher
	Operators  operators.OperatorUseCase
}

// Run starts the gRPC server (when an address is configured) and the HTTP API
// and blocks until ctx is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services) error {
	s := newServers(cfg, svc)

	errCh := make(chan error, 2)

	if cfg.GRPC.Address != "" {
		lis, err := net.Listen("tcp", cfg.GRPC.Address)
		if err != nil {
			return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
		}
		go func() { errCh <- s.grpcServer.Serve(lis) }()
	}

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServers(cfg *config.Config, svc Services) *Servers {
	grpcSrv := grpc.NewServer()
	backofficeapi.RegisterBackOfficeServer(grpcSrv, backofficeapi.NewServer(svc.Backoffice, svc.Operators))

	return &Servers{
		grpcServer: grpcSrv,
		httpServer: &http.Server{
			Addr:    cfg.HTTP.Address,
			Handler: NewRouter(cfg, svc),
		},
	}
}

// NewRouter builds the HTTP API. Routes under /api/admin need an operator
// token; everything else is open to clients.
func NewRouter(cfg *config.Config, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := router.Group("/api")
	public.Use(api.OperatorAuth(svc.Operators))
	admin := public.Group("/admin")
	admin.Use(api.RequireOperator())

	api.NewBookingHandler(svc.Backoffice).Register(public, admin)
	api.NewFlightHandler(svc.Flights, svc.Backoffice).Register(public, admin)
	api.NewFleetHandler(svc.Backoffice).Register(public, admin)
	api.NewOperatorHandler(svc.Operators).Register(public)

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/backoffice.swagger.json"),
		)))
	}

	return router
}
