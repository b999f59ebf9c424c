package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/bibbank/bib/pkg/auth"
	"github.com/bibbank/bib/pkg/observability"
	"github.com/bibbank/bib/pkg/tlsutil"
)

const serviceName = "bib.accounting.v1.AccountingService"

// ServerConfig configures the gRPC listener.
type ServerConfig struct {
	Port int
	// TLS is enabled when both CertFile and KeyFile are set. ClientCAFile
	// additionally demands client certificates.
	CertFile     string
	KeyFile      string
	ClientCAFile string
	Reflection   bool
}

// Server wraps a gRPC server for the accounting service.
type Server struct {
	server *grpclib.Server
	health *health.Server
	logger *slog.Logger
	port   int
}

// MethodRoles lists the roles each guarded method requires. Queries are open
// to any authenticated caller of the tenant.
func MethodRoles() map[string][]string {
	admin := []string{auth.RoleAccountingAdmin}
	posting := []string{auth.RolePostingService, auth.RoleAccountingAdmin}
	return map[string][]string{
		AccountingService_PostTransaction_FullMethodName:      posting,
		AccountingService_ReverseTransaction_FullMethodName:   posting,
		AccountingService_CreateClosure_FullMethodName:        admin,
		AccountingService_CreateGLAccount_FullMethodName:      admin,
		AccountingService_DisableGLAccount_FullMethodName:     admin,
		AccountingService_EnableGLAccount_FullMethodName:      admin,
		AccountingService_CreateAccountMapping_FullMethodName: admin,
		AccountingService_CreateOffice_FullMethodName:         admin,
	}
}

func NewServer(handler AccountingServiceServer, cfg ServerConfig, logger *slog.Logger, jwtService *auth.JWTService, opts ...grpclib.ServerOption) (*Server, error) {
	// Health checks are served without a token.
	authInterceptor := auth.UnaryAuthInterceptor(jwtService, []string{
		"/grpc.health.v1.Health/Check",
		"/grpc.health.v1.Health/Watch",
	})
	opts = append(opts, grpclib.ChainUnaryInterceptor(
		authInterceptor,
		auth.RequireMethodRoles(MethodRoles()),
		requestLogger(logger),
	))

	if cfg.CertFile != "" && cfg.KeyFile != "" {
		creds, err := tlsutil.ServerCredentials(cfg.CertFile, cfg.KeyFile, cfg.ClientCAFile)
		if err != nil {
			return nil, fmt.Errorf("load gRPC TLS credentials: %w", err)
		}
		opts = append(opts, grpclib.Creds(creds))
		logger.Info("gRPC TLS enabled", "cert", cfg.CertFile, "mutual", cfg.ClientCAFile != "")
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	srv := grpclib.NewServer(opts...)

	healthSrv := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthSrv)
	healthSrv.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_SERVING)

	RegisterAccountingServiceServer(srv, handler)

	if cfg.Reflection {
		reflection.Register(srv)
	}

	return &Server{
		server: srv,
		health: healthSrv,
		logger: logger,
		port:   cfg.Port,
	}, nil
}

// requestLogger attaches a logger carrying the method and the caller's tenant
// to the context and logs failed calls.
func requestLogger(logger *slog.Logger) grpclib.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (interface{}, error) {
		l := logger.With("method", info.FullMethod)
		if claims, ok := auth.ClaimsFromContext(ctx); ok {
			l = l.With("tenant_id", claims.TenantID, "user_id", claims.UserID)
		}
		resp, err := handler(observability.ContextWithLogger(ctx, l), req)
		if err != nil {
			l.Debug("gRPC call failed", "error", err)
		}
		return resp, err
	}
}

func (s *Server) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
	}
	s.logger.Info("gRPC server starting", "port", s.port)
	return s.Serve(ctx, lis)
}

// Serve accepts connections on lis until ctx is done.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down gRPC server")
		s.Stop()
		return nil
	case err := <-errCh:
		return err
	}
}

// Stop marks the service as not serving and drains in-flight calls.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}
