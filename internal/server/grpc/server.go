package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/emmett/conlang/internal/app"
	"github.com/emmett/conlang/internal/logging"
)

// Server wraps the gRPC server and services
type Server struct {
	grpcServer *grpc.Server
	service    *app.Service
	log        *logging.Logger
	host       string
	port       int
}

// Config holds server configuration
type Config struct {
	Host string
	Port int
}

// NewServer creates a new gRPC server exposing the lexicon service
func NewServer(cfg Config, service *app.Service, log *logging.Logger) *Server {
	s := &Server{
		service: service,
		log:     log,
		host:    cfg.Host,
		port:    cfg.Port,
	}
	s.grpcServer = grpc.NewServer(grpc.ChainUnaryInterceptor(s.logUnary))

	// Register services
	RegisterLexiconServer(s.grpcServer, NewLexiconService(service))

	return s
}

// Start listens on the configured port and serves until Stop
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.host, fmt.Sprint(s.port))
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(lis)
}

// Serve serves on an existing listener
func (s *Server) Serve(lis net.Listener) error {
	s.log.Infof("gRPC server listening on %s", lis.Addr())
	return s.grpcServer.Serve(lis)
}

// Stop gracefully stops the server
func (s *Server) Stop() {
	s.grpcServer.GracefulStop()
}

func (s *Server) logUnary(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.log.Debugf("grpc %s %s (%s)", info.FullMethod, status.Code(err), time.Since(start))
	return resp, err
}
