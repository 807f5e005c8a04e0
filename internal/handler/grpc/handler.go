// Package grpc exposes the operational gRPC surface of the server: the
// standard health checking protocol, server reflection and a unary logging
// interceptor that mirrors the HTTP access log.
package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/warehouse-keeper/internal/logger"
	"github.com/MKhiriev/warehouse-keeper/internal/service"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// ServiceName is the name under which the inventory API reports its health.
const ServiceName = "warehouse.Inventory"

const (
	traceIDMetadataKey = "x-trace-id"
	versionMetadataKey = "x-server-version"
)

// Handler is the root gRPC transport handler.
type Handler struct {
	services *service.Services
	health   *health.Server
	logger   *logger.Logger
}

// NewHandler constructs a [Handler]. Both the overall server and
// [ServiceName] start as NOT_SERVING until [Handler.SetServing] is called.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	h := &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
	h.SetServing(false)

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches the health and reflection services to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
	reflection.Register(s)
}

// SetServing flips the reported health status of the server.
func (h *Handler) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", st)
	h.health.SetServingStatus(ServiceName, st)
}

// Shutdown reports NOT_SERVING to every watcher and ignores later updates.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

// UnaryInterceptor attaches a request-scoped logger carrying the trace id,
// sends the server version as header metadata and logs every call.
func (h *Handler) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		traceID := traceIDFromMetadata(ctx)
		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})
		ctx = l.WithContext(ctx)

		md := metadata.Pairs(traceIDMetadataKey, traceID)
		if h.services != nil && h.services.AppInfoService != nil {
			md.Append(versionMetadataKey, h.services.AppInfoService.GetAppVersion(ctx))
		}
		if err := grpc.SetHeader(ctx, md); err != nil {
			l.Debug().Err(err).Msg("error setting response header")
		}

		resp, err := handler(ctx, req)

		code := status.Code(err)
		event := l.Info()
		if err != nil {
			event = l.Warn().Err(err)
		}
		event.
			Str("method", info.FullMethod).
			Str("code", code.String()).
			Dur("duration", time.Since(start)).
			Send()

		return resp, err
	}
}

func traceIDFromMetadata(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(traceIDMetadataKey); len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return uuid.NewString()
}
