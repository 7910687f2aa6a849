// Package server 提供 Playground 的 HTTP API。
//
// 服务端不保存任何会话状态，每个请求都携带客户端的已启用集合，
// 因此可以水平扩展，也可以与任意前端配合使用。
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/easyops/context-academy-go/pkg/catalog"
	"github.com/easyops/context-academy-go/pkg/core/config"
	"github.com/easyops/context-academy-go/pkg/otel"
)

// Server 是 HTTP 服务
type Server struct {
	cfg    config.ServerConfig
	engine *gin.Engine
	http   *http.Server
	logger otel.Logger
}

// Option 配置 Server
type Option func(*options)

type options struct {
	provider *otel.Provider
	engine   *otel.TracedEngine
}

// WithProvider 使用可观测性提供者的追踪、指标和日志
func WithProvider(p *otel.Provider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// WithEngine 设置评估引擎
func WithEngine(engine *otel.TracedEngine) Option {
	return func(o *options) {
		o.engine = engine
	}
}

// New 创建 HTTP 服务
func New(cfg config.ServerConfig, c *catalog.Catalog, opts ...Option) (*Server, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	gin.SetMode(cfg.Mode)

	rc := RouterConfig{AllowOrigins: cfg.AllowOrigins}
	logger := otel.Logger(otel.NewNoopLogger())
	if o.provider != nil {
		logger = o.provider.Logger()
		rc.Metrics = o.provider.Metrics()
		rc.Logger = logger
		if pc := o.provider.Config(); pc.Enabled && pc.Tracing.Enabled {
			rc.ServiceName = pc.ServiceName
		}
		if o.engine == nil {
			o.engine = otel.NewTracedEngine(nil, otel.WithProvider(o.provider))
		}
	}
	rc.Handler = NewHandler(c, o.engine)

	engine := NewRouter(rc)
	return &Server{
		cfg:    cfg,
		engine: engine,
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}, nil
}

// Handler 返回 HTTP 处理器
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run 启动服务并阻塞，直到 ctx 结束后优雅关闭
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve 在给定监听器上提供服务，直到 ctx 结束后优雅关闭
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", ln.Addr().String())
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("http server shutting down")
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭服务
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
