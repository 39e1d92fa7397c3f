package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type HandlerFunc func(*Context) error
type MiddlewareFunc func(*Context) error

// HttpServer gin 的薄封装，handler 返回 error 时统一转成响应
type HttpServer struct {
	engine *gin.Engine
	server *http.Server
	port   int
}

type ServerOption func(*HttpServer)

func WithPort(port int) ServerOption {
	return func(s *HttpServer) {
		s.port = port
	}
}

// WithMode 按日志级别选择 gin 模式，debug 之外一律 release
func WithMode(level string) ServerOption {
	return func(s *HttpServer) {
		switch strings.ToLower(level) {
		case "debug":
			gin.SetMode(gin.DebugMode)
		case "test":
			gin.SetMode(gin.TestMode)
		default:
			gin.SetMode(gin.ReleaseMode)
		}
	}
}

func NewHttpServer(opts ...ServerOption) *HttpServer {
	server := &HttpServer{port: 8080}
	for _, opt := range opts {
		opt(server)
	}
	// 先应用选项，gin.New 才能读到模式
	server.engine = gin.New()
	server.engine.Use(gin.Recovery())
	return server
}

func wrapHandler(handler HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := newContext(c)
		if err := handler(ctx); err != nil {
			ctx.Fail(err)
		}
	}
}

// 中间件拒绝请求时要自己 Abort，返回 error 也会中止
func wrapMiddleware(middleware MiddlewareFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := newContext(c)
		if err := middleware(ctx); err != nil {
			ctx.Fail(err)
			c.Abort()
			return
		}
		if !c.IsAborted() {
			c.Next()
		}
	}
}

func (s *HttpServer) GET(path string, handler HandlerFunc) {
	s.engine.GET(path, wrapHandler(handler))
}

func (s *HttpServer) POST(path string, handler HandlerFunc) {
	s.engine.POST(path, wrapHandler(handler))
}

func (s *HttpServer) Use(middlewares ...MiddlewareFunc) {
	for _, middleware := range middlewares {
		s.engine.Use(wrapMiddleware(middleware))
	}
}

func (s *HttpServer) Group(relativePath string, middlewares ...MiddlewareFunc) *RouterGroup {
	ginGroup := s.engine.Group(relativePath)
	for _, middleware := range middlewares {
		ginGroup.Use(wrapMiddleware(middleware))
	}
	return &RouterGroup{group: ginGroup}
}

// RouterGroup 路由组封装
type RouterGroup struct {
	group *gin.RouterGroup
}

func (rg *RouterGroup) GET(path string, handler HandlerFunc) {
	rg.group.GET(path, wrapHandler(handler))
}

func (rg *RouterGroup) POST(path string, handler HandlerFunc) {
	rg.group.POST(path, wrapHandler(handler))
}

func (rg *RouterGroup) Use(middlewares ...MiddlewareFunc) {
	for _, middleware := range middlewares {
		rg.group.Use(wrapMiddleware(middleware))
	}
}

func (rg *RouterGroup) Group(relativePath string, middlewares ...MiddlewareFunc) *RouterGroup {
	ginGroup := rg.group.Group(relativePath)
	for _, middleware := range middlewares {
		ginGroup.Use(wrapMiddleware(middleware))
	}
	return &RouterGroup{group: ginGroup}
}

// Start 阻塞监听，正常 Shutdown 返回 nil
func (s *HttpServer) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.engine,
	}
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭服务器
func (s *HttpServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// GetEngine 测试里直接拿 gin.Engine 跑 httptest
func (s *HttpServer) GetEngine() *gin.Engine {
	return s.engine
}

func (s *HttpServer) GetPort() int {
	return s.port
}
