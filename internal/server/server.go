package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adromero/frame-sync/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultShutdownTimeout = 5 * time.Second

type Server struct {
	http            *http.Server
	shutdownTimeout time.Duration
}

func New(addr string, handler http.Handler) *Server {
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: defaultShutdownTimeout,
	}
}

// Run 启动 HTTP 服务，收到终止信号或 ctx 取消后优雅关闭
func (s *Server) Run(ctx context.Context) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)
	defer signal.Stop(c)

	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}
	return s.serve(ctx, ln, c)
}

func (s *Server) serve(ctx context.Context, ln net.Listener, c <-chan os.Signal) error {
	eg, groupCtx := errgroup.WithContext(ctx)

	logger.L.Info("🚀 服务启动", zap.String("addr", ln.Addr().String()))

	eg.Go(func() error {
		err := s.http.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		defer func() {
			logger.L.Info("🛑 正在关闭服务...")

			timeCtx, timeCancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
			defer timeCancel()

			if err := s.http.Shutdown(timeCtx); err != nil {
				logger.L.Warn("服务强制关闭", zap.Error(err))
			}
		}()

		select {
		case <-groupCtx.Done():
			return groupCtx.Err()
		case <-c:
			return nil
		}
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.L.Error("服务异常退出", zap.Error(err))
		return err
	}

	logger.L.Info("✅ 服务已退出")
	return nil
}
