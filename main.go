package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matryer/way"

	"lightcycle/server"
)

const (
	uriWS          = "/ws"
	uriAdminConfig = "/admin/config"
	uriMetrics     = "/metrics"
	uriRooms       = "/rooms"
	uriHealth      = "/healthz"
)

func routes() *way.Router {
	router := way.NewRouter()
	router.HandleFunc("GET", uriWS, server.HandleWS)
	router.HandleFunc("GET", uriAdminConfig, server.HandleAdminConfigGet)
	router.HandleFunc("POST", uriAdminConfig, server.HandleAdminConfigPost)
	router.HandleFunc("GET", uriMetrics, server.HandleMetrics)
	router.HandleFunc("GET", uriRooms, server.HandleRooms)
	router.HandleFunc("GET", uriHealth, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	// 前后端分离：其余路径映射到 web 目录的静态资源
	router.Handle("GET", "/...", http.FileServer(http.Dir("web")))
	return router
}

// 光轮对战服务入口：启动 HTTP + WebSocket 服务，并初始化房间管理器
func main() {
	var (
		addr     string
		logFile  string
		logLevel string
		tps      int
	)
	flag.StringVar(&addr, "addr", ":8080", "server listen address, e.g. :8080")
	flag.StringVar(&logFile, "log", "tron.log", "log file path (rotated)")
	flag.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flag.IntVar(&tps, "tps", 60, "simulation ticks per second")
	flag.Parse()

	logOpts := server.DefaultLogOptions(logFile)
	logOpts.Level = logLevel
	if err := server.InitLogger(logOpts); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer server.SyncLogger()

	opts := server.DefaultRoomOptions()
	opts.TicksPerSecond = tps
	if err := server.InitRoomManager(opts); err != nil {
		server.Log.Fatalf("room options: %v", err)
	}
	rm := server.GetRoomManager()
	// 先预创建一个默认房间，便于快速试跑
	if _, err := rm.GetOrCreateRoom(server.DefaultRoomID); err != nil {
		server.Log.Fatalf("create default room: %v", err)
	}

	srv := &http.Server{Addr: addr, Handler: routes()}

	go func() {
		server.Log.Infof("light-cycle arena listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			server.Log.Fatalf("listen: %v", err)
		}
	}()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	server.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		server.Log.Warnf("shutdown: %v", err)
	}
	rm.StopAll()
}
