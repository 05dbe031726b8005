package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/adromero/frame-sync/internal/config"
	"github.com/adromero/frame-sync/internal/consts"
	"github.com/adromero/frame-sync/internal/db"
	"github.com/adromero/frame-sync/internal/di"
	"github.com/adromero/frame-sync/internal/logger"
	"github.com/adromero/frame-sync/internal/middleware"
	"github.com/adromero/frame-sync/internal/server"
	"github.com/adromero/frame-sync/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	if err := newCLIApp().Run(os.Args); err != nil {
		logger.L.Fatal("❌ 运行失败", zap.Error(err))
	}
}

func newCLIApp() *cli.App {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   consts.DefaultConfigDir,
		Usage:   "配置文件目录",
		EnvVars: []string{"FRAMESYNC_CONFIG_DIR"},
	}
	workersFlag := &cli.IntFlag{
		Name:  "workers",
		Value: 0,
		Usage: "并发数，0 表示使用 thumbnail.backfill_workers",
	}

	return &cli.App{
		Name:    "framesync",
		Usage:   "按设备分发图片的相框服务",
		Version: consts.ApplicationVersion,
		Flags:   []cli.Flag{configFlag},
		Action:  serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "启动 HTTP 服务",
				Flags:  []cli.Flag{configFlag},
				Action: serve,
			},
			{
				Name:  "routes",
				Usage: "导出路由表并退出",
				Flags: []cli.Flag{
					configFlag,
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: consts.DefaultRoutesFile, Usage: "输出文件，- 表示标准输出"},
				},
				Action: exportRoutes,
			},
			{
				Name:  "thumbnails",
				Usage: "为缺少缩略图的图片批量生成缩略图",
				Flags: []cli.Flag{configFlag, workersFlag},
				Action: func(c *cli.Context) error {
					app, err := bootstrap(c, false)
					if err != nil {
						return err
					}
					n, err := app.Modules.Thumbnail.Service.Backfill(c.Context, backfillWorkers(c))
					logger.L.Info("缩略图补全完成", zap.Int("generated", n))
					return err
				},
			},
			{
				Name:  "exif",
				Usage: "为缺少 EXIF 信息的图片补全拍摄参数",
				Flags: []cli.Flag{configFlag, workersFlag},
				Action: func(c *cli.Context) error {
					app, err := bootstrap(c, false)
					if err != nil {
						return err
					}
					n, err := app.Modules.Image.Service.BackfillExif(c.Context, backfillWorkers(c))
					logger.L.Info("EXIF 补全完成", zap.Int("updated", n))
					return err
				},
			},
		},
	}
}

// bootstrap 加载 .env 与配置，初始化数据库和存储并装配应用
func bootstrap(c *cli.Context, watch bool) (*di.Application, error) {
	// .env 可选
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.L.Warn("⚠️ 读取 .env 失败", zap.Error(err))
	}

	if watch {
		config.InitConfig(c.String("config"))
	} else {
		config.InitConfigWithoutWatch(c.String("config"))
	}

	if err := db.InitDB(); err != nil {
		return nil, err
	}

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	assets, err := storage.New(ctx, config.Get())
	if err != nil {
		return nil, fmt.Errorf("初始化存储失败: %w", err)
	}

	return di.InitializeApplication(db.DB, assets)
}

func serve(c *cli.Context) error {
	app, err := bootstrap(c, true)
	if err != nil {
		return err
	}
	defer func() { _ = app.Service.Close() }()

	cfg := config.Get()
	gin.SetMode(cfg.Server.Mode)

	r, err := newEngine(app, cfg)
	if err != nil {
		return err
	}

	printWelcomeMessage(os.Stdout, cfg)
	return server.New(":"+cfg.Server.Port, r).Run(c.Context)
}

func newEngine(app *di.Application, cfg config.Config) (*gin.Engine, error) {
	r := gin.New()
	r.Use(middleware.GinZap(), gin.Recovery())

	if err := r.SetTrustedProxies(splitTrustedProxyList(cfg.Server.TrustedProxies)); err != nil {
		return nil, fmt.Errorf("可信代理配置无效: %w", err)
	}

	app.Router.Init(r)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "资源不存在", "code": "not_found"})
	})
	return r, nil
}

func exportRoutes(c *cli.Context) error {
	app, err := bootstrap(c, false)
	if err != nil {
		return err
	}
	r, err := newEngine(app, config.Get())
	if err != nil {
		return err
	}

	output := c.String("output")
	if output == "-" {
		return writeRoutes(os.Stdout, r)
	}

	file, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()
	if err := writeRoutes(file, r); err != nil {
		return err
	}
	logger.L.Info("✅ 路由已导出", zap.String("file", output))
	return nil
}

type routeInfo struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Handler string `json:"handler"`
}

func writeRoutes(w io.Writer, r *gin.Engine) error {
	routes := r.Routes()
	exportList := make([]routeInfo, 0, len(routes))
	for _, route := range routes {
		exportList = append(exportList, routeInfo{
			Method:  route.Method,
			Path:    route.Path,
			Handler: route.Handler,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportList)
}

func backfillWorkers(c *cli.Context) int {
	if n := c.Int("workers"); n > 0 {
		return n
	}
	if n := config.Get().Thumbnail.BackfillWorkers; n > 0 {
		return n
	}
	return consts.DefaultBackfillWorkers
}

// splitTrustedProxyList 兼容环境变量中以逗号、分号或空白分隔的代理列表
func splitTrustedProxyList(values []string) []string {
	var proxies []string
	for _, v := range values {
		for _, p := range strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\n' || r == '\t'
		}) {
			if p != "" {
				proxies = append(proxies, p)
			}
		}
	}
	return proxies
}

func printWelcomeMessage(w io.Writer, cfg config.Config) {
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, " ┌───────────────────────────────────────────────────────┐")
	_, _ = fmt.Fprintf(w, " │   🚀  %s\n", consts.ApplicationName)
	_, _ = fmt.Fprintln(w, " ├───────────────────────────────────────────────────────┤")
	_, _ = fmt.Fprintf(w, " │   📦  版本     : %s\n", consts.ApplicationVersion)
	_, _ = fmt.Fprintf(w, " │   🗄️  数据库   : %s\n", cfg.Database.Type)
	_, _ = fmt.Fprintf(w, " │   💾  存储     : %s\n", storageDriver(cfg))
	_, _ = fmt.Fprintf(w, " │   🔥  服务端口 : %s\n", cfg.Server.Port)
	_, _ = fmt.Fprintln(w, " └───────────────────────────────────────────────────────┘")
	_, _ = fmt.Fprintln(w)
}

func storageDriver(cfg config.Config) string {
	if cfg.Storage.Driver == "" {
		return "local"
	}
	return cfg.Storage.Driver
}
