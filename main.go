package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/nabha-learn/nabha-shell/internal/assetcache"
	"github.com/nabha-learn/nabha-shell/internal/cache"
	"github.com/nabha-learn/nabha-shell/internal/config"
	"github.com/nabha-learn/nabha-shell/internal/connectivity"
	"github.com/nabha-learn/nabha-shell/internal/content"
	"github.com/nabha-learn/nabha-shell/internal/i18n"
	"github.com/nabha-learn/nabha-shell/internal/kvstore"
	"github.com/nabha-learn/nabha-shell/internal/logging"
	"github.com/nabha-learn/nabha-shell/internal/server"
	"github.com/nabha-learn/nabha-shell/internal/server/routes"
	"github.com/nabha-learn/nabha-shell/internal/settings"
	"github.com/nabha-learn/nabha-shell/internal/version"
)

// cliOptions 汇总 CLI 标志解析后的结果，便于在测试中注入。
type cliOptions struct {
	configPath  string
	checkOnly   bool
	showVersion bool
}

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

func main() {
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(2)
	}
	os.Exit(run(opts))
}

// run 根据解析到的 CLI 选项执行业务流程，并返回退出码，方便测试。
func run(opts cliOptions) int {
	if opts.showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stdErr, "加载配置失败: %v\n", err)
		return 1
	}

	logger, err := logging.InitLogger(cfg.Global)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化日志失败: %v\n", err)
		return 1
	}

	if opts.checkOnly {
		fields := logging.BaseFields("check_config", opts.configPath)
		fields["origin"] = cfg.Shell.Origin
		fields["cache_version"] = cfg.Shell.CacheVersion
		fields["result"] = "ok"
		logger.WithFields(fields).Info("配置校验通过")
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 启动顺序：配置 → 磁盘缓存/本地存储 → 连接状态 → AssetCache → Fiber server。
	// 外壳安装与激活在后台执行，期间打开的客户端不受控，请求直接走网络。
	sh, err := newShell(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化服务失败: %v\n", err)
		return 1
	}
	defer sh.close()

	fields := logging.BaseFields("startup", opts.configPath)
	fields["listen_port"] = cfg.Global.ListenPort
	fields["origin"] = cfg.Shell.Origin
	fields["cache_version"] = cfg.Shell.CacheVersion
	fields["online"] = sh.state.Online()
	fields["version"] = version.Full()
	logger.WithFields(fields).Info("配置加载完成")

	go sh.dispatcher.Run(ctx)
	go connectivity.WatchSignals(ctx, sh.dispatcher, logger)
	go sh.assets.Start(ctx)

	if err := startHTTPServer(ctx, cfg, sh.app, logger); err != nil {
		fmt.Fprintf(stdErr, "HTTP 服务启动失败: %v\n", err)
		return 1
	}
	return 0
}

// parseCLIFlags 解析 CLI 参数，并结合环境变量计算最终的配置路径。
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("nabha-shell", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configFlag string
		checkOnly  bool
		showVer    bool
	)

	fs.StringVar(&configFlag, "config", "", "配置文件路径（默认 ./config.toml，可被 NABHA_SHELL_CONFIG 覆盖）")
	fs.BoolVar(&checkOnly, "check-config", false, "仅校验配置后退出")
	fs.BoolVar(&showVer, "version", false, "显示版本信息")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("解析参数失败: %w", err)
	}

	path := os.Getenv("NABHA_SHELL_CONFIG")
	if configFlag != "" {
		path = configFlag
	}
	if path == "" {
		path = "config.toml"
	}

	return cliOptions{
		configPath:  path,
		checkOnly:   checkOnly,
		showVersion: showVer,
	}, nil
}

func printVersion() {
	fmt.Fprintln(stdOut, version.Full())
}

// shell 持有进程内唯一的一组协作者。
type shell struct {
	app        *fiber.App
	assets     *assetcache.AssetCache
	state      *connectivity.State
	gate       *connectivity.Gate
	dispatcher *connectivity.Dispatcher
	kv         *kvstore.Store
}

func newShell(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*shell, error) {
	store, err := cache.NewStore(cfg.Global.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("初始化缓存目录失败: %w", err)
	}

	kv, err := kvstore.Open(ctx, cfg.Global.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("打开本地存储失败: %w", err)
	}
	ok := false
	defer func() {
		if !ok {
			_ = kv.Close()
		}
	}()

	httpClient := server.NewOriginClient(cfg)

	online := cfg.Global.StartOnline
	if cfg.Global.ProbeOrigin {
		online = connectivity.Probe(ctx, httpClient, cfg.Shell.Origin)
	}
	state := connectivity.NewState(online)
	gate := connectivity.NewGate(state, logger)
	indicator := connectivity.NewIndicator(state)
	gate.Observe(indicator)
	dispatcher := connectivity.NewDispatcher(logger, 16)
	dispatcher.Subscribe(gate)

	network, err := assetcache.NewHTTPFetcher(httpClient, cfg.Shell.Origin)
	if err != nil {
		return nil, err
	}
	assets, err := assetcache.New(assetcache.Options{
		Version:     cfg.Shell.CacheVersion,
		Store:       store,
		Fetcher:     assetcache.OfflineAwareFetcher{Next: network, Online: gate.IsOnline},
		Logger:      logger,
		Concurrency: cfg.Shell.InstallConcurrency,
	})
	if err != nil {
		return nil, err
	}

	catalog, err := content.NewCatalog(ctx, kv)
	if err != nil {
		return nil, err
	}
	translator, err := i18n.New()
	if err != nil {
		return nil, err
	}

	app, err := server.NewApp(server.AppOptions{Logger: logger, Assets: assets})
	if err != nil {
		return nil, err
	}
	routes.Register(app, routes.Dependencies{
		Logger:          logger,
		Assets:          assets,
		Store:           store,
		Gate:            gate,
		Indicator:       indicator,
		Signals:         dispatcher,
		Catalog:         catalog,
		Settings:        settings.NewRepository(kv, settings.Defaults(cfg.Global.DefaultLanguage)),
		Translator:      translator,
		DefaultLanguage: cfg.Global.DefaultLanguage,
		SyncDelay:       cfg.Global.SyncDelay.DurationValue(),
	})

	ok = true
	return &shell{
		app:        app,
		assets:     assets,
		state:      state,
		gate:       gate,
		dispatcher: dispatcher,
		kv:         kv,
	}, nil
}

func (s *shell) close() {
	if s.kv != nil {
		_ = s.kv.Close()
	}
}

func startHTTPServer(ctx context.Context, cfg *config.Config, app *fiber.App, logger *logrus.Logger) error {
	port := cfg.Global.ListenPort

	go func() {
		<-ctx.Done()
		logger.WithField("action", "shutdown").Info("Fiber 服务停止")
		_ = app.Shutdown()
	}()

	logger.WithFields(logrus.Fields{
		"action": "listen",
		"port":   port,
	}).Info("Fiber 服务启动")

	return app.Listen(fmt.Sprintf(":%d", port))
}
