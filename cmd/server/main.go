package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"terminal-terrace/editorial/config"
	"terminal-terrace/editorial/internal/identity"
	"terminal-terrace/editorial/internal/logger"
	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/route"
	"terminal-terrace/editorial/internal/store"
	"terminal-terrace/editorial/internal/store/gormstore"
	"terminal-terrace/editorial/internal/store/memory"
	"terminal-terrace/editorial/internal/workflow"
	"terminal-terrace/editorial/pkg/database"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "editorial",
	Short:         "编辑部文章审核服务",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "执行数据库迁移",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := setup()
		if err != nil {
			return err
		}
		db, err := openPostgres(log)
		if err != nil {
			return err
		}
		if err := model.InitTable(db); err != nil {
			return fmt.Errorf("数据库迁移失败: %w", err)
		}
		log.Info("数据库迁移完成")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "配置文件路径")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup 加载配置并初始化日志
func setup() (*logrus.Logger, error) {
	if err := config.Load(cfgFile); err != nil {
		return nil, err
	}
	return logger.New(config.Conf.Log)
}

func openPostgres(log logrus.FieldLogger) (*gorm.DB, error) {
	c := config.Conf.Database
	return database.InitPostgres(&database.PostgresConfig{
		ServiceName:     "editorial",
		Username:        c.Username,
		Password:        c.Password,
		Host:            c.Host,
		Port:            c.Port,
		Database:        c.Database,
		SSLMode:         c.SSLMode,
		LogLevel:        c.LogLevel,
		MaxIdleConns:    c.MaxIdleConns,
		MaxOpenConns:    c.MaxOpenConns,
		ConnMaxLifetime: time.Duration(c.MaxLifetime) * time.Second,
	}, log)
}

// openStore 按配置选择存储驱动
func openStore(log logrus.FieldLogger) (store.Store, error) {
	if config.Conf.Store.Driver == config.DriverMemory {
		log.Warn("使用内存存储，重启后数据丢失")
		return memory.New(), nil
	}

	db, err := openPostgres(log)
	if err != nil {
		return nil, err
	}
	if err := model.InitTable(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}
	return gormstore.New(db), nil
}

func serve(ctx context.Context) error {
	log, err := setup()
	if err != nil {
		return err
	}
	cfg := config.Conf
	gin.SetMode(cfg.Server.Mode)

	st, err := openStore(log)
	if err != nil {
		return err
	}

	opts := []workflow.Option{workflow.WithLogger(log)}
	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(ctx, &database.RedisConfig{
			ServiceName: "editorial",
			Host:        cfg.Redis.Host,
			Port:        cfg.Redis.Port,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			PoolSize:    cfg.Redis.PoolSize,
		}, log)
		if err != nil {
			return err
		}
		defer rdb.Close()
		resolver := identity.NewCachedResolver(
			identity.NewStoreResolver(st.Repositories().Staff),
			rdb, cfg.Identity.CacheTTL, logger.Component(log, "identity"),
		)
		opts = append(opts, workflow.WithIdentity(resolver))
	}

	svc := workflow.NewService(st, opts...)
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      route.SetupRouter(cfg, svc, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("服务启动")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("服务异常退出: %w", err)
	case <-ctx.Done():
	}

	log.Info("正在关闭服务")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
