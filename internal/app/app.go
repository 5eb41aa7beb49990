package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"Reminder/internal/cache"
	"Reminder/internal/config"
	"Reminder/internal/repo"
	"Reminder/internal/scheduler"
	"Reminder/internal/service"
)

const reminderJobName = "reminder-check"

type App struct {
	cfg    config.Config
	log    *zap.Logger
	redis  *redis.Client
	sched  *scheduler.Scheduler
	todos  *service.TodoService
	router *gin.Engine
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	// Redis is optional: without it the service runs uncached.
	var todoCache *cache.TodoCache
	if cfg.Redis.Addr != "" {
		rdb, err := newRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.redis = rdb
		todoCache = cache.NewTodoCache(rdb, cfg.Redis.DefaultTTL.Duration())
	} else {
		log.Info("redis not configured, todo cache disabled")
	}

	userRepo := repo.NewMemoryUserRepo()
	todoRepo := repo.NewMemoryTodoRepo()
	a.todos = service.NewTodoService(todoRepo, userRepo, todoCache, log)
	a.sched = scheduler.New(log)

	a.router = newRouter(cfg, a.todos)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

// Start kicks off the recurring reminder sweep.
func (a *App) Start() {
	a.sched.ScheduleRecurring(reminderJobName, a.cfg.Reminder.Interval.Duration(), a.todos.ProcessReminders)
}

func (a *App) Close(ctx context.Context) error {
	_ = ctx
	a.sched.StopAll()
	if a.redis != nil {
		_ = a.redis.Close()
	}
	return nil
}

func newRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

func newRouter(cfg config.Config, todos *service.TodoService) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	Setup(r, cfg, todos)
	return r
}
