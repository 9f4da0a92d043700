package container

import (
	"context"
	"fmt"
	"os"
	"time"

	"fruitshop/basket/internal/catalog"
	"fruitshop/basket/internal/config"
	"fruitshop/basket/internal/domain"
	"fruitshop/basket/internal/kv"
	"fruitshop/basket/internal/order"
	"fruitshop/basket/internal/render"
	"fruitshop/basket/internal/service"
	"fruitshop/basket/internal/store"

	"github.com/benbjohnson/clock"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config    *config.Config
	Catalog   *domain.Catalog
	Storage   kv.Storage
	Basket    store.BasketStore
	Finalizer *order.Finalizer

	Service *service.Service

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	storage, err := container.newStorage(ctx)
	if err != nil {
		return nil, err
	}
	container.Storage = storage

	cat, err := catalog.Load(ctx, cfg.Catalog)
	if err != nil {
		container.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	container.Catalog = cat

	location, err := time.LoadLocation(cfg.Order.Timezone)
	if err != nil {
		container.Close()
		return nil, fmt.Errorf("invalid order timezone %q: %w", cfg.Order.Timezone, err)
	}

	container.Basket = store.NewBasketStore(storage, cfg.Storage.BasketKey)
	container.Finalizer = order.NewFinalizer(
		container.Basket,
		storage,
		cfg.Storage.OrderKey,
		clock.New(),
		order.Format{
			DateLayout: cfg.Order.DateLayout,
			TimeLayout: cfg.Order.TimeLayout,
			Location:   location,
		},
	)

	container.Service = service.NewService(
		cat,
		container.Basket,
		container.Finalizer,
		service.NewLogNotifier(),
	)

	return container, nil
}

func (c *Container) newStorage(ctx context.Context) (kv.Storage, error) {
	cfg := c.Config

	switch cfg.Storage.Backend {
	case "memory":
		log.Info("Using in-memory slot storage")
		return kv.NewMemoryStorage(), nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		// Test connection
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		c.redis = rdb
		return kv.NewRedisStorage(rdb, cfg.Redis.KeyPrefix), nil

	case "postgres":
		db, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to create database pool: %w", err)
		}
		if err := db.Ping(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := kv.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("✅ Connected to Postgres successfully")

		c.db = db
		return kv.NewPostgresStorage(db), nil

	default:
		return nil, fmt.Errorf("%w: %s", kv.ErrUnknownBackend, cfg.Storage.Backend)
	}
}

// Run reports the current basket and last order, and writes the basket
// markup when an output file is configured
func (c *Container) Run(ctx context.Context) error {
	summary, err := c.Service.Summary(ctx)
	if err != nil {
		return err
	}

	count, err := c.Service.Count(ctx)
	if err != nil {
		return err
	}

	log.Infof("🧺 Basket: %d entries, %d grouped lines, %d requested items",
		count, len(summary.Lines), len(summary.Requests))
	for _, line := range summary.Lines {
		log.Infof("   %dx %s (%s)", line.Quantity, line.ProductID, line.VariantID)
	}
	for _, item := range summary.Requests {
		log.Infof("   📝 %s", item.Name)
	}

	last, err := c.Service.LastOrder(ctx)
	if err != nil {
		return err
	}
	if last != nil {
		log.Infof("🧾 Last order placed on %s at %s with %d entries", last.Date, last.Time, len(last.Items))
	}

	if c.Config.Render.Output == "" {
		return nil
	}

	markup, err := render.Basket(c.Catalog, summary, count)
	if err != nil {
		return err
	}
	if last != nil {
		orderMarkup, err := render.OrderSummary(c.Catalog, last)
		if err != nil {
			return err
		}
		markup += "\n" + orderMarkup
	}

	if err := os.WriteFile(c.Config.Render.Output, []byte(markup+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write basket markup: %w", err)
	}
	log.Infof("✅ Basket markup written to %s", c.Config.Render.Output)

	return nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
