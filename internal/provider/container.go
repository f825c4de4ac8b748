package provider

import (
	"github.com/agrimarket-logistics/internal/authz"
	"github.com/agrimarket-logistics/internal/cache"
	"github.com/agrimarket-logistics/internal/config"
	"github.com/agrimarket-logistics/internal/logger"
	"github.com/agrimarket-logistics/internal/models"
	"github.com/agrimarket-logistics/internal/queue"
	"github.com/agrimarket-logistics/internal/repository"
	"github.com/agrimarket-logistics/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ZoneRepo           repository.DeliveryZoneRepository
	PartnerRepo        repository.DeliveryPartnerRepository
	DeliveryRecordRepo repository.PartnerDeliveryRecordRepository

	// Services
	AuthService         *service.AuthService
	AuthzService        *authz.Service
	ZoneService         *service.ZoneService
	PartnerService      *service.PartnerService
	PartnerStatsService *service.PartnerStatsService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient = nil
	}

	c, err := NewContainerWithDB(cfg, models.DB, queueClient)
	if err != nil {
		logger.Errorw("provider_init_failed", "error", err)
		panic(err)
	}
	return c
}

// NewContainerWithDB 使用指定数据库与队列客户端组装容器
func NewContainerWithDB(cfg *config.Config, db *gorm.DB, queueClient *queue.Client) (*Container, error) {
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	if err := c.initServices(db); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.ZoneRepo = repository.NewDeliveryZoneRepository(db)
	c.PartnerRepo = repository.NewDeliveryPartnerRepository(db)
	c.DeliveryRecordRepo = repository.NewPartnerDeliveryRecordRepository(db)
}

func (c *Container) initServices(db *gorm.DB) error {
	c.AuthService = service.NewAuthService(c.Config.JWT)
	authzService, err := authz.NewService(db)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		return err
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		return err
	}

	logistics := c.Config.Logistics
	c.ZoneService = service.NewZoneService(c.ZoneRepo, logistics)
	c.PartnerService = service.NewPartnerService(c.PartnerRepo)
	c.PartnerStatsService = service.NewPartnerStatsService(c.PartnerRepo, c.DeliveryRecordRepo, c.QueueClient, logistics.StatsMaxRetries)
	return nil
}
