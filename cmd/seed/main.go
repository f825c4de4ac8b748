package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/agrimarket-logistics/internal/authz"
	"github.com/agrimarket-logistics/internal/config"
	"github.com/agrimarket-logistics/internal/logger"
	"github.com/agrimarket-logistics/internal/models"
	"github.com/agrimarket-logistics/internal/provider"
	"github.com/agrimarket-logistics/internal/repository"
	"github.com/agrimarket-logistics/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	var printToken bool
	var adminID uint
	flag.BoolVar(&printToken, "token", false, "为种子管理员签发一个开发用令牌")
	flag.UintVar(&adminID, "admin-id", 1, "种子管理员 ID")
	flag.Parse()

	_ = godotenv.Load()

	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.LogLevel, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 种子数据走同步路径，不依赖 redis 与队列
	container, err := provider.NewContainerWithDB(cfg, models.DB, nil)
	if err != nil {
		stdLog.Fatalf("Failed to init container: %v", err)
	}
	ctx := context.Background()

	// 配送区域
	for _, input := range seedZones() {
		zone, err := container.ZoneService.Create(ctx, input)
		if errors.Is(err, service.ErrZoneNameExists) {
			stdLog.Printf("Zone already exists: %s", input.Name)
			continue
		}
		if err != nil {
			stdLog.Printf("Failed to create zone %s: %v", input.Name, err)
			continue
		}
		stdLog.Printf("Created zone: %s (#%d)", zone.Name, zone.ID)
	}

	// 配送商
	for _, seed := range seedPartners() {
		existing, _, err := container.PartnerService.List(repository.PartnerListFilter{Page: 1, PageSize: 1, Search: seed.input.Name})
		if err != nil {
			stdLog.Printf("Failed to look up partner %s: %v", seed.input.Name, err)
			continue
		}
		if len(existing) > 0 {
			stdLog.Printf("Partner already exists: %s", seed.input.Name)
			continue
		}
		partner, err := container.PartnerService.Create(seed.input)
		if err != nil {
			stdLog.Printf("Failed to create partner %s: %v", seed.input.Name, err)
			continue
		}
		stdLog.Printf("Created partner: %s (#%d)", partner.Name, partner.ID)

		// 历史履约记录，配送单号固定，重复执行不会重复计数
		for i, minutes := range seed.deliveries {
			_, err := container.PartnerStatsService.RecordDeliveryOutcome(service.DeliveryOutcomeInput{
				DeliveryNo:          fmt.Sprintf("SEED-%d-%03d", partner.ID, i+1),
				PartnerID:           partner.ID,
				DeliveryTimeMinutes: minutes,
				WasSuccessful:       minutes <= 60,
			})
			if err != nil && !errors.Is(err, service.ErrDeliveryAlreadyCounted) {
				stdLog.Printf("Failed to seed delivery for %s: %v", partner.Name, err)
			}
		}
		for _, rating := range seed.ratings {
			if _, err := container.PartnerStatsService.SubmitReview(service.ReviewInput{
				PartnerID: partner.ID,
				UserID:    "seed-buyer",
				Rating:    rating,
				Comment:   "seed review",
			}); err != nil {
				stdLog.Printf("Failed to seed review for %s: %v", partner.Name, err)
			}
		}
	}

	// 后台管理员角色
	if err := container.AuthzService.SetAdminRoles(adminID, []string{authz.RoleLogisticsAdmin}); err != nil {
		stdLog.Printf("Failed to bind admin roles: %v", err)
	}
	if printToken {
		token, expiresAt, err := container.AuthService.GenerateJWT(adminID, []string{authz.RoleLogisticsAdmin})
		if err != nil {
			stdLog.Fatalf("Failed to issue token: %v", err)
		}
		fmt.Printf("Bearer %s\n(expires at %s)\n", token, expiresAt.Format("2006-01-02 15:04:05"))
	}

	stdLog.Printf("Seed completed")
}

type partnerSeed struct {
	input      service.PartnerInput
	deliveries []float64
	ratings    []int
}

func seedZones() []service.ZoneInput {
	return []service.ZoneInput{
		{
			Name:     "Lagos Mainland",
			Center:   models.Coordinate{Latitude: 6.5244, Longitude: 3.3792},
			RadiusKm: 15,
			BaseFee:  models.NewMoneyFromFloat(1500),
			DistanceTiers: []models.DistanceTier{
				{MinKm: 0, MaxKm: 5, AdditionalFee: models.NewMoneyFromFloat(0)},
				{MinKm: 5, MaxKm: 10, AdditionalFee: models.NewMoneyFromFloat(500)},
				{MinKm: 10, MaxKm: 15, AdditionalFee: models.NewMoneyFromFloat(1000)},
			},
			SpecialConditions: map[string]models.SpecialCondition{
				"peak_hours": {AdditionalFee: models.NewMoneyFromFloat(300), Description: "Weekday rush hours"},
				"rainy_day":  {AdditionalFee: models.NewMoneyFromFloat(400), Description: "Heavy rainfall"},
			},
		},
		{
			Name:     "Ibadan Central",
			Center:   models.Coordinate{Latitude: 7.3775, Longitude: 3.9470},
			RadiusKm: 20,
			BaseFee:  models.NewMoneyFromFloat(1000),
			DistanceTiers: []models.DistanceTier{
				{MinKm: 0, MaxKm: 10, AdditionalFee: models.NewMoneyFromFloat(200)},
				{MinKm: 10, MaxKm: 20, AdditionalFee: models.NewMoneyFromFloat(700)},
			},
			SpecialConditions: map[string]models.SpecialCondition{
				"holiday": {AdditionalFee: models.NewMoneyFromFloat(500), Description: "Public holiday"},
			},
		},
	}
}

func seedPartners() []partnerSeed {
	verified := true
	return []partnerSeed{
		{
			input: service.PartnerInput{
				Name:        "Green Haul Logistics",
				CompanyType: models.CompanyTypeLogistics,
				Services: []models.ServiceOffering{
					{
						ServiceType: models.ServiceTypeSameDay,
						BasePrice:   models.NewMoneyFromFloat(2000),
						PerKmPrice:  models.NewMoneyFromFloat(120),
						MaxWeight:   floatPtr(500),
						MaxDistance: floatPtr(40),
						IsActive:    true,
					},
					{
						ServiceType: models.ServiceTypeBulk,
						BasePrice:   models.NewMoneyFromFloat(8000),
						PerKmPrice:  models.NewMoneyFromFloat(200),
						MaxWeight:   floatPtr(5000),
						IsActive:    true,
					},
				},
				Cities: []string{"Lagos", "Ibadan"},
				States: []string{"Lagos", "Oyo"},
				Vehicles: []models.VehicleClass{
					{Type: models.VehicleTypeVan, CapacityWeight: floatPtr(800), CapacityVolume: floatPtr(6), Count: 4},
					{Type: models.VehicleTypeRefrigeratedTruck, CapacityWeight: floatPtr(5000), CapacityVolume: floatPtr(30), Count: 2, IsRefrigerated: true},
				},
				WarehouseLinks: []models.WarehouseLink{
					{WarehouseID: "WH-LAG-01", DistanceKm: 6, EtaMinutes: 25, IsActive: true},
				},
				IsVerified: &verified,
			},
			deliveries: []float64{42, 55, 38, 75},
			ratings:    []int{5, 4, 4},
		},
		{
			input: service.PartnerInput{
				Name:        "Swift Bike Couriers",
				CompanyType: models.CompanyTypeCourier,
				Services: []models.ServiceOffering{
					{
						ServiceType: models.ServiceTypeExpress,
						BasePrice:   models.NewMoneyFromFloat(800),
						PerKmPrice:  models.NewMoneyFromFloat(60),
						MaxWeight:   floatPtr(20),
						MaxDistance: floatPtr(15),
						IsActive:    true,
					},
				},
				Cities: []string{"Lagos"},
				States: []string{"Lagos"},
				Vehicles: []models.VehicleClass{
					{Type: models.VehicleTypeBike, CapacityWeight: floatPtr(20), Count: 12},
				},
				IsVerified: &verified,
			},
			deliveries: []float64{18, 22, 25},
			ratings:    []int{4},
		},
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
