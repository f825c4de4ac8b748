//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/agrimarket-logistics/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.PartnerDeliveryRecord{},
		&models.DeliveryPartner{},
		&models.DeliveryZone{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.DeliveryZone{},
		&models.DeliveryPartner{},
		&models.PartnerDeliveryRecord{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresPartnerCoverageSearch(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewDeliveryPartnerRepository(db)

	partner := &models.DeliveryPartner{
		Name:        "Harvest Movers",
		CompanyType: models.CompanyTypeTransport,
		Coverage: models.ServiceCoverage{
			Cities: models.StringArray{"Kano"},
			States: models.StringArray{"Kano"},
		},
		IsActive:   true,
		IsVerified: true,
	}
	if err := repo.Create(partner); err != nil {
		t.Fatalf("create partner failed: %v", err)
	}

	rows, total, err := repo.List(PartnerListFilter{Page: 1, Search: "harvest"})
	if err != nil {
		t.Fatalf("partner list search by name failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("case-insensitive name search want 1 got total=%d len=%d", total, len(rows))
	}

	rows, total, err = repo.List(PartnerListFilter{Page: 1, Search: "kano"})
	if err != nil {
		t.Fatalf("partner list search by coverage failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("coverage search want 1 got total=%d len=%d", total, len(rows))
	}

	zoneRepo := NewDeliveryZoneRepository(db)
	if err := zoneRepo.Create(&models.DeliveryZone{Name: "Kano Metro", RadiusKm: 20, IsActive: true}); err != nil {
		t.Fatalf("create zone failed: %v", err)
	}
	zones, zoneTotal, err := zoneRepo.List(ZoneListFilter{Page: 1, Search: "METRO"})
	if err != nil {
		t.Fatalf("zone list search failed: %v", err)
	}
	if zoneTotal != 1 || len(zones) != 1 {
		t.Fatalf("zone search want 1 got total=%d len=%d", zoneTotal, len(zones))
	}
}

func TestPostgresStatsVersionAndLedger(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewDeliveryPartnerRepository(db)
	recordRepo := NewPartnerDeliveryRecordRepository(db)

	partner := &models.DeliveryPartner{Name: "Version Check", CompanyType: models.CompanyTypeLogistics, IsActive: true}
	if err := repo.Create(partner); err != nil {
		t.Fatalf("create partner failed: %v", err)
	}

	stats := models.PerformanceStats{TotalDeliveries: 1, SuccessfulDeliveries: 1, AverageDeliveryTimeMinutes: 30, OnTimeDeliveryRatePercent: 100}
	affected, err := repo.UpdateStatsWithVersion(partner.ID, partner.Version, stats)
	if err != nil || affected != 1 {
		t.Fatalf("first versioned update want 1 row got %d err=%v", affected, err)
	}
	affected, err = repo.UpdateStatsWithVersion(partner.ID, partner.Version, stats)
	if err != nil || affected != 0 {
		t.Fatalf("stale versioned update want 0 rows got %d err=%v", affected, err)
	}

	record := &models.PartnerDeliveryRecord{DeliveryNo: "PG-D-1", PartnerID: partner.ID, DeliveryTimeMinutes: 30, WasSuccessful: true}
	if err := recordRepo.Create(record); err != nil {
		t.Fatalf("create record failed: %v", err)
	}
	duplicate := &models.PartnerDeliveryRecord{DeliveryNo: "PG-D-1", PartnerID: partner.ID}
	if err := recordRepo.Create(duplicate); err == nil {
		t.Fatalf("duplicate delivery no should violate unique index")
	}
}
