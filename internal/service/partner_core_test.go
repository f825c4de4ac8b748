package service

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/agrimarket-logistics/internal/models"

	"github.com/shopspring/decimal"
)

func floatPtr(v float64) *float64 {
	return &v
}

func newTestPartner() *models.DeliveryPartner {
	return &models.DeliveryPartner{
		ID:          7,
		Name:        "Green Haul",
		CompanyType: models.CompanyTypeLogistics,
		Services: models.ServiceOfferingList{
			{
				ServiceType: models.ServiceTypeExpress,
				BasePrice:   money(100),
				PerKmPrice:  money(5),
				MaxWeight:   floatPtr(10),
				IsActive:    true,
			},
			{
				ServiceType: models.ServiceTypeBulk,
				BasePrice:   money(300),
				PerKmPrice:  money(2),
				IsActive:    false,
			},
		},
		Coverage: models.ServiceCoverage{
			Cities:   models.StringArray{"Ibadan"},
			States:   models.StringArray{"Lagos"},
			RadiusKm: 30,
		},
		Vehicles: models.VehicleClassList{
			{Type: models.VehicleTypeBike, CapacityWeight: floatPtr(20), CapacityVolume: floatPtr(0.2), Count: 4},
			{Type: models.VehicleTypeTruck, CapacityWeight: floatPtr(2000), Count: 1},
			{Type: models.VehicleTypeRefrigeratedTruck, CapacityWeight: floatPtr(1500), CapacityVolume: floatPtr(30), Count: 1, IsRefrigerated: true},
		},
		WarehouseLinks: models.WarehouseLinkList{
			{WarehouseID: "wh-far", DistanceKm: 12, EtaMinutes: 40, IsActive: true},
			{WarehouseID: "wh-off", DistanceKm: 1, EtaMinutes: 5, IsActive: false},
			{WarehouseID: "wh-near", DistanceKm: 3, EtaMinutes: 15, IsActive: true},
		},
		IsVerified: true,
		IsActive:   true,
	}
}

func TestCanServeAndCoverage(t *testing.T) {
	partner := newTestPartner()
	if !CoversLocation(partner, "Ibadan", "Oyo") {
		t.Fatalf("city match should cover")
	}
	if !CoversLocation(partner, "Ikeja", "Lagos") {
		t.Fatalf("state match should cover")
	}
	if CoversLocation(partner, "Kano", "Kano") {
		t.Fatalf("unlisted location should not be covered")
	}
	if !CanServe(partner, "Kano", "Kano") {
		t.Fatalf("active partner can serve regardless of coverage")
	}
	if !IsActiveRegardlessOfCoverage(partner, "Kano", "Kano") {
		t.Fatalf("permissive predicate should accept active partner")
	}

	partner.IsActive = false
	if CanServe(partner, "Kano", "Kano") {
		t.Fatalf("inactive partner outside coverage should not serve")
	}
	if !CanServe(partner, "Ibadan", "") {
		t.Fatalf("inactive partner inside coverage still passes coverage check")
	}
}

func TestEligibleVehicles(t *testing.T) {
	partner := newTestPartner()

	all := EligibleVehicles(partner, ShipmentSpec{})
	if len(all) != 3 {
		t.Fatalf("no constraints should keep all vehicles, got %d", len(all))
	}

	heavy := EligibleVehicles(partner, ShipmentSpec{Weight: floatPtr(500)})
	if len(heavy) != 2 || heavy[0].Type != models.VehicleTypeTruck {
		t.Fatalf("unexpected heavy vehicles: %+v", heavy)
	}

	// 卡车未设置容积，视为不限
	bulky := EligibleVehicles(partner, ShipmentSpec{Volume: floatPtr(50)})
	if len(bulky) != 1 || bulky[0].Type != models.VehicleTypeTruck {
		t.Fatalf("unexpected bulky vehicles: %+v", bulky)
	}

	cold := EligibleVehicles(partner, ShipmentSpec{RequiresRefrigeration: true, Weight: floatPtr(100)})
	if len(cold) != 1 || !cold[0].IsRefrigerated {
		t.Fatalf("unexpected refrigerated vehicles: %+v", cold)
	}
}

func TestEligibleVehiclesEmptyWhenNoRefrigeration(t *testing.T) {
	partner := newTestPartner()
	partner.Vehicles = partner.Vehicles[:2]
	got := EligibleVehicles(partner, ShipmentSpec{RequiresRefrigeration: true})
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice got %#v", got)
	}
}

func TestActiveWarehouseLinksSorted(t *testing.T) {
	links := ActiveWarehouseLinks(newTestPartner())
	if len(links) != 2 {
		t.Fatalf("want 2 active links got %d", len(links))
	}
	if links[0].WarehouseID != "wh-near" || links[1].WarehouseID != "wh-far" {
		t.Fatalf("unexpected order: %+v", links)
	}
}

func TestQuotePartnerCostWeightUnits(t *testing.T) {
	partner := newTestPartner()
	cost, err := QuotePartnerCost(partner, models.ServiceTypeExpress, 20, 25)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if !cost.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("want 600 got %s", cost)
	}

	light, err := QuotePartnerCost(partner, models.ServiceTypeExpress, 20, 0)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if !light.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("want 200 without weight got %s", light)
	}
}

func TestQuotePartnerCostWithoutMaxWeight(t *testing.T) {
	partner := newTestPartner()
	partner.Services[0].MaxWeight = nil
	cost, err := QuotePartnerCost(partner, models.ServiceTypeExpress, 10, 999)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if !cost.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("want 150 got %s", cost)
	}
}

func TestQuotePartnerCostServiceUnavailable(t *testing.T) {
	partner := newTestPartner()
	cases := []models.ServiceType{models.ServiceTypeBulk, models.ServiceTypeSameDay}
	for _, st := range cases {
		if _, err := QuotePartnerCost(partner, st, 5, 0); !errors.Is(err, ErrServiceUnavailable) {
			t.Fatalf("%s: want ErrServiceUnavailable got %v", st, err)
		}
	}
	partner.Services = nil
	if _, err := QuotePartnerCost(partner, models.ServiceTypeExpress, 5, 0); !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("empty services: want ErrServiceUnavailable got %v", err)
	}
}

func TestExceedsMaxDistance(t *testing.T) {
	offering := &models.ServiceOffering{MaxDistance: floatPtr(50)}
	if ExceedsMaxDistance(offering, 50) {
		t.Fatalf("50km should be within limit")
	}
	if !ExceedsMaxDistance(offering, 50.5) {
		t.Fatalf("50.5km should exceed limit")
	}
	if ExceedsMaxDistance(&models.ServiceOffering{}, 1e6) {
		t.Fatalf("unset limit never exceeds")
	}
}

func TestRecordDeliveryRunningMean(t *testing.T) {
	times := []float64{30, 45, 60, 25}
	stats := models.PerformanceStats{}
	for _, minutes := range times {
		stats = RecordDelivery(stats, minutes, true)
	}
	if stats.TotalDeliveries != 4 || stats.SuccessfulDeliveries != 4 {
		t.Fatalf("unexpected counters: %+v", stats)
	}
	if math.Abs(stats.AverageDeliveryTimeMinutes-40) > 1e-9 {
		t.Fatalf("want mean 40 got %v", stats.AverageDeliveryTimeMinutes)
	}
	if stats.OnTimeDeliveryRatePercent != 100 {
		t.Fatalf("want 100%% on time got %v", stats.OnTimeDeliveryRatePercent)
	}
}

func TestRecordDeliveryFailureCountsTowardAverage(t *testing.T) {
	before := models.PerformanceStats{TotalDeliveries: 1, SuccessfulDeliveries: 1, AverageDeliveryTimeMinutes: 20, OnTimeDeliveryRatePercent: 100}
	after := RecordDelivery(before, 40, false)
	if after.TotalDeliveries != 2 || after.SuccessfulDeliveries != 1 {
		t.Fatalf("unexpected counters: %+v", after)
	}
	if after.AverageDeliveryTimeMinutes != 30 {
		t.Fatalf("want mean 30 got %v", after.AverageDeliveryTimeMinutes)
	}
	if after.OnTimeDeliveryRatePercent != 50 {
		t.Fatalf("want 50%% got %v", after.OnTimeDeliveryRatePercent)
	}
	if before.TotalDeliveries != 1 {
		t.Fatalf("input stats must not change")
	}
}

func TestOnTimeDeliveryRateZeroDeliveries(t *testing.T) {
	if rate := OnTimeDeliveryRate(models.PerformanceStats{}); rate != 0 {
		t.Fatalf("want 0 got %v", rate)
	}
}

func TestRecordReviewOrderIndependentAverage(t *testing.T) {
	now := time.Now()
	ratings := []int{5, 3, 4, 1}

	var forward []models.Review
	var avgForward float64
	var totalForward int
	for i, r := range ratings {
		forward, avgForward, totalForward = RecordReview(forward, models.Review{UserID: string(rune('a' + i)), Rating: r, CreatedAt: now})
	}

	var backward []models.Review
	var avgBackward float64
	for i := len(ratings) - 1; i >= 0; i-- {
		backward, avgBackward, _ = RecordReview(backward, models.Review{UserID: string(rune('a' + i)), Rating: ratings[i], CreatedAt: now})
	}

	if avgForward != avgBackward || avgForward != 3.25 {
		t.Fatalf("want average 3.25 both ways, got %v and %v", avgForward, avgBackward)
	}
	if totalForward != 4 {
		t.Fatalf("want total 4 got %d", totalForward)
	}
	if forward[0].UserID != "a" || forward[3].UserID != "d" {
		t.Fatalf("review order not preserved: %+v", forward)
	}
}

func TestRecordReviewDoesNotMutateInput(t *testing.T) {
	base := make([]models.Review, 1, 4)
	base[0] = models.Review{UserID: "u1", Rating: 4}
	updated, _, _ := RecordReview(base, models.Review{UserID: "u2", Rating: 2})
	updated[0].Rating = 1
	if base[0].Rating != 4 || len(base) != 1 {
		t.Fatalf("input slice was mutated: %+v", base)
	}
}

func TestApplyReview(t *testing.T) {
	rating := ApplyReview(models.PartnerRating{}, models.Review{UserID: "u1", Rating: 5})
	rating = ApplyReview(rating, models.Review{UserID: "u2", Rating: 2})
	if rating.Average != 3.5 || rating.TotalRatings != 2 || len(rating.Reviews) != 2 {
		t.Fatalf("unexpected rating: %+v", rating)
	}
}

func TestFindCandidates(t *testing.T) {
	eligible := *newTestPartner()
	eligible.ID = 1

	inactive := *newTestPartner()
	inactive.ID = 2
	inactive.IsActive = false

	unverified := *newTestPartner()
	unverified.ID = 3
	unverified.IsVerified = false

	outside := *newTestPartner()
	outside.ID = 4
	outside.Coverage = models.ServiceCoverage{Cities: models.StringArray{"Abuja"}}

	stateOnly := *newTestPartner()
	stateOnly.ID = 5
	stateOnly.Coverage = models.ServiceCoverage{States: models.StringArray{"Lagos"}}

	partners := []models.DeliveryPartner{stateOnly, inactive, eligible, unverified, outside}
	got := FindCandidates(partners, "Ikeja", "Lagos", models.ServiceTypeExpress)
	if len(got) != 2 {
		t.Fatalf("want 2 candidates got %d", len(got))
	}
	if got[0].ID != 5 || got[1].ID != 1 {
		t.Fatalf("insertion order not kept: %d, %d", got[0].ID, got[1].ID)
	}
	for _, p := range got {
		if !p.IsActive || !p.IsVerified {
			t.Fatalf("candidate %d must be active and verified", p.ID)
		}
	}

	if none := FindCandidates(partners, "Ikeja", "Lagos", models.ServiceTypeBulk); len(none) != 0 {
		t.Fatalf("inactive offering should not match, got %d", len(none))
	}
	if none := FindCandidates(partners, "Kano", "Kano", models.ServiceTypeExpress); len(none) != 0 {
		t.Fatalf("search must not relax coverage, got %d", len(none))
	}
}
