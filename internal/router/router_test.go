package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agrimarket-logistics/internal/authz"
	"github.com/agrimarket-logistics/internal/cache"
	"github.com/agrimarket-logistics/internal/config"
	"github.com/agrimarket-logistics/internal/models"
	"github.com/agrimarket-logistics/internal/provider"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type routerFixture struct {
	engine    *gin.Engine
	container *provider.Container
}

func setupRouterTest(t *testing.T) *routerFixture {
	t.Helper()
	return setupRouterTestWithConfig(t, nil)
}

func setupRouterTestWithConfig(t *testing.T, mutate func(cfg *config.Config)) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.DeliveryZone{}, &models.DeliveryPartner{}, &models.PartnerDeliveryRecord{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{SecretKey: "router-test-secret", ExpireHours: 1},
	}
	if mutate != nil {
		mutate(cfg)
	}
	container, err := provider.NewContainerWithDB(cfg, db, nil)
	if err != nil {
		t.Fatalf("new container failed: %v", err)
	}
	return &routerFixture{engine: SetupRouter(cfg, container), container: container}
}

func (f *routerFixture) token(t *testing.T, roles ...string) string {
	t.Helper()
	token, _, err := f.container.AuthService.GenerateJWT(0, roles)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	return token
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body interface{}) envelope {
	t.Helper()
	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		payload = raw
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s http status want 200 got %d", method, path, w.Code)
	}
	return decodeEnvelope(t, w)
}

func zonePayload() gin.H {
	return gin.H{
		"name":      "Lagos Mainland",
		"center":    gin.H{"latitude": 6.5, "longitude": 3.35},
		"radius_km": 10,
		"base_fee":  "50",
		"distance_tiers": []gin.H{
			{"min_km": 0, "max_km": 5, "additional_fee": "10"},
			{"min_km": 5, "max_km": 10, "additional_fee": "20"},
		},
		"special_conditions": gin.H{
			"rainy_day": gin.H{"additional_fee": "15", "description": "rain surcharge"},
		},
	}
}

func partnerPayload() gin.H {
	return gin.H{
		"name":         "Green Haul",
		"company_type": "logistics",
		"services": []gin.H{
			{
				"service_type": "express",
				"base_price":   "100",
				"per_km_price": "5",
				"max_weight":   10,
				"max_distance": 8,
				"is_active":    true,
			},
		},
		"cities": []string{"Ibadan"},
		"states": []string{"Oyo"},
		"vehicles": []gin.H{
			{"type": "van", "capacity_weight": 800, "count": 2},
			{"type": "refrigerated_truck", "capacity_weight": 1500, "count": 1, "is_refrigerated": true},
		},
	}
}

func TestHealthAndPublicConfig(t *testing.T) {
	f := setupRouterTest(t)

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health status want 200 got %d", w.Code)
	}

	resp := f.do(t, http.MethodGet, "/api/v1/public/config", "", nil)
	if resp.StatusCode != 0 {
		t.Fatalf("config status_code want 0 got %d", resp.StatusCode)
	}
	var data struct {
		ZoneMembership string   `json:"zone_membership"`
		ServiceTypes   []string `json:"service_types"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal config failed: %v", err)
	}
	if data.ZoneMembership != "circle" || len(data.ServiceTypes) != 5 {
		t.Fatalf("unexpected config: %+v", data)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	f := setupRouterTest(t)

	if resp := f.do(t, http.MethodGet, "/api/v1/admin/zones", "", nil); resp.StatusCode != 401 {
		t.Fatalf("missing token want 401 got %d", resp.StatusCode)
	}
	auditor := f.token(t, authz.RoleReadonlyAuditor)
	if resp := f.do(t, http.MethodGet, "/api/v1/admin/zones", auditor, nil); resp.StatusCode != 0 {
		t.Fatalf("auditor list want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	if resp := f.do(t, http.MethodPost, "/api/v1/admin/zones", auditor, zonePayload()); resp.StatusCode != 403 {
		t.Fatalf("auditor create want 403 got %d", resp.StatusCode)
	}
}

func TestZoneAdminAndPublicQuoteFlow(t *testing.T) {
	f := setupRouterTest(t)
	admin := f.token(t, authz.RoleLogisticsAdmin)

	resp := f.do(t, http.MethodPost, "/api/v1/admin/zones", admin, zonePayload())
	if resp.StatusCode != 0 {
		t.Fatalf("create zone want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var zone models.DeliveryZone
	if err := json.Unmarshal(resp.Data, &zone); err != nil {
		t.Fatalf("unmarshal zone failed: %v", err)
	}
	if zone.ID == 0 || !zone.IsActive {
		t.Fatalf("unexpected zone: %+v", zone)
	}

	if resp := f.do(t, http.MethodPost, "/api/v1/admin/zones", admin, zonePayload()); resp.StatusCode != 409 {
		t.Fatalf("duplicate zone want 409 got %d", resp.StatusCode)
	}

	latitude := 6.5 + 6.0/6371.0*180/math.Pi
	resp = f.do(t, http.MethodPost, "/api/v1/public/zones/quote", "", gin.H{
		"latitude":   latitude,
		"longitude":  3.35,
		"conditions": []string{"rainy_day", "festival"},
	})
	if resp.StatusCode != 0 {
		t.Fatalf("quote want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var quotes []struct {
		ZoneID uint   `json:"zone_id"`
		Total  string `json:"total"`
	}
	if err := json.Unmarshal(resp.Data, &quotes); err != nil {
		t.Fatalf("unmarshal quotes failed: %v", err)
	}
	if len(quotes) != 1 || quotes[0].ZoneID != zone.ID || quotes[0].Total != "85.00" {
		t.Fatalf("unexpected quotes: %+v", quotes)
	}

	resp = f.do(t, http.MethodPost, "/api/v1/public/zones/quote", "", gin.H{"latitude": 6.9, "longitude": 3.35})
	if err := json.Unmarshal(resp.Data, &quotes); err != nil {
		t.Fatalf("unmarshal quotes failed: %v", err)
	}
	if resp.StatusCode != 0 || len(quotes) != 0 {
		t.Fatalf("point outside zone should yield no quotes, got %d %+v", resp.StatusCode, quotes)
	}

	if resp := f.do(t, http.MethodPost, "/api/v1/public/zones/quote", "", gin.H{"latitude": 95, "longitude": 3.35}); resp.StatusCode != 400 {
		t.Fatalf("invalid latitude want 400 got %d", resp.StatusCode)
	}

	dispatcher := f.token(t, authz.RoleDispatcher)
	path := fmt.Sprintf("/api/v1/admin/zones/%d/quote", zone.ID)
	resp = f.do(t, http.MethodPost, path, dispatcher, gin.H{"latitude": latitude, "longitude": 3.35})
	if resp.StatusCode != 0 {
		t.Fatalf("dispatcher zone quote want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	if resp := f.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/zones/%d", zone.ID), dispatcher, nil); resp.StatusCode != 403 {
		t.Fatalf("dispatcher delete want 403 got %d", resp.StatusCode)
	}
	if resp := f.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/zones/%d", zone.ID), admin, nil); resp.StatusCode != 0 {
		t.Fatalf("admin delete want 0 got %d", resp.StatusCode)
	}
	if resp := f.do(t, http.MethodGet, fmt.Sprintf("/api/v1/admin/zones/%d", zone.ID), admin, nil); resp.StatusCode != 404 {
		t.Fatalf("deleted zone want 404 got %d", resp.StatusCode)
	}
}

func TestPartnerAdminAndPublicFlow(t *testing.T) {
	f := setupRouterTest(t)
	admin := f.token(t, authz.RoleLogisticsAdmin)

	resp := f.do(t, http.MethodPost, "/api/v1/admin/partners", admin, partnerPayload())
	if resp.StatusCode != 0 {
		t.Fatalf("create partner want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var partner models.DeliveryPartner
	if err := json.Unmarshal(resp.Data, &partner); err != nil {
		t.Fatalf("unmarshal partner failed: %v", err)
	}
	if partner.ID == 0 || partner.IsVerified {
		t.Fatalf("new partner should be unverified: %+v", partner)
	}

	search := gin.H{"city": "Ibadan", "service_type": "express"}
	var found []models.DeliveryPartner
	resp = f.do(t, http.MethodPost, "/api/v1/public/partners/search", "", search)
	if err := json.Unmarshal(resp.Data, &found); err != nil {
		t.Fatalf("unmarshal search failed: %v", err)
	}
	if resp.StatusCode != 0 || len(found) != 0 {
		t.Fatalf("unverified partner should not be searchable, got %d", len(found))
	}

	verifyPath := fmt.Sprintf("/api/v1/admin/partners/%d/verification", partner.ID)
	if resp := f.do(t, http.MethodPatch, verifyPath, admin, gin.H{"value": true}); resp.StatusCode != 0 {
		t.Fatalf("verify partner want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}

	resp = f.do(t, http.MethodPost, "/api/v1/public/partners/search", "", search)
	if err := json.Unmarshal(resp.Data, &found); err != nil {
		t.Fatalf("unmarshal search failed: %v", err)
	}
	if len(found) != 1 || found[0].ID != partner.ID {
		t.Fatalf("verified partner should be searchable, got %+v", found)
	}

	if resp := f.do(t, http.MethodPost, "/api/v1/public/partners/search", "", gin.H{"city": "Ibadan", "service_type": "drone"}); resp.StatusCode != 400 {
		t.Fatalf("unknown service type want 400 got %d", resp.StatusCode)
	}

	resp = f.do(t, http.MethodPost, "/api/v1/public/partners/quote", "", gin.H{
		"city":                   "Ibadan",
		"service_type":           "express",
		"distance_km":            10,
		"weight":                 25,
		"requires_refrigeration": true,
	})
	if resp.StatusCode != 0 {
		t.Fatalf("partner quote want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var quotes []struct {
		PartnerID          uint   `json:"partner_id"`
		Cost               string `json:"cost"`
		ExceedsMaxDistance bool   `json:"exceeds_max_distance"`
		EligibleVehicles   []struct {
			Type string `json:"type"`
		} `json:"eligible_vehicles"`
	}
	if err := json.Unmarshal(resp.Data, &quotes); err != nil {
		t.Fatalf("unmarshal partner quotes failed: %v", err)
	}
	if len(quotes) != 1 || quotes[0].Cost != "450.00" || !quotes[0].ExceedsMaxDistance {
		t.Fatalf("unexpected partner quotes: %+v", quotes)
	}
	if len(quotes[0].EligibleVehicles) != 1 || quotes[0].EligibleVehicles[0].Type != "refrigerated_truck" {
		t.Fatalf("unexpected eligible vehicles: %+v", quotes[0].EligibleVehicles)
	}

	coveragePath := fmt.Sprintf("/api/v1/admin/partners/%d/coverage?city=Abuja&state=FCT", partner.ID)
	resp = f.do(t, http.MethodGet, coveragePath, admin, nil)
	var coverage struct {
		CoversLocation bool `json:"covers_location"`
		CanServe       bool `json:"can_serve"`
	}
	if err := json.Unmarshal(resp.Data, &coverage); err != nil {
		t.Fatalf("unmarshal coverage failed: %v", err)
	}
	if coverage.CoversLocation || !coverage.CanServe {
		t.Fatalf("active partner outside coverage: want covers=false can_serve=true, got %+v", coverage)
	}
}

func TestPartnerEventRoutesProcessInlineWithoutQueue(t *testing.T) {
	f := setupRouterTest(t)
	admin := f.token(t, authz.RoleLogisticsAdmin)
	dispatcher := f.token(t, authz.RoleDispatcher)

	resp := f.do(t, http.MethodPost, "/api/v1/admin/partners", admin, partnerPayload())
	var partner models.DeliveryPartner
	if err := json.Unmarshal(resp.Data, &partner); err != nil {
		t.Fatalf("unmarshal partner failed: %v", err)
	}

	deliveryPath := fmt.Sprintf("/api/v1/admin/partners/%d/deliveries", partner.ID)
	for i := 0; i < 2; i++ {
		resp = f.do(t, http.MethodPost, deliveryPath, dispatcher, gin.H{
			"delivery_no":           "D-1",
			"delivery_time_minutes": 40,
			"was_successful":        true,
		})
		if resp.StatusCode != 0 {
			t.Fatalf("record delivery attempt %d want 0 got %d (%s)", i+1, resp.StatusCode, resp.Msg)
		}
	}
	reviewPath := fmt.Sprintf("/api/v1/admin/partners/%d/reviews", partner.ID)
	if resp := f.do(t, http.MethodPost, reviewPath, dispatcher, gin.H{"user_id": "u-1", "rating": 4}); resp.StatusCode != 0 {
		t.Fatalf("submit review want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	if resp := f.do(t, http.MethodPost, reviewPath, dispatcher, gin.H{"user_id": "u-1", "rating": 9}); resp.StatusCode != 400 {
		t.Fatalf("invalid rating want 400 got %d", resp.StatusCode)
	}
	if resp := f.do(t, http.MethodPost, "/api/v1/admin/partners/999/deliveries", dispatcher, gin.H{"delivery_no": "D-2"}); resp.StatusCode != 404 {
		t.Fatalf("unknown partner want 404 got %d", resp.StatusCode)
	}

	resp = f.do(t, http.MethodGet, fmt.Sprintf("/api/v1/admin/partners/%d", partner.ID), admin, nil)
	if err := json.Unmarshal(resp.Data, &partner); err != nil {
		t.Fatalf("unmarshal partner failed: %v", err)
	}
	if partner.Performance.TotalDeliveries != 1 || partner.Performance.OnTimeDeliveryRatePercent != 100 {
		t.Fatalf("delivery should be counted once: %+v", partner.Performance)
	}
	if partner.Rating.TotalRatings != 1 || partner.Rating.Average != 4 {
		t.Fatalf("unexpected rating: %+v", partner.Rating)
	}

	resp = f.do(t, http.MethodGet, deliveryPath, admin, nil)
	var records []models.PartnerDeliveryRecord
	if err := json.Unmarshal(resp.Data, &records); err != nil {
		t.Fatalf("unmarshal records failed: %v", err)
	}
	if len(records) != 1 || records[0].DeliveryNo != "D-1" {
		t.Fatalf("unexpected delivery records: %+v", records)
	}
}

func TestBuildAdminPermissionCatalog(t *testing.T) {
	f := setupRouterTest(t)
	items := buildAdminPermissionCatalog(f.engine)
	if len(items) == 0 {
		t.Fatalf("catalog should not be empty")
	}
	seen := map[string]string{}
	for _, item := range items {
		seen[item.Permission] = item.Module
	}
	if module, ok := seen["PATCH:/admin/partners/:id/verification"]; !ok || module != "partners" {
		t.Fatalf("verification permission missing or misplaced: %q %v", module, ok)
	}
	if _, ok := seen["GET:/public/zones"]; ok {
		t.Fatalf("public routes should not be listed")
	}
	if deriveAdminPermissionModule("/admin/authz/permissions/catalog") != "authz" {
		t.Fatalf("unexpected module for authz catalog")
	}
}

func TestAuthzAdminRoutes(t *testing.T) {
	f := setupRouterTest(t)
	admin := f.token(t, authz.RoleLogisticsAdmin)
	dispatcher := f.token(t, authz.RoleDispatcher)

	if resp := f.do(t, http.MethodPost, "/api/v1/admin/authz/roles", dispatcher, gin.H{"role": "field_agent"}); resp.StatusCode != 403 {
		t.Fatalf("dispatcher create role want 403 got %d", resp.StatusCode)
	}
	if resp := f.do(t, http.MethodPost, "/api/v1/admin/authz/roles", admin, gin.H{"role": "field agent"}); resp.StatusCode != 0 {
		t.Fatalf("create role want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	if resp := f.do(t, http.MethodPost, "/api/v1/admin/authz/policies", admin, gin.H{"role": "field_agent", "object": "/admin/partners", "action": "get"}); resp.StatusCode != 0 {
		t.Fatalf("grant policy want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	if resp := f.do(t, http.MethodPost, "/api/v1/admin/authz/policies", admin, gin.H{"role": "field_agent"}); resp.StatusCode != 400 {
		t.Fatalf("incomplete policy want 400 got %d", resp.StatusCode)
	}

	resp := f.do(t, http.MethodGet, "/api/v1/admin/authz/roles", admin, nil)
	var roles []string
	if err := json.Unmarshal(resp.Data, &roles); err != nil {
		t.Fatalf("decode roles failed: %v", err)
	}
	found := false
	for _, role := range roles {
		if role == "role:field_agent" {
			found = true
		}
	}
	if !found {
		t.Fatalf("role list missing field_agent: %v", roles)
	}

	resp = f.do(t, http.MethodGet, "/api/v1/admin/authz/roles/field_agent/policies", admin, nil)
	var policies []authz.Policy
	if err := json.Unmarshal(resp.Data, &policies); err != nil {
		t.Fatalf("decode policies failed: %v", err)
	}
	if len(policies) != 1 || policies[0].Object != "/admin/partners" || policies[0].Action != "GET" {
		t.Fatalf("unexpected policies: %+v", policies)
	}

	if resp := f.do(t, http.MethodPut, "/api/v1/admin/authz/admins/7/roles", admin, gin.H{"roles": []string{"field_agent"}}); resp.StatusCode != 0 {
		t.Fatalf("set admin roles want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	resp = f.do(t, http.MethodGet, "/api/v1/admin/authz/admins/7/roles", admin, nil)
	var bound []string
	if err := json.Unmarshal(resp.Data, &bound); err != nil {
		t.Fatalf("decode admin roles failed: %v", err)
	}
	if len(bound) != 1 || bound[0] != "role:field_agent" {
		t.Fatalf("unexpected admin roles: %v", bound)
	}

	// 令牌不携带角色时按绑定角色鉴权
	agentToken, _, err := f.container.AuthService.GenerateJWT(7, nil)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	if resp := f.do(t, http.MethodGet, "/api/v1/admin/partners", agentToken, nil); resp.StatusCode != 0 {
		t.Fatalf("bound role list partners want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	if resp := f.do(t, http.MethodGet, "/api/v1/admin/zones", agentToken, nil); resp.StatusCode != 403 {
		t.Fatalf("bound role list zones want 403 got %d", resp.StatusCode)
	}

	resp = f.do(t, http.MethodGet, "/api/v1/admin/authz/me", admin, nil)
	var me struct {
		AdminID    uint     `json:"admin_id"`
		TokenRoles []string `json:"token_roles"`
	}
	if err := json.Unmarshal(resp.Data, &me); err != nil {
		t.Fatalf("decode me failed: %v", err)
	}
	if me.AdminID != 0 || len(me.TokenRoles) != 1 || me.TokenRoles[0] != authz.RoleLogisticsAdmin {
		t.Fatalf("unexpected me payload: %+v", me)
	}
}

// setupRateLimitedRouter 启用 miniredis 与报价限流（每窗口 2 次）
func setupRateLimitedRouter(t *testing.T) *routerFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.UseClient(client, "test")
	t.Cleanup(func() {
		cache.UseClient(nil, "")
		_ = client.Close()
	})
	return setupRouterTestWithConfig(t, func(cfg *config.Config) {
		cfg.Redis.Prefix = "test"
		cfg.Security.QuoteRateLimit = config.RateLimitConfig{WindowSeconds: 60, MaxRequests: 2, BlockSeconds: 60}
	})
}

func TestPartnerQuoteRateLimitIgnoresCity(t *testing.T) {
	f := setupRateLimitedRouter(t)

	cities := []string{"Lagos", "Ibadan", "Abuja", "Kano", "Enugu", "Jos"}
	passed := 0
	for _, city := range cities {
		resp := f.do(t, http.MethodPost, "/api/v1/public/partners/quote", "", gin.H{
			"city":         city,
			"service_type": "express",
			"distance_km":  5,
		})
		if resp.StatusCode != 429 {
			passed++
		}
	}
	if passed != 2 {
		t.Fatalf("same ip with rotating cities want 2 passed got %d", passed)
	}
}

func TestZoneListDoesNotConsumeQuoteAllowance(t *testing.T) {
	f := setupRateLimitedRouter(t)

	for i := 0; i < 3; i++ {
		f.do(t, http.MethodGet, "/api/v1/public/zones", "", nil)
	}
	for i := 0; i < 2; i++ {
		resp := f.do(t, http.MethodPost, "/api/v1/public/zones/quote", "", gin.H{"latitude": 6.5, "longitude": 3.4})
		if resp.StatusCode == 429 {
			t.Fatalf("zone quote %d limited after zone listing", i+1)
		}
	}
	if resp := f.do(t, http.MethodPost, "/api/v1/public/zones/quote", "", gin.H{"latitude": 6.5, "longitude": 3.4}); resp.StatusCode != 429 {
		t.Fatalf("third zone quote want 429 got %d", resp.StatusCode)
	}
}

func TestPartnerUpdateAndEligibleVehicleQueryValidation(t *testing.T) {
	f := setupRouterTest(t)
	admin := f.token(t, authz.RoleLogisticsAdmin)

	resp := f.do(t, http.MethodPost, "/api/v1/admin/partners", admin, partnerPayload())
	var partner models.DeliveryPartner
	if err := json.Unmarshal(resp.Data, &partner); err != nil {
		t.Fatalf("unmarshal partner failed: %v", err)
	}

	payload := partnerPayload()
	payload["is_verified"] = true
	resp = f.do(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/partners/%d", partner.ID), admin, payload)
	if resp.StatusCode != 0 {
		t.Fatalf("update partner want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var updated models.DeliveryPartner
	if err := json.Unmarshal(resp.Data, &updated); err != nil {
		t.Fatalf("unmarshal updated partner failed: %v", err)
	}
	if !updated.IsVerified {
		t.Fatalf("is_verified in update payload should be applied")
	}

	base := fmt.Sprintf("/api/v1/admin/partners/%d/vehicles/eligible", partner.ID)
	for _, query := range []string{"?weight=NaN", "?weight=Inf", "?volume=-1"} {
		if resp := f.do(t, http.MethodGet, base+query, admin, nil); resp.StatusCode != 400 {
			t.Fatalf("%s want 400 got %d", query, resp.StatusCode)
		}
	}
	if resp := f.do(t, http.MethodGet, base+"?weight=10", admin, nil); resp.StatusCode != 0 {
		t.Fatalf("finite weight want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
}
