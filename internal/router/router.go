package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agrimarket-logistics/internal/authz"
	"github.com/agrimarket-logistics/internal/cache"
	"github.com/agrimarket-logistics/internal/config"
	adminhandlers "github.com/agrimarket-logistics/internal/http/handlers/admin"
	publichandlers "github.com/agrimarket-logistics/internal/http/handlers/public"
	"github.com/agrimarket-logistics/internal/http/response"
	"github.com/agrimarket-logistics/internal/logger"
	"github.com/agrimarket-logistics/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "agl"
	}
	redisClient := cache.Client()
	quoteLimit := cfg.Security.QuoteRateLimit
	zoneListRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:zone_list", redisPrefix),
		WindowSeconds: quoteLimit.WindowSeconds,
		MaxRequests:   quoteLimit.MaxRequests,
		BlockSeconds:  quoteLimit.BlockSeconds,
	}
	zoneRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:zone_quote", redisPrefix),
		WindowSeconds: quoteLimit.WindowSeconds,
		MaxRequests:   quoteLimit.MaxRequests,
		BlockSeconds:  quoteLimit.BlockSeconds,
	}
	partnerRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:partner_quote", redisPrefix),
		WindowSeconds: quoteLimit.WindowSeconds,
		MaxRequests:   quoteLimit.MaxRequests,
		BlockSeconds:  quoteLimit.BlockSeconds,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/zones", RateLimitMiddleware(redisClient, zoneListRule, KeyByIP), publicHandler.GetZones)
			public.POST("/zones/quote", RateLimitMiddleware(redisClient, zoneRule, KeyByIP), publicHandler.QuoteZones)
			public.POST("/partners/search", RateLimitMiddleware(redisClient, partnerRule, KeyByIP), publicHandler.SearchPartners)
			public.POST("/partners/quote", RateLimitMiddleware(redisClient, partnerRule, KeyByIP), publicHandler.QuotePartners)
		}

		// 管理员接口（令牌由运营后台签发）
		admin := apiV1.Group("/admin")
		authorized := admin.Use(JWTAuthMiddleware(c.AuthService), AdminRBACMiddleware(c.AuthzService))
		{
			// 配送区域
			authorized.GET("/zones", adminHandler.GetAdminZones)
			authorized.POST("/zones", adminHandler.CreateZone)
			authorized.GET("/zones/:id", adminHandler.GetAdminZone)
			authorized.PUT("/zones/:id", adminHandler.UpdateZone)
			authorized.DELETE("/zones/:id", adminHandler.DeleteZone)
			authorized.POST("/zones/:id/quote", adminHandler.QuoteZone)

			// 配送伙伴
			authorized.GET("/partners", adminHandler.GetAdminPartners)
			authorized.POST("/partners", adminHandler.CreatePartner)
			authorized.GET("/partners/:id", adminHandler.GetAdminPartner)
			authorized.PUT("/partners/:id", adminHandler.UpdatePartner)
			authorized.DELETE("/partners/:id", adminHandler.DeletePartner)
			authorized.PATCH("/partners/:id/verification", adminHandler.UpdatePartnerVerification)
			authorized.PATCH("/partners/:id/status", adminHandler.UpdatePartnerStatus)
			authorized.GET("/partners/:id/vehicles/eligible", adminHandler.GetPartnerEligibleVehicles)
			authorized.GET("/partners/:id/coverage", adminHandler.GetPartnerCoverage)

			// 配送结果与评价
			authorized.GET("/partners/:id/deliveries", adminHandler.GetPartnerDeliveries)
			authorized.POST("/partners/:id/deliveries", adminHandler.RecordPartnerDelivery)
			authorized.POST("/partners/:id/reviews", adminHandler.SubmitPartnerReview)

			// 权限管理
			authorized.GET("/authz/me", adminHandler.GetAuthzMe)
			authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
			authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
			authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
			authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
			authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
			authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
			authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
				response.Success(ctx, buildAdminPermissionCatalog(r))
			})
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	return segments[1]
}
