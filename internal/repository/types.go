package repository

import "github.com/agrimarket-logistics/internal/models"

// ZoneListFilter 查询配送区域列表的过滤条件
type ZoneListFilter struct {
	Page     int
	PageSize int
	Search   string
	IsActive *bool
}

// PartnerListFilter 查询配送商列表的过滤条件
type PartnerListFilter struct {
	Page        int
	PageSize    int
	Search      string
	CompanyType models.CompanyType
	IsActive    *bool
	IsVerified  *bool
}
