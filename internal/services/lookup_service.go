package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"gestionale/server/internal/models"
	"gestionale/server/internal/utils"
)

const lookupCachePattern = "lookup:*"

// LookupOption is one entry of a form dropdown.
type LookupOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// LookupService serves the cached option lists behind the CRUD forms.
// Lists are read through Redis; catalogs that almost never change
// (operations, suppliers) get the longer TTL.
type LookupService struct {
	db         *gorm.DB
	cache      *utils.RedisClient
	lookupTTL  time.Duration
	catalogTTL time.Duration
}

func NewLookupService(db *gorm.DB, cache *utils.RedisClient, lookupTTL, catalogTTL time.Duration) *LookupService {
	return &LookupService{
		db:         db,
		cache:      cache,
		lookupTTL:  lookupTTL,
		catalogTTL: catalogTTL,
	}
}

func (s *LookupService) Customers() ([]LookupOption, error) {
	var options []LookupOption
	err := s.cache.Remember("lookup:customers", s.lookupTTL, &options, func() error {
		return s.db.Model(&models.Customer{}).
			Select("id, name AS label").
			Where("removed = ?", false).
			Order("name ASC").
			Scan(&options).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load customer options: %w", err)
	}
	return options, nil
}

func (s *LookupService) CustomerDivisions(customerID string) ([]LookupOption, error) {
	var options []LookupOption
	key := "lookup:divisions:" + customerID
	err := s.cache.Remember(key, s.lookupTTL, &options, func() error {
		return s.db.Model(&models.CustomerDivision{}).
			Select("id, name AS label").
			Where("customer_id = ? AND removed = ?", customerID, false).
			Order("name ASC").
			Scan(&options).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load division options: %w", err)
	}
	return options, nil
}

func (s *LookupService) ShippingAddresses(customerID string) ([]LookupOption, error) {
	var options []LookupOption
	key := "lookup:shipping_addresses:" + customerID
	err := s.cache.Remember(key, s.lookupTTL, &options, func() error {
		return s.db.Model(&models.CustomerShippingAddress{}).
			Select("id, CONCAT(label, ' - ', street, ', ', city) AS label").
			Where("customer_id = ? AND removed = ?", customerID, false).
			Order("label ASC").
			Scan(&options).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load shipping address options: %w", err)
	}
	return options, nil
}

func (s *LookupService) Articles() ([]LookupOption, error) {
	var options []LookupOption
	err := s.cache.Remember("lookup:articles", s.lookupTTL, &options, func() error {
		return s.db.Model(&models.Article{}).
			Select("id, CONCAT(code, ' - ', name) AS label").
			Where("removed = ?", false).
			Order("code ASC").
			Scan(&options).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load article options: %w", err)
	}
	return options, nil
}

func (s *LookupService) Suppliers() ([]LookupOption, error) {
	var options []LookupOption
	err := s.cache.Remember("lookup:suppliers", s.catalogTTL, &options, func() error {
		return s.db.Model(&models.Supplier{}).
			Select("id, name AS label").
			Where("removed = ?", false).
			Order("name ASC").
			Scan(&options).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load supplier options: %w", err)
	}
	return options, nil
}

func (s *LookupService) Operations() ([]LookupOption, error) {
	var options []LookupOption
	err := s.cache.Remember("lookup:operations", s.catalogTTL, &options, func() error {
		return s.db.Model(&models.Operation{}).
			Select("id, CONCAT(code, ' - ', name) AS label").
			Where("removed = ?", false).
			Order("code ASC").
			Scan(&options).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load operation options: %w", err)
	}
	return options, nil
}

func (s *LookupService) Employees() ([]LookupOption, error) {
	var options []LookupOption
	err := s.cache.Remember("lookup:employees", s.lookupTTL, &options, func() error {
		return s.db.Model(&models.Employee{}).
			Select("id, CONCAT(last_name, ' ', first_name) AS label").
			Where("removed = ?", false).
			Order("last_name ASC, first_name ASC").
			Scan(&options).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load employee options: %w", err)
	}
	return options, nil
}

// Refresh drops every cached lookup list. Exposed to the back office for
// use right after master-data imports.
func (s *LookupService) Refresh() error {
	return s.cache.ForgetPattern(lookupCachePattern)
}
