package mock

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maxwelladwale/coltech/internal/domain/catalog"
	"github.com/maxwelladwale/coltech/internal/domain/licensing"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/maxwelladwale/coltech/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// Annual renewal prices in KES
const (
	AIRenewalPrice    int64 = 12000
	NonAIRenewalPrice int64 = 6000
)

// ActivationMonths is the validity of a newly activated license
const ActivationMonths = 12

// LicenseService issues and renews licenses for orders placed with the mock
// backend
type LicenseService struct {
	orders  trade.OrderRepository
	catalog *Catalog
	now     func() time.Time

	mu       sync.RWMutex
	licenses map[string]*licensing.License
	owners   map[string]string // license id -> user id
}

var _ licensing.LicenseService = (*LicenseService)(nil)

// NewLicenseService creates a LicenseService
func NewLicenseService(orders trade.OrderRepository, catalog *Catalog) *LicenseService {
	return &LicenseService{
		orders:   orders,
		catalog:  catalog,
		now:      time.Now,
		licenses: make(map[string]*licensing.License),
		owners:   make(map[string]string),
	}
}

// NormalizeRegistration upper-cases a plate and drops spaces
func NormalizeRegistration(reg string) string {
	return strings.ToUpper(strings.Join(strings.Fields(reg), ""))
}

func renewalPrice(t catalog.LicenseType) decimal.Decimal {
	if t == catalog.LicenseTypeAI {
		return decimal.NewFromInt(AIRenewalPrice)
	}
	return decimal.NewFromInt(NonAIRenewalPrice)
}

func newLicenseKey() string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "CTL-" + hex[0:4] + "-" + hex[4:8] + "-" + hex[8:12] + "-" + hex[12:16]
}

// byVehicle finds the license for a normalized registration. Callers hold s.mu.
func (s *LicenseService) byVehicle(reg string) *licensing.License {
	for _, l := range s.licenses {
		if NormalizeRegistration(l.VehicleRegistration) == reg {
			return l
		}
	}
	return nil
}

// GetLicenseByVehicle returns the license fitted to the vehicle
func (s *LicenseService) GetLicenseByVehicle(_ context.Context, vehicleRegistration string) (*licensing.License, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l := s.byVehicle(NormalizeRegistration(vehicleRegistration))
	if l == nil {
		return nil, shared.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

// GetLicensesByUser lists licenses activated for the user's orders
func (s *LicenseService) GetLicensesByUser(_ context.Context, userID string) ([]licensing.License, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]licensing.License, 0)
	for id, owner := range s.owners {
		if owner == userID {
			result = append(result, *s.licenses[id])
		}
	}
	return result, nil
}

// ActivateLicense creates a 12 month license whose type follows the MDVR on
// the order
func (s *LicenseService) ActivateLicense(ctx context.Context, req licensing.ActivationRequest) (*licensing.License, error) {
	if strings.TrimSpace(req.OrderID) == "" || strings.TrimSpace(req.VehicleRegistration) == "" ||
		strings.TrimSpace(req.MDVRSerialNumber) == "" {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Order, MDVR serial number and vehicle registration are required")
	}

	order, err := s.orders.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	licenseType, ok := s.licenseTypeOf(order)
	if !ok {
		return nil, shared.NewDomainError(shared.ErrInvalidState.Code, "Order does not include an MDVR or license")
	}

	reg := NormalizeRegistration(req.VehicleRegistration)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byVehicle(reg) != nil {
		return nil, shared.NewDomainError(shared.ErrAlreadyExists.Code, "A license is already active for "+reg)
	}

	now := s.now()
	l := &licensing.License{
		ID:                  uuid.NewString(),
		LicenseKey:          newLicenseKey(),
		MDVRSerialNumber:    strings.TrimSpace(req.MDVRSerialNumber),
		VehicleRegistration: reg,
		Type:                licenseType,
		Status:              licensing.LicenseActive,
		ActivationDate:      now,
		ExpiryDate:          now.AddDate(0, ActivationMonths, 0),
		RenewalPrice:        renewalPrice(licenseType),
		OrderID:             order.ID,
	}
	s.licenses[l.ID] = l
	if order.UserID != "" {
		s.owners[l.ID] = order.UserID
	}
	cp := *l
	return &cp, nil
}

func (s *LicenseService) licenseTypeOf(order *trade.Order) (catalog.LicenseType, bool) {
	found := false
	var result catalog.LicenseType
	for _, item := range order.Items {
		t, ok := s.catalog.LicenseTypeFor(item.ProductID)
		if !ok {
			continue
		}
		if t == catalog.LicenseTypeAI {
			return t, true
		}
		result, found = t, true
	}
	return result, found
}

// RenewLicense extends the license by durationMonths
func (s *LicenseService) RenewLicense(_ context.Context, licenseID string, durationMonths int) (*licensing.License, error) {
	if durationMonths <= 0 {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Renewal duration must be at least one month")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.licenses[licenseID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if l.Status == licensing.LicenseSuspended {
		return nil, shared.NewDomainError(shared.ErrInvalidState.Code, "Suspended licenses cannot be renewed")
	}
	l.Renew(durationMonths, s.now())
	cp := *l
	return &cp, nil
}

// CheckLicenseStatus reports whether the vehicle is licensed
func (s *LicenseService) CheckLicenseStatus(_ context.Context, vehicleRegistration string) (*licensing.StatusCheck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l := s.byVehicle(NormalizeRegistration(vehicleRegistration))
	if l == nil {
		return &licensing.StatusCheck{IsActive: false}, nil
	}
	status := l.StatusAt(s.now())
	return &status, nil
}

// GetRenewalPrice returns the annual price for a license type
func (s *LicenseService) GetRenewalPrice(_ context.Context, licenseType catalog.LicenseType) (decimal.Decimal, error) {
	if !licenseType.IsValid() {
		return decimal.Zero, shared.NewDomainError(shared.ErrInvalidInput.Code, "License type must be ai or non-ai")
	}
	return renewalPrice(licenseType), nil
}
