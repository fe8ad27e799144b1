package service

import (
	"context"
	"fmt"

	"storehub/internal/domain"
	"storehub/internal/repository"

	"github.com/google/uuid"
)

// DashboardService computes the aggregate stats shown on the dashboard.
// Nothing is cached; every view recomputes from the database.
type DashboardService interface {
	Stats(ctx context.Context, userID uuid.UUID) (*domain.DashboardStats, error)
}

type dashboardService struct {
	orderRepo repository.OrderRepository
}

// NewDashboardService creates a new instance of DashboardService
func NewDashboardService(orderRepo repository.OrderRepository) DashboardService {
	return &dashboardService{orderRepo: orderRepo}
}

// Stats reduces the caller's per-store counts into platform totals. Unlike
// the store listing, inactive stores count here too. Zero stores reduces
// to all-zero stats.
func (s *dashboardService) Stats(ctx context.Context, userID uuid.UUID) (*domain.DashboardStats, error) {
	perStore, err := s.orderRepo.StatsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}

	return Reduce(perStore), nil
}

// Reduce folds per-store rows into the dashboard totals.
func Reduce(perStore []domain.StoreStats) *domain.DashboardStats {
	stats := &domain.DashboardStats{TotalStores: len(perStore)}
	for _, row := range perStore {
		stats.TotalProducts += row.ProductCount
		stats.TotalOrders += row.OrderCount
		stats.TotalRevenue += row.Revenue
	}
	return stats
}
