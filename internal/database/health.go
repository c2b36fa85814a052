package database

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// PoolStats represents database connection pool statistics.
type PoolStats struct {
	OpenConnections int    `json:"openConnections"`
	InUse           int    `json:"inUse"`
	Idle            int    `json:"idle"`
	MaxOpen         int    `json:"maxOpen"`
	WaitCount       int64  `json:"waitCount"`
	WaitDuration    string `json:"waitDuration"`
	Healthy         bool   `json:"healthy"`
}

// Check pings the database and reports pool statistics.
func Check(ctx context.Context, db *gorm.DB) (*PoolStats, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return &PoolStats{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pingErr := sqlDB.PingContext(ctx)

	stat := sqlDB.Stats()
	stats := &PoolStats{
		OpenConnections: stat.OpenConnections,
		InUse:           stat.InUse,
		Idle:            stat.Idle,
		MaxOpen:         stat.MaxOpenConnections,
		WaitCount:       stat.WaitCount,
		WaitDuration:    stat.WaitDuration.String(),
		Healthy:         pingErr == nil,
	}
	return stats, pingErr
}
