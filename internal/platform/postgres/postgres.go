// Package postgres opens the GORM connection shared by the pets and adoptions repositories.
package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrEmptyDSN is returned by Connect when no DSN is configured.
var ErrEmptyDSN = errors.New("postgres DSN is empty")

const (
	maxOpenConns    = 20
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Connect opens a pooled connection and pings it before returning.
// Unique violations surface as gorm.ErrDuplicatedKey, which the application repository
// relies on to detect a second active application for the same user and pet.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrEmptyDSN
	}
	db, err := gorm.Open(postgres.Open(dsn), Config())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Config returns the GORM settings shared by every connection in this service.
func Config() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}
