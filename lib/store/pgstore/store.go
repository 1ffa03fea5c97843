package pgstore

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ValentinKolb/rksok/lib/store"
	"github.com/lni/dragonboat/v4/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

var log = logger.GetLogger("store")

// userPhone is a single row of the phonebook table
type userPhone struct {
	Username string `gorm:"column:username;primaryKey"`
	Phones   string `gorm:"column:phones;not null"`
}

func (userPhone) TableName() string {
	return "userphones"
}

type storeImpl struct {
	db *gorm.DB
}

// Open connects to PostgreSQL, applies the embedded migrations and returns the store.
func Open(ctx context.Context, c store.PostgresConfig) (store.IStore, error) {
	db, err := Connect(ctx, c.DSN, c.MaxConns)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, db); err != nil {
		closeDB(db)
		return nil, err
	}
	return NewPostgresStore(db), nil
}

// NewPostgresStore creates a store on top of an open (and migrated) gorm connection pool
func NewPostgresStore(db *gorm.DB) store.IStore {
	return &storeImpl{db: db}
}

// --------------------------------------------------------------------------
// Connection handling
// --------------------------------------------------------------------------

// Connect opens and validates a Postgres-backed GORM connection pool.
func Connect(ctx context.Context, dsn string, maxConns int) (*gorm.DB, error) {
	log.Infof("connecting to postgres")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm sql db: %w", err)
	}
	if maxConns > 0 {
		sqlDB.SetMaxOpenConns(maxConns)
		sqlDB.SetMaxIdleConns(max(1, maxConns/2))
	}
	sqlDB.SetConnMaxIdleTime(15 * time.Minute)
	sqlDB.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	log.Infof("connected to postgres")
	return db, nil
}

// RunMigrations applies the embedded SQL migrations in lexical order.
// All migrations are idempotent and run on every start.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		raw, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if err := db.WithContext(ctx).Exec(string(raw)).Error; err != nil {
			return fmt.Errorf("exec migration %s: %w", name, err)
		}
		log.Debugf("applied migration %s", name)
	}
	log.Infof("applied %d postgres migrations", len(names))
	return nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docs see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Lookup(ctx context.Context, key string) (string, bool, error) {
	var row userPhone
	err := s.db.WithContext(ctx).Where("username = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, store.WrapError(store.RetCUnavailable, "lookup", err)
	}
	return row.Phones, true, nil
}

// Store inserts the row or replaces the phones of an existing one in a single statement
func (s *storeImpl) Store(ctx context.Context, key, value string) (bool, error) {
	row := userPhone{Username: key, Phones: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"phones"}),
	}).Create(&row).Error
	if err != nil {
		return false, store.WrapError(store.RetCUnavailable, "store", err)
	}
	return true, nil
}

func (s *storeImpl) Remove(ctx context.Context, key string) (bool, error) {
	res := s.db.WithContext(ctx).Where("username = ?", key).Delete(&userPhone{})
	if res.Error != nil {
		return false, store.WrapError(store.RetCUnavailable, "remove", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *storeImpl) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
