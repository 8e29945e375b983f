package postgres

import (
	"database/sql"
	"fmt"

	"fulfillment/internal/adapters/out/postgres/dispatchrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/sequencerepo"
	"fulfillment/internal/adapters/out/postgres/stockrepo"

	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionString builds a lib/pq keyword/value DSN.
func ConnectionString(host, port, user, password, dbName, sslMode string) string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		host, port, user, password, dbName, sslMode)
}

// Open connects through lib/pq and hands the pool to GORM, so driver errors
// keep their *pq.Error type for classification.
func Open(dsn string) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("init gorm: %w", err)
	}

	return db, nil
}

// Models lists every table owned by the ledger, parents before children.
func Models() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&stockrepo.StockDTO{},
		&dispatchrepo.DispatchNoteDTO{},
		&dispatchrepo.DispatchEntryDTO{},
		&sequencerepo.DispatchSequenceDTO{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
