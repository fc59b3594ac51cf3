package sqlstore

import (
	"context"
	"fmt"

	"github.com/Aleph-Alpha/gpucatalog/v1/database"
)

// TableName is the card table.
const TableName = "graphics_cards"

var mysqlSchema = []string{`
CREATE TABLE IF NOT EXISTS graphics_cards (
    id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    manufacturer VARCHAR(100) NOT NULL,
    model VARCHAR(100) NOT NULL,
    memory_gb INT NOT NULL,
    memory_type VARCHAR(50) NOT NULL,
    core_clock_mhz INT NOT NULL,
    boost_clock_mhz INT NULL,
    price_usd DECIMAL(10, 2) NULL,
    release_date DATE NULL,
    created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
    updated_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6),
    INDEX idx_manufacturer (manufacturer),
    INDEX idx_memory (memory_gb),
    INDEX idx_price (price_usd)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
}

var postgresSchema = []string{`
CREATE TABLE IF NOT EXISTS graphics_cards (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    manufacturer VARCHAR(100) NOT NULL,
    model VARCHAR(100) NOT NULL,
    memory_gb INTEGER NOT NULL,
    memory_type VARCHAR(50) NOT NULL,
    core_clock_mhz INTEGER NOT NULL,
    boost_clock_mhz INTEGER NULL,
    price_usd NUMERIC(10, 2) NULL,
    release_date DATE NULL,
    created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE INDEX IF NOT EXISTS idx_manufacturer ON graphics_cards (manufacturer)`,
	`CREATE INDEX IF NOT EXISTS idx_memory ON graphics_cards (memory_gb)`,
	`CREATE INDEX IF NOT EXISTS idx_price ON graphics_cards (price_usd)`,
}

// schemaFor returns the DDL statements for dialect.
func schemaFor(dialect string) []string {
	if dialect == "postgres" {
		return postgresSchema
	}
	return mysqlSchema
}

// EnsureSchema creates the card table and its indexes when missing. It is
// safe to run on every start.
func EnsureSchema(ctx context.Context, db database.Client) error {
	for _, stmt := range schemaFor(db.Dialect()) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create %s schema: %w", TableName, db.TranslateError(err))
		}
	}
	return nil
}
