package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var errNotInitialized = errors.New("postgres client is not initialized")

// DB returns the current gorm handle. It may change after a reconnect.
func (p *Postgres) DB() *gorm.DB {
	return p.client.Load()
}

// Dialect reports "postgres".
func (p *Postgres) Dialect() string {
	return Dialect
}

// Ping checks the connection.
func (p *Postgres) Ping(ctx context.Context) error {
	db := p.client.Load()
	if db == nil {
		return errNotInitialized
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Find loads every record matching conditions into dest.
func (p *Postgres) Find(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	return p.DB().WithContext(ctx).Find(dest, conditions...).Error
}

// First loads the first record matching conditions or returns
// gorm.ErrRecordNotFound.
func (p *Postgres) First(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	return p.DB().WithContext(ctx).First(dest, conditions...).Error
}

// Create inserts value; the generated key is read back with RETURNING.
func (p *Postgres) Create(ctx context.Context, value interface{}) error {
	return p.DB().WithContext(ctx).Create(value).Error
}

// UpdateWhere applies attrs to the rows of model matching condition.
func (p *Postgres) UpdateWhere(ctx context.Context, model interface{}, attrs interface{}, condition string, args ...interface{}) (int64, error) {
	result := p.DB().WithContext(ctx).Model(model).Where(condition, args...).Updates(attrs)
	return result.RowsAffected, result.Error
}

// Delete removes the records matching conditions.
func (p *Postgres) Delete(ctx context.Context, value interface{}, conditions ...interface{}) (int64, error) {
	result := p.DB().WithContext(ctx).Delete(value, conditions...)
	return result.RowsAffected, result.Error
}

// Exec runs a raw statement.
func (p *Postgres) Exec(ctx context.Context, sql string, values ...interface{}) (int64, error) {
	result := p.DB().WithContext(ctx).Exec(sql, values...)
	return result.RowsAffected, result.Error
}

// Query hands fn a context-bound handle for arbitrary chains.
func (p *Postgres) Query(ctx context.Context, fn func(db *gorm.DB) error) error {
	return fn(p.DB().WithContext(ctx))
}
