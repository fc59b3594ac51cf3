package mariadb

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var errNotInitialized = errors.New("mariadb client is not initialized")

// DB returns the current gorm handle. The handle may be replaced after a
// reconnect, so callers should not keep it.
func (m *MariaDB) DB() *gorm.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Client
}

// Dialect reports "mariadb".
func (m *MariaDB) Dialect() string {
	return Dialect
}

// Ping checks the connection.
func (m *MariaDB) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Client == nil {
		return errNotInitialized
	}
	sqlDB, err := m.Client.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Find loads every record matching conditions into dest.
func (m *MariaDB) Find(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Client.WithContext(ctx).Find(dest, conditions...).Error
}

// First loads the first record matching conditions, ordered by primary key.
// It returns gorm.ErrRecordNotFound when nothing matches.
func (m *MariaDB) First(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Client.WithContext(ctx).First(dest, conditions...).Error
}

// Create inserts value and back-fills its primary key.
func (m *MariaDB) Create(ctx context.Context, value interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Client.WithContext(ctx).Create(value).Error
}

// UpdateWhere applies attrs to every row of model matching condition and
// returns the number of matched rows.
func (m *MariaDB) UpdateWhere(ctx context.Context, model interface{}, attrs interface{}, condition string, args ...interface{}) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := m.Client.WithContext(ctx).Model(model).Where(condition, args...).Updates(attrs)
	return result.RowsAffected, result.Error
}

// Delete removes the records matching conditions and returns how many went.
func (m *MariaDB) Delete(ctx context.Context, value interface{}, conditions ...interface{}) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := m.Client.WithContext(ctx).Delete(value, conditions...)
	return result.RowsAffected, result.Error
}

// Exec runs a raw statement.
func (m *MariaDB) Exec(ctx context.Context, sql string, values ...interface{}) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := m.Client.WithContext(ctx).Exec(sql, values...)
	return result.RowsAffected, result.Error
}

// Query runs fn with a context-bound handle while holding the read lock, for
// chains the helpers above do not cover.
//
//	err := db.Query(ctx, func(tx *gorm.DB) error {
//	    return tx.Table("graphics_cards").Where(where, args...).Order("id DESC").Find(&rows).Error
//	})
func (m *MariaDB) Query(ctx context.Context, fn func(db *gorm.DB) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(m.Client.WithContext(ctx))
}
