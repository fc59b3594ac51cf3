package mongodb

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestConnectionURI(t *testing.T) {
	assert.Equal(t, "mongodb://localhost:27017", Connection{}.ConnectionURI())
	assert.Equal(t, "mongodb://db:27018", Connection{Host: "db", Port: "27018"}.ConnectionURI())
	assert.Equal(t, "mongodb://u:p@x/?replicaSet=rs0", Connection{URI: "mongodb://u:p@x/?replicaSet=rs0", Host: "ignored"}.ConnectionURI())
}

func TestClientOptions(t *testing.T) {
	opts := clientOptions(Config{
		Connection: Connection{Host: "db", Port: "27017", Username: "root", Password: "pw"},
	})

	assert.Equal(t, uint64(1), *opts.MaxPoolSize)
	assert.Equal(t, 5*time.Second, *opts.ServerSelectionTimeout)
	assert.Equal(t, "admin", opts.Auth.AuthSource)
	assert.Equal(t, []string{"db:27017"}, opts.Hosts)
}

func TestTranslateError(t *testing.T) {
	m := &MongoDB{}

	assert.ErrorIs(t, m.TranslateError(mongo.ErrNoDocuments), ErrRecordNotFound)
	assert.ErrorIs(t, m.TranslateError(fmt.Errorf("find: %w", mongo.ErrNoDocuments)), ErrRecordNotFound)

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, m.TranslateError(dup), ErrDuplicateKey)

	other := errors.New("boom")
	assert.Equal(t, other, m.TranslateError(other))
	assert.NoError(t, m.TranslateError(nil))
}

func TestIsRetryable(t *testing.T) {
	m := &MongoDB{}

	assert.False(t, m.IsRetryable(nil))
	assert.False(t, m.IsRetryable(errors.New("boom")))
	assert.True(t, m.IsRetryable(mongo.CommandError{Labels: []string{"RetryableWriteError"}}))
}
