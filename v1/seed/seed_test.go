package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Aleph-Alpha/gpucatalog/v1/card"
	"github.com/Aleph-Alpha/gpucatalog/v1/logger"
	"github.com/Aleph-Alpha/gpucatalog/v1/store"
)

func TestCardsAreValid(t *testing.T) {
	cards := Cards()
	require.Len(t, cards, 6)
	for _, c := range cards {
		assert.NoError(t, c.Validate(), c.Name)
	}
}

func TestSeedContinuesPastFailures(t *testing.T) {
	ctrl := gomock.NewController(t)

	healthy := store.NewMockStore(ctrl)
	healthy.EXPECT().Backend().Return("mysql").AnyTimes()
	healthy.EXPECT().Create(gomock.Any(), gomock.Any()).Return("1", nil).Times(6)

	flaky := store.NewMockStore(ctrl)
	flaky.EXPECT().Backend().Return("mongodb").AnyTimes()
	calls := 0
	flaky.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, card.Input) (string, error) {
			calls++
			if calls%2 == 0 {
				return "", errors.New("write conflict")
			}
			return "x", nil
		}).Times(6)

	core, logs := observer.New(zap.InfoLevel)
	log := &logger.LoggerClient{Zap: zap.New(core)}

	results := Seed(context.Background(), log, healthy, flaky)

	assert.Equal(t, []Result{
		{Backend: "mysql", Inserted: 6, Total: 6},
		{Backend: "mongodb", Inserted: 3, Total: 6},
	}, results)
	assert.Equal(t, 3, logs.FilterMessage("Failed to seed card").Len())
}

func TestSeedStopsOnCancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := store.NewMockStore(ctrl)
	s.EXPECT().Backend().Return("mysql").AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Seed(ctx, logger.NewNop(), s)
	assert.Equal(t, []Result{{Backend: "mysql", Inserted: 0, Total: 6}}, results)
}
