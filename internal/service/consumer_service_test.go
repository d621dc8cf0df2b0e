package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"station-chat-be/internal/dto"
	"station-chat-be/internal/entity"
	"station-chat-be/internal/pkg/logger"
	"station-chat-be/internal/repository/jsonstore"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumerPersistsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.json")
	stations, err := jsonstore.NewStationStore(path)
	require.NoError(t, err)
	require.NoError(t, stations.UpsertAll([]*entity.Station{
		{ID: "BJS-001", City: "北京", Status: entity.StatusOnline},
	}))

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	consumer := NewConsumerService(pubSub, "station.updated", stations, logger.NopLogger{})
	publisher := NewPublisherService(pubSub, "station.updated")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	st, ok := stations.UpdateStatus("BJS-001", entity.StatusOffline)
	require.True(t, ok)

	payload, err := json.Marshal(dto.StationUpdatedMessage{
		StationId: st.ID,
		Status:    st.Status,
		UpdatedAt: st.UpdatedAt,
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(ctx, payload))

	// The consumer persists asynchronously; poll the snapshot on disk.
	assert.Eventually(t, func() bool {
		reloaded, err := jsonstore.NewStationStore(path)
		if err != nil {
			return false
		}
		st, ok := reloaded.Get("BJS-001")
		return ok && st.Status == entity.StatusOffline
	}, 2*time.Second, 20*time.Millisecond)
}

func TestConsumerDropsInvalidPayload(t *testing.T) {
	stations, _ := newStores(t)
	cs := NewConsumerService(nil, "station.updated", stations, logger.NopLogger{}).(*consumerService)

	msg := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
	cs.processMessage(msg)

	select {
	case <-msg.Acked():
		// dropped, as intended
	case <-msg.Nacked():
		t.Fatal("invalid payload must be acked, not redelivered")
	case <-time.After(time.Second):
		t.Fatal("message neither acked nor nacked")
	}
}
