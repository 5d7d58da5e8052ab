package feed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tair/shop-tracker/internal/feed"
	"github.com/tair/shop-tracker/internal/order/domain"
)

func TestHubFansOut(t *testing.T) {
	hub := feed.NewHub()

	var first, second []feed.OrderSnapshot
	hub.Subscribe(func(s feed.OrderSnapshot) { first = append(first, s) })
	hub.Subscribe(func(s feed.OrderSnapshot) { second = append(second, s) })

	hub.Publish(7, []domain.Order{{ID: 1, OwnerID: 7}})

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
	assert.Equal(t, uint(7), first[0].OwnerID)
}

func TestHubUnsubscribe(t *testing.T) {
	hub := feed.NewHub()

	var got []feed.OrderSnapshot
	unsubscribe := hub.Subscribe(func(s feed.OrderSnapshot) { got = append(got, s) })

	hub.Publish(7, nil)
	unsubscribe()
	hub.Publish(7, nil)

	assert.Len(t, got, 1)
}

func TestSubscribeOwnerFilters(t *testing.T) {
	hub := feed.NewHub()

	var got [][]domain.Order
	hub.SubscribeOwner(7, func(orders []domain.Order) { got = append(got, orders) })

	hub.Publish(7, []domain.Order{{ID: 1, OwnerID: 7}})
	hub.Publish(8, []domain.Order{{ID: 2, OwnerID: 8}})

	assert.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0][0].ID)
}
