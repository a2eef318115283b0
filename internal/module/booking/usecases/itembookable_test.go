package usecases

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"triplus-booking-service/internal/module/booking/models/entity"
)

func TestItemBookable(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	expiry := func(at time.Time) sql.NullTime {
		return sql.NullTime{Time: at, Valid: true}
	}

	testCases := []struct {
		name     string
		item     entity.CatalogItem
		expected bool
	}{
		{name: "active destination", item: entity.CatalogItem{Kind: entity.ItemDestination, Active: true}, expected: true},
		{name: "inactive destination", item: entity.CatalogItem{Kind: entity.ItemDestination, Active: false}, expected: false},
		{name: "offer expiring later", item: entity.CatalogItem{Kind: entity.ItemOffer, Active: true, ExpiresAt: expiry(now.Add(time.Hour))}, expected: true},
		{name: "offer expiring exactly now", item: entity.CatalogItem{Kind: entity.ItemOffer, Active: true, ExpiresAt: expiry(now)}, expected: false},
		{name: "offer expired", item: entity.CatalogItem{Kind: entity.ItemOffer, Active: true, ExpiresAt: expiry(now.Add(-time.Hour))}, expected: false},
		{name: "offer without expiry", item: entity.CatalogItem{Kind: entity.ItemOffer, Active: true}, expected: true},
		{name: "inactive offer with future expiry", item: entity.CatalogItem{Kind: entity.ItemOffer, Active: false, ExpiresAt: expiry(now.Add(time.Hour))}, expected: false},
		{name: "package ignores expiry", item: entity.CatalogItem{Kind: entity.ItemPackage, Active: true, ExpiresAt: expiry(now.Add(-time.Hour))}, expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, itemBookable(tc.item, now))
		})
	}
}
