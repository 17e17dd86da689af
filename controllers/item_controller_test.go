package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset_booking/booking"
	"asset_booking/models"
)

func Test_Availability_RequiresWindow(t *testing.T) {
	s := &Srv{Items: &stubItems{}}
	r := testRouter(s, member)

	w := doJSON(t, r, http.MethodGet, "/api/items/item-1/availability", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet,
		"/api/items/item-1/availability?from=2024-02-01T00:00:00Z&to=2024-01-01T00:00:00Z", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func Test_Availability_UnknownItem(t *testing.T) {
	s := &Srv{
		Items: &stubItems{
			blocks: func(itemID string, _, _ time.Time) ([]booking.Block, error) {
				return nil, fmt.Errorf("item %s: %w", itemID, booking.ErrNotFound)
			},
		},
	}
	r := testRouter(s, member)

	w := doJSON(t, r, http.MethodGet,
		"/api/items/nope/availability?from=2024-01-01T00:00:00Z&to=2024-02-01T00:00:00Z", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func Test_Availability_ReturnsBlocksAndCaches(t *testing.T) {
	cache := &stubCache{}
	blocks := []booking.Block{
		{
			Start: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
			Kind:  booking.BlockApproved,
		},
	}
	calls := 0
	s := &Srv{
		Items: &stubItems{
			blocks: func(string, time.Time, time.Time) ([]booking.Block, error) {
				calls++
				return blocks, nil
			},
		},
		Blocks: cache,
	}
	r := testRouter(s, member)

	w := doJSON(t, r, http.MethodGet,
		"/api/items/item-1/availability?from=2024-01-01T00:00:00Z&to=2024-02-01T00:00:00Z", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"APPROVED"`)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.puts)
}

func Test_Availability_ServedFromCache(t *testing.T) {
	cache := &stubCache{hits: map[string][]booking.Block{
		"item-1": {{
			Start: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
			Kind:  booking.BlockActiveLoan,
		}},
	}}
	s := &Srv{
		Items:  &stubItems{}, // any store call would fail the test
		Blocks: cache,
	}
	r := testRouter(s, member)

	w := doJSON(t, r, http.MethodGet,
		"/api/items/item-1/availability?from=2024-01-01T00:00:00Z&to=2024-02-01T00:00:00Z", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ACTIVE_LOAN"`)
}

func Test_CreateItem_StaffOnly(t *testing.T) {
	s := &Srv{Items: &stubItems{}}
	r := testRouter(s, member)

	w := doJSON(t, r, http.MethodPost, "/api/items",
		`{"name":"Projector","code":"PRJ-1","category":"AV"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func Test_CreateItem_DuplicateCode(t *testing.T) {
	s := &Srv{
		Items: &stubItems{
			create: func(it *models.Item) error {
				return fmt.Errorf("item code %s already exists: %w", it.Code, booking.ErrConflict)
			},
		},
	}
	r := testRouter(s, staff)

	w := doJSON(t, r, http.MethodPost, "/api/items",
		`{"name":"Projector","code":"PRJ-1","category":"AV"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func Test_CreateItem_Created(t *testing.T) {
	s := &Srv{
		Items: &stubItems{
			create: func(it *models.Item) error {
				assert.NotEmpty(t, it.ID)
				assert.True(t, it.Available)
				assert.Equal(t, models.ItemStatusActive, it.Status)
				return nil
			},
		},
	}
	r := testRouter(s, staff)

	w := doJSON(t, r, http.MethodPost, "/api/items",
		`{"name":"Projector","code":"PRJ-1","category":"AV"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}
