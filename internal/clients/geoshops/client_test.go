package geoshops

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/platform/apierr"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

func TestShopsByCoord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/shopsByCoord", r.URL.Path)
		assert.Equal(t, "46.0667", r.URL.Query().Get("lat"))
		assert.Equal(t, "11.1167", r.URL.Query().Get("lon"))
		var types []string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&types))
		assert.Equal(t, []string{"butcher", "bakery"}, types)
		_ = json.NewEncoder(w).Encode([]domain.Shop{
			{Category: "butcher", Name: "Macelleria", Lat: 46.07, Lon: 11.12},
			{Category: "bakery", Name: "Panificio", Lat: 46.06, Lon: 11.11},
		})
	}))
	t.Cleanup(srv.Close)
	c, err := New(logger.Nop(), Config{BaseURL: srv.URL, Timeout: time.Second})
	require.NoError(t, err)

	shops, err := c.ShopsByCoord(context.Background(), domain.Coordinates{Lat: 46.0667, Lon: 11.1167}, []string{"butcher", "bakery"})
	require.NoError(t, err)
	require.Len(t, shops, 2)
	assert.Equal(t, "Macelleria", shops[0].Name)
	assert.Equal(t, "butcher", shops[0].Category)
}

func TestShopsByCoordUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overpass timeout", http.StatusGatewayTimeout)
	}))
	t.Cleanup(srv.Close)
	c, err := New(logger.Nop(), Config{BaseURL: srv.URL, Timeout: time.Second})
	require.NoError(t, err)

	shops, err := c.ShopsByCoord(context.Background(), domain.Coordinates{}, nil)
	require.Error(t, err)
	assert.Nil(t, shops)
	assert.True(t, apierr.IsCode(err, apierr.CodeCollaboratorUnavailable))
}
