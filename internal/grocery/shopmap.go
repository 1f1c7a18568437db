package grocery

import (
	"fmt"
	"net/http"

	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/platform/apierr"
)

func ToShopType(category string) (string, error) {
	shop, ok := shopTypeByCategory[category]
	if !ok {
		return "", apierr.UnknownTaxonomyKey(category)
	}
	return shop, nil
}

func ToCategory(shopType string) (string, error) {
	category, ok := categoryByShopType[shopType]
	if !ok {
		return "", apierr.New(http.StatusBadRequest, apierr.CodeUnknownTaxonomyKey, fmt.Errorf("unknown shop type %q", shopType))
	}
	return category, nil
}

// ShopTypesFor resolves every category or fails on the first unknown one.
// Duplicate shop types are collapsed, keeping first-seen order.
func ShopTypesFor(categories []string) ([]string, error) {
	out := make([]string, 0, len(categories))
	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		shop, err := ToShopType(c)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[shop]; dup {
			continue
		}
		seen[shop] = struct{}{}
		out = append(out, shop)
	}
	return out, nil
}

// RelabelShops returns a copy of shops with every shop type replaced by its
// shopping category. An unknown shop type fails the whole batch.
func RelabelShops(shops []domain.Shop) ([]domain.Shop, error) {
	out := make([]domain.Shop, len(shops))
	for i, s := range shops {
		category, err := ToCategory(s.Category)
		if err != nil {
			return nil, err
		}
		s.Category = category
		out[i] = s
	}
	return out, nil
}
