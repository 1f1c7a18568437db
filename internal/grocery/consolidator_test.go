package grocery

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/platform/apierr"
)

type convertCall struct {
	name   string
	amount float64
	from   string
	to     string
}

type fakeConverter struct {
	factor map[string]float64
	fail   map[string]error
	calls  []convertCall
}

func (f *fakeConverter) Convert(_ context.Context, name string, amount float64, from, to string) (float64, error) {
	f.calls = append(f.calls, convertCall{name: name, amount: amount, from: from, to: to})
	if err, ok := f.fail[from]; ok {
		return 0, err
	}
	factor, ok := f.factor[from]
	if !ok {
		return 0, errors.New("unsupported unit " + from)
	}
	return amount * factor, nil
}

type countingRecorder struct{ units []string }

func (r *countingRecorder) ConversionFallback(unit string) { r.units = append(r.units, unit) }

func namesFor(ids ...int) *fakeLookup {
	l := &fakeLookup{facts: map[int]domain.IngredientFact{}}
	for _, id := range ids {
		l.facts[id] = domain.IngredientFact{ID: id, Name: "ingredient"}
	}
	return l
}

func entry(id int, qty float64, unit string) domain.ShoppingListEntry {
	return domain.ShoppingListEntry{IngredientID: id, Quantity: qty, Measure: unit}
}

func TestConsolidateMergesAfterConversion(t *testing.T) {
	conv := &fakeConverter{factor: map[string]float64{"kg": 1000}}
	c := NewConsolidator(nil, conv, namesFor(1))

	got, err := c.Consolidate(context.Background(), []domain.ShoppingListEntry{
		entry(1, 2, "kg"),
		entry(1, 300, "g"),
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.ShoppingListEntry{entry(1, 2300, "g")}, got)
	require.Len(t, conv.calls, 1)
	assert.Equal(t, convertCall{name: "ingredient", amount: 2, from: "kg", to: "g"}, conv.calls[0])
}

func TestConsolidateFallsBackToDefault(t *testing.T) {
	conv := &fakeConverter{fail: map[string]error{"cup": errors.New("cannot convert")}}
	rec := &countingRecorder{}
	c := NewConsolidator(nil, conv, namesFor(2), WithFallbackRecorder(rec))

	got, err := c.Consolidate(context.Background(), []domain.ShoppingListEntry{entry(2, 1, "cup")})
	require.NoError(t, err)
	assert.Equal(t, []domain.ShoppingListEntry{entry(2, 100, "g")}, got)
	assert.Equal(t, []string{"cup"}, rec.units)
}

func TestConsolidateConfiguredDefault(t *testing.T) {
	conv := &fakeConverter{}
	c := NewConsolidator(nil, conv, namesFor(2), WithDefaultGrams(50), WithDefaultGrams(-1))

	got, err := c.Consolidate(context.Background(), []domain.ShoppingListEntry{entry(2, 3, "pinch")})
	require.NoError(t, err)
	assert.Equal(t, []domain.ShoppingListEntry{entry(2, 50, "g")}, got)
}

func TestConsolidateNameLookupFailureDegrades(t *testing.T) {
	conv := &fakeConverter{factor: map[string]float64{"kg": 1000}}
	names := &fakeLookup{fail: map[int]error{9: errors.New("provider down")}}
	c := NewConsolidator(nil, conv, names)

	got, err := c.Consolidate(context.Background(), []domain.ShoppingListEntry{entry(9, 1, "kg")})
	require.NoError(t, err)
	assert.Equal(t, []domain.ShoppingListEntry{entry(9, 100, "g")}, got)
	assert.Empty(t, conv.calls)
}

func TestConsolidateSkipsConversionForGrams(t *testing.T) {
	conv := &fakeConverter{}
	c := NewConsolidator(nil, conv, namesFor())

	got, err := c.Consolidate(context.Background(), []domain.ShoppingListEntry{
		entry(1, 12.2, "g"),
		entry(2, 5, "Grams"),
		entry(3, 7, " gram "),
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.ShoppingListEntry{
		entry(1, 13, "g"),
		entry(2, 5, "g"),
		entry(3, 7, "g"),
	}, got)
	assert.Empty(t, conv.calls)
}

func TestConsolidateZeroQuantityIsKept(t *testing.T) {
	conv := &fakeConverter{}
	c := NewConsolidator(nil, conv, namesFor(4))

	got, err := c.Consolidate(context.Background(), []domain.ShoppingListEntry{
		entry(4, 0, "tbsp"),
		entry(5, 0, "g"),
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.ShoppingListEntry{entry(4, 0, "g"), entry(5, 0, "g")}, got)
	assert.Empty(t, conv.calls)
}

func TestConsolidateCeilsEachEntryBeforeSumming(t *testing.T) {
	conv := &fakeConverter{factor: map[string]float64{"oz": 28.3495}}
	c := NewConsolidator(nil, conv, namesFor(1, 2))

	in := []domain.ShoppingListEntry{
		entry(1, 1, "oz"),
		entry(2, 0.4, "g"),
		entry(1, 1, "oz"),
		entry(2, 0.4, "g"),
	}
	got, err := c.Consolidate(context.Background(), in)
	require.NoError(t, err)

	want := []domain.ShoppingListEntry{
		entry(1, 2*math.Ceil(28.3495), "g"),
		entry(2, 2, "g"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("consolidated list mismatch (-want +got):\n%s", diff)
	}
}

func TestConsolidateAtMostOneEntryPerIngredient(t *testing.T) {
	conv := &fakeConverter{factor: map[string]float64{"kg": 1000, "lb": 453.592, "tsp": 4.2}}
	c := NewConsolidator(nil, conv, namesFor(1, 2, 3, 4))

	in := []domain.ShoppingListEntry{
		entry(3, 1.5, "lb"),
		entry(1, 0.25, "kg"),
		entry(3, 2, "tsp"),
		entry(2, 10, "g"),
		entry(1, 1, "cup"),
		entry(4, 3, "tsp"),
		entry(2, 5.5, "g"),
	}
	got, err := c.Consolidate(context.Background(), in)
	require.NoError(t, err)

	seen := map[int]bool{}
	order := []int{}
	for _, e := range got {
		assert.False(t, seen[e.IngredientID], "duplicate id %d", e.IngredientID)
		seen[e.IngredientID] = true
		order = append(order, e.IngredientID)
		assert.Equal(t, CanonicalUnit, e.Measure)
		assert.Equal(t, math.Ceil(e.Quantity), e.Quantity)
	}
	assert.Equal(t, []int{3, 1, 2, 4}, order, "first-seen order")

	want := map[int]float64{
		3: math.Ceil(1.5*453.592) + math.Ceil(2*4.2),
		1: 250 + 100,
		2: 10 + 6,
		4: math.Ceil(3 * 4.2),
	}
	for _, e := range got {
		assert.InDelta(t, want[e.IngredientID], e.Quantity, 1e-9, "ingredient %d", e.IngredientID)
	}
}

func TestConsolidateIsIdempotent(t *testing.T) {
	conv := &fakeConverter{factor: map[string]float64{"kg": 1000}}
	c := NewConsolidator(nil, conv, namesFor(1, 2))

	once, err := c.Consolidate(context.Background(), []domain.ShoppingListEntry{
		entry(1, 1.2, "kg"),
		entry(2, 40, "g"),
		entry(1, 3, "g"),
	})
	require.NoError(t, err)
	calls := len(conv.calls)

	twice, err := c.Consolidate(context.Background(), once)
	require.NoError(t, err)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("second pass changed the list (-first +second):\n%s", diff)
	}
	assert.Equal(t, calls, len(conv.calls), "canonical entries are not converted again")
}

func TestConsolidateLooksUpNameOncePerIngredient(t *testing.T) {
	conv := &fakeConverter{factor: map[string]float64{"cup": 240}}
	names := namesFor(1)
	c := NewConsolidator(nil, conv, names)

	_, err := c.Consolidate(context.Background(), []domain.ShoppingListEntry{
		entry(1, 1, "cup"),
		entry(1, 2, "cup"),
	})
	require.NoError(t, err)
	assert.Len(t, names.calls, 1)
	assert.Len(t, conv.calls, 2)
}

func TestConsolidateHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewConsolidator(nil, &fakeConverter{}, namesFor(1))

	got, err := c.Consolidate(ctx, []domain.ShoppingListEntry{entry(1, 1, "g")})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)
}

func TestConsolidateEmpty(t *testing.T) {
	got, err := NewConsolidator(nil, nil, nil).Consolidate(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestConsolidateRejectsOverflowingTotal(t *testing.T) {
	c := NewConsolidator(nil, &fakeConverter{}, namesFor())

	got, err := c.Consolidate(context.Background(), []domain.ShoppingListEntry{
		entry(1, 1e308, "g"),
		entry(1, 1e308, "g"),
	})
	require.Error(t, err)
	assert.True(t, apierr.IsCode(err, apierr.CodeInvalidRequest))
	assert.Nil(t, got)
}

func TestConsolidateRejectsNonFiniteQuantity(t *testing.T) {
	c := NewConsolidator(nil, &fakeConverter{}, namesFor())

	_, err := c.Consolidate(context.Background(), []domain.ShoppingListEntry{entry(1, math.NaN(), "g")})
	assert.True(t, apierr.IsCode(err, apierr.CodeInvalidRequest))

	_, err = c.Consolidate(context.Background(), []domain.ShoppingListEntry{entry(2, math.Inf(1), "g")})
	assert.True(t, apierr.IsCode(err, apierr.CodeInvalidRequest))
}
