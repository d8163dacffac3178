package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

type resolverMap map[int]domain.Product

func (m resolverMap) Lookup(id int) (domain.Product, bool) {
	p, ok := m[id]
	return p, ok
}

func prices() resolverMap {
	return resolverMap{
		1: {ID: 1, Name: "Wireless Headphones", Price: decimal.RequireFromString("99.99")},
		3: {ID: 3, Name: "Running Shoes", Price: decimal.RequireFromString("79.99")},
	}
}

func TestAdd_IncrementsExistingLine(t *testing.T) {
	s := New()
	s.Add(1)
	s.Add(1)

	require.Equal(t, []domain.LineItem{{ProductID: 1, Quantity: 2}}, s.Items())
	assert.Equal(t, 2, s.TotalItems())
}

func TestAdd_UnknownProductAccepted(t *testing.T) {
	s := New()
	s.Add(999)
	assert.Equal(t, 1, s.TotalItems())
	assert.True(t, s.TotalPrice(prices()).IsZero())
	assert.Empty(t, s.Lines(prices()))
}

func TestSetQuantity(t *testing.T) {
	t.Run("zero removes", func(t *testing.T) {
		s := New()
		s.Add(1)
		s.SetQuantity(1, 0)
		assert.Equal(t, 0, s.Len())
		assert.Equal(t, 0, s.TotalItems())
	})

	t.Run("negative removes", func(t *testing.T) {
		s := New()
		s.Add(1)
		s.Add(3)
		s.SetQuantity(1, -4)
		assert.Equal(t, []domain.LineItem{{ProductID: 3, Quantity: 1}}, s.Items())
	})

	t.Run("sets exact value", func(t *testing.T) {
		s := New()
		s.Add(1)
		s.SetQuantity(1, 7)
		assert.Equal(t, 7, s.Quantity(1))
		s.Add(1)
		assert.Equal(t, 8, s.Quantity(1))
	})

	t.Run("absent product creates line", func(t *testing.T) {
		s := New()
		s.SetQuantity(3, 2)
		assert.Equal(t, []domain.LineItem{{ProductID: 3, Quantity: 2}}, s.Items())
	})

	t.Run("absent product with zero is a no-op", func(t *testing.T) {
		s := New()
		s.SetQuantity(3, 0)
		assert.Equal(t, 0, s.Len())
	})
}

func TestRemove(t *testing.T) {
	s := New()
	s.Add(1)
	s.Add(3)
	s.Add(3)

	s.Remove(42) // absent
	assert.Equal(t, 3, s.TotalItems())

	s.Remove(1)
	assert.Equal(t, []domain.LineItem{{ProductID: 3, Quantity: 2}}, s.Items())
	assert.Equal(t, 0, s.Quantity(1))
}

func TestOneLinePerProduct(t *testing.T) {
	s := New()
	for _, id := range []int{1, 3, 1, 3, 1} {
		s.Add(id)
	}
	s.SetQuantity(3, 5)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 8, s.TotalItems())
}

func TestTotalPrice(t *testing.T) {
	s := New()
	assert.True(t, s.TotalPrice(prices()).IsZero())

	s.Add(1)
	s.Add(1)
	assert.True(t, s.TotalPrice(prices()).Equal(decimal.RequireFromString("199.98")),
		"got %s", s.TotalPrice(prices()))

	s.Add(3)
	s.Add(77) // unresolvable, contributes zero
	assert.Equal(t, "279.97", s.TotalPrice(prices()).StringFixed(2))
}

func TestLinesAndSummary(t *testing.T) {
	s := New()
	s.Add(3)
	s.Add(1)
	s.SetQuantity(1, 3)

	lines := s.Lines(prices())
	require.Len(t, lines, 2)
	assert.Equal(t, "Running Shoes", lines[0].Product.Name)
	assert.Equal(t, 3, lines[1].Quantity)
	assert.Equal(t, "299.97", lines[1].Subtotal.StringFixed(2))

	sum := s.Summary(prices())
	assert.Equal(t, 4, sum.TotalItems)
	assert.Equal(t, "379.96", sum.TotalPrice.StringFixed(2))
	assert.Len(t, sum.Lines, 2)
}

func TestItemsIsACopy(t *testing.T) {
	s := New()
	s.Add(1)
	items := s.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1, s.Quantity(1))
}

func TestClear(t *testing.T) {
	s := New()
	s.Add(1)
	s.Add(3)
	s.Clear()
	assert.Equal(t, 0, s.TotalItems())
}

func TestQuantitySaturates(t *testing.T) {
	s := New()
	s.Add(1)
	s.SetQuantity(1, int(^uint(0)>>1)) // max int
	assert.Equal(t, MaxQuantity, s.Quantity(1))

	s.Add(1)
	assert.Equal(t, MaxQuantity, s.Quantity(1))
	assert.Equal(t, MaxQuantity, s.TotalItems())
	assert.True(t, s.TotalPrice(prices()).IsPositive())

	s2 := New()
	for i := 0; i < MaxQuantity+5; i++ {
		s2.Add(3)
	}
	assert.Equal(t, MaxQuantity, s2.Quantity(3))
}

func TestSummaryReportsUnavailableUnits(t *testing.T) {
	s := New()
	s.Add(1)
	s.Add(404)
	s.SetQuantity(405, 2)

	sum := s.Summary(prices())
	assert.Equal(t, 4, sum.TotalItems)
	assert.Len(t, sum.Lines, 1)
	assert.Equal(t, 3, sum.Unavailable)
	assert.Equal(t, 0, New().Summary(prices()).Unavailable)
}
