package cart

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapa-pos/api/internal/pos"
)

func product(name string, price float64, category string) pos.Product {
	return pos.Product{
		ID:       uuid.New(),
		Name:     name,
		Price:    decimal.NewFromFloat(price),
		Category: category,
	}
}

func TestAddProduct_DedupesByProduct(t *testing.T) {
	c := New()
	burger := product("X-Burger", 18.90, "lanches")

	c.AddProduct(burger)
	c.AddProduct(burger)

	require.Len(t, c.Lines, 1, "same product twice must not create two lines")
	assert.Equal(t, int32(2), c.Lines[0].Quantity)
}

func TestAddProduct_DistinctProductsGetOwnLines(t *testing.T) {
	c := New()
	c.AddProduct(product("X-Burger", 18.90, "lanches"))
	c.AddProduct(product("Coca-Cola", 6.90, "bebidas"))

	require.Len(t, c.Lines, 2)
	assert.Equal(t, int32(1), c.Lines[0].Quantity)
	assert.Equal(t, int32(1), c.Lines[1].Quantity)
}

func TestUpdateQuantity_ClampsAtOne(t *testing.T) {
	c := New()
	p := product("X-Burger", 18.90, "lanches")
	c.AddProduct(p)
	c.UpdateQuantity(p.ID, 2) // quantity 3

	c.UpdateQuantity(p.ID, -100)
	assert.Equal(t, int32(1), c.Lines[0].Quantity, "quantity never reaches 0 through deltas")

	c.UpdateQuantity(p.ID, 4)
	assert.Equal(t, int32(5), c.Lines[0].Quantity)
}

func TestUpdateQuantity_UnknownProductIsNoop(t *testing.T) {
	c := New()
	c.AddProduct(product("X-Burger", 18.90, "lanches"))
	c.UpdateQuantity(uuid.New(), 5)
	assert.Equal(t, int32(1), c.Lines[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	c := New()
	p := product("X-Burger", 18.90, "lanches")
	q := product("Coca-Cola", 6.90, "bebidas")
	c.AddProduct(p)
	c.AddProduct(q)

	c.RemoveItem(p.ID)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, q.ID, c.Lines[0].Product.ID)
}

func TestUpdateNotes(t *testing.T) {
	c := New()
	p := product("X-Burger", 18.90, "lanches")
	c.AddProduct(p)

	c.UpdateNotes(p.ID, "sem cebola")
	assert.Equal(t, "sem cebola", c.Lines[0].Notes)

	c.UpdateNotes(p.ID, "")
	assert.Equal(t, "", c.Lines[0].Notes, "notes are replaced, not appended")
}

func TestSelectPayment_NonCashResetsReceived(t *testing.T) {
	c := New()
	c.SelectPayment(pos.PaymentDinheiro)
	c.SetReceivedAmount(decimal.NewFromFloat(50))

	c.SelectPayment(pos.PaymentCredito)
	assert.True(t, c.ReceivedAmount.IsZero())

	c.SelectPayment(pos.PaymentDinheiro)
	c.SetReceivedAmount(decimal.NewFromFloat(50))
	c.SelectPayment(pos.PaymentDinheiro)
	assert.True(t, c.ReceivedAmount.Equal(decimal.NewFromFloat(50)), "reselecting cash keeps the amount")
}

func TestChangeAndOwed(t *testing.T) {
	c := New()
	p := product("Marmita", 23.50, "lanches")
	c.AddProduct(p)
	c.SelectPayment(pos.PaymentDinheiro)

	c.SetReceivedAmount(decimal.NewFromFloat(30))
	assert.True(t, c.Change().Equal(decimal.NewFromFloat(6.50)), "change = %s", c.Change())
	assert.True(t, c.Owed().IsZero())

	c.SetReceivedAmount(decimal.NewFromFloat(20))
	assert.True(t, c.Change().IsZero())
	assert.True(t, c.Owed().Equal(decimal.NewFromFloat(3.50)), "owed = %s", c.Owed())
}

func TestChange_ZeroForNonCash(t *testing.T) {
	c := New()
	c.AddProduct(product("Marmita", 23.50, "lanches"))
	c.SelectPayment(pos.PaymentPix)
	assert.True(t, c.Change().IsZero())
	assert.True(t, c.Owed().IsZero())
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	c := New()
	_, err := c.Checkout(uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_BuildsSnapshotOrder(t *testing.T) {
	c := New()
	burger := product("X-Burger", 18.90, "lanches")
	coke := product("Coca-Cola", 6.90, "bebidas")
	c.AddProduct(burger)
	c.AddProduct(burger)
	c.AddProduct(coke)
	c.UpdateNotes(burger.ID, "sem cebola")
	c.SelectPayment(pos.PaymentDinheiro)
	c.SetReceivedAmount(decimal.NewFromFloat(50))

	id := uuid.New()
	now := time.Date(2025, 6, 14, 18, 30, 0, 0, time.UTC)
	o, err := c.Checkout(id, now)
	require.NoError(t, err)

	assert.Equal(t, id, o.ID)
	assert.Equal(t, pos.StatusNovo, o.Status)
	assert.Equal(t, pos.PaymentDinheiro, o.PaymentMethod)
	assert.Equal(t, now, o.CreatedAt)
	assert.Equal(t, now, o.SentToKitchenAt)
	assert.True(t, o.Total.Equal(decimal.NewFromFloat(44.70)), "total = %s", o.Total)

	require.Len(t, o.Items, 2)
	assert.Equal(t, "X-Burger", o.Items[0].ProductName)
	assert.Equal(t, int32(2), o.Items[0].Quantity)
	assert.Equal(t, "sem cebola", o.Items[0].Notes)
	assert.Equal(t, "lanches", o.Items[0].Category)
	assert.True(t, o.Items[0].UnitPrice.Equal(decimal.NewFromFloat(18.90)))
	assert.Equal(t, "bebidas", o.Items[1].Category)
}

func TestClear(t *testing.T) {
	c := New()
	c.AddProduct(product("X-Burger", 18.90, "lanches"))
	c.SelectPayment(pos.PaymentDinheiro)
	c.SetReceivedAmount(decimal.NewFromFloat(50))

	c.Clear()
	assert.Empty(t, c.Lines)
	assert.True(t, c.ReceivedAmount.IsZero())
	assert.Equal(t, pos.PaymentDinheiro, c.PaymentMethod, "payment method survives for the next sale")
}

func TestSessions_IsolatePerTerminal(t *testing.T) {
	s := NewSessions()
	p := product("X-Burger", 18.90, "lanches")

	err := s.Do("caixa-1", func(c *Cart) error {
		c.AddProduct(p)
		return nil
	})
	require.NoError(t, err)

	err = s.Do("caixa-2", func(c *Cart) error {
		assert.Empty(t, c.Lines, "terminals have independent carts")
		return nil
	})
	require.NoError(t, err)

	err = s.Do("caixa-1", func(c *Cart) error {
		assert.Len(t, c.Lines, 1, "cart state survives across calls")
		return nil
	})
	require.NoError(t, err)
}
