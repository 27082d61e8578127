package pos

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 14, 18, 30, 0, 0, time.UTC)

func testOrder(createdAt time.Time, items ...OrderItem) Order {
	return Order{
		ID:              uuid.New(),
		Items:           items,
		Status:          StatusNovo,
		PaymentMethod:   PaymentPix,
		CreatedAt:       createdAt,
		SentToKitchenAt: createdAt,
		UpdatedAt:       createdAt,
	}
}

func item(name, category string) OrderItem {
	return OrderItem{
		ProductID:   uuid.New(),
		ProductName: name,
		Quantity:    1,
		UnitPrice:   decimal.NewFromFloat(18.90),
		Category:    category,
	}
}

func TestKitchenRelevant(t *testing.T) {
	assert.True(t, KitchenRelevant("lanches"))
	assert.True(t, KitchenRelevant("pizzas"))
	assert.True(t, KitchenRelevant(""))
	assert.False(t, KitchenRelevant("bebidas"))
	assert.False(t, KitchenRelevant("sobremesas"))
	assert.False(t, KitchenRelevant("outros"))
	assert.False(t, KitchenRelevant("Bebidas"), "filter is case-insensitive")
	assert.False(t, KitchenRelevant("OUTROS"))
}

func TestProjectBoard_AllNonKitchenYieldsEmptyBoard(t *testing.T) {
	o := testOrder(baseTime,
		item("Coca-Cola", "bebidas"),
		item("Pudim", "sobremesas"),
		item("Gelo", "outros"),
	)

	for _, mode := range []GroupingMode{GroupingSingle, GroupingSplitByPrepTime} {
		b := ProjectBoard([]Order{o}, mode)
		assert.Empty(t, b.New, "mode %s", mode)
		assert.Empty(t, b.Preparing, "mode %s", mode)
		assert.Empty(t, b.Ready, "mode %s", mode)
	}
}

func TestProjectBoard_SplitExplodesKitchenItemsOnly(t *testing.T) {
	o := testOrder(baseTime,
		item("X-Burger", "lanches"),
		item("Coca-Cola", "bebidas"),
		item("Batata Frita", "lanches"),
	)

	b := ProjectBoard([]Order{o}, GroupingSplitByPrepTime)
	require.Len(t, b.New, 2)

	// Refs index into the full item slice, skipping the drink at index 1.
	assert.Equal(t, ItemRef{OrderID: o.ID, ItemIndex: 0}, b.New[0].Ref)
	assert.Equal(t, ItemRef{OrderID: o.ID, ItemIndex: 2}, b.New[1].Ref)
	assert.Equal(t, "X-Burger", b.New[0].Items[0].ProductName)
	assert.Equal(t, "Batata Frita", b.New[1].Items[0].ProductName)
}

func TestProjectBoard_SplitItemStatusFallsBackToOrder(t *testing.T) {
	o := testOrder(baseTime,
		item("X-Burger", "lanches"),
		item("X-Salada", "lanches"),
	)
	o.Status = StatusNovo
	o.Items[1].Status = StatusEmPreparo
	o.Items[1].LastModified = baseTime.Add(4 * time.Minute)

	b := ProjectBoard([]Order{o}, GroupingSplitByPrepTime)
	require.Len(t, b.New, 1)
	require.Len(t, b.Preparing, 1)
	assert.Equal(t, 0, b.New[0].Ref.ItemIndex)
	assert.Equal(t, 1, b.Preparing[0].Ref.ItemIndex)
	assert.Equal(t, baseTime.Add(4*time.Minute), b.Preparing[0].SortTime)
}

func TestProjectBoard_NewColumnIsFIFO(t *testing.T) {
	older := testOrder(baseTime, item("X-Burger", "lanches"))
	newer := testOrder(baseTime.Add(10*time.Minute), item("Margherita", "pizzas"))

	b := ProjectBoard([]Order{newer, older}, GroupingSplitByPrepTime)
	require.Len(t, b.New, 2)
	assert.Equal(t, older.ID, b.New[0].Ref.OrderID, "oldest unstarted work comes first")
	assert.Equal(t, newer.ID, b.New[1].Ref.OrderID)
}

func TestProjectBoard_InFlightColumnsSortByMostRecentTouch(t *testing.T) {
	a := testOrder(baseTime, item("X-Burger", "lanches"))
	a.Items[0].Status = StatusEmPreparo
	a.Items[0].LastModified = baseTime.Add(1 * time.Minute)

	bOrd := testOrder(baseTime, item("Margherita", "pizzas"))
	bOrd.Items[0].Status = StatusEmPreparo
	bOrd.Items[0].LastModified = baseTime.Add(5 * time.Minute)

	board := ProjectBoard([]Order{a, bOrd}, GroupingSplitByPrepTime)
	require.Len(t, board.Preparing, 2)
	assert.Equal(t, bOrd.ID, board.Preparing[0].Ref.OrderID)
	assert.Equal(t, a.ID, board.Preparing[1].Ref.OrderID)
}

func TestProjectBoard_SingleOneTicketPerOrder(t *testing.T) {
	o := testOrder(baseTime,
		item("X-Burger", "lanches"),
		item("Coca-Cola", "bebidas"),
		item("Batata Frita", "lanches"),
	)

	b := ProjectBoard([]Order{o}, GroupingSingle)
	require.Len(t, b.New, 1)
	w := b.New[0]
	assert.Equal(t, ItemRef{OrderID: o.ID, ItemIndex: -1}, w.Ref)
	require.Len(t, w.Items, 2, "drinks are hidden from the kitchen ticket")
	assert.Equal(t, "X-Burger", w.Items[0].ProductName)
	assert.Equal(t, "Batata Frita", w.Items[1].ProductName)
}

func TestProjectBoard_SingleUsesOrderStatus(t *testing.T) {
	o := testOrder(baseTime, item("X-Burger", "lanches"))
	o.Status = StatusPronto

	b := ProjectBoard([]Order{o}, GroupingSingle)
	assert.Empty(t, b.New)
	require.Len(t, b.Ready, 1)
	assert.Equal(t, StatusPronto, b.Ready[0].Status)
}

func TestProjectBoard_CompletedWorkLeavesTheBoard(t *testing.T) {
	o := testOrder(baseTime, item("X-Burger", "lanches"))
	o.Status = StatusConcluido

	b := ProjectBoard([]Order{o}, GroupingSingle)
	assert.Empty(t, b.New)
	assert.Empty(t, b.Preparing)
	assert.Empty(t, b.Ready)
}

func TestProjectBoard_CategorySnapshotIsStable(t *testing.T) {
	// The order snapshotted "lanches" at creation. A later catalog edit is
	// invisible to routing because projection reads only order data.
	o := testOrder(baseTime, item("X-Burger", "lanches"))

	before := ProjectBoard([]Order{o}, GroupingSplitByPrepTime)
	require.Len(t, before.New, 1)

	// Simulate the catalog recategorizing the product; the order is untouched.
	after := ProjectBoard([]Order{o}, GroupingSplitByPrepTime)
	assert.Equal(t, before.New, after.New)
}

func TestKitchenItems_PreservesInsertionOrder(t *testing.T) {
	o := testOrder(baseTime,
		item("Caldo", "lanches"),
		item("Suco", "bebidas"),
		item("Coxinha", "lanches"),
	)
	items := KitchenItems(o)
	require.Len(t, items, 2)
	assert.Equal(t, "Caldo", items[0].ProductName)
	assert.Equal(t, "Coxinha", items[1].ProductName)
}
