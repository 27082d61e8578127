package pos

import (
	"sort"
	"strings"
	"time"
)

// nonKitchenCategories never appear on the KDS board or the kitchen ticket.
var nonKitchenCategories = map[string]bool{
	"bebidas":    true,
	"sobremesas": true,
	"outros":     true,
}

// KitchenRelevant reports whether a product category routes to the kitchen.
// Matching is case-insensitive on the category snapshot.
func KitchenRelevant(category string) bool {
	return !nonKitchenCategories[strings.ToLower(category)]
}

// KitchenItems returns the order's kitchen-relevant items in display order.
func KitchenItems(o Order) []OrderItem {
	var items []OrderItem
	for _, item := range o.Items {
		if KitchenRelevant(item.Category) {
			items = append(items, item)
		}
	}
	return items
}

// WorkItem is one ticket on the KDS board. In SPLIT mode it carries a single
// order item; in SINGLE mode it carries all kitchen-relevant items of the
// order. It is a projection, never persisted.
type WorkItem struct {
	Ref             ItemRef     `json:"ref"`
	Status          Status      `json:"status"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
	SentToKitchenAt time.Time   `json:"sent_to_kitchen_at"`

	// SortTime orders the preparing/ready columns: the item's LastModified
	// when set, else the order's CreatedAt.
	SortTime time.Time `json:"sort_time"`
}

// Board is the KDS projection: three columns of work items.
type Board struct {
	New       []WorkItem `json:"new"`
	Preparing []WorkItem `json:"preparing"`
	Ready     []WorkItem `json:"ready"`
}

// ProjectBoard derives the KDS board from the full order list under the
// given grouping mode. Orders whose items are all non-kitchen contribute
// nothing. The mode is read by the caller at render time, so a settings
// change takes effect on the next projection without touching order data.
func ProjectBoard(orders []Order, mode GroupingMode) Board {
	var work []WorkItem
	if mode == GroupingSingle {
		work = singleWorkItems(orders)
	} else {
		work = splitWorkItems(orders)
	}

	var b Board
	for _, w := range work {
		switch w.Status {
		case StatusNovo:
			b.New = append(b.New, w)
		case StatusEmPreparo:
			b.Preparing = append(b.Preparing, w)
		case StatusPronto:
			b.Ready = append(b.Ready, w)
		}
	}

	// Oldest first in the queue of unstarted work, most recently touched
	// first once in flight.
	sort.SliceStable(b.New, func(i, j int) bool {
		return b.New[i].CreatedAt.Before(b.New[j].CreatedAt)
	})
	sort.SliceStable(b.Preparing, func(i, j int) bool {
		return b.Preparing[i].SortTime.After(b.Preparing[j].SortTime)
	})
	sort.SliceStable(b.Ready, func(i, j int) bool {
		return b.Ready[i].SortTime.After(b.Ready[j].SortTime)
	})
	return b
}

// splitWorkItems explodes every kitchen-relevant item into its own ticket.
// The ref index is the position in the order's full item slice, so an
// advance on the ref lands on the right item even when non-kitchen items
// are interleaved.
func splitWorkItems(orders []Order) []WorkItem {
	var work []WorkItem
	for _, o := range orders {
		for i, item := range o.Items {
			if !KitchenRelevant(item.Category) {
				continue
			}
			sortTime := o.CreatedAt
			if !item.LastModified.IsZero() {
				sortTime = item.LastModified
			}
			work = append(work, WorkItem{
				Ref:             ItemRef{OrderID: o.ID, ItemIndex: i},
				Status:          o.ItemStatus(i),
				Items:           []OrderItem{item},
				CreatedAt:       o.CreatedAt,
				SentToKitchenAt: o.SentToKitchenAt,
				SortTime:        sortTime,
			})
		}
	}
	return work
}

// singleWorkItems shows each order as one ticket carrying its
// kitchen-relevant items; non-kitchen items stay on the customer receipt but
// never reach the board. Ticket status is the order-level status.
func singleWorkItems(orders []Order) []WorkItem {
	var work []WorkItem
	for _, o := range orders {
		items := KitchenItems(o)
		if len(items) == 0 {
			continue
		}
		sortTime := o.CreatedAt
		for _, item := range items {
			if item.LastModified.After(sortTime) {
				sortTime = item.LastModified
			}
		}
		work = append(work, WorkItem{
			Ref:             ItemRef{OrderID: o.ID, ItemIndex: -1},
			Status:          o.Status,
			Items:           items,
			CreatedAt:       o.CreatedAt,
			SentToKitchenAt: o.SentToKitchenAt,
			SortTime:        sortTime,
		})
	}
	return work
}
