// Package render formats catalog items, carts and orders as text. It only
// reads through the public accessors of package retail.
package render

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"retail-core/retail"
)

const (
	rule     = "========================================"
	thinRule = "----------------------------------------"
)

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Item is the one-line form of an item.
func Item(item retail.Item) string {
	return fmt.Sprintf("Product[ID:%d, Name:'%s', Price:%s, Stock:%d]",
		item.ID(), item.Name(), money(item.Price()), item.Stock())
}

// ItemDetails is the multi-line description of an item.
func ItemDetails(item retail.Item) string {
	var b strings.Builder
	el, isElectronics := item.(*retail.Electronics)
	if isElectronics {
		b.WriteString("========== ELECTRONICS PRODUCT ==========\n")
	}
	fmt.Fprintf(&b, "Product ID: %d\n", item.ID())
	fmt.Fprintf(&b, "Name: %s\n", item.Name())
	fmt.Fprintf(&b, "Price: %s\n", money(item.Price()))
	fmt.Fprintf(&b, "Stock: %d units\n", item.Stock())
	if isElectronics {
		fmt.Fprintf(&b, "Brand: %s\n", el.Brand())
		fmt.Fprintf(&b, "Warranty: %d months\n", el.WarrantyMonths())
		b.WriteString(rule + "\n")
	}
	return b.String()
}

// Inventory lists every catalog item with its details.
func Inventory(items []retail.Item) string {
	var b strings.Builder
	b.WriteString("========== CURRENT INVENTORY ==========\n")
	if len(items) == 0 {
		b.WriteString("Inventory is empty.\n")
		b.WriteString(rule + "\n")
		return b.String()
	}
	for i, item := range items {
		fmt.Fprintf(&b, "Product #%d:\n", i+1)
		b.WriteString(ItemDetails(item))
		b.WriteString(thinRule + "\n")
	}
	fmt.Fprintf(&b, "Total Products: %d\n", len(items))
	b.WriteString(rule + "\n")
	return b.String()
}

func line(name, brand string, quantity int, unit, total decimal.Decimal) string {
	label := name
	if brand != "" {
		label += " (" + brand + ")"
	}
	return fmt.Sprintf("- %s (Qty: %d) - Unit: %s | Total: %s\n", label, quantity, money(unit), money(total))
}

// Cart shows the cart contents and total.
func Cart(cart *retail.Cart) string {
	var b strings.Builder
	b.WriteString("============= SHOPPING CART =============\n")
	entries := cart.Entries()
	if len(entries) == 0 {
		b.WriteString("Cart is empty.\n")
		b.WriteString(rule + "\n")
		return b.String()
	}
	b.WriteString("Items in your cart:\n")
	for _, e := range entries {
		brand := ""
		if el, ok := e.Item().(*retail.Electronics); ok {
			brand = el.Brand()
		}
		b.WriteString(line(e.Item().Name(), brand, e.Quantity(), e.Item().Price(), e.LineTotal()))
	}
	b.WriteString(thinRule + "\n")
	fmt.Fprintf(&b, "Cart Total: %s\n", money(cart.Total()))
	fmt.Fprintf(&b, "Total Items: %d different products\n", len(entries))
	b.WriteString(rule + "\n")
	return b.String()
}

// Order is the confirmation view of one order.
func Order(order *retail.Order) string {
	var b strings.Builder
	b.WriteString("========== ORDER CONFIRMATION ==========\n")
	fmt.Fprintf(&b, "Order ID: #%d\n", order.ID())
	fmt.Fprintf(&b, "Date: %s\n", order.Date())
	fmt.Fprintf(&b, "Status: %s\n", order.Status())
	b.WriteString(thinRule + "\n")
	b.WriteString("Ordered Items:\n")
	for _, l := range order.Lines() {
		b.WriteString(line(l.Name, l.Brand, l.Quantity, l.UnitPrice, l.LineTotal))
	}
	b.WriteString(thinRule + "\n")
	fmt.Fprintf(&b, "Total Amount: %s\n", money(order.Total()))
	b.WriteString(rule + "\n")
	return b.String()
}

// OrderHistory summarises orders one per line.
func OrderHistory(orders []*retail.Order) string {
	var b strings.Builder
	b.WriteString("========== ORDER HISTORY ==========\n")
	if len(orders) == 0 {
		b.WriteString("No orders found.\n")
	}
	for _, o := range orders {
		fmt.Fprintf(&b, "Order #%d - Total: %s - Status: %s\n", o.ID(), money(o.Total()), o.Status())
	}
	if len(orders) > 0 {
		fmt.Fprintf(&b, "Total Orders: %d\n", len(orders))
	}
	b.WriteString("===================================\n")
	return b.String()
}
