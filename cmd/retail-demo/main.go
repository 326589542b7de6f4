// Command retail-demo walks through the retail core feature by feature and
// prints each step.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"retail-core/config"
	"retail-core/logging"
	"retail-core/render"
	"retail-core/retail"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := run(os.Stdout, logger); err != nil {
		logger.Fatal("demo failed", zap.Error(err))
	}
}

func yesNo(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}

// report prints the outcome of an operation that is expected to fail.
func report(w io.Writer, action string, err error) {
	if err != nil {
		fmt.Fprintf(w, "%s: %s error: %v\n", action, retail.KindOf(err), err)
		return
	}
	fmt.Fprintf(w, "%s: ok\n", action)
}

func run(w io.Writer, logger *zap.Logger) error {
	fmt.Fprintln(w, "=========== RETAIL CORE DEMO ===========")

	manager := retail.NewManager(retail.WithLogger(logger))
	items, err := config.BuildItems(config.DefaultCatalog())
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := manager.AddCatalogItem(item); err != nil {
			return err
		}
	}
	laptop, phone, book := items[0], items[1], items[2]

	fmt.Fprintln(w, "\n1. CATALOG")
	fmt.Fprint(w, render.Inventory(manager.Catalog()))

	fmt.Fprintln(w, "\n2. COMPARISONS")
	fmt.Fprintf(w, "Laptop: %s\n", render.Item(laptop))
	fmt.Fprintf(w, "Phone: %s\n", render.Item(phone))
	fmt.Fprintf(w, "Book: %s\n", render.Item(book))
	anotherLaptop, err := retail.NewElectronics(101, "Gaming Laptop", decimal.RequireFromString("1299.99"), 5, 24, "ASUS")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "laptop == anotherLaptop: %s\n", yesNo(retail.SameItem(laptop, anotherLaptop), "TRUE", "FALSE"))
	fmt.Fprintf(w, "laptop == phone: %s\n", yesNo(retail.SameItem(laptop, phone), "TRUE", "FALSE"))
	fmt.Fprintf(w, "laptop < phone (by price): %s\n", yesNo(retail.ComparePrice(laptop, phone) < 0, "TRUE", "FALSE"))
	fmt.Fprintf(w, "laptop > book (by price): %s\n", yesNo(retail.ComparePrice(laptop, book) > 0, "TRUE", "FALSE"))

	fmt.Fprintln(w, "\n3. CART")
	for _, add := range []struct{ id, qty int }{{101, 2}, {201, 3}, {102, 1}} {
		if err := manager.AddToCart(add.id, add.qty); err != nil {
			return err
		}
	}
	fmt.Fprint(w, render.Cart(manager.Cart()))

	fmt.Fprintln(w, "\n4. CONTAINERS")
	categories := retail.NewContainer(retail.Equal[string])
	for _, c := range []string{"Electronics", "Books", "Clothing", "Sports"} {
		categories.Add(c)
	}
	fmt.Fprintf(w, "Categories size: %d\n", categories.Size())
	fmt.Fprintf(w, "Search for 'Electronics': %s\n", yesNo(categories.Contains("Electronics"), "FOUND", "NOT FOUND"))
	fmt.Fprintf(w, "Search for 'Toys': %s\n", yesNo(categories.Contains("Toys"), "FOUND", "NOT FOUND"))
	orderIDs := retail.NewContainer(retail.Equal[int])
	for _, id := range []int{1001, 1002, 1003} {
		orderIDs.Add(id)
	}
	fmt.Fprintf(w, "Order IDs size: %d\n", orderIDs.Size())
	fmt.Fprintf(w, "Search for order 1002: %s\n", yesNo(orderIDs.Contains(1002), "FOUND", "NOT FOUND"))

	fmt.Fprintln(w, "\n5. STOCK UPDATES")
	for _, item := range []retail.Item{laptop, book} {
		change, err := item.UpdateStock(-1)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s stock %d -> %d", item.Name(), change.Before, change.After)
		if change.HandlingFee.IsPositive() {
			fmt.Fprintf(w, " (handling fee $%s)", change.HandlingFee.StringFixed(2))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprint(w, render.ItemDetails(laptop))
	fmt.Fprint(w, render.ItemDetails(book))

	fmt.Fprintln(w, "\n6. DISCOUNTS (15%)")
	for _, item := range items {
		price, err := item.ApplyDiscount(0.15)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: $%s -> $%s\n", item.Name(), item.Price().StringFixed(2), price.StringFixed(2))
	}
	cartPrice, err := manager.ApplyCartDiscount(0.15)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Cart: $%s -> $%s\n", manager.Cart().Total().StringFixed(2), cartPrice.StringFixed(2))

	fmt.Fprintln(w, "\n7. ERROR HANDLING")
	report(w, "Add 50 laptops", manager.AddToCart(101, 50))
	report(w, "Add unknown product 999", manager.AddToCart(999, 1))
	_, err = laptop.ApplyDiscount(-0.1)
	report(w, "Laptop discount -0.1", err)
	_, err = phone.ApplyDiscount(1.5)
	report(w, "Phone discount 1.5", err)
	report(w, "Book price -10.00", book.SetPrice(decimal.NewFromInt(-10)))
	report(w, "Book stock -5", book.SetStock(-5))
	report(w, "Remove unknown product 999", manager.RemoveFromCart(999))

	fmt.Fprintln(w, "\n8. CHECKOUT")
	cartPrice, err = manager.ApplyCartDiscount(0.20)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Cart total after 20%% discount would be $%s\n", cartPrice.StringFixed(2))
	order, err := manager.Checkout()
	if err != nil {
		return err
	}
	fmt.Fprint(w, render.Order(order))
	fmt.Fprint(w, render.OrderHistory(manager.OrderHistory()))

	_, err = manager.Checkout()
	report(w, "Checkout empty cart", err)

	fmt.Fprintln(w, "\n9. COPY")
	bookCopy, err := retail.NewProduct(book.ID(), book.Name(), book.Price(), book.Stock())
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Copied product: %s\n", render.Item(bookCopy))
	return nil
}
