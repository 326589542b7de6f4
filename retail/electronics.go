package retail

import "github.com/shopspring/decimal"

var (
	// ElectronicsBonusRate is added to every discount on electronics.
	ElectronicsBonusRate = decimal.RequireFromString("0.05")
	// HandlingFee is reported whenever electronics stock goes down.
	HandlingFee = decimal.RequireFromString("5.00")
)

// Electronics is a Product with a warranty and a brand.
type Electronics struct {
	Product
	warrantyMonths int
	brand          string
}

func NewElectronics(id int, name string, price decimal.Decimal, stock, warrantyMonths int, brand string) (*Electronics, error) {
	if err := validateItemFields(id, price, stock); err != nil {
		return nil, err
	}
	if warrantyMonths < 0 {
		return nil, validationf("warranty cannot be negative, got %d", warrantyMonths)
	}
	return &Electronics{
		Product:        Product{id: id, name: name, price: price, stock: stock},
		warrantyMonths: warrantyMonths,
		brand:          brand,
	}, nil
}

func (e *Electronics) Kind() ItemKind {
	return ItemElectronics
}

func (e *Electronics) WarrantyMonths() int {
	return e.warrantyMonths
}

func (e *Electronics) Brand() string {
	return e.brand
}

// UpdateStock applies the same arithmetic as Product and reports the handling
// fee on reductions.
func (e *Electronics) UpdateStock(delta int) (StockChange, error) {
	change, err := e.Product.UpdateStock(delta)
	if err != nil {
		return change, err
	}
	if delta < 0 {
		change.HandlingFee = HandlingFee
	}
	return change, nil
}

// ApplyDiscount adds ElectronicsBonusRate to rate, capped at 1.0.
func (e *Electronics) ApplyDiscount(rate float64) (decimal.Decimal, error) {
	price := e.Price()
	r, err := discountRate(rate)
	if err != nil {
		return price, err
	}
	effective := decimal.Min(r.Add(ElectronicsBonusRate), one)
	return discounted(price, effective), nil
}
