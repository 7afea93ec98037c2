package sales

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProduct() *Product {
	return &Product{
		ID:           "p-1",
		SKU:          "SKU-001",
		Name:         "Rice 5kg",
		SellingPrice: dec("10000"),
		BuyingPrice:  dec("8000"),
	}
}

func TestAddLineItem(t *testing.T) {
	tests := []struct {
		name     string
		product  *Product
		quantity string
		price    string
		discount string
		wantErr  error
	}{
		{"no product selected", nil, "1", "", "0", ErrMissingProduct},
		{"zero quantity", testProduct(), "0", "", "0", ErrInvalidQuantity},
		{"negative quantity", testProduct(), "-2", "", "0", ErrInvalidQuantity},
		{"fractional quantity", testProduct(), "1.5", "", "0", ErrInvalidQuantity},
		{"non-numeric quantity", testProduct(), "abc", "", "0", ErrInvalidQuantity},
		{"zero price override", testProduct(), "1", "0", "0", ErrInvalidPrice},
		{"negative price override", testProduct(), "1", "-10", "0", ErrInvalidPrice},
		{"non-numeric price", testProduct(), "1", "ten", "0", ErrInvalidPrice},
		{"negative discount", testProduct(), "1", "", "-1", ErrInvalidDiscount},
		{"discount above 100", testProduct(), "1", "", "100.01", ErrInvalidDiscount},
		{"non-numeric discount", testProduct(), "1", "", "x", ErrInvalidDiscount},
		{"valid defaults", testProduct(), "1", "", "", nil},
		{"valid full discount", testProduct(), "1", "", "100", nil},
		{"valid fractional discount", testProduct(), "3", "", "12.5", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := AddLineItem(tt.product, tt.quantity, tt.price, tt.discount, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddLineItem() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && len(items) != 0 {
				t.Errorf("failed add grew the list to %d items", len(items))
			}
			if tt.wantErr == nil && len(items) != 1 {
				t.Errorf("successful add produced %d items, want 1", len(items))
			}
		})
	}
}

func TestAddLineItem_Computation(t *testing.T) {
	// price 10,000 × qty 3 with 10% discount → 30,000 / 3,000 / 27,000
	items, err := AddLineItem(testProduct(), "3", "", "10", nil)
	if err != nil {
		t.Fatalf("AddLineItem() error = %v", err)
	}
	it := items[0]
	if !it.Subtotal.Equal(dec("30000")) {
		t.Errorf("Subtotal = %s, want 30000", it.Subtotal)
	}
	if !it.DiscountAmount.Equal(dec("3000")) {
		t.Errorf("DiscountAmount = %s, want 3000", it.DiscountAmount)
	}
	if !it.Total.Equal(dec("27000")) {
		t.Errorf("Total = %s, want 27000", it.Total)
	}
	if it.ProductName != "Rice 5kg" || it.SKU != "SKU-001" {
		t.Errorf("product snapshot not copied: %q / %q", it.ProductName, it.SKU)
	}
}

func TestAddLineItem_PriceDefaultAndOverride(t *testing.T) {
	items, err := AddLineItem(testProduct(), "2", "", "0", nil)
	if err != nil {
		t.Fatalf("AddLineItem() error = %v", err)
	}
	if !items[0].UnitPrice.Equal(dec("10000")) {
		t.Errorf("blank price should default to selling price, got %s", items[0].UnitPrice)
	}

	items, err = AddLineItem(testProduct(), "2", "9500", "0", items)
	if err != nil {
		t.Fatalf("AddLineItem() error = %v", err)
	}
	if !items[1].UnitPrice.Equal(dec("9500")) {
		t.Errorf("override price = %s, want 9500", items[1].UnitPrice)
	}
}

func TestAddLineItem_NoMergingAndInputUntouched(t *testing.T) {
	items, _ := AddLineItem(testProduct(), "1", "", "0", nil)

	// Same product again must produce a second distinct row.
	grown, err := AddLineItem(testProduct(), "2", "", "0", items)
	if err != nil {
		t.Fatalf("AddLineItem() error = %v", err)
	}
	if len(grown) != 2 {
		t.Fatalf("len = %d, want 2 distinct rows", len(grown))
	}
	if len(items) != 1 {
		t.Errorf("input list mutated, len = %d", len(items))
	}

	// A failing add must not change the working list either.
	same, err := AddLineItem(testProduct(), "0", "", "0", grown)
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(same) != 2 {
		t.Errorf("failed add changed list len to %d", len(same))
	}
}

func TestLineTotalInvariant(t *testing.T) {
	// total = unit_price × quantity × (1 − discount/100) within 2dp rounding
	cases := []struct {
		price, discount string
		qty             int
	}{
		{"10000", "10", 3},
		{"5000", "0", 2},
		{"0.10", "33.33", 3},
		{"19.99", "7.5", 7},
	}
	for _, tc := range cases {
		p := &Product{ID: "p", SKU: "s", Name: "n", SellingPrice: dec(tc.price)}
		it, err := NewLineItem(p, tc.qty, decimal.Zero, dec(tc.discount))
		if err != nil {
			t.Fatalf("NewLineItem(%v) error = %v", tc, err)
		}
		if !it.Total.Equal(it.Subtotal.Sub(it.DiscountAmount)) {
			t.Errorf("total %s != subtotal %s - discount %s", it.Total, it.Subtotal, it.DiscountAmount)
		}
		wantSubtotal := dec(tc.price).Mul(decimal.NewFromInt(int64(tc.qty))).Round(2)
		if !it.Subtotal.Equal(wantSubtotal) {
			t.Errorf("subtotal = %s, want %s", it.Subtotal, wantSubtotal)
		}
	}
}

func TestRemoveLineItem(t *testing.T) {
	items, _ := AddLineItem(testProduct(), "1", "", "0", nil)
	items, _ = AddLineItem(testProduct(), "2", "", "0", items)
	items, _ = AddLineItem(testProduct(), "3", "", "0", items)

	got := RemoveLineItem(1, items)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Quantity != 1 || got[1].Quantity != 3 {
		t.Errorf("wrong rows survived removal: %d, %d", got[0].Quantity, got[1].Quantity)
	}

	if got := RemoveLineItem(-1, items); len(got) != 3 {
		t.Errorf("negative index should be a no-op, len = %d", len(got))
	}
	if got := RemoveLineItem(3, items); len(got) != 3 {
		t.Errorf("out-of-range index should be a no-op, len = %d", len(got))
	}
}
