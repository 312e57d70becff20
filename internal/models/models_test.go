package models

import (
	"math"
	"testing"
	"time"
)

func TestStockStatusFor(t *testing.T) {
	tests := []struct {
		quantity int
		want     string
	}{
		{0, StatusOutOfStock},
		{1, StatusLowStock},
		{3, StatusLowStock},
		{5, StatusLowStock},
		{6, StatusInStock},
		{100, StatusInStock},
	}

	for _, tt := range tests {
		if got := StockStatusFor(tt.quantity); got != tt.want {
			t.Errorf("StockStatusFor(%d) = %q, want %q", tt.quantity, got, tt.want)
		}
	}
}

func TestRecalculate(t *testing.T) {
	item := InventoryItem{
		ItemName: "Gaming Laptop",
		UnitCost: 45000.00,
		SRPPrice: 55000.00,
		Quantity: 5,
	}
	item.Recalculate()

	if item.TotalValue != 225000.00 {
		t.Errorf("TotalValue = %v, want 225000.00", item.TotalValue)
	}
	if math.Abs(item.ProfitMargin-22.22) > 0.01 {
		t.Errorf("ProfitMargin = %v, want ~22.22", item.ProfitMargin)
	}
	if item.StockStatus != StatusLowStock {
		t.Errorf("StockStatus = %q, want %q", item.StockStatus, StatusLowStock)
	}
}

func TestRecalculateZeroCost(t *testing.T) {
	item := InventoryItem{SRPPrice: 100, Quantity: 10}
	item.Recalculate()

	if item.ProfitMargin != 0 {
		t.Errorf("ProfitMargin with zero cost = %v, want 0", item.ProfitMargin)
	}
	if item.TotalValue != 0 {
		t.Errorf("TotalValue with zero cost = %v, want 0", item.TotalValue)
	}
}

func TestBeforeSaveNormalizesSerial(t *testing.T) {
	empty := "   "
	item := InventoryItem{ItemName: "Mouse", SerialNumber: &empty}

	if err := item.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave returned error: %v", err)
	}
	if item.SerialNumber != nil {
		t.Errorf("blank serial number should normalize to nil, got %q", *item.SerialNumber)
	}

	serial := "SN-001"
	item = InventoryItem{ItemName: "Mouse", SerialNumber: &serial}
	if err := item.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave returned error: %v", err)
	}
	if item.SerialNumber == nil || *item.SerialNumber != "SN-001" {
		t.Errorf("real serial number should survive BeforeSave")
	}
}

func TestBeforeSaveRejectsNegativeQuantity(t *testing.T) {
	item := InventoryItem{ItemName: "Mouse", Quantity: -1}
	if err := item.BeforeSave(nil); err == nil {
		t.Error("expected error for negative quantity, got nil")
	}
}

func TestComputeDurationHours(t *testing.T) {
	in := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	open := TimeLog{TimeIn: in}
	if got := open.ComputeDurationHours(); got != 0 {
		t.Errorf("open session duration = %v, want 0", got)
	}

	out := in.Add(8*time.Hour + 30*time.Minute)
	closed := TimeLog{TimeIn: in, TimeOut: &out}
	if got := closed.ComputeDurationHours(); got != 8.5 {
		t.Errorf("duration = %v, want 8.5", got)
	}

	// Rounds to 2 decimals
	out = in.Add(7*time.Hour + 20*time.Minute)
	closed = TimeLog{TimeIn: in, TimeOut: &out}
	if got := closed.ComputeDurationHours(); got != 7.33 {
		t.Errorf("duration = %v, want 7.33", got)
	}
}
