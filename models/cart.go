package models

import "time"

type Cart struct {
	ID        string     `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"uniqueIndex;not null" json:"user_id"` // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	CartID    string `gorm:"index;uniqueIndex:idx_cart_line,priority:1" json:"-"`
	ProductID string `gorm:"uniqueIndex:idx_cart_line,priority:2" json:"product_id"`
	Size      string `gorm:"uniqueIndex:idx_cart_line,priority:3" json:"size"`
	Color     string `gorm:"uniqueIndex:idx_cart_line,priority:4" json:"color"`
	Quantity  int    `json:"quantity"`
}

// SameLine reports whether two items refer to the same cart line,
// i.e. the same (product, size, color) tuple.
func (i CartItem) SameLine(other CartItem) bool {
	return i.ProductID == other.ProductID && i.Size == other.Size && i.Color == other.Color
}

// MergeLine adds a line to the item list. A line matching an existing
// (product, size, color) tuple increments that line's quantity instead of
// appending a duplicate.
func MergeLine(items []CartItem, line CartItem) []CartItem {
	for idx := range items {
		if items[idx].SameLine(line) {
			items[idx].Quantity += line.Quantity
			return items
		}
	}
	return append(items, line)
}

// SetLineQuantity overwrites the quantity of the matching line. No match is
// a no-op: callers must not assume the line existed.
func SetLineQuantity(items []CartItem, line CartItem) []CartItem {
	for idx := range items {
		if items[idx].SameLine(line) {
			items[idx].Quantity = line.Quantity
			break
		}
	}
	return items
}

// RemoveLine filters out the matching line. Removing a line that was never
// added leaves the list unchanged.
func RemoveLine(items []CartItem, productID, size, color string) []CartItem {
	match := CartItem{ProductID: productID, Size: size, Color: color}
	kept := items[:0]
	for _, it := range items {
		if !it.SameLine(match) {
			kept = append(kept, it)
		}
	}
	return kept
}
