package domain

import "time"

// Product is a menu item in the catalog.
type Product struct {
	ID          string    `json:"_id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Price       float64   `json:"price" db:"price"`
	Description string    `json:"description,omitempty" db:"description"`
	Category    string    `json:"category" db:"category"`
	Ingredients []string  `json:"ingredients" db:"ingredients"`
	Image       string    `json:"image,omitempty" db:"image"`
	Video       string    `json:"video,omitempty" db:"video"`
	Vegetarian  bool      `json:"vegetarian" db:"vegetarian"`
	DateAdded   time.Time `json:"dateAdded" db:"date_added"`
}

// ProductPatch carries the fields of a partial product update.
type ProductPatch struct {
	Name        *string
	Price       *float64
	Description *string
	Category    *string
	Ingredients *[]string
	Image       *string
	Video       *string
	Vegetarian  *bool
	DateAdded   *time.Time
}
