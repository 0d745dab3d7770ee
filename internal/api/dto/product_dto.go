package dto

import "time"

// ProductRequest is used for both create and partial update. Required-field
// checks for create happen in the service.
type ProductRequest struct {
	Name        *string    `json:"name"`
	Price       *float64   `json:"price"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Ingredients *[]string  `json:"ingredients"`
	Image       *string    `json:"image"`
	Video       *string    `json:"video"`
	Vegetarian  *bool      `json:"vegetarian"`
	DateAdded   *time.Time `json:"dateAdded"`
}
