package model

import "time"

type Product struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=200"`
	Category    string    `json:"category" bson:"category" validate:"required,min=2,max=100"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=2000"`
	Price       float64   `json:"price" bson:"price" validate:"required,gt=0"`
	Discount    float64   `json:"discount,omitempty" bson:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty" validate:"omitempty,url"`
	Rating      float64   `json:"rating,omitempty" bson:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Trending    bool      `json:"trending,omitempty" bson:"trending,omitempty"`
	Promoted    bool      `json:"promoted,omitempty" bson:"promoted,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty" bson:"created_at,omitempty" validate:"omitempty"`
}

// ProductUpdate carries the partial field set for PUT /products/:id. Pointer
// fields distinguish "not sent" from zero values.
type ProductUpdate struct {
	Name        string   `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Category    string   `json:"category,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Discount    *float64 `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	Image       *string  `json:"image,omitempty" validate:"omitempty,url"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Trending    *bool    `json:"trending,omitempty"`
	Promoted    *bool    `json:"promoted,omitempty"`
}
