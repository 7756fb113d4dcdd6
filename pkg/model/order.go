package model

import "time"

// OrderLine is one product-level entry inside an order. Lines are addressed
// by ProductID for removal and status patches; LineID is assigned at create
// time and never reused.
type OrderLine struct {
	LineID    string  `json:"line_id,omitempty" bson:"line_id,omitempty"`
	ProductID string  `json:"product_id" bson:"product_id" validate:"required,mongodb"`
	Name      string  `json:"name" bson:"name" validate:"required,min=2,max=200"`
	Price     float64 `json:"price" bson:"price" validate:"required,gt=0"`
	Quantity  int     `json:"quantity" bson:"quantity" validate:"required,min=1,max=1000"`
	Status    string  `json:"status,omitempty" bson:"status,omitempty"`
}

type Order struct {
	ID        string      `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Email     string      `json:"email" bson:"email" validate:"required,email"`
	OrderInfo []OrderLine `json:"orderInfo" bson:"orderInfo" validate:"required,min=1,max=100,dive"`
	CreatedAt time.Time   `json:"created_at,omitempty" bson:"created_at,omitempty" validate:"omitempty"`
}
