package model

import "time"

// AppointmentOption is a bookable service template with its full slot list.
// Availability for a date is computed against the bookings collection, the
// stored slot list is never mutated.
type AppointmentOption struct {
	ID    string   `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name  string   `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Slots []string `json:"slots" bson:"slots" validate:"required,min=1,max=100,dive,required"`
}

type Booking struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	AppointmentDate string    `json:"appointment_date" bson:"appointment_date" validate:"required,min=4,max=40"`
	Service         string    `json:"service" bson:"service" validate:"required,min=2,max=100"`
	Email           string    `json:"email" bson:"email" validate:"required,email"`
	Slot            string    `json:"slot" bson:"slot" validate:"required,min=2,max=40"`
	CreatedAt       time.Time `json:"created_at,omitempty" bson:"created_at,omitempty" validate:"omitempty"`
}
