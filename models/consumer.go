package models

import "time"

// Consumer is the profile of a requester allowed to hold and book slots.
type Consumer struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"-"`
	Name      string    `bson:"name" json:"name"`
	Phone     string    `bson:"phone" json:"phone"`
	Age       int       `bson:"age,omitempty" json:"age,omitempty"`
	Gender    string    `bson:"gender,omitempty" json:"gender,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProfileComplete reports whether the consumer may book.
func (c Consumer) ProfileComplete() bool {
	return c.Name != "" && c.Phone != ""
}
