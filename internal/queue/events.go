package queue

import "go.mongodb.org/mongo-driver/bson/primitive"

// Routing keys on the topic exchange.
const (
	KeyUserRegistered         = "user.registered"
	KeyUserLoggedIn           = "user.loggedin"
	KeyPasswordResetRequested = "user.password_reset_requested"
	KeyPasswordChanged        = "user.password_changed"
	KeyFuelPricesUpdated      = "fuel.prices_updated"
)

type UserRegistered struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Name   string             `json:"name"`
}

type UserLoggedIn struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
}

type PasswordResetRequested struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
}

type PasswordChanged struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
}

type FuelPricesUpdated struct {
	Date   string `json:"date"`
	State  string `json:"state"`
	Cities int    `json:"cities"`
}
