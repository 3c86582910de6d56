package domain

import "time"

// CityPrice is one city's snapshot inside a FuelPrice document. Prices are kept
// as strings: the upstream provider mixes numeric and formatted values and we
// never do arithmetic on them.
type CityPrice struct {
	City        string    `bson:"city"          json:"city"`
	Petrol      string    `bson:"petrol"        json:"petrol"`
	Diesel      string    `bson:"diesel"        json:"diesel"`
	CNG         string    `bson:"cng,omitempty" json:"cng,omitempty"`
	LastUpdated time.Time `bson:"last_updated"  json:"lastUpdated"`
}

// FuelPrice holds all cities collected for one run date. One document per
// (date, state); repeated runs replace the city list.
type FuelPrice struct {
	Date   string      `bson:"date"   json:"date"` // YYYY-MM-DD
	State  string      `bson:"state"  json:"state"`
	Cities []CityPrice `bson:"cities" json:"cities"`
}
