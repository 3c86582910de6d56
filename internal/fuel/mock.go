package fuel

import (
	"time"

	"github.com/TejasJagadale/backendofficial/internal/domain"
)

// TargetCities is the fixed list the ingestion job covers.
var TargetCities = []string{
	"Chennai",
	"Coimbatore",
	"Madurai",
	"Tiruchirappalli",
	"Salem",
}

const State = "Tamil Nadu"

// MockPrices are the static fallbacks used when the provider fails for a city
// and when no stored snapshot exists for the read paths.
var MockPrices = []domain.CityPrice{
	{City: "Chennai", Petrol: "102.34", Diesel: "94.56", CNG: "72.50"},
	{City: "Coimbatore", Petrol: "102.89", Diesel: "95.02", CNG: "73.10"},
	{City: "Madurai", Petrol: "103.12", Diesel: "95.31"},
	{City: "Tiruchirappalli", Petrol: "102.97", Diesel: "95.18"},
	{City: "Salem", Petrol: "103.05", Diesel: "95.24"},
}

func mockSnapshot(mock []domain.CityPrice, now time.Time) []domain.CityPrice {
	out := make([]domain.CityPrice, len(mock))
	copy(out, mock)
	for i := range out {
		out[i].LastUpdated = now
	}
	return out
}
