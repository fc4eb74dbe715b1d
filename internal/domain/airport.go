package domain

type Airport struct {
	IATACode string `json:"iataCode" bson:"iataCode"`
	City     string `json:"city" bson:"city"`
	Name     string `json:"name" bson:"name"`
}

// Suggestion is an autocomplete entry. Comparable, so it can key a set.
type Suggestion struct {
	PlaceID   string `json:"placeId"`
	PlaceName string `json:"placeName"`
	IATACode  string `json:"iataCode"`
}

func (a Airport) Suggestion() Suggestion {
	return Suggestion{PlaceID: a.IATACode, PlaceName: a.City, IATACode: a.IATACode}
}
