package domain

type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
)

// Flight is a priced offer on a route. OriginalPrice is fixed at creation;
// Price is the last charged price and only moves between OriginalPrice and
// its surcharged value.
type Flight struct {
	ID            string    `json:"id" bson:"_id"`
	FlightNumber  string    `json:"flightNumber" bson:"flightNumber"`
	Airline       string    `json:"airline" bson:"airline"`
	From          string    `json:"from" bson:"from"`
	To            string    `json:"to" bson:"to"`
	Price         int64     `json:"price" bson:"price"`
	OriginalPrice int64     `json:"originalPrice" bson:"originalPrice"`
	Time          TimeOfDay `json:"time" bson:"time"`
}
