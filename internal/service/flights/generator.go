package flights

import (
	"fmt"
	"math/rand/v2"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/google/uuid"
)

var (
	airlines = []string{"IndiGo", "SpiceJet", "AirIndia"}
	times    = []domain.TimeOfDay{domain.TimeMorning, domain.TimeAfternoon, domain.TimeEvening}
)

// Rand is the random source behind generated offers.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a seeded PCG source.
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generator fills sparse routes with made-up offers.
type Generator struct {
	rnd      Rand
	priceMin int64
	priceMax int64
}

func NewGenerator(rnd Rand, priceMin, priceMax int64) *Generator {
	if priceMax < priceMin {
		priceMin, priceMax = priceMax, priceMin
	}
	return &Generator{rnd: rnd, priceMin: priceMin, priceMax: priceMax}
}

// Generate returns count flights on from->to numbered from FL<base>.
func (g *Generator) Generate(from, to string, base, count int) []domain.Flight {
	flights := make([]domain.Flight, 0, count)
	for i := 0; i < count; i++ {
		price := g.Price()
		flights = append(flights, domain.Flight{
			ID:            uuid.NewString(),
			FlightNumber:  fmt.Sprintf("FL%d", base+i),
			Airline:       airlines[g.rnd.IntN(len(airlines))],
			From:          from,
			To:            to,
			Price:         price,
			OriginalPrice: price,
			Time:          times[g.rnd.IntN(len(times))],
		})
	}
	return flights
}

// Price draws a price in [priceMin, priceMax].
func (g *Generator) Price() int64 {
	return g.priceMin + int64(g.rnd.IntN(int(g.priceMax-g.priceMin+1)))
}
