// Package seed loads the reference airports and the initial flight catalog
// into empty stores.
package seed

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/pkg/logger"
)

type Route struct {
	From string
	To   string
}

// Data is what Setup writes. Callers usually start from DefaultData.
type Data struct {
	Airports    []domain.Airport
	Routes      []Route
	FlightCount int
	FirstNumber int
}

func DefaultData() Data {
	return Data{
		Airports: []domain.Airport{
			{IATACode: "DEL", City: "Delhi", Name: "Indira Gandhi International Airport"},
			{IATACode: "BOM", City: "Mumbai", Name: "Chhatrapati Shivaji Maharaj International Airport"},
			{IATACode: "BLR", City: "Bengaluru", Name: "Kempegowda International Airport"},
			{IATACode: "MAA", City: "Chennai", Name: "Chennai International Airport"},
			{IATACode: "HYD", City: "Hyderabad", Name: "Rajiv Gandhi International Airport"},
			{IATACode: "CCU", City: "Kolkata", Name: "Netaji Subhas Chandra Bose International Airport"},
			{IATACode: "AMD", City: "Ahmedabad", Name: "Sardar Vallabhbhai Patel International Airport"},
			{IATACode: "PNQ", City: "Pune", Name: "Pune International Airport"},
			{IATACode: "GOI", City: "Goa", Name: "Goa International Airport"},
			{IATACode: "JAI", City: "Jaipur", Name: "Jaipur International Airport"},
			{IATACode: "LKO", City: "Lucknow", Name: "Chaudhary Charan Singh International Airport"},
			{IATACode: "PAT", City: "Patna", Name: "Jay Prakash Narayan International Airport"},
			{IATACode: "COK", City: "Kochi", Name: "Cochin International Airport"},
			{IATACode: "TRV", City: "Thiruvananthapuram", Name: "Trivandrum International Airport"},
			{IATACode: "BBI", City: "Bhubaneswar", Name: "Biju Patnaik International Airport"},
		},
		Routes: []Route{
			{"DEL", "BOM"}, {"BOM", "DEL"},
			{"DEL", "BLR"}, {"BLR", "DEL"},
			{"DEL", "MAA"}, {"MAA", "DEL"},
			{"DEL", "HYD"}, {"HYD", "DEL"},
			{"DEL", "CCU"}, {"CCU", "DEL"},
			{"BOM", "BLR"}, {"BLR", "BOM"},
			{"BOM", "MAA"}, {"MAA", "BOM"},
			{"BOM", "HYD"}, {"HYD", "BOM"},
			{"BLR", "MAA"}, {"MAA", "BLR"},
			{"DEL", "AMD"}, {"AMD", "DEL"},
		},
		FlightCount: 100,
		FirstNumber: 1000,
	}
}

type Seeder struct {
	airports  repository.AirportRepository
	flights   repository.FlightRepository
	generator *flights.Generator
	data      Data
	log       logger.Logger
}

func NewSeeder(airports repository.AirportRepository, flightRepo repository.FlightRepository, generator *flights.Generator, data Data, log logger.Logger) *Seeder {
	return &Seeder{airports: airports, flights: flightRepo, generator: generator, data: data, log: log}
}

// Setup fills each collection only when it is empty, so it is safe to run
// on every start.
func (s *Seeder) Setup(ctx context.Context) error {
	n, err := s.airports.Count(ctx)
	if err != nil {
		return fmt.Errorf("count airports: %w", err)
	}
	if n == 0 && len(s.data.Airports) > 0 {
		if err := s.airports.InsertMany(ctx, s.data.Airports); err != nil {
			return fmt.Errorf("seed airports: %w", err)
		}
		s.log.Info("seeded airports", "count", len(s.data.Airports))
	}

	n, err = s.flights.Count(ctx)
	if err != nil {
		return fmt.Errorf("count flights: %w", err)
	}
	if n == 0 && len(s.data.Routes) > 0 && s.data.FlightCount > 0 {
		catalog := s.Flights()
		if err := s.flights.InsertMany(ctx, catalog); err != nil {
			return fmt.Errorf("seed flights: %w", err)
		}
		s.log.Info("seeded flights", "count", len(catalog))
	}
	return nil
}

// Flights spreads FlightCount offers round-robin over the routes.
func (s *Seeder) Flights() []domain.Flight {
	out := make([]domain.Flight, 0, s.data.FlightCount)
	for i := 0; i < s.data.FlightCount; i++ {
		r := s.data.Routes[i%len(s.data.Routes)]
		out = append(out, s.generator.Generate(r.From, r.To, s.data.FirstNumber+i, 1)...)
	}
	return out
}
