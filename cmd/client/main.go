package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/Domenick1991/flightbooking/internal/client"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/ticket"
)

const usage = `usage: client [-api URL] <command> [flags]

commands:
  suggest  -q QUERY
  search   -from CODE -to CODE [-time morning|afternoon|evening]
  book     -flight ID [-wallet AMOUNT] [-out DIR]
  bookings
  ticket   -booking ID [-out DIR]
`

func main() {
	apiURL := flag.String("api", envOr("FLIGHTBOOKING_API", "http://localhost:3001"), "API base URL")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	c := client.New(*apiURL, *timeout)
	if err := run(context.Background(), c, flag.Arg(0), flag.Args()[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client, cmd string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	prices := ticket.NewRenderer()

	switch cmd {
	case "suggest":
		q := fs.String("q", "", "city, code or airport name")
		if err := fs.Parse(args); err != nil {
			return err
		}
		suggestions, err := c.Suggest(ctx, *q)
		if err != nil {
			return err
		}
		for _, s := range suggestions {
			fmt.Fprintf(out, "%s\t%s\n", s.IATACode, s.PlaceName)
		}

	case "search":
		from := fs.String("from", "", "origin IATA code")
		to := fs.String("to", "", "destination IATA code")
		tod := fs.String("time", "", "morning, afternoon or evening")
		if err := fs.Parse(args); err != nil {
			return err
		}
		found, err := c.Search(ctx, *from, *to, domain.TimeOfDay(*tod))
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tFLIGHT\tAIRLINE\tROUTE\tTIME\tPRICE")
		for _, f := range found {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s-%s\t%s\t%s\n", f.ID, f.FlightNumber, f.Airline, f.From, f.To, f.Time, prices.FormatPrice(f.Price))
		}
		return tw.Flush()

	case "book":
		flightID := fs.String("flight", "", "flight id")
		wallet := fs.Int64("wallet", 50000, "wallet balance")
		dir := fs.String("out", ".", "directory for the ticket")
		if err := fs.Parse(args); err != nil {
			return err
		}
		b, left, err := c.BookWithWallet(ctx, *flightID, *wallet)
		if err != nil {
			if errors.Is(err, client.ErrInsufficientFunds) {
				return fmt.Errorf("cannot book %s: %w", *flightID, err)
			}
			return err
		}
		fmt.Fprintf(out, "booked %s on %s for %s, wallet left %s\n", b.ID, b.Flight.FlightNumber, prices.FormatPrice(b.Price), prices.FormatPrice(left))
		return saveTicket(ctx, c, b.ID, *dir, out)

	case "bookings":
		if err := fs.Parse(args); err != nil {
			return err
		}
		bookings, err := c.Bookings(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "BOOKING\tFLIGHT\tROUTE\tPRICE\tBOOKED AT")
		for _, b := range bookings {
			fmt.Fprintf(tw, "%s\t%s\t%s-%s\t%s\t%s\n", b.ID, b.Flight.FlightNumber, b.Flight.From, b.Flight.To, prices.FormatPrice(b.Price), b.CreatedAt.Local().Format(time.DateTime))
		}
		return tw.Flush()

	case "ticket":
		id := fs.String("booking", "", "booking id")
		dir := fs.String("out", ".", "directory for the ticket")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return saveTicket(ctx, c, *id, *dir, out)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func saveTicket(ctx context.Context, c *client.Client, bookingID, dir string, out io.Writer) error {
	pdf, err := c.Ticket(ctx, bookingID)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, ticket.Filename(bookingID))
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return fmt.Errorf("save ticket: %w", err)
	}
	fmt.Fprintln(out, "ticket saved to", path)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
