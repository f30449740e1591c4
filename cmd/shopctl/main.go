// shopctl exercises a running shop service: `shopctl seed` loads a
// starter catalog and `shopctl smoke` places an order and verifies it
// comes back from the list endpoint.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"

	"github.com/Jake2PointZero/HomesteadingwithTiffany/internal/models"
	"github.com/Jake2PointZero/HomesteadingwithTiffany/internal/patterns"
)

func main() {
	addr := flag.String("addr", "http://localhost:5000", "base URL of the shop service")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: shopctl [-addr URL] seed|smoke")
		os.Exit(2)
	}

	client := resty.New().
		SetBaseURL(*addr).
		SetTimeout(patterns.DefaultTimeout).
		SetHeader("Content-Type", "application/json")

	var err error
	switch flag.Arg(0) {
	case "seed":
		err = seed(client)
	case "smoke":
		err = smoke(client)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", flag.Arg(0))
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func seed(client *resty.Client) error {
	starter := []models.Product{
		{Name: "Blackberry Jam", Description: "Small-batch jam from the back field", Price: 8.5, Category: "pantry", Image: "/images/jam.jpg"},
		{Name: "Goat Milk Soap", Description: "Unscented bar soap", Price: 6, Category: "bath", Image: "/images/soap.jpg"},
		{Name: "Beeswax Candle", Description: "Hand-poured taper pair", Price: 14, Category: "home", Image: "/images/candle.jpg"},
	}

	for _, p := range starter {
		resp, err := client.R().SetBody(p).Post("/api/products")
		if err != nil {
			return fmt.Errorf("create %q: %w", p.Name, err)
		}
		if resp.StatusCode() != http.StatusOK {
			return fmt.Errorf("create %q: status %d: %s", p.Name, resp.StatusCode(), resp.String())
		}
		var created models.Product
		if err := json.Unmarshal(resp.Body(), &created); err != nil {
			return fmt.Errorf("create %q: parse response: %w", p.Name, err)
		}
		log.WithFields(log.Fields{
			"product_id": created.ID,
			"name":       created.Name,
		}).Info("Seeded product")
	}
	return nil
}

func smoke(client *resty.Client) error {
	order := models.CreateOrderRequest{
		CustomerName:   "Smoke Test",
		CustomerEmail:  "smoke@example.com",
		CustomerStreet: "1 Test Ln",
		CustomerCity:   "Boone",
		CustomerState:  "NC",
		CustomerZip:    "28607",
		Items: []models.OrderItem{
			{Name: "Blackberry Jam", Quantity: 2, Price: 8.5},
		},
	}

	resp, err := client.R().SetBody(order).Post("/api/orders")
	if err != nil {
		return fmt.Errorf("place order: %w", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return fmt.Errorf("place order: status %d: %s", resp.StatusCode(), resp.String())
	}
	var ack models.CreateOrderResponse
	if err := json.Unmarshal(resp.Body(), &ack); err != nil {
		return fmt.Errorf("place order: parse response: %w", err)
	}
	log.WithField("order_id", ack.OrderID).Info("Order accepted")

	resp, err = client.R().Get("/api/orders")
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	var orders []models.Order
	if err := json.Unmarshal(resp.Body(), &orders); err != nil {
		return fmt.Errorf("list orders: parse response: %w", err)
	}
	for _, o := range orders {
		if o.ID == ack.OrderID {
			log.WithFields(log.Fields{
				"order_id": o.ID,
				"total":    o.Total,
			}).Info("Smoke test passed")
			return nil
		}
	}
	return fmt.Errorf("order %s not found in list", ack.OrderID)
}
