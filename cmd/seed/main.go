// Package main generates the synthetic catalog data files consumed by
// the API server at startup.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/forkcast/forkcast/internal/domain/catalog"
)

var platforms = []string{"UberEats", "DoorDash", "Grubhub"}

var restaurants = []catalog.Restaurant{
	{ID: "r1", Name: "Green Bowl Co.", Neighborhood: "Downtown"},
	{ID: "r2", Name: "Protein House", Neighborhood: "Midtown"},
	{ID: "r3", Name: "Burger Barn", Neighborhood: "Uptown"},
	{ID: "r4", Name: "Sushi Express", Neighborhood: "Downtown"},
	{ID: "r5", Name: "Taco Fiesta", Neighborhood: "Westside"},
	{ID: "r6", Name: "Vegan Delights", Neighborhood: "Eastside"},
	{ID: "r7", Name: "Pizza Planet", Neighborhood: "Midtown"},
	{ID: "r8", Name: "Salad Station", Neighborhood: "Uptown"},
}

// The menu is fixed rather than faked: tags drive the whole matching
// and personalization pipeline, so they have to stay meaningful.
var menuItems = []catalog.MenuItem{
	{ItemID: "m101", RestaurantID: "r1", Name: "Superfood Bowl", Tags: []string{"veg"}, CaloriesEst: 450, ProteinEst: 15},
	{ItemID: "m102", RestaurantID: "r1", Name: "Quinoa Salad", Tags: []string{"veg"}, CaloriesEst: 350, ProteinEst: 12},
	{ItemID: "m103", RestaurantID: "r1", Name: "Chicken Protein Bowl", Tags: []string{"high_protein"}, CaloriesEst: 600, ProteinEst: 45},
	{ItemID: "m104", RestaurantID: "r1", Name: "Tofu Power Bowl", Tags: []string{"veg", "high_protein"}, CaloriesEst: 500, ProteinEst: 25},
	{ItemID: "m105", RestaurantID: "r1", Name: "Acai Bowl", Tags: []string{"veg", "no_egg"}, CaloriesEst: 300, ProteinEst: 5},
	{ItemID: "m201", RestaurantID: "r2", Name: "Steak & Eggs", Tags: []string{"high_protein"}, CaloriesEst: 700, ProteinEst: 55},
	{ItemID: "m202", RestaurantID: "r2", Name: "Grilled Chicken Breast", Tags: []string{"high_protein", "no_egg"}, CaloriesEst: 400, ProteinEst: 40},
	{ItemID: "m203", RestaurantID: "r2", Name: "Salmon Filet", Tags: []string{"high_protein", "no_egg"}, CaloriesEst: 500, ProteinEst: 35},
	{ItemID: "m204", RestaurantID: "r2", Name: "Turkey Meatballs", Tags: []string{"high_protein"}, CaloriesEst: 450, ProteinEst: 30},
	{ItemID: "m205", RestaurantID: "r2", Name: "Egg White Omelette", Tags: []string{"veg", "high_protein"}, CaloriesEst: 250, ProteinEst: 20},
	{ItemID: "m301", RestaurantID: "r3", Name: "Classic Cheeseburger", Tags: []string{}, CaloriesEst: 800, ProteinEst: 30},
	{ItemID: "m302", RestaurantID: "r3", Name: "Double Veggie Burger", Tags: []string{"veg"}, CaloriesEst: 600, ProteinEst: 20},
	{ItemID: "m303", RestaurantID: "r3", Name: "Bacon Double Smash", Tags: []string{}, CaloriesEst: 1000, ProteinEst: 45},
	{ItemID: "m304", RestaurantID: "r3", Name: "Crispy Chicken Sandwich", Tags: []string{}, CaloriesEst: 750, ProteinEst: 25},
	{ItemID: "m305", RestaurantID: "r3", Name: "Black Bean Burger", Tags: []string{"veg", "no_egg"}, CaloriesEst: 550, ProteinEst: 18},
	{ItemID: "m401", RestaurantID: "r4", Name: "Spicy Tuna Roll", Tags: []string{"no_egg"}, CaloriesEst: 400, ProteinEst: 20},
	{ItemID: "m402", RestaurantID: "r4", Name: "Salmon Avocado Roll", Tags: []string{"no_egg"}, CaloriesEst: 450, ProteinEst: 22},
	{ItemID: "m403", RestaurantID: "r4", Name: "Veggie Roll", Tags: []string{"veg", "no_egg"}, CaloriesEst: 300, ProteinEst: 6},
	{ItemID: "m404", RestaurantID: "r4", Name: "Sashimi Combo", Tags: []string{"high_protein", "no_egg"}, CaloriesEst: 350, ProteinEst: 40},
	{ItemID: "m405", RestaurantID: "r4", Name: "Edamame", Tags: []string{"veg", "no_egg"}, CaloriesEst: 150, ProteinEst: 12},
	{ItemID: "m501", RestaurantID: "r5", Name: "Chicken Tacos (3)", Tags: []string{"no_egg"}, CaloriesEst: 600, ProteinEst: 35},
	{ItemID: "m502", RestaurantID: "r5", Name: "Beef Burrito", Tags: []string{}, CaloriesEst: 850, ProteinEst: 30},
	{ItemID: "m503", RestaurantID: "r5", Name: "Veggie Fajitas", Tags: []string{"veg", "no_egg"}, CaloriesEst: 500, ProteinEst: 15},
	{ItemID: "m504", RestaurantID: "r5", Name: "Shrimp Tacos (3)", Tags: []string{"no_egg"}, CaloriesEst: 550, ProteinEst: 25},
	{ItemID: "m505", RestaurantID: "r5", Name: "Bean & Cheese Quesadilla", Tags: []string{"veg", "no_egg"}, CaloriesEst: 650, ProteinEst: 20},
	{ItemID: "m601", RestaurantID: "r6", Name: "Beyond Burger Classic", Tags: []string{"veg", "no_egg"}, CaloriesEst: 600, ProteinEst: 20},
	{ItemID: "m602", RestaurantID: "r6", Name: "Vegan Mac & Cheese", Tags: []string{"veg", "no_egg"}, CaloriesEst: 500, ProteinEst: 10},
	{ItemID: "m603", RestaurantID: "r6", Name: "Tempeh Wrap", Tags: []string{"veg", "high_protein", "no_egg"}, CaloriesEst: 450, ProteinEst: 25},
	{ItemID: "m604", RestaurantID: "r6", Name: "Lentil Soup", Tags: []string{"veg", "no_egg"}, CaloriesEst: 300, ProteinEst: 15},
	{ItemID: "m605", RestaurantID: "r6", Name: "Chickpea Salad", Tags: []string{"veg", "no_egg"}, CaloriesEst: 400, ProteinEst: 12},
	{ItemID: "m701", RestaurantID: "r7", Name: "Margherita Pizza", Tags: []string{"veg"}, CaloriesEst: 900, ProteinEst: 35},
	{ItemID: "m702", RestaurantID: "r7", Name: "Pepperoni Pizza", Tags: []string{}, CaloriesEst: 1000, ProteinEst: 40},
	{ItemID: "m703", RestaurantID: "r7", Name: "Meat Lovers Pizza", Tags: []string{"high_protein"}, CaloriesEst: 1200, ProteinEst: 55},
	{ItemID: "m704", RestaurantID: "r7", Name: "Vegan Supreme Pizza", Tags: []string{"veg", "no_egg"}, CaloriesEst: 850, ProteinEst: 25},
	{ItemID: "m705", RestaurantID: "r7", Name: "Garlic Knots", Tags: []string{"veg", "no_egg"}, CaloriesEst: 400, ProteinEst: 8},
	{ItemID: "m801", RestaurantID: "r8", Name: "Cobb Salad", Tags: []string{"high_protein"}, CaloriesEst: 600, ProteinEst: 35},
	{ItemID: "m802", RestaurantID: "r8", Name: "Caesar Salad with Chicken", Tags: []string{"high_protein"}, CaloriesEst: 550, ProteinEst: 40},
	{ItemID: "m803", RestaurantID: "r8", Name: "Greek Salad", Tags: []string{"veg", "no_egg"}, CaloriesEst: 400, ProteinEst: 12},
	{ItemID: "m804", RestaurantID: "r8", Name: "Southwest Salad", Tags: []string{"veg"}, CaloriesEst: 450, ProteinEst: 15},
	{ItemID: "m805", RestaurantID: "r8", Name: "Spinach & Goat Cheese", Tags: []string{"veg", "no_egg"}, CaloriesEst: 350, ProteinEst: 10},
}

var coupons = []catalog.Coupon{
	{Code: "UBER10", PlatformName: "UberEats", DiscountValue: 10.0, MinSpend: 30.0},
	{Code: "DASH5", PlatformName: "DoorDash", DiscountValue: 5.0, MinSpend: 15.0},
	{Code: "GRUBFREE", PlatformName: "Grubhub", DiscountValue: 3.99, MinSpend: 20.0},
	{Code: "TREAT15", PlatformName: "UberEats", DiscountValue: 15.0, MinSpend: 40.0},
	{Code: "DOOR20", PlatformName: "DoorDash", DiscountValue: 0.20, MinSpend: 25.0},
}

func main() {
	outDir := flag.String("out", "data", "output directory for catalog files")
	seed := flag.Int64("seed", 42, "random seed for prices and ratings")
	flag.Parse()

	faker := gofakeit.New(*seed)

	listings := make([]catalog.PlatformListing, 0, len(menuItems)*len(platforms))
	for _, item := range menuItems {
		basePrice := round2(faker.Float64Range(9.0, 18.0))
		for _, platform := range platforms {
			listings = append(listings, catalog.PlatformListing{
				ItemID:       item.ItemID,
				PlatformName: platform,
				BasePrice:    round2(basePrice + faker.Float64Range(-1.0, 1.0)),
				DeliveryFee:  round2(faker.Float64Range(0.99, 5.99)),
			})
		}
	}

	ratings := make([]catalog.SocialRating, 0, len(menuItems))
	for _, item := range menuItems {
		ratings = append(ratings, catalog.SocialRating{
			ItemID:      item.ItemID,
			Rating:      math.Round(faker.Float64Range(3.5, 5.0)*10) / 10,
			ReviewCount: faker.IntRange(10, 500),
		})
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	files := map[string]interface{}{
		"restaurants.json":     restaurants,
		"menu_items.json":      menuItems,
		"platform_prices.json": listings,
		"coupons.json":         coupons,
		"social_ratings.json":  ratings,
	}

	for name, payload := range files {
		if err := writeJSON(filepath.Join(*outDir, name), payload); err != nil {
			log.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	fmt.Printf("Finished generating synthetic data files in %s/\n", *outDir)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func writeJSON(path string, payload interface{}) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
