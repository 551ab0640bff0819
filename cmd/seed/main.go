package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/meyashjha/ecommerce-fullstack/internal/catalog"
	"github.com/meyashjha/ecommerce-fullstack/internal/domain"
	"github.com/meyashjha/ecommerce-fullstack/internal/mongodb"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

var products = []domain.Product{
	{
		Name:          "iPhone 15 Pro",
		Description:   "Latest iPhone with A17 Pro chip, titanium design, and advanced camera system.",
		Price:         999.99,
		OriginalPrice: 1099.99,
		Category:      "Electronics",
		Brand:         "Apple",
		SKU:           "IPHONE15PRO-128GB",
		Images: []domain.ProductImage{
			{URL: "https://images.unsplash.com/photo-1592899677977-9c10ca588bbd?w=500&h=500&fit=crop", Alt: "iPhone 15 Pro Front View"},
			{URL: "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=500&h=500&fit=crop", Alt: "iPhone 15 Pro Back View"},
		},
		Stock:      50,
		Featured:   true,
		Rating:     4.8,
		NumReviews: 124,
	},
	{
		Name:          "MacBook Air M2",
		Description:   "Supercharged by M2 chip. Incredibly thin and light design with all-day battery life.",
		Price:         1199.99,
		OriginalPrice: 1299.99,
		Category:      "Electronics",
		Brand:         "Apple",
		SKU:           "MBA-M2-256GB",
		Images: []domain.ProductImage{
			{URL: "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=500&h=500&fit=crop", Alt: "MacBook Air M2"},
		},
		Stock:      30,
		Featured:   true,
		Rating:     4.9,
		NumReviews: 89,
	},
	{
		Name:          "Sony WH-1000XM5 Headphones",
		Description:   "Industry-leading noise canceling headphones with exceptional sound quality and 30-hour battery life.",
		Price:         349.99,
		OriginalPrice: 399.99,
		Category:      "Electronics",
		Brand:         "Sony",
		SKU:           "SONY-WH1000XM5-BLACK",
		Images: []domain.ProductImage{
			{URL: "https://images.unsplash.com/photo-1484704849700-f032a568e944?w=500&h=500&fit=crop", Alt: "Sony WH-1000XM5 Headphones"},
		},
		Stock:      75,
		Rating:     4.7,
		NumReviews: 156,
	},
	{
		Name:          "Classic Denim Jacket",
		Description:   "Timeless denim jacket made from premium cotton. Perfect for layering and versatile styling.",
		Price:         89.99,
		OriginalPrice: 119.99,
		Category:      "Clothing",
		Brand:         "Levi's",
		SKU:           "DENIM-JACKET-M-BLUE",
		Images: []domain.ProductImage{
			{URL: "https://images.unsplash.com/photo-1551028719-00167b16eac5?w=500&h=500&fit=crop", Alt: "Classic Denim Jacket"},
		},
		Stock:      72,
		Featured:   true,
		Rating:     4.5,
		NumReviews: 203,
	},
	{
		Name:          "Premium Cotton T-Shirt",
		Description:   "Ultra-soft premium cotton t-shirt with perfect fit. Essential wardrobe staple.",
		Price:         24.99,
		OriginalPrice: 34.99,
		Category:      "Clothing",
		Brand:         "ComfortWear",
		SKU:           "COTTON-TEE-WHITE-M",
		Images: []domain.ProductImage{
			{URL: "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=500&h=500&fit=crop", Alt: "Premium Cotton T-Shirt"},
		},
		Stock:      95,
		Rating:     4.6,
		NumReviews: 78,
	},
	{
		Name:          "Smart LED Strip Lights",
		Description:   "WiFi-enabled LED strip lights with 16 million colors. Control with smartphone app or voice commands.",
		Price:         39.99,
		OriginalPrice: 59.99,
		Category:      "Home & Garden",
		Brand:         "SmartHome",
		SKU:           "LED-STRIP-16FT-RGB",
		Images: []domain.ProductImage{
			{URL: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=500&h=500&fit=crop", Alt: "Smart LED Strip Lights"},
		},
		Stock:      120,
		Featured:   true,
		Rating:     4.4,
		NumReviews: 234,
	},
	{
		Name:          "Ceramic Plant Pot Set",
		Description:   "Set of 3 modern ceramic plant pots with drainage holes. Perfect for indoor plants and succulents.",
		Price:         34.99,
		OriginalPrice: 49.99,
		Category:      "Home & Garden",
		Brand:         "GreenThumb",
		SKU:           "CERAMIC-POT-SET-3PC",
		Images: []domain.ProductImage{
			{URL: "https://images.unsplash.com/photo-1485955900006-10f4d324d411?w=500&h=500&fit=crop", Alt: "Ceramic Plant Pot Set"},
		},
		Stock:      60,
		Rating:     4.7,
		NumReviews: 92,
	},
	{
		Name:          "Yoga Mat Premium",
		Description:   "Extra thick, non-slip yoga mat made from eco-friendly materials.",
		Price:         49.99,
		OriginalPrice: 69.99,
		Category:      "Sports & Fitness",
		Brand:         "ZenFit",
		SKU:           "YOGA-MAT-PREMIUM-PURPLE",
		Images: []domain.ProductImage{
			{URL: "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=500&h=500&fit=crop", Alt: "Premium Yoga Mat"},
		},
		Stock:      85,
		Featured:   true,
		Rating:     4.8,
		NumReviews: 167,
	},
	{
		Name:          "Adjustable Dumbbells Set",
		Description:   "Space-saving adjustable dumbbells with quick-change weight system. Perfect for home workouts.",
		Price:         299.99,
		OriginalPrice: 399.99,
		Category:      "Sports & Fitness",
		Brand:         "FitPro",
		SKU:           "DUMBBELL-ADJ-50LB-PAIR",
		Images: []domain.ProductImage{
			{URL: "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=500&h=500&fit=crop", Alt: "Adjustable Dumbbells Set"},
		},
		Stock:      25,
		Rating:     4.6,
		NumReviews: 143,
	},
	{
		Name:          "The Art of Programming",
		Description:   "Comprehensive guide to modern programming techniques and best practices.",
		Price:         59.99,
		OriginalPrice: 79.99,
		Category:      "Books",
		Brand:         "TechPress",
		SKU:           "BOOK-PROG-ART-2024",
		Images: []domain.ProductImage{
			{URL: "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=500&h=500&fit=crop", Alt: "The Art of Programming Book"},
		},
		Stock:      200,
		Rating:     4.9,
		NumReviews: 45,
	},
	{
		Name:          "Vitamin C Serum",
		Description:   "Premium vitamin C serum with hyaluronic acid. Brightens skin and reduces signs of aging.",
		Price:         29.99,
		OriginalPrice: 39.99,
		Category:      "Beauty & Health",
		Brand:         "GlowSkin",
		SKU:           "SERUM-VITC-30ML",
		Images: []domain.ProductImage{
			{URL: "https://images.unsplash.com/photo-1596462502278-27bfdc403348?w=500&h=500&fit=crop", Alt: "Vitamin C Serum"},
		},
		Stock:      150,
		Featured:   true,
		Rating:     4.5,
		NumReviews: 289,
	},
}

func main() {
	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017")
	mongoDBName := getEnv("MONGO_DB_NAME", "storefront")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := mongodb.Connect(ctx, mongoURI, mongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Client().Disconnect(ctx)
	log.Printf("Connected to MongoDB at %s", mongoURI)

	if _, err := db.Collection("products").DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear products: %v", err)
	}
	log.Println("Existing products cleared")

	if err := catalog.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create product indexes: %v", err)
	}

	repo := catalog.NewMongoRepository(db)
	for i := range products {
		if err := repo.Insert(ctx, &products[i]); err != nil {
			log.Fatalf("Failed to insert %q: %v", products[i].Name, err)
		}
	}
	log.Printf("Seeded %d products", len(products))

	for _, p := range products {
		if p.Featured {
			log.Printf("featured: %s - $%.2f", p.Name, p.Price)
		}
	}
}
