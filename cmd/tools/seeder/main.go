package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/alaminute/backend-prints/internal/pricing"
	"github.com/alaminute/backend-prints/internal/repo"
)

type seedProduct struct {
	Name        string
	Slug        string
	Description string
	Artist      string
	Category    string
	Tags        []string
	Images      []string
	BasePrice   float64
	IsFeatured  bool
	IsNew       bool
}

var seedProducts = []seedProduct{
	{
		Name:        "Sis ve Dağ",
		Slug:        "sis-ve-dag",
		Description: "Sabah sisinde kaybolan dağ sırtları.",
		Artist:      "Elif Demir",
		Category:    "nature",
		Tags:        []string{"dağ", "sis", "manzara"},
		Images:      []string{"/images/products/sis-ve-dag.jpg"},
		BasePrice:   299,
		IsFeatured:  true,
	},
	{
		Name:        "Sessiz Çizgi",
		Slug:        "sessiz-cizgi",
		Description: "Tek çizgiyle anlatılan bir yüz.",
		Artist:      "Mert Aksoy",
		Category:    "minimalist",
		Tags:        []string{"çizgi", "portre"},
		Images:      []string{"/images/products/sessiz-cizgi.jpg"},
		BasePrice:   249,
		IsNew:       true,
	},
	{
		Name:        "Renk Fırtınası",
		Slug:        "renk-firtinasi",
		Description: "Akrilik dokular üzerine dijital kompozisyon.",
		Artist:      "Zeynep Kaya",
		Category:    "abstract",
		Tags:        []string{"soyut", "renk"},
		Images:      []string{"/images/products/renk-firtinasi.jpg"},
		BasePrice:   349,
		IsFeatured:  true,
		IsNew:       true,
	},
	{
		Name:        "Bugün İyi Bir Gün",
		Slug:        "bugun-iyi-bir-gun",
		Description: "El yazısı tipografi baskısı.",
		Artist:      "Can Yıldız",
		Category:    "typography",
		Tags:        []string{"tipografi", "motivasyon"},
		Images:      []string{"/images/products/bugun-iyi-bir-gun.jpg"},
		BasePrice:   199,
	},
	{
		Name:        "Kuzey Ormanı",
		Slug:        "kuzey-ormani",
		Description: "Karla kaplı çam ormanının kuş bakışı görünümü.",
		Artist:      "Elif Demir",
		Category:    "nature",
		Tags:        []string{"orman", "kar"},
		Images:      []string{"/images/products/kuzey-ormani.jpg"},
		BasePrice:   329,
	},
}

// defaultVariants is the configuration subset stocked for every seeded
// print. The rest of the combinations are quoted on demand.
var defaultVariants = []struct {
	Size  string
	Frame string
	Glass string
	Stock int
}{
	{"21x30", "none", "none", 25},
	{"30x40", "black", "standard", 15},
	{"40x50", "black", "standard", 10},
	{"50x70", "natural", "anti-reflective", 5},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI is not set")
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "alaminute"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := repo.Connect(ctx, mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to mongo: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(dbName)
	products := repo.NewProducts(db)
	if err := products.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	coll := db.Collection("products")
	seeded := 0
	for _, sp := range seedProducts {
		count, err := coll.CountDocuments(ctx, bson.M{"slug": sp.Slug})
		if err != nil {
			log.Fatalf("Failed to check for %s: %v", sp.Slug, err)
		}
		if count > 0 {
			log.Printf("Skipping %s (already seeded)", sp.Slug)
			continue
		}

		variants := make([]repo.ProductVariant, 0, len(defaultVariants))
		for _, v := range defaultVariants {
			variants = append(variants, repo.ProductVariant{
				SKU:   pricing.SKU(sp.Slug, v.Size, v.Frame, v.Glass),
				Size:  v.Size,
				Frame: v.Frame,
				Glass: v.Glass,
				Price: pricing.Quote(sp.BasePrice, v.Size, v.Frame, v.Glass),
				Stock: v.Stock,
			})
		}
		product := repo.Product{
			Name:        sp.Name,
			Slug:        sp.Slug,
			Description: sp.Description,
			Artist:      sp.Artist,
			Category:    sp.Category,
			Tags:        sp.Tags,
			Images:      sp.Images,
			BasePrice:   sp.BasePrice,
			Variants:    variants,
			IsActive:    true,
			IsFeatured:  sp.IsFeatured,
			IsNew:       sp.IsNew,
		}
		if err := products.Insert(ctx, &product); err != nil {
			log.Fatalf("Failed to insert %s: %v", sp.Slug, err)
		}
		log.Printf("Seeded %s (%d variants)", sp.Slug, len(variants))
		seeded++
	}

	log.Printf("Seeding completed: %d new products", seeded)
}
