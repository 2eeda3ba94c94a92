package repo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductFilter narrows product listings. Active-only is implied for public
// listings; the zero value matches every active product.
type ProductFilter struct {
	Category string
	New      bool
	Featured bool
}

func (f ProductFilter) query() bson.M {
	q := bson.M{"isActive": true}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.New {
		q["isNew"] = true
	}
	if f.Featured {
		q["isFeatured"] = true
	}
	return q
}

// Products provides access to the product collection.
type Products struct {
	coll *mongo.Collection
}

// NewProducts binds the repository to its collection.
func NewProducts(db *mongo.Database) *Products {
	return &Products{coll: db.Collection("products")}
}

// EnsureIndexes creates the indexes the product queries rely on.
func (p *Products) EnsureIndexes(ctx context.Context) error {
	_, err := p.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "isFeatured", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create product indexes: %w", err)
	}
	return nil
}

// Find returns a page of active products sorted by newest first.
func (p *Products) Find(ctx context.Context, filter ProductFilter, skip, limit int64) ([]Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := p.coll.Find(ctx, filter.query(), opts)
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)
	products := make([]Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Count returns the number of active products matching the filter.
func (p *Products) Count(ctx context.Context, filter ProductFilter) (int64, error) {
	total, err := p.coll.CountDocuments(ctx, filter.query())
	return total, translateError(err)
}

// GetBySlug fetches a single active product by slug.
func (p *Products) GetBySlug(ctx context.Context, slug string) (Product, error) {
	var product Product
	err := p.coll.FindOne(ctx, bson.M{"slug": slug, "isActive": true}).Decode(&product)
	return product, translateError(err)
}

// Insert stores a new product and stamps timestamps.
func (p *Products) Insert(ctx context.Context, product *Product) error {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	res, err := p.coll.InsertOne(ctx, product)
	if err != nil {
		return translateError(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}
