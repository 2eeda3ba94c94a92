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

// Orders provides access to the order collection.
type Orders struct {
	coll *mongo.Collection
}

// NewOrders binds the repository to its collection.
func NewOrders(db *mongo.Database) *Orders {
	return &Orders{coll: db.Collection("orders")}
}

// EnsureIndexes creates the indexes the order queries rely on. The unique
// orderNumber index is what turns a random collision into ErrDuplicateKey so
// the service can regenerate.
func (o *Orders) EnsureIndexes(ctx context.Context) error {
	_, err := o.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "orderNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customerInfo.email", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create order indexes: %w", err)
	}
	return nil
}

// Insert stores a new order. Returns ErrDuplicateKey when the order number
// already exists.
func (o *Orders) Insert(ctx context.Context, order *Order) error {
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	res, err := o.coll.InsertOne(ctx, order)
	if err != nil {
		return translateError(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	return nil
}

// FindByNumberAndEmail looks up an order narrowed by the customer email, so
// only the owner can read it.
func (o *Orders) FindByNumberAndEmail(ctx context.Context, orderNumber, email string) (Order, error) {
	var order Order
	err := o.coll.FindOne(ctx, bson.M{
		"orderNumber":        orderNumber,
		"customerInfo.email": email,
	}).Decode(&order)
	return order, translateError(err)
}

// GetByNumber fetches an order regardless of ownership. Admin use only.
func (o *Orders) GetByNumber(ctx context.Context, orderNumber string) (Order, error) {
	var order Order
	err := o.coll.FindOne(ctx, bson.M{"orderNumber": orderNumber}).Decode(&order)
	return order, translateError(err)
}

// UpdateStatus transitions an order to the given status.
func (o *Orders) UpdateStatus(ctx context.Context, orderNumber, status string) error {
	res, err := o.coll.UpdateOne(ctx,
		bson.M{"orderNumber": orderNumber},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return translateError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of orders matching the status, or all orders when
// status is empty.
func (o *Orders) Count(ctx context.Context, status string) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	total, err := o.coll.CountDocuments(ctx, filter)
	return total, translateError(err)
}
