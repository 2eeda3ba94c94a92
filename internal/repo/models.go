package repo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductVariant is a concrete size/frame/glass combination offered for a
// product, with its derived price snapshot.
type ProductVariant struct {
	SKU   string `bson:"sku" json:"sku"`
	Size  string `bson:"size" json:"size"`
	Frame string `bson:"frame" json:"frame"`
	Glass string `bson:"glass" json:"glass"`
	Price int64  `bson:"price" json:"price"`
	Stock int    `bson:"stock" json:"stock"`
}

// Product is the stored product document.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Artist      string             `bson:"artist,omitempty" json:"artist,omitempty"`
	Category    string             `bson:"category" json:"category"`
	Tags        []string           `bson:"tags" json:"tags"`
	Images      []string           `bson:"images" json:"images"`
	BasePrice   float64            `bson:"basePrice" json:"basePrice"`
	Variants    []ProductVariant   `bson:"variants" json:"variants"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	IsFeatured  bool               `bson:"isFeatured" json:"isFeatured"`
	IsNew       bool               `bson:"isNew" json:"isNew"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderItem is a frozen line item inside an order. Price is the snapshot
// taken when the configuration was added to the cart; catalog changes never
// reprice it.
type OrderItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	SKU       string  `bson:"sku" json:"sku"`
	Name      string  `bson:"name" json:"name"`
	Variant   string  `bson:"variant" json:"variant"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
}

// Address is a shipping destination.
type Address struct {
	Line1      string `bson:"line1" json:"line1"`
	Line2      string `bson:"line2,omitempty" json:"line2,omitempty"`
	City       string `bson:"city" json:"city"`
	District   string `bson:"district" json:"district"`
	PostalCode string `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
}

// Customer holds buyer contact details attached to an order.
type Customer struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

// Order statuses. Orders start pending and either advance through the
// fulfilment chain or get cancelled.
const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order is the stored order document.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber     string             `bson:"orderNumber" json:"orderNumber"`
	CustomerInfo    Customer           `bson:"customerInfo" json:"customerInfo"`
	ShippingAddress Address            `bson:"shippingAddress" json:"shippingAddress"`
	Items           []OrderItem        `bson:"items" json:"items"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	ShippingCost    float64            `bson:"shippingCost" json:"shippingCost"`
	Total           float64            `bson:"total" json:"total"`
	Status          string             `bson:"status" json:"status"`
	PaymentMethod   string             `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	PaymentID       string             `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	TrackingNo      string             `bson:"trackingNo,omitempty" json:"trackingNo,omitempty"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
