package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Jake2PointZero/HomesteadingwithTiffany/internal/models"
	"github.com/Jake2PointZero/HomesteadingwithTiffany/internal/patterns"
)

// MongoStore keeps the catalog and orders in two schema-validated
// collections of a remote document database. Unlike the local
// backends the database sits across the network, so every operation
// runs through a circuit breaker and a bulkhead.
type MongoStore struct {
	client   *mongo.Client
	products *mongo.Collection
	orders   *mongo.Collection
	circuit  *patterns.CircuitBreakerWrapper
	bulkhead *patterns.Bulkhead
}

type productDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Category    string             `bson:"category"`
	Image       string             `bson:"image"`
}

type orderItemDoc struct {
	Name     string  `bson:"name"`
	Quantity int     `bson:"quantity"`
	Price    float64 `bson:"price"`
}

type orderDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	CustomerName  string             `bson:"customerName"`
	CustomerEmail string             `bson:"customerEmail"`
	Address       string             `bson:"address"`
	Items         []orderItemDoc     `bson:"items"`
	Total         float64            `bson:"total"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

// NewMongoStore connects to the document database, verifies the
// connection and ensures both collections exist with their validators.
func NewMongoStore(ctx context.Context, uri, dbName, serviceName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, patterns.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to document store: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping document store: %w", err)
	}

	db := client.Database(dbName)
	if err := ensureCollections(ctx, db); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	return &MongoStore{
		client:   client,
		products: db.Collection("products"),
		orders:   db.Collection("orders"),
		circuit:  patterns.NewCircuitBreaker("Mongo", serviceName),
		bulkhead: patterns.NewBulkhead(10, "mongo", serviceName),
	}, nil
}

// Close disconnects from the document store.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func ensureCollections(ctx context.Context, db *mongo.Database) error {
	itemSchema := bson.M{
		"bsonType": "object",
		"properties": bson.M{
			"name":     bson.M{"bsonType": "string"},
			"quantity": bson.M{"bsonType": bson.A{"int", "long", "double"}},
			"price":    bson.M{"bsonType": bson.A{"int", "long", "double"}},
		},
	}
	schemas := map[string]bson.M{
		"products": {
			"bsonType": "object",
			"properties": bson.M{
				"name":        bson.M{"bsonType": "string"},
				"description": bson.M{"bsonType": "string"},
				"price":       bson.M{"bsonType": bson.A{"int", "long", "double"}},
				"category":    bson.M{"bsonType": "string"},
				"image":       bson.M{"bsonType": "string"},
			},
		},
		"orders": {
			"bsonType": "object",
			"required": bson.A{"customerName", "customerEmail", "address", "items"},
			"properties": bson.M{
				"customerName":  bson.M{"bsonType": "string"},
				"customerEmail": bson.M{"bsonType": "string"},
				"address":       bson.M{"bsonType": "string"},
				"items":         bson.M{"bsonType": "array", "items": itemSchema},
				"total":         bson.M{"bsonType": bson.A{"int", "long", "double"}},
				"createdAt":     bson.M{"bsonType": "date"},
			},
		},
	}
	for name, schema := range schemas {
		opts := options.CreateCollection().SetValidator(bson.M{"$jsonSchema": schema})
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			var cmdErr mongo.CommandError
			if errors.As(err, &cmdErr) && cmdErr.Name == "NamespaceExists" {
				continue
			}
			return fmt.Errorf("create collection %s: %w", name, err)
		}
	}
	return nil
}

// guarded runs fn through the bulkhead and circuit breaker.
func (s *MongoStore) guarded(fn func() (interface{}, error)) (interface{}, error) {
	var result interface{}
	err := s.bulkhead.Execute(func() error {
		res, cbErr := s.circuit.Execute(fn)
		result = res
		return patterns.FormatError("Mongo", cbErr)
	})
	return result, err
}

// StoreState reports the breaker state for the health endpoint.
func (s *MongoStore) StoreState() string {
	return s.circuit.GetState()
}

func (s *MongoStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	result, err := s.guarded(func() (interface{}, error) {
		opCtx, cancel := context.WithTimeout(ctx, patterns.DefaultTimeout)
		defer cancel()

		cursor, err := s.products.Find(opCtx, bson.M{})
		if err != nil {
			return nil, fmt.Errorf("query products: %w", err)
		}
		var docs []productDoc
		if err := cursor.All(opCtx, &docs); err != nil {
			return nil, fmt.Errorf("decode products: %w", err)
		}
		return docs, nil
	})
	if err != nil {
		return nil, err
	}

	docs := result.([]productDoc)
	products := make([]models.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, models.Product{
			ID:          d.ID.Hex(),
			Name:        d.Name,
			Description: d.Description,
			Price:       d.Price,
			Category:    d.Category,
			Image:       d.Image,
		})
	}
	return products, nil
}

func (s *MongoStore) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	result, err := s.guarded(func() (interface{}, error) {
		opCtx, cancel := context.WithTimeout(ctx, patterns.DefaultTimeout)
		defer cancel()

		res, err := s.products.InsertOne(opCtx, productDoc{
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Category:    p.Category,
			Image:       p.Image,
		})
		if err != nil {
			return nil, fmt.Errorf("insert product: %w", err)
		}
		return res.InsertedID.(primitive.ObjectID), nil
	})
	if err != nil {
		return models.Product{}, err
	}
	p.ID = result.(primitive.ObjectID).Hex()
	return p, nil
}

func (s *MongoStore) UpdateProduct(ctx context.Context, id string, p models.Product) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	result, err := s.guarded(func() (interface{}, error) {
		opCtx, cancel := context.WithTimeout(ctx, patterns.DefaultTimeout)
		defer cancel()

		res, err := s.products.UpdateByID(opCtx, oid, bson.M{"$set": bson.M{
			"name":        p.Name,
			"description": p.Description,
			"price":       p.Price,
			"category":    p.Category,
			"image":       p.Image,
		}})
		if err != nil {
			return nil, fmt.Errorf("update product: %w", err)
		}
		return res.MatchedCount, nil
	})
	if err != nil {
		return err
	}
	if result.(int64) == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteProduct(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	result, err := s.guarded(func() (interface{}, error) {
		opCtx, cancel := context.WithTimeout(ctx, patterns.DefaultTimeout)
		defer cancel()

		res, err := s.products.DeleteOne(opCtx, bson.M{"_id": oid})
		if err != nil {
			return nil, fmt.Errorf("delete product: %w", err)
		}
		return res.DeletedCount, nil
	})
	if err != nil {
		return err
	}
	if result.(int64) == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) InsertOrder(ctx context.Context, o models.Order) (models.Order, error) {
	items := make([]orderItemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDoc(it))
	}
	result, err := s.guarded(func() (interface{}, error) {
		opCtx, cancel := context.WithTimeout(ctx, patterns.DefaultTimeout)
		defer cancel()

		res, err := s.orders.InsertOne(opCtx, orderDoc{
			CustomerName:  o.CustomerName,
			CustomerEmail: o.CustomerEmail,
			Address:       o.Address,
			Items:         items,
			Total:         o.Total,
			CreatedAt:     o.CreatedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("insert order: %w", err)
		}
		return res.InsertedID.(primitive.ObjectID), nil
	})
	if err != nil {
		return models.Order{}, err
	}
	o.ID = result.(primitive.ObjectID).Hex()
	return o, nil
}

func (s *MongoStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	result, err := s.guarded(func() (interface{}, error) {
		opCtx, cancel := context.WithTimeout(ctx, patterns.DefaultTimeout)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := s.orders.Find(opCtx, bson.M{}, opts)
		if err != nil {
			return nil, fmt.Errorf("query orders: %w", err)
		}
		var docs []orderDoc
		if err := cursor.All(opCtx, &docs); err != nil {
			return nil, fmt.Errorf("decode orders: %w", err)
		}
		return docs, nil
	})
	if err != nil {
		return nil, err
	}

	docs := result.([]orderDoc)
	orders := make([]models.Order, 0, len(docs))
	for _, d := range docs {
		items := make([]models.OrderItem, 0, len(d.Items))
		for _, it := range d.Items {
			items = append(items, models.OrderItem(it))
		}
		orders = append(orders, models.Order{
			ID:            d.ID.Hex(),
			CustomerName:  d.CustomerName,
			CustomerEmail: d.CustomerEmail,
			Address:       d.Address,
			Items:         items,
			Total:         d.Total,
			CreatedAt:     d.CreatedAt,
		})
	}
	return orders, nil
}
