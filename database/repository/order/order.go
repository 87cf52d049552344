package orderRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"bookify/database"
	"bookify/models"
)

// OrderRepository archives submitted order snapshots.
type OrderRepository interface {
	Save(ctx context.Context, order models.Order) (string, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListRecent(ctx context.Context, limit int64) ([]models.Order, error)
}

type orderDocument struct {
	ID    string       `bson:"id"`
	Order models.Order `bson:"order"`
}

type mongoOrderRepo struct {
	coll *mongo.Collection
}

// NewMongoOrderRepo returns a new OrderRepository instance using MongoDB.
func NewMongoOrderRepo() OrderRepository {
	db := database.MongoClient.Database("bookify")
	return &mongoOrderRepo{
		coll: db.Collection("orders"),
	}
}

// Save inserts a new order snapshot and returns its ID.
func (r *mongoOrderRepo) Save(ctx context.Context, order models.Order) (string, error) {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	doc := orderDocument{
		ID:    uuid.New().String(),
		Order: order,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID, nil
}

// GetByID returns an archived order by its ID.
func (r *mongoOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var doc orderDocument
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New("order not found")
		}
		return nil, err
	}
	return &doc.Order, nil
}

// ListRecent returns the most recently archived orders.
func (r *mongoOrderRepo) ListRecent(ctx context.Context, limit int64) ([]models.Order, error) {
	opts := optionsFindRecent(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, doc.Order)
	}
	return orders, nil
}
