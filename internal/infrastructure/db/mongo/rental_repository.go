package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chatop/rental-api/internal/core/domain"
)

const rentalCollection = "rentals"

// RentalRepository persists rental listings in Mongo. Pictures are stored
// inline as binary, the way the original schema kept them as blobs.
type RentalRepository struct {
	coll *mongo.Collection
}

func NewRentalRepository(db *mongo.Database) *RentalRepository {
	return &RentalRepository{coll: db.Collection(rentalCollection)}
}

type mongoRental struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     string             `bson:"owner_id"`
	Name        string             `bson:"name"`
	Surface     int                `bson:"surface"`
	Price       float64            `bson:"price"`
	Description string             `bson:"description"`
	Picture     []byte             `bson:"picture,omitempty"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *RentalRepository) Create(ctx context.Context, rental *domain.Rental) (*domain.Rental, error) {
	now := time.Now().UTC()
	doc := mongoRental{
		OwnerID:     rental.OwnerID,
		Name:        rental.Name,
		Surface:     rental.Surface,
		Price:       rental.Price,
		Description: rental.Description,
		Picture:     rental.Picture,
		CreatedAt:   now.Unix(),
		UpdatedAt:   now.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert rental: %w", err)
	}

	created := *rental
	created.CreatedAt = now
	created.UpdatedAt = now
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *RentalRepository) FindByID(ctx context.Context, id string) (*domain.Rental, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRentalNotFound
	}

	var mr mongoRental
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRentalNotFound
		}
		return nil, fmt.Errorf("find rental: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *RentalRepository) FindAll(ctx context.Context) ([]domain.Rental, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	defer cur.Close(ctx)

	var rentals []domain.Rental
	for cur.Next(ctx) {
		var mr mongoRental
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode rental: %w", err)
		}
		rentals = append(rentals, *mr.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate rentals: %w", err)
	}
	return rentals, nil
}

func (r *RentalRepository) Update(ctx context.Context, rental *domain.Rental) error {
	oid, err := primitive.ObjectIDFromHex(rental.ID)
	if err != nil {
		return domain.ErrRentalNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":        rental.Name,
		"surface":     rental.Surface,
		"price":       rental.Price,
		"description": rental.Description,
		"updated_at":  time.Now().UTC().Unix(),
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update rental: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRentalNotFound
	}
	return nil
}

func (mr *mongoRental) toDomain() *domain.Rental {
	return &domain.Rental{
		ID:          mr.ID.Hex(),
		OwnerID:     mr.OwnerID,
		Name:        mr.Name,
		Surface:     mr.Surface,
		Price:       mr.Price,
		Description: mr.Description,
		Picture:     mr.Picture,
		CreatedAt:   unixToTime(mr.CreatedAt),
		UpdatedAt:   unixToTime(mr.UpdatedAt),
	}
}
