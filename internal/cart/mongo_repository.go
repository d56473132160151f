package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// cartDocument is the persisted shape of a cart. Unit prices are stored as
// decimal strings: the driver's default codec would drop decimal.Decimal's
// unexported fields and zero every price snapshot on the way back.
type cartDocument struct {
	ProfileID     string             `bson:"profile_id"`
	SchemaVersion int                `bson:"schema_version"`
	Lines         []cartLineDocument `bson:"lines"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

type cartLineDocument struct {
	BeerID        string    `bson:"beer_id"`
	BeerName      string    `bson:"beer_name"`
	ContainerSize string    `bson:"container_size"`
	UnitPrice     string    `bson:"unit_price"`
	Quantity      int       `bson:"quantity"`
	AddedAt       time.Time `bson:"added_at"`
}

func toCartDocument(cart *domain.Cart) cartDocument {
	lines := make([]cartLineDocument, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lines = append(lines, cartLineDocument{
			BeerID:        line.BeerID.String(),
			BeerName:      line.BeerName,
			ContainerSize: line.ContainerSize,
			UnitPrice:     line.UnitPrice.String(),
			Quantity:      line.Quantity,
			AddedAt:       line.AddedAt,
		})
	}
	return cartDocument{
		ProfileID:     cart.ProfileID,
		SchemaVersion: cart.SchemaVersion,
		Lines:         lines,
		CreatedAt:     cart.CreatedAt,
		UpdatedAt:     cart.UpdatedAt,
	}
}

func fromCartDocument(doc *cartDocument) (*domain.Cart, error) {
	lines := make([]domain.CartLine, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		beerID, err := uuid.Parse(line.BeerID)
		if err != nil {
			return nil, fmt.Errorf("parse beer id %q: %w", line.BeerID, err)
		}
		unitPrice, err := decimal.NewFromString(line.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("parse unit price %q: %w", line.UnitPrice, err)
		}
		lines = append(lines, domain.CartLine{
			BeerID:        beerID,
			BeerName:      line.BeerName,
			ContainerSize: line.ContainerSize,
			UnitPrice:     unitPrice,
			Quantity:      line.Quantity,
			AddedAt:       line.AddedAt,
		})
	}
	return &domain.Cart{
		ProfileID:     doc.ProfileID,
		SchemaVersion: doc.SchemaVersion,
		Lines:         lines,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}, nil
}

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) CartRepository {
	return &mongoRepository{
		collection: db.Collection("carts"),
	}
}

func (m *mongoRepository) GetCart(ctx context.Context, profileID string) (*domain.Cart, error) {
	var doc cartDocument

	filter := bson.M{"profile_id": profileID}
	err := m.collection.FindOne(ctx, filter).Decode(&doc)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	// A document written by an unknown schema version is treated the same
	// as a missing cart rather than guessing at its line layout.
	if doc.SchemaVersion != domain.CartSchemaVersion {
		return nil, ErrCartNotFound
	}

	cart, err := fromCartDocument(&doc)
	if err != nil {
		// An unreadable document also degrades to a missing cart.
		return nil, ErrCartNotFound
	}

	return cart, nil
}

func (m *mongoRepository) UpsertCart(ctx context.Context, cart *domain.Cart) error {
	now := time.Now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now
	cart.SchemaVersion = domain.CartSchemaVersion

	doc := toCartDocument(cart)

	filter := bson.M{"profile_id": cart.ProfileID}
	update := bson.M{"$set": bson.M{
		"profile_id":     doc.ProfileID,
		"schema_version": doc.SchemaVersion,
		"lines":          doc.Lines,
		"created_at":     doc.CreatedAt,
		"updated_at":     doc.UpdatedAt,
	}}
	opts := options.Update().SetUpsert(true)

	_, err := m.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}

	return nil
}

func (m *mongoRepository) DeleteCart(ctx context.Context, profileID string) error {
	filter := bson.M{"profile_id": profileID}

	result, err := m.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrCartNotFound
	}

	return nil
}

func (m *mongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "profile_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(90 * 24 * 60 * 60), // 90 days TTL
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
