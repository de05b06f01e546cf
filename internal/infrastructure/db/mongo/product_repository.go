package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/techmart/commerce-api/internal/core/domain"
	"github.com/techmart/commerce-api/internal/core/ports"
)

const productsCollection = "products"

// ProductRepository implements ports.ProductRepository on MongoDB.
type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productsCollection)}
}

type productDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description"`
	Price         float64            `bson:"price"`
	SKU           string             `bson:"sku"`
	CategoryID    string             `bson:"category_id"`
	StockQuantity int                `bson:"stock_quantity"`
	IsActive      bool               `bson:"is_active"`
	ImageURLs     []string           `bson:"image_urls"`
	Weight        *float64           `bson:"weight,omitempty"`
	Brand         string             `bson:"brand,omitempty"`
	Attributes    map[string]any     `bson:"attributes"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toProductDoc(p)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateSKU
		}
		return nil, fmt.Errorf("insert product: %w", err)
	}

	created := *p
	created.ID = doc.ID.Hex()
	return &created, nil
}

// FindByID retrieves a product by id. The read path passes activeOnly=true
// so inactive and absent products both resolve to "not found"; the write
// path passes false so inactive products stay correctable.
func (r *ProductRepository) FindByID(ctx context.Context, id string, activeOnly bool) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid}
	if activeOnly {
		filter["is_active"] = true
	}

	var doc productDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return toDomainProduct(doc), nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toProductDoc(p)
	doc.ID = oid

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// List composes the filter/sort/paginate query. The total count is computed
// over the filtered, pre-pagination set.
func (r *ProductRepository) List(ctx context.Context, filter ports.ListProductsFilter) ([]*domain.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"is_active": true}

	if filter.SearchTerm != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.SearchTerm), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		}
	}
	if filter.CategoryID != "" {
		query["category_id"] = filter.CategoryID
	}
	price := bson.M{}
	if filter.MinPrice != nil {
		price["$gte"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		price["$lte"] = *filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	opts := options.Find().
		SetSort(sortSpec(filter.SortBy, filter.SortDesc)).
		SetSkip(int64(filter.Skip)).
		SetLimit(int64(filter.Take))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode products: %w", err)
	}

	items := make([]*domain.Product, 0, len(docs))
	for _, doc := range docs {
		items = append(items, toDomainProduct(doc))
	}
	return items, total, nil
}

// sortSpec maps a sort key to a Mongo sort document. Unrecognized keys fall
// back to ascending-by-name regardless of the direction flag.
func sortSpec(sortBy string, desc bool) bson.D {
	dir := 1
	if desc {
		dir = -1
	}
	switch sortBy {
	case ports.SortByName:
		return bson.D{{Key: "name", Value: dir}}
	case ports.SortByPrice:
		return bson.D{{Key: "price", Value: dir}}
	case ports.SortByCreated:
		return bson.D{{Key: "created_at", Value: dir}}
	default:
		return bson.D{{Key: "name", Value: 1}}
	}
}

// EnsureIndexes creates the indexes backing SKU uniqueness and the common
// list filters.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sku", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "name", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func toProductDoc(p *domain.Product) productDoc {
	return productDoc{
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		SKU:           p.SKU,
		CategoryID:    p.CategoryID,
		StockQuantity: p.StockQuantity,
		IsActive:      p.IsActive,
		ImageURLs:     p.ImageURLs,
		Weight:        p.Weight,
		Brand:         p.Brand,
		Attributes:    p.Attributes,
		CreatedAt:     p.CreatedAt.UTC(),
		UpdatedAt:     p.UpdatedAt.UTC(),
	}
}

func toDomainProduct(doc productDoc) *domain.Product {
	return &domain.Product{
		ID:            doc.ID.Hex(),
		Name:          doc.Name,
		Description:   doc.Description,
		Price:         doc.Price,
		SKU:           doc.SKU,
		CategoryID:    doc.CategoryID,
		StockQuantity: doc.StockQuantity,
		IsActive:      doc.IsActive,
		ImageURLs:     doc.ImageURLs,
		Weight:        doc.Weight,
		Brand:         doc.Brand,
		Attributes:    doc.Attributes,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}
