package catalog

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const CollectionName = "products"

// MongoStorage stores products in the products collection.
type MongoStorage struct {
	coll *mongo.Collection
}

func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the indexes listing and lookups rely on.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "inStock", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "featured", Value: 1}}},
	})
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

func (s *MongoStorage) Insert(ctx context.Context, p Product) error {
	if _, err := s.coll.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateProduct
		}
		return errors.Join(ErrStorage, err)
	}
	return nil
}

func (s *MongoStorage) Replace(ctx context.Context, p Product) error {
	res, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: p.ID}}, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateProduct
		}
		return errors.Join(ErrStorage, err)
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *MongoStorage) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *MongoStorage) FindByID(ctx context.Context, id string) (Product, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (s *MongoStorage) FindBySlug(ctx context.Context, slug string) (Product, error) {
	return s.findOne(ctx, bson.D{{Key: "slug", Value: slug}})
}

func (s *MongoStorage) FindByCode(ctx context.Context, code string) (Product, error) {
	return s.findOne(ctx, bson.D{{Key: "code", Value: code}})
}

func (s *MongoStorage) Find(ctx context.Context, q Query) ([]Product, int64, error) {
	filter := queryFilter(q)

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errors.Join(ErrStorage, err)
	}

	opts := options.Find().
		SetSort(sortSpec(q.Sort)).
		SetSkip(int64(q.Offset())).
		SetLimit(int64(q.PerPage))
	products, err := s.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *MongoStorage) FindLowStock(ctx context.Context) ([]Product, error) {
	return s.find(ctx, lowStockFilter(), options.Find().SetSort(sortSpec(SortName)))
}

func (s *MongoStorage) findOne(ctx context.Context, filter bson.D) (Product, error) {
	var p Product
	if err := s.coll.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Product{}, ErrProductNotFound
		}
		return Product{}, errors.Join(ErrStorage, err)
	}
	return p, nil
}

func (s *MongoStorage) find(ctx context.Context, filter bson.D, opts *options.FindOptionsBuilder) ([]Product, error) {
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	var products []Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	return products, nil
}

// queryFilter translates q into a collection filter. Search terms are
// matched literally and case-insensitively.
func queryFilter(q Query) bson.D {
	filter := bson.D{}

	if q.Search != "" {
		re := bson.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: re}},
			bson.D{{Key: "description", Value: re}},
			bson.D{{Key: "brand", Value: re}},
			bson.D{{Key: "keywords", Value: re}},
			bson.D{{Key: "tags", Value: re}},
		}})
	}
	if q.Category != "" {
		filter = append(filter, bson.E{Key: "category", Value: q.Category})
	}
	if q.Brand != "" {
		filter = append(filter, bson.E{Key: "brand", Value: bson.Regex{Pattern: "^" + regexp.QuoteMeta(q.Brand) + "$", Options: "i"}})
	}
	if q.Status != "" {
		filter = append(filter, bson.E{Key: "status", Value: q.Status})
	}

	price := bson.D{}
	if q.MinPrice > 0 {
		price = append(price, bson.E{Key: "$gte", Value: q.MinPrice})
	}
	if q.MaxPrice > 0 {
		price = append(price, bson.E{Key: "$lte", Value: q.MaxPrice})
	}
	if len(price) > 0 {
		filter = append(filter, bson.E{Key: "price", Value: price})
	}

	if q.InStock != nil {
		filter = append(filter, bson.E{Key: "inStock", Value: *q.InStock})
	}
	if q.Featured != nil {
		filter = append(filter, bson.E{Key: "featured", Value: *q.Featured})
	}
	return filter
}

func lowStockFilter() bson.D {
	return bson.D{
		{Key: "status", Value: StatusActive},
		{Key: "$expr", Value: bson.D{{Key: "$lte", Value: bson.A{"$quantity", "$lowStockAlert"}}}},
	}
}

func sortSpec(order string) bson.D {
	var primary bson.E
	switch order {
	case SortName:
		primary = bson.E{Key: "name", Value: 1}
	case SortPriceAsc:
		primary = bson.E{Key: "price", Value: 1}
	case SortPriceDesc:
		primary = bson.E{Key: "price", Value: -1}
	case SortPopular:
		primary = bson.E{Key: "salesCount", Value: -1}
	case SortRating:
		primary = bson.E{Key: "rating.average", Value: -1}
	default:
		primary = bson.E{Key: "createdAt", Value: -1}
	}
	return bson.D{primary, {Key: "_id", Value: 1}}
}
