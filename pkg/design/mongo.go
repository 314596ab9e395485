package design

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/plantforge/plantforge/pkg/errors"
)

// Collection names.
const (
	DesignsCollection = "designs"
	UsersCollection   = "users"
)

// DefaultDatabase is used when MongoOptions.Database is empty.
const DefaultDatabase = "plantforge"

// MongoOptions configures a MongoStore.
type MongoOptions struct {
	URI      string
	Database string
}

// MongoStore is a Store backed by MongoDB.
type MongoStore struct {
	client  *mongo.Client
	designs *mongo.Collection
	users   *mongo.Collection
}

// NewMongoStore connects to MongoDB, verifies the connection and ensures
// the indexes the store relies on exist.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo uri is required")
	}
	if opts.Database == "" {
		opts.Database = DefaultDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongo")
	}

	db := client.Database(opts.Database)
	s := &MongoStore{
		client:  client,
		designs: db.Collection(DesignsCollection),
		users:   db.Collection(UsersCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.designs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "updatedAt", Value: -1}}},
		{Keys: bson.D{{Key: "updatedAt", Value: -1}}},
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create design indexes")
	}
	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create user indexes")
	}
	return nil
}

func (s *MongoStore) CreateDesign(ctx context.Context, d *Design) error {
	if _, err := s.designs.InsertOne(ctx, d); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Wrap(errors.ErrCodeConflict, err, "design %q already exists", d.ID)
		}
		return storageErr(err, "insert design")
	}
	return nil
}

func (s *MongoStore) GetDesign(ctx context.Context, id string) (*Design, error) {
	var d Design
	if err := s.designs.FindOne(ctx, byID(id)).Decode(&d); err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, designNotFound(id)
		}
		return nil, storageErr(err, "find design")
	}
	return &d, nil
}

func (s *MongoStore) UpdateDesign(ctx context.Context, d *Design) error {
	res, err := s.designs.ReplaceOne(ctx, byID(d.ID), d)
	if err != nil {
		return storageErr(err, "replace design")
	}
	if res.MatchedCount == 0 {
		return designNotFound(d.ID)
	}
	return nil
}

func (s *MongoStore) DeleteDesign(ctx context.Context, id string) error {
	res, err := s.designs.DeleteOne(ctx, byID(id))
	if err != nil {
		return storageErr(err, "delete design")
	}
	if res.DeletedCount == 0 {
		return designNotFound(id)
	}
	return nil
}

func (s *MongoStore) ListDesigns(ctx context.Context, ownerID string, limit int) ([]*Design, error) {
	return s.findNewest(ctx, ownerFilter(ownerID), "updatedAt", limit)
}

func (s *MongoStore) ListRecentDesigns(ctx context.Context, limit int) ([]*Design, error) {
	return s.findNewest(ctx, ownerFilter(""), "createdAt", limit)
}

func (s *MongoStore) findNewest(ctx context.Context, filter bson.M, field string, limit int) ([]*Design, error) {
	findOpts := options.Find().SetSort(newestFirst(field))
	if limit > 0 {
		findOpts.SetLimit(int64(limit))
	}
	cur, err := s.designs.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, storageErr(err, "list designs")
	}
	out := []*Design{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storageErr(err, "decode designs")
	}
	return out, nil
}

func (s *MongoStore) DeleteDesignsByOwner(ctx context.Context, ownerID string) (int, error) {
	res, err := s.designs.DeleteMany(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return 0, storageErr(err, "delete owner designs")
	}
	return int(res.DeletedCount), nil
}

func (s *MongoStore) CountDesigns(ctx context.Context) (int, error) {
	n, err := s.designs.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, storageErr(err, "count designs")
	}
	return int(n), nil
}

func (s *MongoStore) CountDesignsByLayout(ctx context.Context) (map[string]int, error) {
	cur, err := s.designs.Aggregate(ctx, layoutCountPipeline())
	if err != nil {
		return nil, storageErr(err, "aggregate designs")
	}
	var rows []struct {
		Layout string `bson:"_id"`
		Count  int    `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, storageErr(err, "decode layout counts")
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Layout] = r.Count
	}
	return counts, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, u *User) error {
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Wrap(errors.ErrCodeConflict, err, "email %q is already registered", u.Email)
		}
		return storageErr(err, "insert user")
	}
	return nil
}

func (s *MongoStore) GetUser(ctx context.Context, id string) (*User, error) {
	return s.findUser(ctx, byID(id), func() error { return userNotFound(id) })
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.findUser(ctx, bson.M{"email": email}, func() error {
		return errors.New(errors.ErrCodeUserNotFound, "no user with email %q", email)
	})
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M, missing func() error) (*User, error) {
	var u User
	if err := s.users.FindOne(ctx, filter).Decode(&u); err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, missing()
		}
		return nil, storageErr(err, "find user")
	}
	return &u, nil
}

func (s *MongoStore) UpdateUser(ctx context.Context, u *User) error {
	res, err := s.users.ReplaceOne(ctx, byID(u.ID), u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Wrap(errors.ErrCodeConflict, err, "email %q is already registered", u.Email)
		}
		return storageErr(err, "replace user")
	}
	if res.MatchedCount == 0 {
		return userNotFound(u.ID)
	}
	return nil
}

func (s *MongoStore) DeleteUser(ctx context.Context, id string) error {
	res, err := s.users.DeleteOne(ctx, byID(id))
	if err != nil {
		return storageErr(err, "delete user")
	}
	if res.DeletedCount == 0 {
		return userNotFound(id)
	}
	return nil
}

func (s *MongoStore) ListUsers(ctx context.Context) ([]*User, error) {
	cur, err := s.users.Find(ctx, bson.M{}, options.Find().SetSort(newestFirst("createdAt")))
	if err != nil {
		return nil, storageErr(err, "list users")
	}
	out := []*User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storageErr(err, "decode users")
	}
	return out, nil
}

func (s *MongoStore) CountUsers(ctx context.Context) (int, error) {
	n, err := s.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, storageErr(err, "count users")
	}
	return int(n), nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return storageErr(err, "ping mongo")
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// =============================================================================
// Query builders
// =============================================================================

func byID(id string) bson.M { return bson.M{"_id": id} }

// ownerFilter matches one owner's designs, or all designs for "".
func ownerFilter(ownerID string) bson.M {
	if ownerID == "" {
		return bson.M{}
	}
	return bson.M{"ownerId": ownerID}
}

// newestFirst sorts by field descending with _id as a stable tiebreak.
func newestFirst(field string) bson.D {
	return bson.D{{Key: field, Value: -1}, {Key: "_id", Value: 1}}
}

func layoutCountPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$layoutType"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
}

func storageErr(err error, op string) error {
	return errors.Wrap(errors.ErrCodeStorage, err, "%s", op)
}

var _ Store = (*MongoStore)(nil)
var _ Store = (*MemoryStore)(nil)

// String describes the store for logs.
func (s *MongoStore) String() string {
	return fmt.Sprintf("mongo(%s)", s.designs.Database().Name())
}
