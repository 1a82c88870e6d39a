package repository

import (
	"context"

	"github.com/goliatone/go-devconnect"
	"github.com/goliatone/go-devconnect/posts"
	"github.com/goliatone/go-devconnect/profile"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	usersCollection    = "users"
	profilesCollection = "profiles"
	postsCollection    = "posts"
)

// EnsureMongoIndexes creates the unique indexes the services rely on.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return mapError(err, "")
	}

	_, err = db.Collection(profilesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return mapError(err, "")
	}

	_, err = db.Collection(postsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	})
	return mapError(err, "")
}

// MongoUserRepository implements devconnect.Users on a mongo collection.
type MongoUserRepository struct {
	coll *mongo.Collection
}

var _ devconnect.Users = (*MongoUserRepository)(nil)

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*devconnect.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *MongoUserRepository) GetByIdentifier(ctx context.Context, identifier string) (*devconnect.User, error) {
	return r.findOne(ctx, bson.M{"email": devconnect.NormalizeEmail(identifier)})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*devconnect.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapError(err, "user not found")
	}
	return doc.model(), nil
}

func (r *MongoUserRepository) Create(ctx context.Context, record *devconnect.User) (*devconnect.User, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.Email = devconnect.NormalizeEmail(record.Email)

	if _, err := r.coll.InsertOne(ctx, toUserDoc(record)); err != nil {
		return nil, mapError(err, "")
	}
	return record, nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return mapError(err, "")
	}
	if res.DeletedCount == 0 {
		return devconnect.NewRecordNotFound("user not found")
	}
	return nil
}

// MongoProfileRepository implements profile.Repository on a mongo collection.
type MongoProfileRepository struct {
	coll *mongo.Collection
}

var _ profile.Repository = (*MongoProfileRepository)(nil)

func NewMongoProfileRepository(db *mongo.Database) *MongoProfileRepository {
	return &MongoProfileRepository{coll: db.Collection(profilesCollection)}
}

func (r *MongoProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	var doc profileDoc
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID.String()}).Decode(&doc); err != nil {
		return nil, mapError(err, "profile not found")
	}
	return doc.model(), nil
}

func (r *MongoProfileRepository) List(ctx context.Context) ([]*profile.Profile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mapError(err, "")
	}
	defer cursor.Close(ctx)

	out := []*profile.Profile{}
	for cursor.Next(ctx) {
		var doc profileDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, mapError(err, "")
		}
		out = append(out, doc.model())
	}

	if err := cursor.Err(); err != nil {
		return nil, mapError(err, "")
	}
	return out, nil
}

// Save replaces the profile keyed by user id, inserting it when missing.
func (r *MongoProfileRepository) Save(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	normalizeProfile(p)

	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"user_id": p.UserID.String()},
		toProfileDoc(p),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return nil, mapError(err, "")
	}
	return p, nil
}

func (r *MongoProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID.String()})
	return mapError(err, "")
}

// MongoPostRepository implements posts.Repository on a mongo collection.
type MongoPostRepository struct {
	coll *mongo.Collection
}

var _ posts.Repository = (*MongoPostRepository)(nil)

func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{coll: db.Collection(postsCollection)}
}

func (r *MongoPostRepository) Create(ctx context.Context, p *posts.Post) (*posts.Post, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	normalizePost(p)

	if _, err := r.coll.InsertOne(ctx, toPostDoc(p)); err != nil {
		return nil, mapError(err, "")
	}
	return p, nil
}

func (r *MongoPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*posts.Post, error) {
	var doc postDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return nil, mapError(err, "post not found")
	}
	return doc.model(), nil
}

func (r *MongoPostRepository) List(ctx context.Context) ([]*posts.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mapError(err, "")
	}
	defer cursor.Close(ctx)

	out := []*posts.Post{}
	for cursor.Next(ctx) {
		var doc postDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, mapError(err, "")
		}
		out = append(out, doc.model())
	}

	if err := cursor.Err(); err != nil {
		return nil, mapError(err, "")
	}
	return out, nil
}

func (r *MongoPostRepository) Update(ctx context.Context, p *posts.Post) (*posts.Post, error) {
	normalizePost(p)

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID.String()}, toPostDoc(p))
	if err != nil {
		return nil, mapError(err, "")
	}
	if res.MatchedCount == 0 {
		return nil, devconnect.NewRecordNotFound("post not found")
	}
	return p, nil
}

func (r *MongoPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return mapError(err, "")
	}
	if res.DeletedCount == 0 {
		return devconnect.NewRecordNotFound("post not found")
	}
	return nil
}

func (r *MongoPostRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"user": userID.String()})
	return mapError(err, "")
}
