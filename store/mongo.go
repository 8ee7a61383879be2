package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"besties/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// MongoRepository хранит каждого пользователя одним документом, как исходная
// документная модель. SavePair требует replica set (транзакции).
type MongoRepository struct {
	client *mongo.Client
	users  *mongo.Collection
}

func ConnectMongo(ctx context.Context, uri, database string) (*MongoRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	users := client.Database(database).Collection(usersCollection)
	_, err = users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}
	return &MongoRepository{client: client, users: users}, nil
}

func (r *MongoRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoRepository) Create(ctx context.Context, u *models.User) error {
	u.Normalize()
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	_, err := r.users.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	err := r.users.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Normalize()
	return &u, nil
}

func (r *MongoRepository) GetMany(ctx context.Context, ids []string) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}
	opts := options.Find().SetProjection(bson.M{"name": 1, "profile_image": 1, "posts": 1})
	var found []models.User
	if err := r.findAll(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts, &found); err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	users := make([]*models.User, 0, len(found))
	for i := range found {
		found[i].Normalize()
		users = append(users, &found[i])
	}
	return orderByIDs(users, ids), nil
}

func (r *MongoRepository) Cards(ctx context.Context, ids []string) ([]models.UserCard, error) {
	cards := []models.UserCard{}
	if len(ids) == 0 {
		return cards, nil
	}
	opts := options.Find().SetProjection(bson.M{"name": 1, "profile_image": 1})
	if err := r.findAll(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts, &cards); err != nil {
		return nil, fmt.Errorf("failed to get user cards: %w", err)
	}
	return cards, nil
}

func (r *MongoRepository) Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	filter := bson.M{"name": bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}}
	opts := options.Find().
		SetProjection(bson.M{"name": 1, "profile_image": 1, "friends": 1, "friend_requests": 1}).
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit))
	results := []models.SearchResult{}
	if err := r.findAll(ctx, filter, opts, &results); err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return results, nil
}

func (r *MongoRepository) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions, out interface{}) error {
	cursor, err := r.users.Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

func (r *MongoRepository) replace(ctx context.Context, u *models.User) error {
	_, err := r.users.ReplaceOne(ctx, bson.M{"_id": u.ID}, u, options.Replace().SetUpsert(true))
	return err
}

func (r *MongoRepository) Save(ctx context.Context, u *models.User) error {
	u.UpdatedAt = time.Now().UTC()
	return r.replace(ctx, u)
}

func (r *MongoRepository) SavePair(ctx context.Context, a, b *models.User) error {
	now := time.Now().UTC()
	a.UpdatedAt, b.UpdatedAt = now, now

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := r.replace(sc, a); err != nil {
			return nil, err
		}
		return nil, r.replace(sc, b)
	})
	return err
}

func (r *MongoRepository) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if err := r.findAll(ctx, bson.M{}, opts, &users); err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Normalize()
	}
	return users, nil
}

func (r *MongoRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.users.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
