package mongo

import (
	"alcyxob/trainer-service/internal/domain"
	"alcyxob/trainer-service/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	exerciseCollectionName = "exercises"
	counterCollectionName  = "counters"
)

// caseInsensitive makes string comparisons ignore case, matching the NOCASE
// collation the SQLite adapter gets from its schema.
var caseInsensitive = options.Collation{Locale: "en", Strength: 2}

// exerciseDocument is the stored shape of a domain.Exercise. Ids are int64,
// assigned from the counters collection rather than ObjectIDs, so documents
// stay interchangeable with rows from the relational adapter.
type exerciseDocument struct {
	ID          int64  `bson:"_id"`
	Name        string `bson:"name"`
	Description string `bson:"description,omitempty"`
	Type        int64  `bson:"exerciseType"`
	Deleted     bool   `bson:"deleted"`
}

func (d exerciseDocument) toDomain() (*domain.Exercise, error) {
	exerciseType, err := domain.ExerciseTypeFromInt64(d.Type)
	if err != nil {
		return nil, err
	}
	id := d.ID
	return &domain.Exercise{
		ID:          &id,
		Name:        d.Name,
		Description: d.Description,
		Type:        exerciseType,
	}, nil
}

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
		counters:   db.Collection(counterCollectionName),
	}
}

// nextID draws the next exercise id from the counters collection. The $inc
// upsert is atomic, so concurrent creates never see the same value.
func (r *mongoExerciseRepository) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": exerciseCollectionName},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// Create inserts a new exercise document and returns its assigned id.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (int64, error) {
	if exercise.Name == "" {
		return 0, fmt.Errorf("%w: exercise name is required", repository.ErrPersistence)
	}

	id, err := r.nextID(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", repository.ErrPersistence, err)
	}

	doc := exerciseDocument{
		ID:          id,
		Name:        exercise.Name,
		Description: exercise.Description,
		Type:        int64(exercise.Type),
		Deleted:     false,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		// Duplicate key on the collated name index is the unique-name
		// constraint firing, same persistence outcome as any failed write.
		return 0, fmt.Errorf("%w: %v", repository.ErrPersistence, err)
	}
	return id, nil
}

// Update rewrites the mutable fields of the live document matching exercise.ID.
func (r *mongoExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == nil {
		return fmt.Errorf("%w: exercise id is required for update", repository.ErrPersistence)
	}

	filter := bson.M{"_id": *exercise.ID, "deleted": false}
	update := bson.M{
		"$set": bson.M{
			"name":         exercise.Name,
			"description":  exercise.Description,
			"exerciseType": int64(exercise.Type),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrPersistence, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrItemNotFound
	}
	return nil
}

// QueryByName retrieves a live exercise by case-insensitive exact name match.
func (r *mongoExerciseRepository) QueryByName(ctx context.Context, name string) (*domain.Exercise, error) {
	var doc exerciseDocument
	err := r.collection.FindOne(ctx,
		bson.M{"name": name, "deleted": false},
		options.FindOne().SetCollation(&caseInsensitive),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrItemNotFound
		}
		return nil, fmt.Errorf("%w: %v", repository.ErrQuery, err)
	}
	return r.docToDomain(doc)
}

// QueryByID retrieves a live exercise by id.
func (r *mongoExerciseRepository) QueryByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	var doc exerciseDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "deleted": false}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrItemNotFound
		}
		return nil, fmt.Errorf("%w: %v", repository.ErrQuery, err)
	}
	return r.docToDomain(doc)
}

// List returns all live exercises in id order.
func (r *mongoExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"deleted": false}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrQuery, err)
	}
	defer cursor.Close(ctx)

	var docs []exerciseDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrQuery, err)
	}

	exercises := make([]domain.Exercise, 0, len(docs))
	for _, doc := range docs {
		exercise, err := r.docToDomain(doc)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, *exercise)
	}
	return exercises, nil
}

// Delete flags the document matching id as deleted; the document itself stays
// in the collection.
func (r *mongoExerciseRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "deleted": false},
		bson.M{"$set": bson.M{"deleted": true}},
	)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrDelete, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrItemNotFound
	}
	return nil
}

func (r *mongoExerciseRepository) docToDomain(doc exerciseDocument) (*domain.Exercise, error) {
	exercise, err := doc.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrQuery, err)
	}
	return exercise, nil
}

// EnsureExerciseIndexes creates the unique, case-insensitive name index for
// live documents. Call during startup.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	index := mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetCollation(&caseInsensitive).
			SetPartialFilterExpression(bson.M{"deleted": false}),
	}
	_, err := collection.Indexes().CreateOne(ctx, index)
	return err
}
