package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskr-api/internal/domain"
	"github.com/phrazzld/taskr-api/internal/platform/logger"
	"github.com/phrazzld/taskr-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type taskDocument struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Status    string    `bson:"status"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d taskDocument) toDomain() (domain.Task, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Task{}, fmt.Errorf("%w: stored task id %q", store.ErrInvalidEntity, d.ID)
	}
	return domain.Task{
		ID:        id,
		Title:     d.Title,
		Status:    domain.TaskStatus(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

// MongoTaskStore implements store.TaskStore on a MongoDB collection.
type MongoTaskStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoTaskStore creates a task store backed by the tasks collection of db.
func NewMongoTaskStore(db *mongo.Database) *MongoTaskStore {
	return &MongoTaskStore{
		coll: db.Collection(TasksCollection),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

var _ store.TaskStore = (*MongoTaskStore)(nil)

// FindAll implements store.TaskStore.FindAll
func (s *MongoTaskStore) FindAll(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContext(ctx)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Error("failed to query tasks", "error", err)
		return nil, store.NewStoreError("task", "find_all", "failed to query tasks", err)
	}
	defer func() {
		if cerr := cursor.Close(ctx); cerr != nil {
			log.Error("failed to close cursor", "error", cerr)
		}
	}()

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, store.NewStoreError("task", "find_all", "failed to decode tasks", err)
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		task, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// FindByID implements store.TaskStore.FindByID
func (s *MongoTaskStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var doc taskDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, store.ErrTaskNotFound
		}
		return nil, store.NewStoreError("task", "find", "failed to get task", err)
	}
	task, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Insert implements store.TaskStore.Insert. A fresh UUID and timestamps are
// assigned to task.
func (s *MongoTaskStore) Insert(ctx context.Context, task *domain.Task) error {
	if task.Status == "" {
		task.Status = domain.TaskStatusPending
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	now := s.now()
	doc := taskDocument{
		ID:        uuid.New().String(),
		Title:     task.Title,
		Status:    string(task.Status),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		logger.FromContext(ctx).Error("failed to insert task", "error", err)
		return store.NewStoreError("task", "insert", "failed to insert task", err)
	}

	task.ID = uuid.MustParse(doc.ID)
	task.CreatedAt = now
	task.UpdatedAt = now
	return nil
}

// Update implements store.TaskStore.Update
func (s *MongoTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	now := s.now()
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": task.ID.String()},
		bson.M{"$set": bson.M{
			"title":      task.Title,
			"status":     string(task.Status),
			"updated_at": now,
		}},
	)
	if err != nil {
		return store.NewStoreError("task", "update", "failed to update task", err)
	}
	if result.MatchedCount == 0 {
		return store.ErrTaskNotFound
	}
	task.UpdatedAt = now
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *MongoTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return store.NewStoreError("task", "delete", "failed to delete task", err)
	}
	if result.DeletedCount == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}
