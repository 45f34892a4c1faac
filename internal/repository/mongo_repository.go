package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ignatzorin/seeforge-backend/internal/models"
)

// Документы адресуются полем id, служебный _id наружу не отдаётся.
var (
	withoutObjectID = bson.D{{Key: "_id", Value: 0}}
	insertionOrder  = bson.D{{Key: "_id", Value: 1}}
)

// MongoProjectRepository хранит проекты в коллекции MongoDB.
type MongoProjectRepository struct {
	coll *mongo.Collection
}

// NewMongoProjectRepository создаёт новый экземпляр.
func NewMongoProjectRepository(coll *mongo.Collection) *MongoProjectRepository {
	return &MongoProjectRepository{coll: coll}
}

func (r *MongoProjectRepository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	stored := project.Clone()
	prepareProject(stored)

	if _, err := r.coll.InsertOne(ctx, stored); err != nil {
		return nil, fmt.Errorf("project repository: insert %w", err)
	}
	return stored, nil
}

func (r *MongoProjectRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*models.Project, error) {
	var project models.Project
	opts := options.FindOne().SetProjection(withoutObjectID)
	err := r.coll.FindOne(ctx, bson.M{"id": id, "user_id": userID}, opts).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("project repository: find %w", err)
	}
	return &project, nil
}

func (r *MongoProjectRepository) ListByUser(ctx context.Context, userID string) ([]models.Project, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *MongoProjectRepository) ListAll(ctx context.Context) ([]models.Project, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoProjectRepository) find(ctx context.Context, filter bson.M) ([]models.Project, error) {
	opts := options.Find().SetProjection(withoutObjectID).SetSort(insertionOrder)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("project repository: find %w", err)
	}

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("project repository: decode %w", err)
	}
	return projects, nil
}

// Update выполняет $set по изменённым полям и $max по updated_at.
func (r *MongoProjectRepository) Update(ctx context.Context, id, userID string, patch models.ProjectPatch) (*models.Project, error) {
	update := bson.M{"$max": bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)}}
	if fields := patch.Fields(); len(fields) > 0 {
		update["$set"] = bson.M(fields)
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutObjectID)

	var project models.Project
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id, "user_id": userID}, update, opts).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("project repository: update %w", err)
	}
	return &project, nil
}

func (r *MongoProjectRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("project repository: delete %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// MongoTemplateRepository хранит каталог шаблонов в коллекции MongoDB.
type MongoTemplateRepository struct {
	coll *mongo.Collection
}

// NewMongoTemplateRepository создаёт новый экземпляр.
func NewMongoTemplateRepository(coll *mongo.Collection) *MongoTemplateRepository {
	return &MongoTemplateRepository{coll: coll}
}

func (r *MongoTemplateRepository) Create(ctx context.Context, tpl *models.Template) (*models.Template, error) {
	stored := tpl.Clone()
	prepareTemplate(stored)

	if _, err := r.coll.InsertOne(ctx, stored); err != nil {
		return nil, fmt.Errorf("template repository: insert %w", err)
	}
	return stored, nil
}

func (r *MongoTemplateRepository) Get(ctx context.Context, id string) (*models.Template, error) {
	var tpl models.Template
	opts := options.FindOne().SetProjection(withoutObjectID)
	err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&tpl)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("template repository: find %w", err)
	}
	return &tpl, nil
}

func (r *MongoTemplateRepository) List(ctx context.Context) ([]models.Template, error) {
	opts := options.Find().SetProjection(withoutObjectID).SetSort(insertionOrder)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("template repository: find %w", err)
	}

	templates := []models.Template{}
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("template repository: decode %w", err)
	}
	return templates, nil
}

func (r *MongoTemplateRepository) Update(ctx context.Context, id string, patch models.TemplatePatch) (*models.Template, error) {
	fields := patch.Fields()
	if len(fields) == 0 {
		return r.Get(ctx, id)
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutObjectID)

	var tpl models.Template
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": bson.M(fields)}, opts).Decode(&tpl)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("template repository: update %w", err)
	}
	return &tpl, nil
}

func (r *MongoTemplateRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("template repository: delete %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
