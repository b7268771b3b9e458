package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/displaydynamix/studio-api/internal/core/domain"
	"github.com/displaydynamix/studio-api/internal/core/ports"
)

const templatesCollection = "templates"

// TemplateRepository persists canvas templates in MongoDB. The elements
// array is stored as-is; the backend never interprets it.
type TemplateRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewTemplateRepository(db *mongo.Database) *TemplateRepository {
	return &TemplateRepository{db: db, coll: db.Collection(templatesCollection)}
}

type templateDoc struct {
	ID          int64            `bson:"_id"`
	Name        string           `bson:"name"`
	Description string           `bson:"description,omitempty"`
	Elements    []map[string]any `bson:"elements"`
	CreatedBy   int64            `bson:"created_by"`
	CreatedAt   time.Time        `bson:"created_at"`
	UpdatedAt   *time.Time       `bson:"updated_at,omitempty"`
}

func (d templateDoc) toDomain() *domain.Template {
	return &domain.Template{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Elements:    d.Elements,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *TemplateRepository) FindByID(ctx context.Context, id int64) (*domain.Template, error) {
	var doc templateDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("find template: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TemplateRepository) ListByCreator(ctx context.Context, creatorID int64, skip, limit int64) ([]domain.Template, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if skip > 0 {
		opts.SetSkip(skip)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, bson.M{"created_by": creatorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []templateDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode templates: %w", err)
	}

	templates := make([]domain.Template, 0, len(docs))
	for _, doc := range docs {
		templates = append(templates, *doc.toDomain())
	}
	return templates, nil
}

func (r *TemplateRepository) Insert(ctx context.Context, template *domain.Template) (*domain.Template, error) {
	id, err := nextSequence(ctx, r.db, templatesCollection)
	if err != nil {
		return nil, err
	}

	doc := templateDoc{
		ID:          id,
		Name:        template.Name,
		Description: template.Description,
		Elements:    template.Elements,
		CreatedBy:   template.CreatedBy,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert template: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TemplateRepository) Update(ctx context.Context, id int64, patch ports.TemplatePatch) (*domain.Template, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Elements != nil {
		set["elements"] = *patch.Elements
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc templateDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("update template: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TemplateRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}
