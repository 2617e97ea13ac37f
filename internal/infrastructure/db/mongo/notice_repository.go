package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/examboard/portal-api/internal/core/domain"
)

const noticeCollection = "notices"

type NoticeRepository struct {
	coll *mongo.Collection
}

func NewNoticeRepository(db *mongo.Database) *NoticeRepository {
	return &NoticeRepository{coll: db.Collection(noticeCollection)}
}

type mongoNotice struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Body          string             `bson:"body"`
	AttachmentURL string             `bson:"attachment_url,omitempty"`
	Published     bool               `bson:"published"`
	CreatedAt     int64              `bson:"created_at"`
	UpdatedAt     int64              `bson:"updated_at"`
}

func (r *NoticeRepository) Insert(ctx context.Context, n *domain.Notice) (*domain.Notice, error) {
	doc := mongoNotice{
		Title:         n.Title,
		Body:          n.Body,
		AttachmentURL: n.AttachmentURL,
		Published:     n.Published,
		CreatedAt:     n.CreatedAt.Unix(),
		UpdatedAt:     n.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert notice: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *NoticeRepository) FindByID(ctx context.Context, id string) (*domain.Notice, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNoticeNotFound
	}

	var mn mongoNotice
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mn); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNoticeNotFound
		}
		return nil, fmt.Errorf("find notice: %w", err)
	}
	return mn.toDomain(), nil
}

func (r *NoticeRepository) FindPublished(ctx context.Context) ([]domain.Notice, error) {
	return r.find(ctx, bson.M{"published": true})
}

func (r *NoticeRepository) FindAll(ctx context.Context) ([]domain.Notice, error) {
	return r.find(ctx, bson.M{})
}

func (r *NoticeRepository) Update(ctx context.Context, n *domain.Notice) (*domain.Notice, error) {
	oid, err := primitive.ObjectIDFromHex(n.ID)
	if err != nil {
		return nil, domain.ErrNoticeNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":          n.Title,
		"body":           n.Body,
		"attachment_url": n.AttachmentURL,
		"published":      n.Published,
		"updated_at":     n.UpdatedAt.Unix(),
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return nil, fmt.Errorf("update notice: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNoticeNotFound
	}
	return r.FindByID(ctx, n.ID)
}

func (r *NoticeRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNoticeNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoticeNotFound
	}
	return nil
}

func (r *NoticeRepository) find(ctx context.Context, filter bson.M) ([]domain.Notice, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Notice
	for cur.Next(ctx) {
		var mn mongoNotice
		if err := cur.Decode(&mn); err != nil {
			return nil, fmt.Errorf("decode notice: %w", err)
		}
		out = append(out, *mn.toDomain())
	}
	return out, cur.Err()
}

func (mn *mongoNotice) toDomain() *domain.Notice {
	return &domain.Notice{
		ID:            mn.ID.Hex(),
		Title:         mn.Title,
		Body:          mn.Body,
		AttachmentURL: mn.AttachmentURL,
		Published:     mn.Published,
		CreatedAt:     unixToTime(mn.CreatedAt),
		UpdatedAt:     unixToTime(mn.UpdatedAt),
	}
}
