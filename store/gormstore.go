package store

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// documentRow is the MySQL shape of a stored document. The unique
// (collection, doc_key) index is what makes CreateIfAbsent a real
// conditional write instead of a check-then-insert race.
type documentRow struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	Collection string    `gorm:"column:collection;size:32;not null;uniqueIndex:uq_documents_collection_key,priority:1"`
	DocKey     string    `gorm:"column:doc_key;size:191;not null;uniqueIndex:uq_documents_collection_key,priority:2"`
	Data       []byte    `gorm:"column:data;type:json;not null"`
	CreatedAt  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create"`
	UpdatedAt  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP"`
}

func (documentRow) TableName() string {
	return "documents"
}

// GormStore persists documents in MySQL and forwards change signals to local
// subscribers and, when a feed is attached, to the other app instances.
type GormStore struct {
	db     *gorm.DB
	hub    *hub
	feed   *Feed
	logger *zap.Logger
}

func NewGormStore(db *gorm.DB, feed *Feed, logger *zap.Logger) *GormStore {
	s := &GormStore{db: db, hub: newHub(), feed: feed, logger: logger}
	if feed != nil {
		feed.attach(s.hub)
	}
	return s
}

func (s *GormStore) Put(ctx context.Context, col Collection, key string, doc any) error {
	data, err := marshalDocument(doc)
	if err != nil {
		return err
	}

	row := documentRow{Collection: string(col), DocKey: key, Data: data}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data"}),
	}).Create(&row).Error
	if err != nil {
		s.logger.Error("document put failed",
			zap.String("collection", string(col)), zap.String("key", key), zap.Error(err))
		return err
	}

	s.publish(col)
	return nil
}

func (s *GormStore) Patch(ctx context.Context, col Collection, key string, fields map[string]any) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row documentRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND doc_key = ?", col, key).
			Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		data, err := mergePatch(row.Data, fields)
		if err != nil {
			return err
		}
		return tx.Model(&documentRow{}).
			Where("id = ?", row.ID).
			Update("data", []byte(data)).Error
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("document patch failed",
				zap.String("collection", string(col)), zap.String("key", key), zap.Error(err))
		}
		return err
	}

	s.publish(col)
	return nil
}

func (s *GormStore) CreateIfAbsent(ctx context.Context, col Collection, key string, doc any) error {
	data, err := marshalDocument(doc)
	if err != nil {
		return err
	}

	row := documentRow{Collection: string(col), DocKey: key, Data: data}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_key"}},
		DoNothing: true,
	}).Create(&row)
	if result.Error != nil {
		s.logger.Error("document create failed",
			zap.String("collection", string(col)), zap.String("key", key), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDuplicateKey
	}

	s.publish(col)
	return nil
}

func (s *GormStore) Get(ctx context.Context, col Collection, key string) (*Document, error) {
	var row documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ? AND doc_key = ?", col, key).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	doc := toDocument(row)
	return &doc, nil
}

func (s *GormStore) List(ctx context.Context, col Collection, order OrderBy) ([]Document, error) {
	dir := "created_at ASC, id ASC"
	if order == ByCreatedDesc {
		dir = "created_at DESC, id DESC"
	}

	var rows []documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ?", col).
		Order(dir).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, toDocument(row))
	}
	return docs, nil
}

func (s *GormStore) Subscribe(col Collection, fn func()) func() {
	return s.hub.subscribe(col, fn)
}

func (s *GormStore) publish(col Collection) {
	s.hub.notify(col)
	if s.feed != nil {
		s.feed.publish(col)
	}
}

func toDocument(row documentRow) Document {
	return Document{
		Collection: Collection(row.Collection),
		Key:        row.DocKey,
		Data:       row.Data,
		CreatedAt:  row.CreatedAt,
	}
}
