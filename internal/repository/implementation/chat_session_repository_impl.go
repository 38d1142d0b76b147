package implementation

import (
	"context"
	"errors"

	"eli5-bot/internal/entity"
	"eli5-bot/internal/mapper"
	"eli5-bot/internal/model"
	"eli5-bot/internal/repository/contract"
	"eli5-bot/internal/repository/specification"
	"eli5-bot/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatSessionRepository(db *gorm.DB) contract.ChatSessionRepository {
	return &ChatSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatSessionRepositoryImpl) Create(ctx context.Context, session *entity.ChatSession) error {
	m, err := r.mapper.ChatSessionToModel(session)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return database.Translate(err)
	}
	return nil
}

func (r *ChatSessionRepositoryImpl) Patch(ctx context.Context, id string, userId uuid.UUID, patch entity.ChatSessionPatch) (bool, error) {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Messages != nil {
		raw, err := r.mapper.MessagesToJSON(*patch.Messages)
		if err != nil {
			return false, err
		}
		updates["messages"] = raw
	}
	if patch.LastUpdated != nil {
		updates["last_updated"] = patch.LastUpdated.UnixMilli()
	}

	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatSession{}),
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if len(updates) == 0 {
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return false, database.Translate(err)
		}
		return count > 0, nil
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return false, database.Translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ChatSessionRepositoryImpl) Delete(ctx context.Context, id string, userId uuid.UUID) (bool, error) {
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	result := query.Delete(&model.ChatSession{})
	if result.Error != nil {
		return false, database.Translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ChatSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	var m model.ChatSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, database.Translate(err)
	}
	return r.mapper.ChatSessionToEntity(&m)
}

func (r *ChatSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	var models []*model.ChatSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, database.Translate(err)
	}
	entities := make([]*entity.ChatSession, 0, len(models))
	for _, m := range models {
		e, err := r.mapper.ChatSessionToEntity(m)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (r *ChatSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatSession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, database.Translate(err)
	}
	return count, nil
}
