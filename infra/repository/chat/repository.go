package chat

import (
	"context"
	"errors"

	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/repository/chat"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a GORM-backed chat repository.
func New(db *gorm.DB) chat.Repository {
	return &repository{db: db}
}

func (r *repository) GetOrCreateByAccount(
	ctx context.Context,
	accountID uint,
) (*dto.ChatRead, error) {
	var row Chat
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.id")
		}).
		Where("account_id = ?", accountID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = Chat{AccountID: accountID}
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return nil, err
		}
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return mapModelToDTO(&row), nil
}

func (r *repository) AddMessage(
	ctx context.Context,
	create *dto.MessageCreate,
) (*dto.MessageRead, error) {
	row := &Message{
		ChatID:   create.ChatID,
		Question: create.Question,
		Answer:   create.Answer,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return &dto.MessageRead{
		ID:        row.ID,
		Question:  row.Question,
		Answer:    row.Answer,
		CreatedAt: row.CreatedAt,
	}, nil
}

func mapModelToDTO(c *Chat) *dto.ChatRead {
	messages := make([]dto.MessageRead, 0, len(c.Messages))
	for _, m := range c.Messages {
		messages = append(messages, dto.MessageRead{
			ID:        m.ID,
			Question:  m.Question,
			Answer:    m.Answer,
			CreatedAt: m.CreatedAt,
		})
	}
	return &dto.ChatRead{
		ID:        c.ID,
		AccountID: c.AccountID,
		Messages:  messages,
	}
}

var _ chat.Repository = (*repository)(nil)
