package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/types"
)

type VoiceConversationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, conversation *types.VoiceConversation) (*types.VoiceConversation, error)
}

type voiceConversationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVoiceConversationRepo(db *gorm.DB, baseLog *logger.Logger) VoiceConversationRepo {
	return &voiceConversationRepo{db: db, log: baseLog.With("repo", "VoiceConversationRepo")}
}

func (r *voiceConversationRepo) Create(ctx context.Context, tx *gorm.DB, conversation *types.VoiceConversation) (*types.VoiceConversation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(conversation).Error; err != nil {
		return nil, err
	}
	return conversation, nil
}
