package postgres

import (
	"encoding/json"
	"time"

	"broadcast-service/internal/domain"
	"broadcast-service/internal/ports/output"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Compile-time check to ensure CaptionStore implements the output port
var _ output.CaptionStore = (*CaptionStore)(nil)

// CaptionStore struct - Secondary/Driven adapter for PostgreSQL
// Best-effort durability for session lifecycle and finalized captions.
// Callers log and swallow every error; the live pipeline never depends
// on these writes succeeding.
type CaptionStore struct {
	dbGorm *gorm.DB
}

// NewCaptionStore func - Creates new PostgreSQL caption store
func NewCaptionStore(dbGorm *gorm.DB) (*CaptionStore, error) {
	logrus.Info("Migrate broadcast tables ...")
	if err := domain.MigrateDatabase(dbGorm); err != nil {
		return nil, err
	}
	return &CaptionStore{
		dbGorm: dbGorm,
	}, nil
}

// SaveSession records a newly created broadcast session.
func (p *CaptionStore) SaveSession(sessionID string) error {
	now := time.Now()
	session := domain.BroadcastSession{
		ID:        sessionID,
		CreatedAt: &now,
	}
	if err := p.dbGorm.Create(&session).Error; err != nil {
		logrus.Errorln(err)
		return err
	}
	return nil
}

// CloseSession stamps the session's end time. Closing an unknown
// session updates no rows and is not an error.
func (p *CaptionStore) CloseSession(sessionID string) error {
	now := time.Now()
	tx := p.dbGorm.Model(&domain.BroadcastSession{}).
		Where("id = ?", sessionID).
		Update("ended_at", &now)
	if tx.Error != nil {
		logrus.Errorln(tx.Error)
		return tx.Error
	}
	return nil
}

// SaveCaption persists one finalized caption. Provisional and interim
// messages are never written; only the quality-pass record is durable.
func (p *CaptionStore) SaveCaption(sessionID string, msg domain.Message) error {
	translations, err := json.Marshal(msg.Translations)
	if err != nil {
		logrus.Errorln(err)
		return err
	}
	spokenAt := msg.Timestamp
	caption := domain.Caption{
		SessionID:    sessionID,
		Original:     msg.Original,
		Translations: string(translations),
		SpokenAt:     &spokenAt,
	}
	if err := p.dbGorm.Create(&caption).Error; err != nil {
		logrus.Errorln(err)
		return err
	}
	return nil
}
