package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// One row per channel, config as a JSON blob. All reads go through a caching
// layer, so the row shape stays simple rather than normalized.
type channelConfigRow struct {
	ID        uint   `gorm:"primarykey"`
	ChannelID string `gorm:"uniqueIndex;not null"`
	Config    string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (channelConfigRow) TableName() string {
	return "channel_moderation_configs"
}

type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&channelConfigRow{}); err != nil {
		return nil, fmt.Errorf("migrating config store: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) GetConfig(ctx context.Context, channelID string) (*Compiled, error) {
	var row channelConfigRow
	if err := s.db.WithContext(ctx).Where("channel_id = ?", channelID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config for %s: %w", channelID, err)
	}
	var cfg ChannelConfig
	if err := json.Unmarshal([]byte(row.Config), &cfg); err != nil {
		return nil, fmt.Errorf("decoding stored config for %s: %w", channelID, err)
	}
	return Compile(&cfg)
}

func (s *GormStore) PutConfig(ctx context.Context, channelID string, cfg *ChannelConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	// compile as a write-time sanity check, even though validation covers
	// everything compilation can reject
	if _, err := Compile(cfg); err != nil {
		return err
	}
	blob, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config for %s: %w", channelID, err)
	}
	row := channelConfigRow{
		ChannelID: channelID,
		Config:    string(blob),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "channel_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"config", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("writing config for %s: %w", channelID, err)
	}
	return nil
}

func (s *GormStore) DeleteConfig(ctx context.Context, channelID string) error {
	res := s.db.WithContext(ctx).Where("channel_id = ?", channelID).Delete(&channelConfigRow{})
	if res.Error != nil {
		return fmt.Errorf("deleting config for %s: %w", channelID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListChannels(ctx context.Context) ([]string, error) {
	var out []string
	err := s.db.WithContext(ctx).Model(&channelConfigRow{}).
		Order("channel_id").Pluck("channel_id", &out).Error
	if err != nil {
		return nil, fmt.Errorf("listing configured channels: %w", err)
	}
	return out, nil
}
