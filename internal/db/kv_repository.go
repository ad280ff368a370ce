package db

import (
	"strings"
	"time"

	"github.com/terraincognita07/emerald/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRepository is a string key-value medium over the storage_entries table.
type KVRepository struct {
	database *gorm.DB
}

func NewKVRepository(database *gorm.DB) *KVRepository {
	return &KVRepository{database: database}
}

func (repo *KVRepository) GetString(key string) (string, bool, error) {
	entry := models.StorageEntry{}
	result := repo.database.
		Select("storage_key", "value").
		Where("storage_key = ?", key).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return "", false, result.Error
	}
	if result.RowsAffected == 0 {
		return "", false, nil
	}
	return entry.Value, true, nil
}

func (repo *KVRepository) SetString(key string, value string) error {
	entry := models.StorageEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (repo *KVRepository) RemoveKey(key string) error {
	return repo.database.Where("storage_key = ?", key).Delete(&models.StorageEntry{}).Error
}

func (repo *KVRepository) ListKeys() ([]string, error) {
	keys := make([]string, 0)
	if err := repo.database.Model(&models.StorageEntry{}).Order("storage_key ASC").Pluck("storage_key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ListKeysWithPrefix filters in SQL so unrelated rows are never loaded.
func (repo *KVRepository) ListKeysWithPrefix(prefix string) ([]string, error) {
	keys := make([]string, 0)
	err := repo.database.Model(&models.StorageEntry{}).
		Where(`storage_key LIKE ? ESCAPE '\'`, likeEscaper.Replace(prefix)+"%").
		Order("storage_key ASC").
		Pluck("storage_key", &keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}
