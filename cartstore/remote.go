package cartstore

import (
	"time"

	"printshop/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionCart is the remote session store row, keyed by the opaque session
// handle rather than any user identity
type SessionCart struct {
	SessionID string `gorm:"primaryKey;type:varchar(100)"`
	CreatedAt int64
	UpdatedAt int64
	Payload   []byte `gorm:"type:mediumblob"`
}

// DBStore is the remote (authoritative when reachable) tier backed by the
// main database
type DBStore struct {
	instance *gorm.DB
}

func NewDBStore() *DBStore {
	db.Instance.AutoMigrate(&SessionCart{})
	return &DBStore{instance: db.Instance}
}

func (r *DBStore) Get(key string) ([]byte, error) {
	var row SessionCart
	err := r.instance.First(&row, "session_id = ?", key).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.Payload, nil
}

func (r *DBStore) Set(key string, value []byte) error {
	row := SessionCart{
		SessionID: key,
		UpdatedAt: time.Now().Unix(),
		Payload:   value,
	}
	return r.instance.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
}

func (r *DBStore) Remove(key string) error {
	return r.instance.Delete(&SessionCart{}, "session_id = ?", key).Error
}
