package model

import (
	"time"

	"github.com/google/uuid"
)

// ContactModel mirrors the 'contacts' table. The composite unique indexes on
// (user_id, email) and (user_id, phone) back the service-level duplicate
// check, closing the check-then-act window under concurrent writers.
type ContactModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_contacts_user_email;uniqueIndex:idx_contacts_user_phone"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Surname   string    `gorm:"type:varchar(100)"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_contacts_user_email"`
	Phone     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_contacts_user_phone"`
	Birthday  time.Time `gorm:"type:date"`
	Notes     string    `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ContactModel) TableName() string {
	return "contacts"
}
