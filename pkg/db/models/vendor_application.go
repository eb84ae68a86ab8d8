package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/enums"
)

// VendorApplication captures a submitted onboarding form together with its
// validated document uploads.
type VendorApplication struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessName  string             `gorm:"column:business_name;not null"`
	ContactName   string             `gorm:"column:contact_name;not null"`
	Email         string             `gorm:"column:email;not null;uniqueIndex"`
	Phone         string             `gorm:"column:phone;not null"`
	GSTIN         *string            `gorm:"column:gstin"`
	AddressLine   string             `gorm:"column:address_line;not null"`
	City          string             `gorm:"column:city;not null"`
	Pincode       string             `gorm:"column:pincode;not null"`
	Status        enums.VendorStatus `gorm:"column:status;not null;default:'pending'"`
	ReviewNote    *string            `gorm:"column:review_note"`
	ReviewedBy    *uuid.UUID         `gorm:"column:reviewed_by;type:uuid"`
	ReviewedAt    *time.Time         `gorm:"column:reviewed_at"`
	VendorID      *uuid.UUID         `gorm:"column:vendor_id;type:uuid"`
	Documents     []VendorDocument   `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// VendorDocument is one validated upload slot on an application.
type VendorDocument struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ApplicationID uuid.UUID          `gorm:"column:application_id;type:uuid;not null;index"`
	Kind          enums.DocumentKind `gorm:"column:kind;not null"`
	FileName      string             `gorm:"column:file_name;not null"`
	ContentType   string             `gorm:"column:content_type;not null"`
	SizeBytes     int64              `gorm:"column:size_bytes;not null"`
	StoragePath   string             `gorm:"column:storage_path;not null"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
}
