package db

import (
	"github.com/yogansh2008/AutoAttendDevArc/attend"
	"gorm.io/gorm"
)

// MeetingRecordModel mirrors the meeting_records schema.
type MeetingRecordModel struct {
	gorm.Model
	Platform     string `gorm:"not null;index:idx_platform_url,unique"`
	CanonicalURL string `gorm:"not null;index:idx_platform_url,unique"`
	Kind         string `gorm:"not null;default:''"`
	ExternalID   string
	RawInput     string
	Source       string `gorm:"index"`
}

func (MeetingRecordModel) TableName() string {
	return "meeting_records"
}

func toInternal(model MeetingRecordModel) *attend.MeetingRecord {
	return &attend.MeetingRecord{
		ID:           model.ID,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
		Platform:     model.Platform,
		Kind:         model.Kind,
		ExternalID:   model.ExternalID,
		CanonicalURL: model.CanonicalURL,
		RawInput:     model.RawInput,
		Source:       model.Source,
	}
}

func toModel(record *attend.MeetingRecord) *MeetingRecordModel {
	if record == nil {
		return &MeetingRecordModel{}
	}
	return &MeetingRecordModel{
		Model: gorm.Model{
			ID:        record.ID,
			CreatedAt: record.CreatedAt,
			UpdatedAt: record.UpdatedAt,
		},
		Platform:     record.Platform,
		Kind:         record.Kind,
		ExternalID:   record.ExternalID,
		CanonicalURL: record.CanonicalURL,
		RawInput:     record.RawInput,
		Source:       record.Source,
	}
}
