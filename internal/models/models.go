package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreditAccount holds a user's metered-usage balance
type CreditAccount struct {
	gorm.Model
	UserID  string `json:"user_id" gorm:"uniqueIndex;not null;size:100"`
	Balance int64  `json:"balance" gorm:"not null;default:0"`
}

// TableName specifies the table name for CreditAccount
func (CreditAccount) TableName() string {
	return "credit_accounts"
}

// JSONMap is a string-keyed JSON column
type JSONMap map[string]interface{}

// Value implements driver.Valuer interface for JSONMap
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner interface for JSONMap
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return errors.New("unsupported type for JSONMap")
		}
	}
	return json.Unmarshal(bytes, m)
}

// StringList is a JSON-encoded list of strings
type StringList []string

// Value implements driver.Valuer interface for StringList
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface for StringList
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return errors.New("unsupported type for StringList")
		}
	}
	return json.Unmarshal(bytes, l)
}

// EditRecord is an append-only audit row written once per completed edit
type EditRecord struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	EpisodeID   string    `json:"episode_id" gorm:"not null;index;size:100"`
	UserID      string    `json:"user_id" gorm:"not null;index;size:100"`
	EditType    string    `json:"edit_type" gorm:"not null;size:50"`
	ArtifactURL string    `json:"artifact_url" gorm:"size:500"`
	DisplayName string    `json:"display_name" gorm:"size:200"`
	Metadata    JSONMap   `json:"metadata,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for EditRecord
func (EditRecord) TableName() string {
	return "edit_records"
}

// Pipeline run status constants
const (
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// PipelineRun records the outcome of one orchestrator run
type PipelineRun struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	UUID          string     `json:"uuid" gorm:"uniqueIndex;not null"`
	UserID        string     `json:"user_id" gorm:"not null;index;size:100"`
	EpisodeID     string     `json:"episode_id" gorm:"not null;index;size:100"`
	Status        string     `json:"status" gorm:"not null;size:20"`
	StepsApplied  StringList `json:"steps_applied" gorm:"type:text"`
	FailedStep    string     `json:"failed_step,omitempty" gorm:"size:50"`
	ErrorMessage  string     `json:"error_message,omitempty" gorm:"size:500"`
	FinalAudioURL string     `json:"final_audio_url,omitempty" gorm:"size:500"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName specifies the table name for PipelineRun
func (PipelineRun) TableName() string {
	return "pipeline_runs"
}

// BeforeCreate generates a UUID before creating a new run record
func (r *PipelineRun) BeforeCreate(tx *gorm.DB) error {
	if r.UUID == "" {
		r.UUID = uuid.New().String()
	}
	return nil
}
