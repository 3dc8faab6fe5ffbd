package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ValidWNTDStatuses defines the allowed lifecycle statuses for a WNTD record.
var ValidWNTDStatuses = map[string]bool{
	"in_progress":     true,
	"completed":       true,
	"not_started":     true,
	"decommissioned":  true,
	"pending_rebuild": true,
}

// ValidImplementationCategories defines the allowed work categories for an
// implementation tracking record.
var ValidImplementationCategories = map[string]bool{
	"wntd_rebuild":     true,
	"site_upgrade":     true,
	"parameter_change": true,
	"enm_script":       true,
	"decommission":     true,
}

// ValidImplementationStatuses defines the allowed progress statuses for an
// implementation tracking record.
var ValidImplementationStatuses = map[string]bool{
	"not_started": true,
	"in_progress": true,
	"completed":   true,
	"on_hold":     true,
	"cancelled":   true,
}

// History change types. Every mutation of a tracked record is written to
// the matching history table with one of these markers.
const (
	ChangeTypeCreate = "create"
	ChangeTypeUpdate = "update"
	ChangeTypeDelete = "delete"
)

// WNTD represents a wireless network termination device deployment record.
// @Description WNTD represents a wireless network termination device deployment record.
type WNTD struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	SiteName       string         `json:"site_name" binding:"required,min=1,max=255" gorm:"type:varchar(255);not null;index"`
	LocID          string         `json:"loc_id,omitempty" gorm:"type:varchar(255);index"`
	WNTD           string         `json:"wntd" binding:"required,min=1,max=255" gorm:"column:wntd;type:varchar(255);not null;index"`
	IMSI           string         `json:"imsi,omitempty" gorm:"column:imsi;type:varchar(64)"`
	Version        string         `json:"version,omitempty" gorm:"type:varchar(64)"`
	AVC            string         `json:"avc,omitempty" gorm:"column:avc;type:varchar(64)"`
	BWProfile      string         `json:"bw_profile,omitempty" gorm:"column:bw_profile;type:varchar(128)"`
	Lon            *float64       `json:"lon,omitempty"`
	Lat            *float64       `json:"lat,omitempty"`
	HomeCell       string         `json:"home_cell,omitempty" gorm:"type:varchar(128)"`
	HomePCI        *int           `json:"home_pci,omitempty" gorm:"column:home_pci"`
	TrafficProfile string         `json:"traffic_profile,omitempty" gorm:"type:varchar(128)"`
	Status         string         `json:"status,omitempty" gorm:"type:varchar(64);index"`
	Remarks        string         `json:"remarks,omitempty" gorm:"type:text"`
	StartDate      *time.Time     `json:"start_date,omitempty"`
	EndDate        *time.Time     `json:"end_date,omitempty"`
	SolutionType   string         `json:"solution_type,omitempty" gorm:"type:varchar(128)"`
	CreatedAt      time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

func (WNTD) TableName() string { return "wntds" }

// AttributeMap returns the business attributes of the record keyed by column
// name. History diffing and creation records are driven off this map.
func (w *WNTD) AttributeMap() map[string]any {
	return map[string]any{
		"site_name":       w.SiteName,
		"loc_id":          w.LocID,
		"wntd":            w.WNTD,
		"imsi":            w.IMSI,
		"version":         w.Version,
		"avc":             w.AVC,
		"bw_profile":      w.BWProfile,
		"lon":             w.Lon,
		"lat":             w.Lat,
		"home_cell":       w.HomeCell,
		"home_pci":        w.HomePCI,
		"traffic_profile": w.TrafficProfile,
		"status":          w.Status,
		"remarks":         w.Remarks,
		"start_date":      w.StartDate,
		"end_date":        w.EndDate,
		"solution_type":   w.SolutionType,
	}
}

// WNTDHistory is one append-only audit row for a single field change on a WNTD.
type WNTDHistory struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	WNTDID     uuid.UUID  `json:"wntd_id" gorm:"column:wntd_id;type:uuid;not null;index"`
	FieldName  string     `json:"field_name" gorm:"type:varchar(255);not null"`
	OldValue   *string    `json:"old_value" gorm:"type:text"`
	NewValue   *string    `json:"new_value" gorm:"type:text"`
	UserID     *uuid.UUID `json:"user_id" gorm:"type:uuid"`
	ChangeType string     `json:"change_type" gorm:"type:varchar(16);not null"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (WNTDHistory) TableName() string { return "wntd_histories" }

// Implementation represents a site implementation tracking record.
// @Description Implementation represents a site implementation tracking record.
type Implementation struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	SiteName   string         `json:"site_name" binding:"required,min=1,max=255" gorm:"type:varchar(255);not null;index:idx_impl_site_category"`
	Category   string         `json:"category" binding:"required" gorm:"type:varchar(64);not null;index:idx_impl_site_category"`
	Status     string         `json:"status,omitempty" gorm:"type:varchar(64);index"`
	EnmScripts string         `json:"enm_scripts,omitempty" gorm:"type:text"`
	Notes      string         `json:"notes,omitempty" gorm:"type:text"`
	Remarks    string         `json:"remarks,omitempty" gorm:"type:text"`
	StartDate  *time.Time     `json:"start_date,omitempty"`
	EndDate    *time.Time     `json:"end_date,omitempty"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Implementation) TableName() string { return "implementations" }

// AttributeMap returns the business attributes keyed by column name.
func (m *Implementation) AttributeMap() map[string]any {
	return map[string]any{
		"site_name":   m.SiteName,
		"category":    m.Category,
		"status":      m.Status,
		"enm_scripts": m.EnmScripts,
		"notes":       m.Notes,
		"remarks":     m.Remarks,
		"start_date":  m.StartDate,
		"end_date":    m.EndDate,
	}
}

// ImplementationHistory is one append-only audit row for an Implementation change.
type ImplementationHistory struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	ImplementationID uuid.UUID  `json:"implementation_id" gorm:"type:uuid;not null;index"`
	FieldName        string     `json:"field_name" gorm:"type:varchar(255);not null"`
	OldValue         *string    `json:"old_value" gorm:"type:text"`
	NewValue         *string    `json:"new_value" gorm:"type:text"`
	UserID           *uuid.UUID `json:"user_id" gorm:"type:uuid"`
	ChangeType       string     `json:"change_type" gorm:"type:varchar(16);not null"`
	CreatedAt        time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (ImplementationHistory) TableName() string { return "implementation_histories" }

// RANParameter represents one RAN configuration parameter record.
// Parameter imports always insert, never upsert.
type RANParameter struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	ParameterName  string         `json:"parameter_name" binding:"required,min=1,max=255" gorm:"type:varchar(255);not null;index"`
	ParameterValue string         `json:"parameter_value,omitempty" gorm:"type:varchar(255)"`
	Unit           string         `json:"unit,omitempty" gorm:"type:varchar(64)"`
	Domain         string         `json:"domain,omitempty" gorm:"type:varchar(64)"`
	DataType       string         `json:"data_type,omitempty" gorm:"type:varchar(64)"`
	MOClassName    string         `json:"mo_class_name,omitempty" gorm:"column:mo_class_name;type:varchar(255)"`
	Technology     string         `json:"technology,omitempty" gorm:"type:varchar(64)"`
	Vendor         string         `json:"vendor,omitempty" gorm:"type:varchar(64)"`
	Applicability  string         `json:"applicability,omitempty" gorm:"type:varchar(255)"`
	Remarks        string         `json:"remarks,omitempty" gorm:"type:text"`
	CreatedAt      time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

func (RANParameter) TableName() string { return "ran_parameters" }

// AttributeMap returns the business attributes keyed by column name.
func (p *RANParameter) AttributeMap() map[string]any {
	return map[string]any{
		"parameter_name":  p.ParameterName,
		"parameter_value": p.ParameterValue,
		"unit":            p.Unit,
		"domain":          p.Domain,
		"data_type":       p.DataType,
		"mo_class_name":   p.MOClassName,
		"technology":      p.Technology,
		"vendor":          p.Vendor,
		"applicability":   p.Applicability,
		"remarks":         p.Remarks,
	}
}

// RANParameterHistory is one append-only audit row for a RANParameter change.
type RANParameterHistory struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	RANParameterID uuid.UUID  `json:"ran_parameter_id" gorm:"column:ran_parameter_id;type:uuid;not null;index"`
	FieldName      string     `json:"field_name" gorm:"type:varchar(255);not null"`
	OldValue       *string    `json:"old_value" gorm:"type:text"`
	NewValue       *string    `json:"new_value" gorm:"type:text"`
	UserID         *uuid.UUID `json:"user_id" gorm:"type:uuid"`
	ChangeType     string     `json:"change_type" gorm:"type:varchar(16);not null"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (RANParameterHistory) TableName() string { return "ran_parameter_histories" }

// RANStructParameter represents one struct member row under a RAN parameter.
// Struct members carry no soft-delete marker; removal is physical.
type RANStructParameter struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	RANParameterID *uuid.UUID `json:"ran_parameter_id,omitempty" gorm:"column:ran_parameter_id;type:uuid;index"`
	Seq            *int       `json:"seq,omitempty"`
	MemberName     string     `json:"member_name" binding:"required,min=1,max=255" gorm:"type:varchar(255);not null"`
	MemberValue    string     `json:"member_value,omitempty" gorm:"type:varchar(255)"`
	Mul            bool       `json:"mul" gorm:"column:mul;default:false"`
	Remarks        string     `json:"remarks,omitempty" gorm:"type:text"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (RANStructParameter) TableName() string { return "ran_struct_parameters" }

// AttributeMap returns the business attributes keyed by column name.
func (p *RANStructParameter) AttributeMap() map[string]any {
	return map[string]any{
		"ran_parameter_id": p.RANParameterID,
		"seq":              p.Seq,
		"member_name":      p.MemberName,
		"member_value":     p.MemberValue,
		"mul":              p.Mul,
		"remarks":          p.Remarks,
	}
}

// RANStructParameterHistory is one append-only audit row for a struct member change.
type RANStructParameterHistory struct {
	ID                   uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	RANStructParameterID uuid.UUID  `json:"ran_struct_parameter_id" gorm:"column:ran_struct_parameter_id;type:uuid;not null;index"`
	FieldName            string     `json:"field_name" gorm:"type:varchar(255);not null"`
	OldValue             *string    `json:"old_value" gorm:"type:text"`
	NewValue             *string    `json:"new_value" gorm:"type:text"`
	UserID               *uuid.UUID `json:"user_id" gorm:"type:uuid"`
	ChangeType           string     `json:"change_type" gorm:"type:varchar(16);not null"`
	CreatedAt            time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt            time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (RANStructParameterHistory) TableName() string { return "ran_struct_parameter_histories" }
