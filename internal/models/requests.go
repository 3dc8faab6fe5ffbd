package models

import (
	"time"

	"github.com/google/uuid"
)

// CreateWNTDRequest defines the request payload for creating a WNTD record.
type CreateWNTDRequest struct {
	SiteName       string     `json:"site_name" binding:"required,min=1,max=255"`
	LocID          string     `json:"loc_id,omitempty" binding:"max=255"`
	WNTD           string     `json:"wntd" binding:"required,min=1,max=255"`
	IMSI           string     `json:"imsi,omitempty" binding:"max=64"`
	Version        string     `json:"version,omitempty" binding:"max=64"`
	AVC            string     `json:"avc,omitempty" binding:"max=64"`
	BWProfile      string     `json:"bw_profile,omitempty" binding:"max=128"`
	Lon            *float64   `json:"lon,omitempty"`
	Lat            *float64   `json:"lat,omitempty"`
	HomeCell       string     `json:"home_cell,omitempty" binding:"max=128"`
	HomePCI        *int       `json:"home_pci,omitempty"`
	TrafficProfile string     `json:"traffic_profile,omitempty" binding:"max=128"`
	Status         string     `json:"status,omitempty" binding:"max=64"`
	Remarks        string     `json:"remarks,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	SolutionType   string     `json:"solution_type,omitempty" binding:"max=128"`
}

// UpdateWNTDRequest defines the request payload for updating a WNTD record.
// Pointer fields distinguish "not provided" from zero values.
type UpdateWNTDRequest struct {
	SiteName       *string    `json:"site_name,omitempty" binding:"omitempty,min=1,max=255"`
	LocID          *string    `json:"loc_id,omitempty" binding:"omitempty,max=255"`
	WNTD           *string    `json:"wntd,omitempty" binding:"omitempty,min=1,max=255"`
	IMSI           *string    `json:"imsi,omitempty" binding:"omitempty,max=64"`
	Version        *string    `json:"version,omitempty" binding:"omitempty,max=64"`
	AVC            *string    `json:"avc,omitempty" binding:"omitempty,max=64"`
	BWProfile      *string    `json:"bw_profile,omitempty" binding:"omitempty,max=128"`
	Lon            *float64   `json:"lon,omitempty"`
	Lat            *float64   `json:"lat,omitempty"`
	HomeCell       *string    `json:"home_cell,omitempty" binding:"omitempty,max=128"`
	HomePCI        *int       `json:"home_pci,omitempty"`
	TrafficProfile *string    `json:"traffic_profile,omitempty" binding:"omitempty,max=128"`
	Status         *string    `json:"status,omitempty" binding:"omitempty,max=64"`
	Remarks        *string    `json:"remarks,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	SolutionType   *string    `json:"solution_type,omitempty" binding:"omitempty,max=128"`
}

// CreateImplementationRequest defines the request payload for creating an implementation record.
type CreateImplementationRequest struct {
	SiteName   string     `json:"site_name" binding:"required,min=1,max=255"`
	Category   string     `json:"category" binding:"required,max=64"`
	Status     string     `json:"status,omitempty" binding:"max=64"`
	EnmScripts string     `json:"enm_scripts,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	Remarks    string     `json:"remarks,omitempty"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

// UpdateImplementationRequest defines the request payload for updating an implementation record.
type UpdateImplementationRequest struct {
	SiteName   *string    `json:"site_name,omitempty" binding:"omitempty,min=1,max=255"`
	Category   *string    `json:"category,omitempty" binding:"omitempty,max=64"`
	Status     *string    `json:"status,omitempty" binding:"omitempty,max=64"`
	EnmScripts *string    `json:"enm_scripts,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	Remarks    *string    `json:"remarks,omitempty"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

// CreateRANParameterRequest defines the request payload for creating a RAN parameter.
type CreateRANParameterRequest struct {
	ParameterName  string `json:"parameter_name" binding:"required,min=1,max=255"`
	ParameterValue string `json:"parameter_value,omitempty" binding:"max=255"`
	Unit           string `json:"unit,omitempty" binding:"max=64"`
	Domain         string `json:"domain,omitempty" binding:"max=64"`
	DataType       string `json:"data_type,omitempty" binding:"max=64"`
	MOClassName    string `json:"mo_class_name,omitempty" binding:"max=255"`
	Technology     string `json:"technology,omitempty" binding:"max=64"`
	Vendor         string `json:"vendor,omitempty" binding:"max=64"`
	Applicability  string `json:"applicability,omitempty" binding:"max=255"`
	Remarks        string `json:"remarks,omitempty"`
}

// CreateRANStructParameterRequest defines the request payload for creating a struct member row.
type CreateRANStructParameterRequest struct {
	RANParameterID *uuid.UUID `json:"ran_parameter_id,omitempty"`
	Seq            *int       `json:"seq,omitempty"`
	MemberName     string     `json:"member_name" binding:"required,min=1,max=255"`
	MemberValue    string     `json:"member_value,omitempty" binding:"max=255"`
	Mul            *bool      `json:"mul,omitempty"`
	Remarks        string     `json:"remarks,omitempty"`
}
