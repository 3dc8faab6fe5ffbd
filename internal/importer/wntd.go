package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"netops-portal/internal/history"
	"netops-portal/internal/models"
)

// WNTDProcessor imports wireless device deployment records. A row matches an
// existing record by WNTD code first, then by the (site_name, loc_id) pair;
// matches are updated in place when UpdateExisting is set, recording only the
// fields whose values actually changed.
type WNTDProcessor struct{}

func (WNTDProcessor) Name() string { return "wntd" }

func (WNTDProcessor) RequiredFields() []string {
	return []string{"wntd", "site_name"}
}

func (WNTDProcessor) Rules() RuleSet {
	return RuleSet{
		"wntd":            {Type: FieldString, Required: true, MaxLen: 255},
		"site_name":       {Type: FieldString, Required: true, MaxLen: 255},
		"loc_id":          {Type: FieldString, MaxLen: 255},
		"imsi":            {Type: FieldString, MaxLen: 64},
		"version":         {Type: FieldString, MaxLen: 64},
		"avc":             {Type: FieldString, MaxLen: 64},
		"bw_profile":      {Type: FieldString, MaxLen: 128},
		"lon":             {Type: FieldNumeric},
		"lat":             {Type: FieldNumeric},
		"home_cell":       {Type: FieldString, MaxLen: 128},
		"home_pci":        {Type: FieldInteger},
		"traffic_profile": {Type: FieldString, MaxLen: 128},
		"status":          {Type: FieldString, MaxLen: 64},
		"remarks":         {Type: FieldString},
		"start_date":      {Type: FieldDate},
		"end_date":        {Type: FieldDate},
		"solution_type":   {Type: FieldString, MaxLen: 128},
	}
}

// ValidateRow applies the cross-field business rules: coordinate ranges,
// status membership, and start/end date ordering.
func (WNTDProcessor) ValidateRow(row Row) (Row, error) {
	if lat := rowFloatPtr(row, "lat"); lat != nil {
		if *lat < -90 || *lat > 90 {
			return nil, fmt.Errorf("latitude %v is out of range [-90, 90]", *lat)
		}
	}
	if lon := rowFloatPtr(row, "lon"); lon != nil {
		if *lon < -180 || *lon > 180 {
			return nil, fmt.Errorf("longitude %v is out of range [-180, 180]", *lon)
		}
	}

	if status := rowString(row, "status"); status != "" {
		normalized := strings.ToLower(strings.ReplaceAll(status, " ", "_"))
		if !models.ValidWNTDStatuses[normalized] {
			return nil, fmt.Errorf("invalid status: %s", status)
		}
		row["status"] = normalized
	}

	start := rowTimePtr(row, "start_date")
	end := rowTimePtr(row, "end_date")
	if start != nil && end != nil && end.Before(*start) {
		return nil, fmt.Errorf("end_date must not be before start_date")
	}
	return row, nil
}

func (p WNTDProcessor) ProcessRow(tx *gorm.DB, row Row, opts Options, actorID *uuid.UUID) error {
	code := rowString(row, "wntd")
	siteName := rowString(row, "site_name")
	locID := rowString(row, "loc_id")

	var existing models.WNTD
	found := false
	if code != "" {
		err := tx.Where("wntd = ?", code).First(&existing).Error
		if err == nil {
			found = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	if !found && siteName != "" && locID != "" {
		err := tx.Where("site_name = ? AND loc_id = ?", siteName, locID).First(&existing).Error
		if err == nil {
			found = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	if found && opts.UpdateExisting {
		before := existing.AttributeMap()
		applyWNTDRow(&existing, row)
		changes := history.DiffChanges(before, existing.AttributeMap())
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		return history.Record(tx, models.WNTDHistory{}.TableName(), "wntd_id", existing.ID, actorID, models.ChangeTypeUpdate, changes)
	}

	record := models.WNTD{ID: uuid.New()}
	applyWNTDRow(&record, row)
	if err := tx.Create(&record).Error; err != nil {
		return err
	}
	return history.Record(tx, models.WNTDHistory{}.TableName(), "wntd_id", record.ID, actorID, models.ChangeTypeCreate, history.CreationChanges(record.AttributeMap()))
}

// applyWNTDRow copies mapped values onto the record. Only fields present in
// the row are touched; empty cells normalize to their zero value.
func applyWNTDRow(w *models.WNTD, row Row) {
	if _, ok := row["site_name"]; ok {
		w.SiteName = rowString(row, "site_name")
	}
	if _, ok := row["loc_id"]; ok {
		w.LocID = rowString(row, "loc_id")
	}
	if _, ok := row["wntd"]; ok {
		w.WNTD = rowString(row, "wntd")
	}
	if _, ok := row["imsi"]; ok {
		w.IMSI = rowString(row, "imsi")
	}
	if _, ok := row["version"]; ok {
		w.Version = rowString(row, "version")
	}
	if _, ok := row["avc"]; ok {
		w.AVC = rowString(row, "avc")
	}
	if _, ok := row["bw_profile"]; ok {
		w.BWProfile = rowString(row, "bw_profile")
	}
	if _, ok := row["lon"]; ok {
		w.Lon = rowFloatPtr(row, "lon")
	}
	if _, ok := row["lat"]; ok {
		w.Lat = rowFloatPtr(row, "lat")
	}
	if _, ok := row["home_cell"]; ok {
		w.HomeCell = rowString(row, "home_cell")
	}
	if _, ok := row["home_pci"]; ok {
		w.HomePCI = rowIntPtr(row, "home_pci")
	}
	if _, ok := row["traffic_profile"]; ok {
		w.TrafficProfile = rowString(row, "traffic_profile")
	}
	if _, ok := row["status"]; ok {
		w.Status = rowString(row, "status")
	}
	if _, ok := row["remarks"]; ok {
		w.Remarks = rowString(row, "remarks")
	}
	if _, ok := row["start_date"]; ok {
		w.StartDate = rowTimePtr(row, "start_date")
	}
	if _, ok := row["end_date"]; ok {
		w.EndDate = rowTimePtr(row, "end_date")
	}
	if _, ok := row["solution_type"]; ok {
		w.SolutionType = rowString(row, "solution_type")
	}
}
