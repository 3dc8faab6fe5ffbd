package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"netops-portal/internal/database"
	"netops-portal/internal/models"
)

// writeExportCSV streams rows as a CSV attachment. header is written first,
// then each row from next until it returns false.
func writeExportCSV(c *gin.Context, filename string, header []string, next func(w *csv.Writer) error) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	w := csv.NewWriter(c.Writer)
	if err := w.Write(header); err != nil {
		return
	}
	if err := next(w); err != nil {
		return
	}
	w.Flush()
}

func floatPtrString(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func intPtrString(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func timePtrString(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format("2006-01-02")
}

// ExportWNTDs godoc
// @Summary Export WNTD records as CSV
// @Tags exports
// @Produce  text/csv
// @Success 200 {string} string "CSV payload"
// @Router /exports/wntds [get]
func ExportWNTDs(c *gin.Context) {
	db := database.GetDB()
	query := db.Model(&models.WNTD{}).Order("site_name asc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var records []models.WNTD
	if err := query.Find(&records).Error; err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to export WNTD records", nil)
		return
	}

	header := []string{
		"site_name", "loc_id", "wntd", "imsi", "version", "avc", "bw_profile",
		"lon", "lat", "home_cell", "home_pci", "traffic_profile", "status",
		"remarks", "start_date", "end_date", "solution_type",
	}
	writeExportCSV(c, "wntds.csv", header, func(w *csv.Writer) error {
		for _, r := range records {
			row := []string{
				r.SiteName, r.LocID, r.WNTD, r.IMSI, r.Version, r.AVC, r.BWProfile,
				floatPtrString(r.Lon), floatPtrString(r.Lat), r.HomeCell,
				intPtrString(r.HomePCI), r.TrafficProfile, r.Status,
				r.Remarks, timePtrString(r.StartDate), timePtrString(r.EndDate), r.SolutionType,
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// ExportImplementations godoc
// @Summary Export implementation tracking records as CSV
// @Tags exports
// @Produce  text/csv
// @Success 200 {string} string "CSV payload"
// @Router /exports/implementations [get]
func ExportImplementations(c *gin.Context) {
	db := database.GetDB()
	query := db.Model(&models.Implementation{}).Order("site_name asc")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var records []models.Implementation
	if err := query.Find(&records).Error; err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to export implementation records", nil)
		return
	}

	header := []string{"site_name", "category", "status", "enm_scripts", "notes", "remarks", "start_date", "end_date"}
	writeExportCSV(c, "implementations.csv", header, func(w *csv.Writer) error {
		for _, r := range records {
			row := []string{
				r.SiteName, r.Category, r.Status, r.EnmScripts, r.Notes, r.Remarks,
				timePtrString(r.StartDate), timePtrString(r.EndDate),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// ExportRANStructParameters godoc
// @Summary Export RAN struct member rows as CSV
// @Tags exports
// @Produce  text/csv
// @Success 200 {string} string "CSV payload"
// @Router /exports/ran-struct-parameters [get]
func ExportRANStructParameters(c *gin.Context) {
	var records []models.RANStructParameter
	if err := database.GetDB().Order("seq asc").Find(&records).Error; err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to export struct members", nil)
		return
	}

	header := []string{"ran_parameter_id", "seq", "member_name", "member_value", "mul", "remarks"}
	writeExportCSV(c, "ran_struct_parameters.csv", header, func(w *csv.Writer) error {
		for _, r := range records {
			parent := ""
			if r.RANParameterID != nil {
				parent = r.RANParameterID.String()
			}
			row := []string{
				parent, intPtrString(r.Seq), r.MemberName, r.MemberValue,
				strconv.FormatBool(r.Mul), r.Remarks,
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// ExportRANParameters godoc
// @Summary Export RAN parameters as CSV
// @Tags exports
// @Produce  text/csv
// @Success 200 {string} string "CSV payload"
// @Router /exports/ran-parameters [get]
func ExportRANParameters(c *gin.Context) {
	var records []models.RANParameter
	if err := database.GetDB().Order("parameter_name asc").Find(&records).Error; err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to export RAN parameters", nil)
		return
	}

	header := []string{
		"parameter_name", "parameter_value", "unit", "domain", "data_type",
		"mo_class_name", "technology", "vendor", "applicability", "remarks",
	}
	writeExportCSV(c, "ran_parameters.csv", header, func(w *csv.Writer) error {
		for _, r := range records {
			row := []string{
				r.ParameterName, r.ParameterValue, r.Unit, r.Domain, r.DataType,
				r.MOClassName, r.Technology, r.Vendor, r.Applicability, r.Remarks,
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
