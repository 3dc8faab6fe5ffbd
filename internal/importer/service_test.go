package importer

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"netops-portal/internal/database"
	"netops-portal/internal/models"
)

var testDB *gorm.DB
var testService *Service

func TestMain(m *testing.M) {
	var err error
	testDB, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := database.Migrate(testDB); err != nil {
		log.Fatalf("Failed to migrate test database schema: %v", err)
	}
	testService = NewService(testDB, "")

	exitCode := m.Run()

	sqlDB, err := testDB.DB()
	if err == nil {
		sqlDB.Close()
	}
	os.Exit(exitCode)
}

func clearTables() {
	tables := []string{
		"wntds", "wntd_histories",
		"implementations", "implementation_histories",
		"ran_parameters", "ran_parameter_histories",
		"ran_struct_parameters", "ran_struct_parameter_histories",
	}
	for _, table := range tables {
		if err := testDB.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("Failed to clear %s table: %v", table, err)
		}
	}
}

func writeImportCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.csv")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

var wntdMappings = map[string]string{
	"wntd":      "Device",
	"site_name": "Site",
	"loc_id":    "Loc",
	"status":    "Status",
}

func TestImportSkipsInvalidRowsAndImportsTheRest(t *testing.T) {
	clearTables()
	path := writeImportCSV(t, strings.Join([]string{
		"Device,Site,Loc,Status",
		"W100,SITE-1,LOC-1,in_progress", // valid
		",SITE-2,LOC-2,completed",       // missing required device code
		"W300,SITE-3,LOC-3,bogus",       // unknown status
	}, "\n"))

	opts := DefaultOptions()
	opts.SkipInvalidRows = true
	res := testService.ImportFromFile(context.Background(), WNTDProcessor{}, path, wntdMappings, &opts, nil)

	assert.True(t, res.Success)
	assert.Equal(t, 3, res.TotalRows)
	assert.Equal(t, 1, res.ImportedRows)
	assert.Equal(t, 2, res.SkippedRows)
	assert.Equal(t, 0, res.FailedRows)
	assert.Contains(t, res.Message, "Imported: 1")

	var devices []models.WNTD
	assert.NoError(t, testDB.Find(&devices).Error)
	assert.Len(t, devices, 1)
	assert.Equal(t, "W100", devices[0].WNTD)

	// Creation history is written for every attribute of the new record.
	var historyCount int64
	testDB.Model(&models.WNTDHistory{}).Where("wntd_id = ?", devices[0].ID).Count(&historyCount)
	assert.Equal(t, int64(len(devices[0].AttributeMap())), historyCount)
}

func TestImportFailsFastWhenInvalidRowsAreNotSkipped(t *testing.T) {
	clearTables()
	path := writeImportCSV(t, strings.Join([]string{
		"Device,Site,Loc,Status",
		"W100,SITE-1,LOC-1,in_progress",
		",SITE-2,LOC-2,completed",
	}, "\n"))

	res := testService.ImportFromFile(context.Background(), WNTDProcessor{}, path, wntdMappings, nil, nil)

	assert.False(t, res.Success)
	assert.Equal(t, "Validation failed", res.Message)
	assert.NotEmpty(t, res.Errors)
	assert.Equal(t, 0, res.ImportedRows)

	var count int64
	testDB.Model(&models.WNTD{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestImportRequiresMappingsForRequiredFields(t *testing.T) {
	clearTables()
	path := writeImportCSV(t, "Site\nSITE-1\n")

	res := testService.ImportFromFile(context.Background(), WNTDProcessor{}, path, map[string]string{"site_name": "Site"}, nil, nil)

	assert.False(t, res.Success)
	assert.Equal(t, "Missing required column mapping for field: wntd", res.Message)
	assert.Equal(t, 0, res.ImportedRows)
}

func TestImportMissingFileReportsInResult(t *testing.T) {
	clearTables()
	res := testService.ImportFromFile(context.Background(), WNTDProcessor{}, filepath.Join(t.TempDir(), "absent.csv"), wntdMappings, nil, nil)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "not found")
}

func TestImportUpsertsExistingDevices(t *testing.T) {
	clearTables()
	first := writeImportCSV(t, "Device,Site,Loc,Status\nW100,SITE-1,LOC-1,in_progress\n")
	res := testService.ImportFromFile(context.Background(), WNTDProcessor{}, first, wntdMappings, nil, nil)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.ImportedRows)

	// Re-import the same device with a changed status; alternative source
	// columns resolve to the first one holding a value.
	remapped := map[string]string{
		"wntd":      "Device ID,Device",
		"site_name": "Site",
		"loc_id":    "Loc",
		"status":    "Status",
	}
	path := filepath.Join(t.TempDir(), "second.csv")
	assert.NoError(t, os.WriteFile(path, []byte("Device,Site,Loc,Status\nW100,SITE-1,LOC-1,completed\n"), 0o644))
	res = testService.ImportFromFile(context.Background(), WNTDProcessor{}, path, remapped, nil, nil)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.ImportedRows)

	var devices []models.WNTD
	assert.NoError(t, testDB.Find(&devices).Error)
	assert.Len(t, devices, 1)
	assert.Equal(t, "completed", devices[0].Status)

	var createCount, updateCount int64
	testDB.Model(&models.WNTDHistory{}).Where("wntd_id = ? AND change_type = ?", devices[0].ID, models.ChangeTypeCreate).Count(&createCount)
	testDB.Model(&models.WNTDHistory{}).Where("wntd_id = ? AND change_type = ?", devices[0].ID, models.ChangeTypeUpdate).Count(&updateCount)
	assert.Equal(t, int64(len(devices[0].AttributeMap())), createCount)
	assert.Equal(t, int64(1), updateCount) // only status changed

	var change models.WNTDHistory
	assert.NoError(t, testDB.Where("wntd_id = ? AND change_type = ?", devices[0].ID, models.ChangeTypeUpdate).First(&change).Error)
	assert.Equal(t, "status", change.FieldName)
	assert.Equal(t, "in_progress", *change.OldValue)
	assert.Equal(t, "completed", *change.NewValue)
}

func TestImportUnchangedReimportWritesNoHistory(t *testing.T) {
	clearTables()
	content := "Device,Site,Loc,Status\nW100,SITE-1,LOC-1,in_progress\n"
	first := writeImportCSV(t, content)
	testService.ImportFromFile(context.Background(), WNTDProcessor{}, first, wntdMappings, nil, nil)

	var beforeCount int64
	testDB.Model(&models.WNTDHistory{}).Count(&beforeCount)

	second := writeImportCSV(t, content)
	res := testService.ImportFromFile(context.Background(), WNTDProcessor{}, second, wntdMappings, nil, nil)
	assert.True(t, res.Success)

	var afterCount int64
	testDB.Model(&models.WNTDHistory{}).Count(&afterCount)
	assert.Equal(t, beforeCount, afterCount)
}

func TestImportRecordsActorOnHistory(t *testing.T) {
	clearTables()
	actor := uuid.New()
	path := writeImportCSV(t, "Device,Site,Loc,Status\nW100,SITE-1,LOC-1,in_progress\n")
	res := testService.ImportFromFile(context.Background(), WNTDProcessor{}, path, wntdMappings, nil, &actor)
	assert.True(t, res.Success)

	var row models.WNTDHistory
	assert.NoError(t, testDB.First(&row).Error)
	assert.Equal(t, actor, *row.UserID)
}

func TestImportParameterDomainGate(t *testing.T) {
	clearTables()
	path := writeImportCSV(t, strings.Join([]string{
		"Name,Value,Domain",
		"txPower,150,0-100", // out of bounds
		"txPower,50,0-100",
	}, "\n"))

	mappings := map[string]string{
		"parameter_name":  "Name",
		"parameter_value": "Value",
		"domain":          "Domain",
	}
	opts := DefaultOptions()
	opts.SkipInvalidRows = true
	res := testService.ImportFromFile(context.Background(), RANParameterProcessor{}, path, mappings, &opts, nil)

	assert.True(t, res.Success)
	assert.Equal(t, 1, res.ImportedRows)
	assert.Equal(t, 1, res.SkippedRows)
	assert.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[len(res.Warnings)-1].Message, "between 0 and 100")

	var params []models.RANParameter
	assert.NoError(t, testDB.Find(&params).Error)
	assert.Len(t, params, 1)
	assert.Equal(t, "50", params[0].ParameterValue)
}

func TestImportParameterDomainGateFailsRowWithoutSkip(t *testing.T) {
	clearTables()
	path := writeImportCSV(t, "Name,Value,Domain\ntxPower,150,0-100\n")

	mappings := map[string]string{
		"parameter_name":  "Name",
		"parameter_value": "Value",
		"domain":          "Domain",
	}
	res := testService.ImportFromFile(context.Background(), RANParameterProcessor{}, path, mappings, nil, nil)

	assert.Equal(t, 0, res.ImportedRows)
	assert.Equal(t, 1, res.FailedRows)
	assert.NotEmpty(t, res.Errors)
}

func TestImportStructParameterBooleanVocabulary(t *testing.T) {
	clearTables()
	path := writeImportCSV(t, strings.Join([]string{
		"Member,Mul",
		"m1,Y",
		"m2,0",
		"m3,2",
		"m4,",
	}, "\n"))

	mappings := map[string]string{"member_name": "Member", "mul": "Mul"}
	res := testService.ImportFromFile(context.Background(), RANStructParameterProcessor{}, path, mappings, nil, nil)
	assert.True(t, res.Success)
	assert.Equal(t, 4, res.ImportedRows)

	var members []models.RANStructParameter
	assert.NoError(t, testDB.Order("member_name asc").Find(&members).Error)
	assert.Len(t, members, 4)
	assert.True(t, members[0].Mul)
	assert.False(t, members[1].Mul)
	assert.True(t, members[2].Mul)
	assert.False(t, members[3].Mul)
}

func TestImportImplementationUpsertBySiteAndCategory(t *testing.T) {
	clearTables()
	mappings := map[string]string{
		"site_name": "Site",
		"category":  "Category",
		"status":    "Status",
	}

	first := writeImportCSV(t, "Site,Category,Status\nSITE-1,site_upgrade,not_started\n")
	res := testService.ImportFromFile(context.Background(), ImplementationProcessor{}, first, mappings, nil, nil)
	assert.True(t, res.Success)

	second := writeImportCSV(t, "Site,Category,Status\nSITE-1,Site Upgrade,In Progress\n")
	res = testService.ImportFromFile(context.Background(), ImplementationProcessor{}, second, mappings, nil, nil)
	assert.True(t, res.Success)

	var impls []models.Implementation
	assert.NoError(t, testDB.Find(&impls).Error)
	assert.Len(t, impls, 1)
	assert.Equal(t, "in_progress", impls[0].Status)
}

// stubProcessor inserts parameters and fails outright on a chosen name,
// simulating a storage error that is not a per-row business violation.
type stubProcessor struct {
	failOn string
}

func (stubProcessor) Name() string             { return "stub" }
func (stubProcessor) RequiredFields() []string { return nil }
func (stubProcessor) Rules() RuleSet {
	return RuleSet{"name": {Type: FieldString}}
}
func (stubProcessor) ValidateRow(row Row) (Row, error) { return row, nil }
func (p stubProcessor) ProcessRow(tx *gorm.DB, row Row, opts Options, actorID *uuid.UUID) error {
	name := rowString(row, "name")
	if name == p.failOn {
		return fmt.Errorf("storage exploded on %s", name)
	}
	return tx.Create(&models.RANParameter{ID: uuid.New(), ParameterName: name}).Error
}

func TestImportChunkRollsBackOnProcessingError(t *testing.T) {
	clearTables()

	var b strings.Builder
	b.WriteString("Name,Extra\n")
	for i := 1; i <= 250; i++ {
		fmt.Fprintf(&b, "param-%03d,x\n", i)
	}
	path := writeImportCSV(t, b.String())

	mappings := map[string]string{"name": "Name"}
	res := testService.ImportFromFile(context.Background(), stubProcessor{failOn: "param-150"}, path, mappings, nil, nil)

	// The failing chunk (rows 101-200) rolls back whole; the chunks before
	// and after it stay committed.
	assert.True(t, res.Success)
	assert.Equal(t, 250, res.TotalRows)
	assert.Equal(t, 150, res.ImportedRows)
	assert.Equal(t, 100, res.FailedRows)
	assert.Equal(t, 0, res.SkippedRows)
	assert.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0].Message, "rolled back")

	var count int64
	testDB.Model(&models.RANParameter{}).Count(&count)
	assert.Equal(t, int64(150), count)

	// None of the rolled-back chunk's rows persisted.
	var missing int64
	testDB.Model(&models.RANParameter{}).Where("parameter_name = ?", "param-120").Count(&missing)
	assert.Equal(t, int64(0), missing)
}

func TestImportSkipsRowsWithNoMappedValues(t *testing.T) {
	clearTables()
	path := writeImportCSV(t, "Name,Extra\nalpha,x\n,x\nbeta,x\n")

	mappings := map[string]string{"name": "Name"}
	res := testService.ImportFromFile(context.Background(), stubProcessor{}, path, mappings, nil, nil)

	assert.True(t, res.Success)
	assert.Equal(t, 2, res.ImportedRows)
	assert.Equal(t, 1, res.SkippedRows)
}

func TestImportForceTypeCompatibilityNullsBadOptionalFields(t *testing.T) {
	clearTables()
	path := writeImportCSV(t, "Device,Site,Loc,Status,Lat\nW100,SITE-1,LOC-1,in_progress,not-a-number\n")

	mappings := map[string]string{
		"wntd":      "Device",
		"site_name": "Site",
		"loc_id":    "Loc",
		"status":    "Status",
		"lat":       "Lat",
	}
	opts := DefaultOptions()
	opts.ForceTypeCompatibility = true
	res := testService.ImportFromFile(context.Background(), WNTDProcessor{}, path, mappings, &opts, nil)

	assert.True(t, res.Success)
	assert.Equal(t, 1, res.ImportedRows)
	assert.NotEmpty(t, res.Warnings)

	var device models.WNTD
	assert.NoError(t, testDB.First(&device).Error)
	assert.Nil(t, device.Lat)
	assert.Equal(t, "W100", device.WNTD)
}

func TestEmptyRow(t *testing.T) {
	assert.True(t, emptyRow(Row{}))
	assert.True(t, emptyRow(Row{"a": nil, "b": "  "}))
	assert.False(t, emptyRow(Row{"a": "", "b": "x"}))
}

func TestParseDomainRange(t *testing.T) {
	lo, hi, ok := parseDomainRange("0-100")
	assert.True(t, ok)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 100.0, hi)

	lo, hi, ok = parseDomainRange(" 0.5 - 9.5 ")
	assert.True(t, ok)
	assert.Equal(t, 0.5, lo)
	assert.Equal(t, 9.5, hi)

	_, _, ok = parseDomainRange("enum")
	assert.False(t, ok)
	_, _, ok = parseDomainRange("")
	assert.False(t, ok)
}
