package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufosc/minihack-registration/internal/model"
)

func sampleReg() model.Registration {
	return model.Registration{
		ID:          "01J0000000000000000000AAAA",
		Name:        "Ann Lee",
		Email:       "ann@ufl.edu",
		Year:        model.YearSenior,
		Major:       "CS",
		Experience:  model.ExperienceAdvanced,
		SubmittedAt: time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestWriteCSV_HeaderAndRow(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []model.Registration{sampleReg()}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(CSVHeader, ","), lines[0])
	assert.Contains(t, lines[1], "ann@ufl.edu")
	assert.Contains(t, lines[1], "2025-04-01T12:00:00Z")
}

func TestWriteCSV_EmptyRecordset(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, strings.Join(CSVHeader, ",")+"\n", buf.String())
}

func TestWriteCSV_QuotingRoundTrips(t *testing.T) {
	reg := sampleReg()
	reg.Name = `Ann "The Hammer" Lee`
	reg.Major = "Math, Applied"
	reg.DietaryRestrictions = "no nuts\nno dairy"

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []model.Registration{reg}))

	// internal quotes must be doubled inside a quoted field
	assert.Contains(t, buf.String(), `"Ann ""The Hammer"" Lee"`)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	row := records[1]
	assert.Equal(t, reg.Name, row[1])
	assert.Equal(t, reg.Major, row[4])
	assert.Equal(t, reg.DietaryRestrictions, row[6])
}
