package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Descriptive fields stay strings on the wire: a latitude of "12.34" must
// come back exactly as "12.34", never reformatted through a float.
func TestSchoolStringFieldsRoundTrip(t *testing.T) {
	raw := []byte(`{
		"_id": "sch-1",
		"school_code": "SCH001",
		"school_name": "Govt High School",
		"established_year": "1987",
		"location": {
			"district": "Sitapur",
			"pin_code": "261001",
			"geo": {"latitude": "12.34", "longitude": "80.0500"}
		},
		"enrollment_summary": {"total_students": "0420", "boys": "210", "girls": "210", "cwsn": "4"},
		"pta_meetings_last_year": "6"
	}`)

	var school School
	require.NoError(t, json.Unmarshal(raw, &school))
	assert.Equal(t, "12.34", school.Location.Geo.Latitude)
	assert.Equal(t, "80.0500", school.Location.Geo.Longitude)
	assert.Equal(t, "0420", school.EnrollmentSummary.TotalStudents)

	out, err := json.Marshal(school)
	require.NoError(t, err)

	var reparsed School
	require.NoError(t, json.Unmarshal(out, &reparsed))
	assert.Equal(t, school, reparsed)
	assert.Contains(t, string(out), `"latitude":"12.34"`)
	assert.Contains(t, string(out), `"longitude":"80.0500"`)
}

func TestRoleValidity(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleSchool, RoleTeacher, RoleStudent} {
		assert.True(t, role.Valid(), string(role))
	}
	assert.False(t, Role("").Valid())
	assert.False(t, Role("Clerk").Valid())

	assert.False(t, RoleAdmin.SchoolScoped())
	assert.True(t, RoleSchool.SchoolScoped())
	assert.True(t, RoleTeacher.SchoolScoped())
	assert.True(t, RoleStudent.SchoolScoped())
}

func TestSessionTokenNeverSerializes(t *testing.T) {
	out, err := json.Marshal(Session{ID: "sess-1", Token: "secret-bearer", Role: RoleAdmin})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "secret-bearer")
}
