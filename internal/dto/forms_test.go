package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyalink/console-api/internal/models"
)

func TestTeacherFlattenReconstructRoundTrip(t *testing.T) {
	ref := &models.SchoolRef{ID: "sch-1", SchoolCode: "SCH001", SchoolName: "Govt High School"}
	original := models.Teacher{
		ID:            "tch-1",
		TeacherCode:   "T001",
		Name:          "Meera",
		DOB:           "1988-04-02",
		Gender:        "Female",
		Designation:   "TGT",
		Qualification: "B.Ed",
		DOJ:           "2012-06-15",
		Phone:         "9876543210",
		Trained:       true,
		School:        ref,
	}

	form := FlattenTeacher(original)
	assert.Equal(t, "SCH001", form.SchoolCode)
	assert.Equal(t, original.Name, form.Name)

	rebuilt := ReconstructTeacher(form, ref)
	assert.Equal(t, original.ID, rebuilt.ID)
	assert.Equal(t, original.DOB, rebuilt.DOB)
	assert.Equal(t, original.Trained, rebuilt.Trained)
	require.NotNil(t, rebuilt.School)
	assert.Equal(t, ref.ID, rebuilt.School.ID)
}

func TestStudentFlattenReconstructRoundTrip(t *testing.T) {
	ref := &models.SchoolRef{ID: "sch-1", SchoolCode: "SCH001"}
	original := models.Student{
		ID:          "stu-1",
		StudentCode: "STU001",
		Name:        "Asha",
		Class:       "5",
		Section:     "A",
		Address: models.StudentAddress{
			Line1:   "12 Main Road",
			City:    "Rampur",
			Pincode: "261001",
		},
		Contact: models.StudentContact{Phone: "9000000001", Email: "asha@example.com"},
		CWSN:    true,
		School:  ref,
	}

	form := FlattenStudent(original)
	assert.Equal(t, "SCH001", form.SchoolCode)
	assert.Equal(t, "12 Main Road", form.Address.Line1)
	assert.True(t, form.CWSN)

	rebuilt := ReconstructStudent(form, ref)
	assert.Equal(t, original.Address, rebuilt.Address)
	assert.Equal(t, original.Contact, rebuilt.Contact)
	require.NotNil(t, rebuilt.School)
	assert.Equal(t, "SCH001", rebuilt.School.SchoolCode)
}

func TestFeeStructureFlattenReconstructRoundTrip(t *testing.T) {
	ref := &models.SchoolRef{ID: "sch-1", SchoolCode: "SCH001"}
	original := models.FeeStructure{
		ID:           "fee-1",
		School:       ref,
		Class:        "5",
		AcademicYear: "2024-25",
		MonthlyFee:   "350",
		FeeBreakup: models.FeeBreakup{
			Tuition:   "250",
			Admission: "50",
			Exam:      "25",
			Transport: "0",
			Other:     "25",
		},
	}

	form := FlattenFeeStructure(original)
	assert.Equal(t, "SCH001", form.SchoolCode)
	assert.Equal(t, "350", form.MonthlyFee)

	rebuilt := ReconstructFeeStructure(form, ref)
	assert.Equal(t, original, rebuilt)
}
