// Package dto defines the bidirectional mapping between the upstream wire
// documents (nested school references) and the flat form shapes the console
// edits. Each entity's flatten and reconstruct live here, once, instead of
// being inlined per view.
package dto

import "github.com/vidyalink/console-api/internal/models"

// FlattenTeacher collapses the nested school reference to school_code.
func FlattenTeacher(t models.Teacher) models.TeacherForm {
	form := models.TeacherForm{
		ID:            t.ID,
		TeacherCode:   t.TeacherCode,
		Name:          t.Name,
		DOB:           t.DOB,
		Gender:        t.Gender,
		Designation:   t.Designation,
		Qualification: t.Qualification,
		DOJ:           t.DOJ,
		Phone:         t.Phone,
		Trained:       t.Trained,
	}
	if t.School != nil {
		form.SchoolCode = t.School.SchoolCode
	}
	return form
}

// ReconstructTeacher rebuilds the wire document from the form. The school
// reference is restored from the resolved ref; the form's display-only
// school_code never travels upstream on its own.
func ReconstructTeacher(form models.TeacherForm, school *models.SchoolRef) models.Teacher {
	return models.Teacher{
		ID:            form.ID,
		TeacherCode:   form.TeacherCode,
		Name:          form.Name,
		DOB:           form.DOB,
		Gender:        form.Gender,
		Designation:   form.Designation,
		Qualification: form.Qualification,
		DOJ:           form.DOJ,
		Phone:         form.Phone,
		Trained:       form.Trained,
		School:        school,
		Password:      form.Password,
	}
}

// FlattenStudent collapses the nested school reference to school_code.
func FlattenStudent(s models.Student) models.StudentForm {
	form := models.StudentForm{
		ID:            s.ID,
		StudentCode:   s.StudentCode,
		Name:          s.Name,
		Gender:        s.Gender,
		DOB:           s.DOB,
		Class:         s.Class,
		Section:       s.Section,
		AdmissionDate: s.AdmissionDate,
		Category:      s.Category,
		Religion:      s.Religion,
		MotherTongue:  s.MotherTongue,
		Aadhar:        s.Aadhar,
		FatherName:    s.FatherName,
		MotherName:    s.MotherName,
		Address:       s.Address,
		Contact:       s.Contact,
		CWSN:          s.CWSN,
	}
	if s.School != nil {
		form.SchoolCode = s.School.SchoolCode
	}
	return form
}

// ReconstructStudent rebuilds the wire document from the form.
func ReconstructStudent(form models.StudentForm, school *models.SchoolRef) models.Student {
	return models.Student{
		ID:            form.ID,
		StudentCode:   form.StudentCode,
		Name:          form.Name,
		Gender:        form.Gender,
		DOB:           form.DOB,
		Class:         form.Class,
		Section:       form.Section,
		AdmissionDate: form.AdmissionDate,
		Category:      form.Category,
		Religion:      form.Religion,
		MotherTongue:  form.MotherTongue,
		Aadhar:        form.Aadhar,
		FatherName:    form.FatherName,
		MotherName:    form.MotherName,
		Address:       form.Address,
		Contact:       form.Contact,
		CWSN:          form.CWSN,
		School:        school,
		Password:      form.Password,
	}
}

// FlattenFeeStructure collapses the nested school reference to school_code.
func FlattenFeeStructure(f models.FeeStructure) models.FeeStructureForm {
	form := models.FeeStructureForm{
		ID:           f.ID,
		Class:        f.Class,
		AcademicYear: f.AcademicYear,
		MonthlyFee:   f.MonthlyFee,
		FeeBreakup:   f.FeeBreakup,
	}
	if f.School != nil {
		form.SchoolCode = f.School.SchoolCode
	}
	return form
}

// ReconstructFeeStructure rebuilds the wire document from the form.
func ReconstructFeeStructure(form models.FeeStructureForm, school *models.SchoolRef) models.FeeStructure {
	return models.FeeStructure{
		ID:           form.ID,
		Class:        form.Class,
		AcademicYear: form.AcademicYear,
		MonthlyFee:   form.MonthlyFee,
		FeeBreakup:   form.FeeBreakup,
		School:       school,
	}
}
