package models

// Teacher mirrors the upstream teacher document: profile fields plus the
// nested owning-school reference.
type Teacher struct {
	ID            string     `json:"_id,omitempty"`
	TeacherCode   string     `json:"teacherId"`
	Name          string     `json:"name"`
	DOB           string     `json:"dob"`
	Gender        string     `json:"gender"`
	Designation   string     `json:"designation"`
	Qualification string     `json:"qualification"`
	DOJ           string     `json:"doj"`
	Phone         string     `json:"phone"`
	Trained       bool       `json:"trained"`
	School        *SchoolRef `json:"school,omitempty"`
	Password      string     `json:"password,omitempty"`
}

// TeacherForm is the flat editing shape the console exposes: the nested
// school reference collapses to school_code.
type TeacherForm struct {
	ID            string `json:"_id,omitempty"`
	SchoolCode    string `json:"school_code"`
	TeacherCode   string `json:"teacherId"`
	Name          string `json:"name"`
	DOB           string `json:"dob"`
	Gender        string `json:"gender"`
	Designation   string `json:"designation"`
	Qualification string `json:"qualification"`
	DOJ           string `json:"doj"`
	Phone         string `json:"phone"`
	Trained       bool   `json:"trained"`
	Password      string `json:"password,omitempty"`
}
