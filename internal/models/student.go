package models

// Student mirrors the upstream student document.
type Student struct {
	ID            string         `json:"_id,omitempty"`
	StudentCode   string         `json:"studentId"`
	Name          string         `json:"name"`
	Gender        string         `json:"gender"`
	DOB           string         `json:"dob"`
	Class         string         `json:"class"`
	Section       string         `json:"section"`
	AdmissionDate string         `json:"admissionDate"`
	Category      string         `json:"category"`
	Religion      string         `json:"religion"`
	MotherTongue  string         `json:"motherTongue"`
	Aadhar        string         `json:"aadhar"`
	FatherName    string         `json:"fatherName"`
	MotherName    string         `json:"motherName"`
	Address       StudentAddress `json:"address"`
	Contact       StudentContact `json:"contact"`
	CWSN          bool           `json:"cwsn"`
	School        *SchoolRef     `json:"school,omitempty"`
	Password      string         `json:"password,omitempty"`
}

type StudentAddress struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	City     string `json:"city"`
	District string `json:"district"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

type StudentContact struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// StudentForm is the flat editing shape: nested school collapses to
// school_code, address and contact stay grouped.
type StudentForm struct {
	ID            string         `json:"_id,omitempty"`
	SchoolCode    string         `json:"school_code"`
	StudentCode   string         `json:"studentId"`
	Name          string         `json:"name"`
	Gender        string         `json:"gender"`
	DOB           string         `json:"dob"`
	Class         string         `json:"class"`
	Section       string         `json:"section"`
	AdmissionDate string         `json:"admissionDate"`
	Category      string         `json:"category"`
	Religion      string         `json:"religion"`
	MotherTongue  string         `json:"motherTongue"`
	Aadhar        string         `json:"aadhar"`
	FatherName    string         `json:"fatherName"`
	MotherName    string         `json:"motherName"`
	Address       StudentAddress `json:"address"`
	Contact       StudentContact `json:"contact"`
	CWSN          bool           `json:"cwsn"`
	Password      string         `json:"password,omitempty"`
}

// StudentOption backs the student selector combobox.
type StudentOption struct {
	ID          string `json:"id"`
	StudentCode string `json:"studentId"`
	Name        string `json:"name"`
	Class       string `json:"class"`
	Label       string `json:"label"`
}
