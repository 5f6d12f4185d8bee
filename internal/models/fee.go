package models

import "time"

// FeeStructure mirrors the upstream fee-structure document.
type FeeStructure struct {
	ID           string     `json:"_id,omitempty"`
	School       *SchoolRef `json:"school,omitempty"`
	Class        string     `json:"class"`
	AcademicYear string     `json:"academicYear"`
	MonthlyFee   string     `json:"monthlyFee"`
	FeeBreakup   FeeBreakup `json:"feeBreakup"`
}

type FeeBreakup struct {
	Tuition   string `json:"tuition"`
	Admission string `json:"admission"`
	Exam      string `json:"exam"`
	Transport string `json:"transport"`
	Other     string `json:"other"`
}

// FeeStructureForm is the flat editing shape with the school reference
// collapsed to school_code.
type FeeStructureForm struct {
	ID           string     `json:"_id,omitempty"`
	SchoolCode   string     `json:"school_code"`
	Class        string     `json:"class"`
	AcademicYear string     `json:"academicYear"`
	MonthlyFee   string     `json:"monthlyFee"`
	FeeBreakup   FeeBreakup `json:"feeBreakup"`
}

// Payment is a recorded fee payment, read-mostly from the console side.
type Payment struct {
	ID               string     `json:"_id,omitempty"`
	Student          *Student   `json:"student,omitempty"`
	School           *School    `json:"school,omitempty"`
	AcademicYear     string     `json:"academicYear"`
	AmountPaid       float64    `json:"amountPaid"`
	Mode             string     `json:"mode"`
	Remarks          string     `json:"remarks"`
	PaymentDate      time.Time  `json:"paymentDate"`
	RemainingBalance float64    `json:"RemainingBalance"`
}

// PaymentRequest is the payment-submission payload forwarded upstream.
type PaymentRequest struct {
	StudentID  string  `json:"studentId" validate:"required"`
	AmountPaid float64 `json:"amountPaid" validate:"required,gt=0"`
	Mode       string  `json:"mode" validate:"required"`
	Remarks    string  `json:"remarks"`
}
