package database

import (
	"gorm.io/gorm"
)

// Case status values
const (
	CaseStatusIntake = "Intake"
	CaseStatusActive = "Active"
	CaseStatusClosed = "Closed"
)

// Document types
const (
	DocTypeComplaint = "Complaint"
	DocTypeSummons   = "Summons"
	DocTypeAffidavit = "Affidavit"
	DocTypeMotion    = "Motion"
	DocTypeOrder     = "Order"
	DocTypeOther     = "Other"
)

// Document statuses
const (
	DocStatusPending = "Pending"
	DocStatusServed  = "Served"
	DocStatusFailed  = "Failed"
)

// Service methods and results
const (
	ServiceMethodSheriff = "Sheriff"
	ServiceMethodSPS     = "SPS"
	ServiceResultSuccess = "Success"
	ServiceResultFailed  = "Failed"
)

// Contact roles
const (
	RoleAttorney  = "Attorney"
	RoleParalegal = "Paralegal"
	RolePM        = "PM"
	RoleClient    = "Client"
	RoleOther     = "Other"
)

// Dates are stored as ISO-8601 strings; source data arrives as Excel serials
// or free-form text and is normalized at parse time.

type Case struct {
	gorm.Model
	CaseID    string `json:"case_id" gorm:"uniqueIndex"`
	Plaintiff string `json:"plaintiff"`
	Defendant string `json:"defendant"`
	Address   string `json:"address"`
	Status    string `json:"status"`
	DateFiled string `json:"date_filed"`
}

type Hearing struct {
	gorm.Model
	HearingID   string `json:"hearing_id" gorm:"index"`
	CaseID      string `json:"case_id" gorm:"index"`
	CourtName   string `json:"court_name"`
	HearingDate string `json:"hearing_date"`
	Outcome     string `json:"outcome"`
}

type Document struct {
	gorm.Model
	DocID       string `json:"doc_id" gorm:"index"`
	CaseID      string `json:"case_id" gorm:"index"`
	Type        string `json:"type"`
	FileURL     string `json:"file_url"`
	Status      string `json:"status"`
	ServiceDate string `json:"service_date"`
}

type ServiceLog struct {
	gorm.Model
	LogID       string `json:"log_id" gorm:"index"`
	DocID       string `json:"doc_id" gorm:"index"`
	Method      string `json:"method"`
	AttemptDate string `json:"attempt_date"`
	Result      string `json:"result"`
}

type Invoice struct {
	gorm.Model
	InvoiceID string  `json:"invoice_id" gorm:"uniqueIndex"`
	CaseID    string  `json:"case_id" gorm:"index"`
	Amount    float64 `json:"amount"`
	IssueDate string  `json:"issue_date"`
	DueDate   string  `json:"due_date"`
	Paid      bool    `json:"paid"`
}

type PaymentPlan struct {
	gorm.Model
	PlanID          string  `json:"plan_id" gorm:"index"`
	InvoiceID       string  `json:"invoice_id" gorm:"index"`
	InstallmentDate string  `json:"installment_date"`
	Amount          float64 `json:"amount"`
	Paid            bool    `json:"paid"`
}

type Contact struct {
	gorm.Model
	ContactID string `json:"contact_id" gorm:"index"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Address   string `json:"address"`
}

// ImportRun records one import execution for auditing
type ImportRun struct {
	gorm.Model
	Source          string `json:"source"`
	Digest          string `json:"digest" gorm:"index"`
	Success         bool   `json:"success"`
	TotalSheets     int    `json:"total_sheets"`
	ProcessedSheets int    `json:"processed_sheets"`
	ProcessedRows   int    `json:"processed_rows"`
	CaseCount       int    `json:"case_count"`
	HearingCount    int    `json:"hearing_count"`
	DocumentCount   int    `json:"document_count"`
	InvoiceCount    int    `json:"invoice_count"`
	ContactCount    int    `json:"contact_count"`
	Warnings        string `json:"warnings" gorm:"type:text"`
	Errors          string `json:"errors" gorm:"type:text"`
}

func (Case) TableName() string {
	return "cases"
}

func (Hearing) TableName() string {
	return "hearings"
}

func (Document) TableName() string {
	return "documents"
}

func (ServiceLog) TableName() string {
	return "service_logs"
}

func (Invoice) TableName() string {
	return "invoices"
}

func (PaymentPlan) TableName() string {
	return "payment_plans"
}

func (Contact) TableName() string {
	return "contacts"
}

func (ImportRun) TableName() string {
	return "import_runs"
}
