package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Store persists import output. Cases, invoices and contacts are upserted by
// their natural keys; hearings, documents, service logs and payment plans are
// inserted fresh each run. Inserts go through copies so gorm never stamps
// record IDs onto the caller's entities: import results are cached and
// re-committed, and a cached entity with an ID set would fail the re-insert.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// SaveCases upserts cases by case number.
func (s *Store) SaveCases(cases []*Case) error {
	for _, c := range cases {
		var existing Case
		err := s.db.Where("case_id = ?", c.CaseID).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			rec := *c
			if err := s.db.Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to create case %s: %w", c.CaseID, err)
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to look up case %s: %w", c.CaseID, err)
		}

		updates := map[string]interface{}{
			"plaintiff":  c.Plaintiff,
			"defendant":  c.Defendant,
			"address":    c.Address,
			"status":     c.Status,
			"date_filed": c.DateFiled,
		}
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update case %s: %w", c.CaseID, err)
		}
	}
	return nil
}

// SaveInvoices upserts invoices by invoice number.
func (s *Store) SaveInvoices(invoices []*Invoice) error {
	for _, inv := range invoices {
		var existing Invoice
		err := s.db.Where("invoice_id = ?", inv.InvoiceID).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			rec := *inv
			if err := s.db.Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to create invoice %s: %w", inv.InvoiceID, err)
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to look up invoice %s: %w", inv.InvoiceID, err)
		}

		updates := map[string]interface{}{
			"case_id":    inv.CaseID,
			"amount":     inv.Amount,
			"issue_date": inv.IssueDate,
			"due_date":   inv.DueDate,
			"paid":       inv.Paid,
		}
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update invoice %s: %w", inv.InvoiceID, err)
		}
	}
	return nil
}

// SaveContacts upserts contacts by normalized name.
func (s *Store) SaveContacts(contacts []*Contact) error {
	for _, c := range contacts {
		var existing Contact
		err := s.db.Where("LOWER(name) = LOWER(?)", c.Name).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			rec := *c
			if err := s.db.Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to create contact %s: %w", c.Name, err)
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to look up contact %s: %w", c.Name, err)
		}

		updates := map[string]interface{}{
			"role":    c.Role,
			"email":   c.Email,
			"phone":   c.Phone,
			"company": c.Company,
			"address": c.Address,
		}
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update contact %s: %w", c.Name, err)
		}
	}
	return nil
}

// SaveHearings inserts hearings fresh.
func (s *Store) SaveHearings(hearings []*Hearing) error {
	for _, h := range hearings {
		rec := *h
		if err := s.db.Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to create hearing %s: %w", h.HearingID, err)
		}
	}
	return nil
}

// SaveDocuments inserts documents fresh.
func (s *Store) SaveDocuments(documents []*Document) error {
	for _, d := range documents {
		rec := *d
		if err := s.db.Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to create document %s: %w", d.DocID, err)
		}
	}
	return nil
}

// SaveServiceLogs inserts service logs fresh.
func (s *Store) SaveServiceLogs(logs []*ServiceLog) error {
	for _, l := range logs {
		rec := *l
		if err := s.db.Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to create service log %s: %w", l.LogID, err)
		}
	}
	return nil
}

// SavePaymentPlans inserts payment plans fresh.
func (s *Store) SavePaymentPlans(plans []*PaymentPlan) error {
	for _, p := range plans {
		rec := *p
		if err := s.db.Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to create payment plan %s: %w", p.PlanID, err)
		}
	}
	return nil
}

// RecordRun writes the audit row for one import execution.
func (s *Store) RecordRun(run *ImportRun) error {
	if err := s.db.Create(run).Error; err != nil {
		return fmt.Errorf("failed to record import run: %w", err)
	}
	return nil
}

// ListRuns returns import runs newest first.
func (s *Store) ListRuns(offset, limit int) ([]ImportRun, int64, error) {
	var total int64
	if err := s.db.Model(&ImportRun{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var runs []ImportRun
	err := s.db.Offset(offset).Limit(limit).Order("created_at DESC").Find(&runs).Error
	return runs, total, err
}
