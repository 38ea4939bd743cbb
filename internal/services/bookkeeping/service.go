package bookkeeping

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"photostudio-backend/internal/models"
	"photostudio-backend/internal/repository"
	"photostudio-backend/internal/services/audit"

	"gorm.io/gorm"
)

var (
	// ErrInvalidInput wraps every validation failure; handlers map it to 400.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateInvoiceNumber is returned when a caller-supplied invoice
	// number already exists.
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")

	// ErrNumberExhausted is returned when 20 generated invoice numbers all
	// collided.
	ErrNumberExhausted = errors.New("unable to generate a unique invoice number")
)

const (
	dateLayout            = "2006-01-02"
	invoiceNumberAttempts = 20
	recentTransactions    = 10
	auditTrailDefault     = 100
)

var invoiceNumberRe = regexp.MustCompile(`^[A-Za-z0-9\-]+$`)

// Service is the validation and persistence layer for the bookkeeping side of
// the admin area: income, expenses, customers, invoices, assets and reports.
// Every mutation validates, persists, then records an audit entry
// best-effort.
type Service struct {
	ledger    *repository.LedgerRepository
	customers *repository.CustomerRepository
	invoices  *repository.InvoiceRepository
	assets    *repository.AssetRepository
	audit     *audit.Recorder
}

func NewService(
	ledger *repository.LedgerRepository,
	customers *repository.CustomerRepository,
	invoices *repository.InvoiceRepository,
	assets *repository.AssetRepository,
	recorder *audit.Recorder,
) *Service {
	return &Service{
		ledger:    ledger,
		customers: customers,
		invoices:  invoices,
		assets:    assets,
		audit:     recorder,
	}
}

// EntryInput is a new income or expense row.
type EntryInput struct {
	Date        string  `form:"date"`
	Description string  `form:"description"`
	Category    string  `form:"category"`
	Amount      float64 `form:"amount"`
}

// CustomerInput is a new customer.
type CustomerInput struct {
	Name        string  `form:"name"`
	Service     string  `form:"service"`
	AmountPaid  float64 `form:"amount_paid"`
	TotalAmount float64 `form:"total_amount"`
	Contact     string  `form:"contact"`
}

// InvoiceInput is a new invoice. A blank InvoiceNumber means "generate one".
type InvoiceInput struct {
	InvoiceNumber string  `form:"invoice_number"`
	CustomerID    uint    `form:"customer_id"`
	Date          string  `form:"date"`
	Amount        float64 `form:"amount"`
}

// AssetInput is a new fixed-asset register entry.
type AssetInput struct {
	Name     string  `form:"name"`
	Category string  `form:"category"`
	Value    float64 `form:"value"`
	Supplier string  `form:"supplier"`
}

// Summary is the admin dashboard payload.
type Summary struct {
	TotalIncome         float64                  `json:"total_income"`
	TotalExpenses       float64                  `json:"total_expenses"`
	NetProfit           float64                  `json:"net_profit"`
	TotalPendingBalance float64                  `json:"total_pending_balance"`
	TotalAssetValue     float64                  `json:"total_asset_value"`
	RecentTransactions  []repository.Transaction `json:"recent_transactions"`
}

// Report is the date-range income/expense report.
type Report struct {
	StartDate     string           `json:"start_date"`
	EndDate       string           `json:"end_date"`
	Income        []models.Income  `json:"income"`
	Expenses      []models.Expense `json:"expenses"`
	TotalIncome   float64          `json:"total_income"`
	TotalExpenses float64          `json:"total_expenses"`
	NetProfit     float64          `json:"net_profit"`
}

// Summary aggregates the dashboard totals and the recent activity feed.
func (s *Service) Summary() (*Summary, error) {
	totalIncome, err := s.ledger.TotalIncome()
	if err != nil {
		return nil, err
	}
	totalExpenses, err := s.ledger.TotalExpenses()
	if err != nil {
		return nil, err
	}
	pending, err := s.customers.TotalPendingBalance()
	if err != nil {
		return nil, err
	}
	assetValue, err := s.assets.TotalValue()
	if err != nil {
		return nil, err
	}
	recent, err := s.ledger.RecentTransactions(recentTransactions)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalIncome:         totalIncome,
		TotalExpenses:       totalExpenses,
		NetProfit:           totalIncome - totalExpenses,
		TotalPendingBalance: pending,
		TotalAssetValue:     assetValue,
		RecentTransactions:  recent,
	}, nil
}

func (s *Service) ListIncome() ([]models.Income, float64, error) {
	rows, err := s.ledger.AllIncome()
	if err != nil {
		return nil, 0, err
	}
	total, err := s.ledger.TotalIncome()
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *Service) AddIncome(in EntryInput, actor string) (*models.Income, error) {
	date, err := validateEntry(in)
	if err != nil {
		return nil, err
	}

	row := &models.Income{
		Date:        date,
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Amount:      in.Amount,
	}
	if err := s.ledger.CreateIncome(row); err != nil {
		return nil, err
	}
	s.audit.Record(actor, "create", "income", row.ID, map[string]interface{}{
		"amount": row.Amount, "category": row.Category,
	})
	return row, nil
}

func (s *Service) DeleteIncome(id uint, actor string) error {
	if err := s.ledger.SoftDeleteIncome(id); err != nil {
		return err
	}
	s.audit.Record(actor, "delete", "income", id, nil)
	return nil
}

func (s *Service) RestoreIncome(id uint, actor string) error {
	if err := s.ledger.RestoreIncome(id); err != nil {
		return err
	}
	s.audit.Record(actor, "restore", "income", id, nil)
	return nil
}

func (s *Service) ListExpenses() ([]models.Expense, float64, error) {
	rows, err := s.ledger.AllExpenses()
	if err != nil {
		return nil, 0, err
	}
	total, err := s.ledger.TotalExpenses()
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *Service) AddExpense(in EntryInput, actor string) (*models.Expense, error) {
	date, err := validateEntry(in)
	if err != nil {
		return nil, err
	}

	row := &models.Expense{
		Date:        date,
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Amount:      in.Amount,
	}
	if err := s.ledger.CreateExpense(row); err != nil {
		return nil, err
	}
	s.audit.Record(actor, "create", "expense", row.ID, map[string]interface{}{
		"amount": row.Amount, "category": row.Category,
	})
	return row, nil
}

func (s *Service) DeleteExpense(id uint, actor string) error {
	if err := s.ledger.SoftDeleteExpense(id); err != nil {
		return err
	}
	s.audit.Record(actor, "delete", "expense", id, nil)
	return nil
}

func (s *Service) RestoreExpense(id uint, actor string) error {
	if err := s.ledger.RestoreExpense(id); err != nil {
		return err
	}
	s.audit.Record(actor, "restore", "expense", id, nil)
	return nil
}

func (s *Service) ListCustomers() ([]models.Customer, float64, error) {
	rows, err := s.customers.All()
	if err != nil {
		return nil, 0, err
	}
	pending, err := s.customers.TotalPendingBalance()
	if err != nil {
		return nil, 0, err
	}
	return rows, pending, nil
}

func (s *Service) AddCustomer(in CustomerInput, actor string) (*models.Customer, error) {
	name := strings.TrimSpace(in.Name)
	service := strings.TrimSpace(in.Service)
	switch {
	case name == "" || service == "":
		return nil, fmt.Errorf("%w: name and service are required", ErrInvalidInput)
	case in.TotalAmount <= 0:
		return nil, fmt.Errorf("%w: total amount must be a positive number", ErrInvalidInput)
	case in.AmountPaid < 0:
		return nil, fmt.Errorf("%w: amount paid cannot be negative", ErrInvalidInput)
	case in.AmountPaid > in.TotalAmount:
		return nil, fmt.Errorf("%w: amount paid cannot exceed total amount", ErrInvalidInput)
	}

	row := &models.Customer{
		Name:        name,
		Service:     service,
		AmountPaid:  in.AmountPaid,
		TotalAmount: in.TotalAmount,
		Contact:     strings.TrimSpace(in.Contact),
	}
	if err := s.customers.Create(row); err != nil {
		return nil, err
	}
	s.audit.Record(actor, "create", "customer", row.ID, map[string]interface{}{
		"name": row.Name, "total_amount": row.TotalAmount,
	})
	return row, nil
}

// UpdateCustomerPayment sets the paid amount, bounded by the customer total.
func (s *Service) UpdateCustomerPayment(id uint, amountPaid float64, actor string) error {
	if amountPaid < 0 {
		return fmt.Errorf("%w: amount paid cannot be negative", ErrInvalidInput)
	}
	customer, err := s.customers.Get(id)
	if err != nil {
		return err
	}
	if amountPaid > customer.TotalAmount {
		return fmt.Errorf("%w: amount paid cannot exceed total amount", ErrInvalidInput)
	}
	if err := s.customers.UpdatePayment(id, amountPaid); err != nil {
		return err
	}
	s.audit.Record(actor, "update", "customer", id, map[string]interface{}{
		"amount_paid": amountPaid,
	})
	return nil
}

// DeleteCustomer soft-deletes the customer and cascades to their invoices.
func (s *Service) DeleteCustomer(id uint, actor string) error {
	if err := s.customers.SoftDelete(id); err != nil {
		return err
	}
	s.audit.Record(actor, "delete", "customer", id, nil)
	return nil
}

func (s *Service) RestoreCustomer(id uint, actor string) error {
	if err := s.customers.Restore(id); err != nil {
		return err
	}
	s.audit.Record(actor, "restore", "customer", id, nil)
	return nil
}

func (s *Service) ListInvoices() ([]repository.InvoiceListing, error) {
	return s.invoices.All()
}

// NextInvoiceNumber previews a free generated number for the invoice form.
func (s *Service) NextInvoiceNumber() (string, error) {
	for i := 0; i < invoiceNumberAttempts; i++ {
		candidate := generateInvoiceNumber()
		exists, err := s.invoices.NumberExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", ErrNumberExhausted
}

// AddInvoice creates an invoice for an existing customer. A blank number is
// generated with a random suffix, retried on collision; a supplied duplicate
// is a conflict.
func (s *Service) AddInvoice(in InvoiceInput, actor string) (*models.Invoice, error) {
	if in.CustomerID == 0 {
		return nil, fmt.Errorf("%w: please select a customer", ErrInvalidInput)
	}
	if _, err := s.customers.Get(in.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: selected customer does not exist", ErrInvalidInput)
		}
		return nil, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: please provide a valid invoice date", ErrInvalidInput)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be a positive number", ErrInvalidInput)
	}

	number := strings.TrimSpace(in.InvoiceNumber)
	if number != "" {
		if !invoiceNumberRe.MatchString(number) {
			return nil, fmt.Errorf("%w: invoice number can only contain letters, numbers, and dashes", ErrInvalidInput)
		}
		row := &models.Invoice{
			InvoiceNumber: number,
			CustomerID:    in.CustomerID,
			Date:          date,
			Amount:        in.Amount,
			Status:        models.InvoiceStatusPending,
		}
		if err := s.invoices.Create(row); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrDuplicateInvoiceNumber
			}
			return nil, err
		}
		s.audit.Record(actor, "create", "invoice", row.ID, map[string]interface{}{
			"invoice_number": row.InvoiceNumber, "amount": row.Amount,
		})
		return row, nil
	}

	for i := 0; i < invoiceNumberAttempts; i++ {
		row := &models.Invoice{
			InvoiceNumber: generateInvoiceNumber(),
			CustomerID:    in.CustomerID,
			Date:          date,
			Amount:        in.Amount,
			Status:        models.InvoiceStatusPending,
		}
		err := s.invoices.Create(row)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		if err != nil {
			return nil, err
		}
		s.audit.Record(actor, "create", "invoice", row.ID, map[string]interface{}{
			"invoice_number": row.InvoiceNumber, "amount": row.Amount,
		})
		return row, nil
	}
	return nil, ErrNumberExhausted
}

func (s *Service) MarkInvoicePaid(id uint, actor string) error {
	return s.setInvoiceStatus(id, models.InvoiceStatusPaid, actor)
}

func (s *Service) CancelInvoice(id uint, actor string) error {
	return s.setInvoiceStatus(id, models.InvoiceStatusCancelled, actor)
}

func (s *Service) setInvoiceStatus(id uint, status, actor string) error {
	if err := s.invoices.UpdateStatus(id, status); err != nil {
		return err
	}
	s.audit.Record(actor, "update", "invoice", id, map[string]interface{}{
		"status": status,
	})
	return nil
}

func (s *Service) DeleteInvoice(id uint, actor string) error {
	if err := s.invoices.SoftDelete(id); err != nil {
		return err
	}
	s.audit.Record(actor, "delete", "invoice", id, nil)
	return nil
}

func (s *Service) RestoreInvoice(id uint, actor string) error {
	if err := s.invoices.Restore(id); err != nil {
		return err
	}
	s.audit.Record(actor, "restore", "invoice", id, nil)
	return nil
}

func (s *Service) ListAssets() ([]models.Asset, float64, error) {
	rows, err := s.assets.All()
	if err != nil {
		return nil, 0, err
	}
	total, err := s.assets.TotalValue()
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *Service) AddAsset(in AssetInput, actor string) (*models.Asset, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || category == "" {
		return nil, fmt.Errorf("%w: name and category are required", ErrInvalidInput)
	}
	if in.Value <= 0 {
		return nil, fmt.Errorf("%w: value must be a positive number", ErrInvalidInput)
	}

	row := &models.Asset{
		Name:     name,
		Category: category,
		Value:    in.Value,
		Supplier: strings.TrimSpace(in.Supplier),
	}
	if err := s.assets.Create(row); err != nil {
		return nil, err
	}
	s.audit.Record(actor, "create", "asset", row.ID, map[string]interface{}{
		"name": row.Name, "value": row.Value,
	})
	return row, nil
}

func (s *Service) DeleteAsset(id uint, actor string) error {
	if err := s.assets.Delete(id); err != nil {
		return err
	}
	s.audit.Record(actor, "delete", "asset", id, nil)
	return nil
}

// Report returns income and expense rows inside [start, end].
func (s *Service) Report(startDate, endDate string) (*Report, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: please provide valid start and end dates", ErrInvalidInput)
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: please provide valid start and end dates", ErrInvalidInput)
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: start date cannot be after end date", ErrInvalidInput)
	}

	income, err := s.ledger.IncomeBetween(start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := s.ledger.ExpensesBetween(start, end)
	if err != nil {
		return nil, err
	}

	report := &Report{
		StartDate: startDate,
		EndDate:   endDate,
		Income:    income,
		Expenses:  expenses,
	}
	for _, row := range income {
		report.TotalIncome += row.Amount
	}
	for _, row := range expenses {
		report.TotalExpenses += row.Amount
	}
	report.NetProfit = report.TotalIncome - report.TotalExpenses
	return report, nil
}

// AuditTrail lists the newest audit entries; limit <= 0 means the default.
func (s *Service) AuditTrail(limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = auditTrailDefault
	}
	return s.audit.Recent(limit)
}

func validateEntry(in EntryInput) (time.Time, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: please provide a valid date", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.Category) == "" {
		return time.Time{}, fmt.Errorf("%w: description and category are required", ErrInvalidInput)
	}
	if in.Amount <= 0 {
		return time.Time{}, fmt.Errorf("%w: amount must be a positive number", ErrInvalidInput)
	}
	return date, nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(value))
}

// generateInvoiceNumber builds INV-YYYYMMDD-XXXX with a random hex suffix.
func generateInvoiceNumber() string {
	buf := make([]byte, 2)
	rand.Read(buf)
	return fmt.Sprintf("INV-%s-%s", time.Now().Format("20060102"), strings.ToUpper(hex.EncodeToString(buf)))
}
