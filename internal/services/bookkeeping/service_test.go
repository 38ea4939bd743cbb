package bookkeeping

import (
	"strings"
	"testing"
	"time"

	"photostudio-backend/internal/models"
	"photostudio-backend/internal/repository"
	"photostudio-backend/internal/services/audit"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db        *gorm.DB
	service   *Service
	customers *repository.CustomerRepository
	invoices  *repository.InvoiceRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Income{},
		&models.Expense{},
		&models.Customer{},
		&models.Invoice{},
		&models.Asset{},
		&models.AuditLog{},
	))

	customers := repository.NewCustomerRepository(db)
	invoices := repository.NewInvoiceRepository(db)
	service := NewService(
		repository.NewLedgerRepository(db),
		customers,
		invoices,
		repository.NewAssetRepository(db),
		audit.NewRecorder(repository.NewAuditRepository(db)),
	)
	return &testEnv{db: db, service: service, customers: customers, invoices: invoices}
}

func TestAddIncomeValidation(t *testing.T) {
	env := newTestEnv(t)

	t.Run("rejects invalid date", func(t *testing.T) {
		_, err := env.service.AddIncome(EntryInput{
			Date: "26-08-2026", Description: "wedding shoot", Category: "photography", Amount: 500,
		}, "admin@test.com")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects blank description", func(t *testing.T) {
		_, err := env.service.AddIncome(EntryInput{
			Date: "2026-08-26", Description: "   ", Category: "photography", Amount: 500,
		}, "admin@test.com")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := env.service.AddIncome(EntryInput{
			Date: "2026-08-26", Description: "wedding shoot", Category: "photography", Amount: 0,
		}, "admin@test.com")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("trims and stores a valid entry", func(t *testing.T) {
		row, err := env.service.AddIncome(EntryInput{
			Date: "2026-08-26", Description: "  wedding shoot ", Category: " photography ", Amount: 500,
		}, "admin@test.com")
		require.NoError(t, err)
		assert.Equal(t, "wedding shoot", row.Description)
		assert.Equal(t, "photography", row.Category)
		assert.NotZero(t, row.ID)
	})
}

func TestIncomeSoftDeleteAndRestore(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.service.AddIncome(EntryInput{
		Date: "2026-08-01", Description: "birthday shoot", Category: "photography", Amount: 300,
	}, "admin@test.com")
	require.NoError(t, err)
	_, err = env.service.AddIncome(EntryInput{
		Date: "2026-08-02", Description: "album print", Category: "prints", Amount: 200,
	}, "admin@test.com")
	require.NoError(t, err)

	require.NoError(t, env.service.DeleteIncome(first.ID, "admin@test.com"))

	rows, total, err := env.service.ListIncome()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 200.0, total)

	t.Run("delete is idempotent-safe: second delete is not found", func(t *testing.T) {
		assert.ErrorIs(t, env.service.DeleteIncome(first.ID, "admin@test.com"), gorm.ErrRecordNotFound)
	})

	t.Run("restore brings the row back into totals", func(t *testing.T) {
		require.NoError(t, env.service.RestoreIncome(first.ID, "admin@test.com"))
		rows, total, err := env.service.ListIncome()
		require.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, 500.0, total)
	})

	t.Run("restoring a live row is not found", func(t *testing.T) {
		assert.ErrorIs(t, env.service.RestoreIncome(first.ID, "admin@test.com"), gorm.ErrRecordNotFound)
	})
}

func TestAddCustomerValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		in   CustomerInput
	}{
		{"missing name", CustomerInput{Service: "wedding", TotalAmount: 1000}},
		{"missing service", CustomerInput{Name: "Jane", TotalAmount: 1000}},
		{"zero total", CustomerInput{Name: "Jane", Service: "wedding", TotalAmount: 0}},
		{"negative paid", CustomerInput{Name: "Jane", Service: "wedding", TotalAmount: 1000, AmountPaid: -1}},
		{"paid exceeds total", CustomerInput{Name: "Jane", Service: "wedding", TotalAmount: 1000, AmountPaid: 1500}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.service.AddCustomer(tc.in, "admin@test.com")
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	customer, err := env.service.AddCustomer(CustomerInput{
		Name: "Jane", Service: "wedding", TotalAmount: 1000, AmountPaid: 400, Contact: "0700000000",
	}, "admin@test.com")
	require.NoError(t, err)
	assert.Equal(t, 600.0, customer.Balance())
}

func TestUpdateCustomerPayment(t *testing.T) {
	env := newTestEnv(t)

	customer, err := env.service.AddCustomer(CustomerInput{
		Name: "Jane", Service: "wedding", TotalAmount: 1000,
	}, "admin@test.com")
	require.NoError(t, err)

	t.Run("rejects payment above total", func(t *testing.T) {
		err := env.service.UpdateCustomerPayment(customer.ID, 1200, "admin@test.com")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects negative payment", func(t *testing.T) {
		err := env.service.UpdateCustomerPayment(customer.ID, -5, "admin@test.com")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown customer is not found", func(t *testing.T) {
		err := env.service.UpdateCustomerPayment(9999, 100, "admin@test.com")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("updates the paid amount", func(t *testing.T) {
		require.NoError(t, env.service.UpdateCustomerPayment(customer.ID, 1000, "admin@test.com"))
		got, err := env.customers.Get(customer.ID)
		require.NoError(t, err)
		assert.Equal(t, 1000.0, got.AmountPaid)
	})
}

func TestDeleteCustomerCascadesToInvoices(t *testing.T) {
	env := newTestEnv(t)

	customer, err := env.service.AddCustomer(CustomerInput{
		Name: "Jane", Service: "wedding", TotalAmount: 1000,
	}, "admin@test.com")
	require.NoError(t, err)

	invoice, err := env.service.AddInvoice(InvoiceInput{
		CustomerID: customer.ID, Date: "2026-08-26", Amount: 1000,
	}, "admin@test.com")
	require.NoError(t, err)

	require.NoError(t, env.service.DeleteCustomer(customer.ID, "admin@test.com"))

	listings, err := env.service.ListInvoices()
	require.NoError(t, err)
	assert.Empty(t, listings)

	customers, pending, err := env.service.ListCustomers()
	require.NoError(t, err)
	assert.Empty(t, customers)
	assert.Equal(t, 0.0, pending)

	t.Run("restore brings back the customer but not the invoices", func(t *testing.T) {
		require.NoError(t, env.service.RestoreCustomer(customer.ID, "admin@test.com"))

		customers, _, err := env.service.ListCustomers()
		require.NoError(t, err)
		assert.Len(t, customers, 1)

		listings, err := env.service.ListInvoices()
		require.NoError(t, err)
		assert.Empty(t, listings)

		require.NoError(t, env.service.RestoreInvoice(invoice.ID, "admin@test.com"))
		listings, err = env.service.ListInvoices()
		require.NoError(t, err)
		assert.Len(t, listings, 1)
	})
}

func TestAddInvoice(t *testing.T) {
	env := newTestEnv(t)

	customer, err := env.service.AddCustomer(CustomerInput{
		Name: "Jane", Service: "wedding", TotalAmount: 1000,
	}, "admin@test.com")
	require.NoError(t, err)

	t.Run("requires an existing customer", func(t *testing.T) {
		_, err := env.service.AddInvoice(InvoiceInput{
			CustomerID: 9999, Date: "2026-08-26", Amount: 100,
		}, "admin@test.com")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("requires a valid date and positive amount", func(t *testing.T) {
		_, err := env.service.AddInvoice(InvoiceInput{
			CustomerID: customer.ID, Date: "not-a-date", Amount: 100,
		}, "admin@test.com")
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = env.service.AddInvoice(InvoiceInput{
			CustomerID: customer.ID, Date: "2026-08-26", Amount: 0,
		}, "admin@test.com")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("generates a number when blank", func(t *testing.T) {
		row, err := env.service.AddInvoice(InvoiceInput{
			CustomerID: customer.ID, Date: "2026-08-26", Amount: 500,
		}, "admin@test.com")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(row.InvoiceNumber, "INV-"), "got %q", row.InvoiceNumber)
		assert.Equal(t, models.InvoiceStatusPending, row.Status)
	})

	t.Run("rejects malformed supplied numbers", func(t *testing.T) {
		_, err := env.service.AddInvoice(InvoiceInput{
			InvoiceNumber: "INV 001!", CustomerID: customer.ID, Date: "2026-08-26", Amount: 100,
		}, "admin@test.com")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("supplied duplicate is a conflict", func(t *testing.T) {
		_, err := env.service.AddInvoice(InvoiceInput{
			InvoiceNumber: "INV-CUSTOM-1", CustomerID: customer.ID, Date: "2026-08-26", Amount: 100,
		}, "admin@test.com")
		require.NoError(t, err)

		_, err = env.service.AddInvoice(InvoiceInput{
			InvoiceNumber: "INV-CUSTOM-1", CustomerID: customer.ID, Date: "2026-08-26", Amount: 100,
		}, "admin@test.com")
		assert.ErrorIs(t, err, ErrDuplicateInvoiceNumber)
	})
}

func TestInvoiceStatusTransitions(t *testing.T) {
	env := newTestEnv(t)

	customer, err := env.service.AddCustomer(CustomerInput{
		Name: "Jane", Service: "wedding", TotalAmount: 1000,
	}, "admin@test.com")
	require.NoError(t, err)
	invoice, err := env.service.AddInvoice(InvoiceInput{
		CustomerID: customer.ID, Date: "2026-08-26", Amount: 500,
	}, "admin@test.com")
	require.NoError(t, err)

	require.NoError(t, env.service.MarkInvoicePaid(invoice.ID, "admin@test.com"))
	got, err := env.invoices.GetByID(invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, got.Status)

	require.NoError(t, env.service.CancelInvoice(invoice.ID, "admin@test.com"))
	got, err = env.invoices.GetByID(invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusCancelled, got.Status)

	assert.ErrorIs(t, env.service.MarkInvoicePaid(9999, "admin@test.com"), gorm.ErrRecordNotFound)
}

func TestInvoiceSoftDeleteTimestamps(t *testing.T) {
	env := newTestEnv(t)

	customer, err := env.service.AddCustomer(CustomerInput{
		Name: "Jane", Service: "wedding", TotalAmount: 1000,
	}, "admin@test.com")
	require.NoError(t, err)
	invoice, err := env.service.AddInvoice(InvoiceInput{
		CustomerID: customer.ID, Date: "2026-08-26", Amount: 500,
	}, "admin@test.com")
	require.NoError(t, err)

	require.NoError(t, env.service.DeleteInvoice(invoice.ID, "admin@test.com"))
	got, err := env.invoices.GetByID(invoice.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)
	require.NotNil(t, got.DeletedAt)
	assert.WithinDuration(t, time.Now(), *got.DeletedAt, time.Minute)

	require.NoError(t, env.service.RestoreInvoice(invoice.ID, "admin@test.com"))
	got, err = env.invoices.GetByID(invoice.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDeleted)
	assert.Nil(t, got.DeletedAt)
}

func TestNextInvoiceNumberFormat(t *testing.T) {
	env := newTestEnv(t)

	number, err := env.service.NextInvoiceNumber()
	require.NoError(t, err)

	parts := strings.Split(number, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "INV", parts[0])
	assert.Len(t, parts[1], 8)
	assert.Len(t, parts[2], 4)
	assert.Equal(t, strings.ToUpper(parts[2]), parts[2])
}

func TestAssets(t *testing.T) {
	env := newTestEnv(t)

	t.Run("validates input", func(t *testing.T) {
		_, err := env.service.AddAsset(AssetInput{Name: "", Category: "camera", Value: 100}, "admin@test.com")
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = env.service.AddAsset(AssetInput{Name: "Canon R5", Category: "camera", Value: 0}, "admin@test.com")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	asset, err := env.service.AddAsset(AssetInput{
		Name: "Canon R5", Category: "camera", Value: 3500, Supplier: "Camera House",
	}, "admin@test.com")
	require.NoError(t, err)

	rows, total, err := env.service.ListAssets()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 3500.0, total)

	t.Run("delete is permanent", func(t *testing.T) {
		require.NoError(t, env.service.DeleteAsset(asset.ID, "admin@test.com"))
		rows, total, err := env.service.ListAssets()
		require.NoError(t, err)
		assert.Empty(t, rows)
		assert.Equal(t, 0.0, total)
	})
}

func TestReport(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.AddIncome(EntryInput{
		Date: "2026-07-15", Description: "wedding shoot", Category: "photography", Amount: 800,
	}, "admin@test.com")
	require.NoError(t, err)
	_, err = env.service.AddIncome(EntryInput{
		Date: "2026-09-01", Description: "baby shoot", Category: "photography", Amount: 300,
	}, "admin@test.com")
	require.NoError(t, err)
	_, err = env.service.AddExpense(EntryInput{
		Date: "2026-07-20", Description: "studio rent", Category: "rent", Amount: 500,
	}, "admin@test.com")
	require.NoError(t, err)

	t.Run("rejects invalid dates", func(t *testing.T) {
		_, err := env.service.Report("bad", "2026-07-31")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects start after end", func(t *testing.T) {
		_, err := env.service.Report("2026-08-01", "2026-07-01")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("only counts rows inside the range", func(t *testing.T) {
		report, err := env.service.Report("2026-07-01", "2026-07-31")
		require.NoError(t, err)
		assert.Len(t, report.Income, 1)
		assert.Len(t, report.Expenses, 1)
		assert.Equal(t, 800.0, report.TotalIncome)
		assert.Equal(t, 500.0, report.TotalExpenses)
		assert.Equal(t, 300.0, report.NetProfit)
	})
}

func TestSummary(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.AddIncome(EntryInput{
		Date: "2026-08-01", Description: "wedding shoot", Category: "photography", Amount: 1000,
	}, "admin@test.com")
	require.NoError(t, err)
	_, err = env.service.AddExpense(EntryInput{
		Date: "2026-08-02", Description: "studio rent", Category: "rent", Amount: 400,
	}, "admin@test.com")
	require.NoError(t, err)
	_, err = env.service.AddCustomer(CustomerInput{
		Name: "Jane", Service: "wedding", TotalAmount: 2000, AmountPaid: 500,
	}, "admin@test.com")
	require.NoError(t, err)
	_, err = env.service.AddAsset(AssetInput{
		Name: "Canon R5", Category: "camera", Value: 3500,
	}, "admin@test.com")
	require.NoError(t, err)

	summary, err := env.service.Summary()
	require.NoError(t, err)
	assert.Equal(t, 1000.0, summary.TotalIncome)
	assert.Equal(t, 400.0, summary.TotalExpenses)
	assert.Equal(t, 600.0, summary.NetProfit)
	assert.Equal(t, 1500.0, summary.TotalPendingBalance)
	assert.Equal(t, 3500.0, summary.TotalAssetValue)
	assert.Len(t, summary.RecentTransactions, 2)
	assert.Equal(t, "expense", summary.RecentTransactions[0].Type)
}

func TestAuditTrailRecordsMutations(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.AddIncome(EntryInput{
		Date: "2026-08-01", Description: "wedding shoot", Category: "photography", Amount: 1000,
	}, "admin@test.com")
	require.NoError(t, err)

	entries, err := env.service.AuditTrail(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "create", entries[0].Action)
	assert.Equal(t, "income", entries[0].EntityType)
	assert.Equal(t, "admin@test.com", entries[0].UserEmail)
}
