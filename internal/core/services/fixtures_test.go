package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/platform/config"
	"github.com/SscSPs/ledger_core/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const (
	testWorkplace = "ws-test"
	testUser      = "user-test"

	codeAssets        = "1-0000"
	codeCash          = "1-1001"
	codeBank          = "1-1101"
	codeBankSecondary = "1-1102"
	codeReceivable    = "1-2001"
	codePayable       = "2-1001"
	codeTaxPayable    = "2-2001"
	codeCapital       = "3-1001"
	codeRevenue       = "4-1001"
	codeInterest      = "4-2001"
	codeExpense       = "5-1001"
	codeBankCharges   = "5-2001"
	codeOtherAdj      = "5-3001"
	codeRetired       = "5-9001"
)

var fixedNow = time.Date(2026, time.March, 31, 10, 0, 0, 0, time.UTC)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 0, 0, 0, 0, time.UTC)
}

func chartOfAccounts() []domain.Account {
	acc := func(code, name string, t domain.AccountType, subType string) domain.Account {
		return domain.Account{
			AccountID:   "acc-" + code,
			WorkplaceID: testWorkplace,
			Code:        code,
			Name:        name,
			AccountType: t,
			SubType:     subType,
			IsActive:    true,
			AuditFields: domain.NewAuditFields(fixedNow, testUser),
			Balance:     decimal.Zero,
		}
	}

	header := acc(codeAssets, "Assets", domain.Asset, "")
	header.IsHeader = true
	retired := acc(codeRetired, "Retired expense", domain.Expense, "")
	retired.IsActive = false

	return []domain.Account{
		header,
		acc(codeCash, "Petty cash", domain.Asset, domain.SubTypeCash),
		acc(codeBank, "Operating bank", domain.Asset, domain.SubTypeBank),
		acc(codeBankSecondary, "Savings bank", domain.Asset, domain.SubTypeBank),
		acc(codeReceivable, "Accounts receivable", domain.Asset, ""),
		acc(codePayable, "Accounts payable", domain.Liability, ""),
		acc(codeTaxPayable, "Tax payable", domain.Liability, ""),
		acc(codeCapital, "Owner capital", domain.Equity, ""),
		acc(codeRevenue, "Sales revenue", domain.Revenue, ""),
		acc(codeInterest, "Interest income", domain.Revenue, domain.SubTypeBankInterest),
		acc(codeExpense, "Operating expense", domain.Expense, ""),
		acc(codeBankCharges, "Bank charges", domain.Expense, domain.SubTypeBankCharges),
		acc(codeOtherAdj, "Other adjustments", domain.Expense, domain.SubTypeOtherAdjustment),
		retired,
	}
}

// ledgerSuite wires every service over a fresh in-memory store.
type ledgerSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	svc   *portssvc.ServiceContainer
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.store.SeedAccounts(chartOfAccounts()...)
	cfg := &config.Config{CurrencyScale: services.DefaultCurrencyScale}
	s.svc = services.NewServiceContainer(cfg, s.store.Repositories(), func() time.Time { return fixedNow })
}

func (s *ledgerSuite) balance(code string) decimal.Decimal {
	acc, err := s.store.FindAccountByCode(s.ctx, testWorkplace, code)
	s.Require().NoError(err)
	return acc.Balance
}

func (s *ledgerSuite) assertBalance(code, expected string) {
	s.T().Helper()
	got := s.balance(code)
	s.True(got.Equal(amount(expected)), "balance of %s: expected %s, got %s", code, expected, got)
}

func (s *ledgerSuite) createEntry(entryDate time.Time, description string, lines ...dto.LineRequest) *domain.JournalEntry {
	entry, err := s.svc.Journal.CreateEntry(s.ctx, testWorkplace, dto.CreateEntryRequest{
		EntryDate:       entryDate,
		TransactionType: domain.TxnAdjustment,
		Description:     description,
		Lines:           lines,
	}, testUser)
	s.Require().NoError(err)
	return entry
}

func (s *ledgerSuite) postEntry(entryDate time.Time, description string, lines ...dto.LineRequest) *domain.JournalEntry {
	draft := s.createEntry(entryDate, description, lines...)
	posted, err := s.svc.Journal.PostEntry(s.ctx, testWorkplace, draft.EntryID, testUser)
	s.Require().NoError(err)
	return posted
}

func debit(code, amt string) dto.LineRequest {
	return dto.LineRequest{AccountCode: code, DebitAmount: amount(amt), CreditAmount: decimal.Zero}
}

func credit(code, amt string) dto.LineRequest {
	return dto.LineRequest{AccountCode: code, DebitAmount: decimal.Zero, CreditAmount: amount(amt)}
}
