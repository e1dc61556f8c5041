package services_test

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/stretchr/testify/suite"
)

type CashTransactionServiceTestSuite struct {
	ledgerSuite
}

func (suite *CashTransactionServiceTestSuite) create(kind domain.CashKind, offset, amt string) *domain.CashTransaction {
	ct, err := suite.svc.CashTransaction.CreateCashTransaction(suite.ctx, testWorkplace, dto.CreateCashTransactionRequest{
		Kind:              kind,
		TransactionDate:   date(time.March, 10),
		CashAccountCode:   codeCash,
		OffsetAccountCode: offset,
		Amount:            amount(amt),
		Description:       "Counter sale",
		Reference:         "RCPT-001",
	}, testUser)
	suite.Require().NoError(err)
	return ct
}

func (suite *CashTransactionServiceTestSuite) TestReceiptLifecycle() {
	ct := suite.create(domain.Receipt, codeRevenue, "300")
	suite.Equal(domain.CashDraft, ct.Status)

	newAmount := amount("350")
	ct, err := suite.svc.CashTransaction.UpdateCashTransaction(suite.ctx, testWorkplace, ct.CashTransactionID,
		dto.UpdateCashTransactionRequest{Amount: &newAmount}, testUser)
	suite.Require().NoError(err)
	suite.True(ct.Amount.Equal(newAmount))

	ct, err = suite.svc.CashTransaction.SubmitCashTransaction(suite.ctx, testWorkplace, ct.CashTransactionID, testUser)
	suite.Require().NoError(err)
	suite.Equal(domain.CashSubmitted, ct.Status)
	suite.assertBalance(codeCash, "0")

	_, err = suite.svc.CashTransaction.UpdateCashTransaction(suite.ctx, testWorkplace, ct.CashTransactionID,
		dto.UpdateCashTransactionRequest{Amount: &newAmount}, testUser)
	suite.True(apperrors.IsInvalidState(err), "got %v", err)

	ct, err = suite.svc.CashTransaction.ApproveCashTransaction(suite.ctx, testWorkplace, ct.CashTransactionID, testUser)
	suite.Require().NoError(err)
	suite.Equal(domain.CashPosted, ct.Status)
	suite.Require().NotNil(ct.JournalEntryID)
	suite.assertBalance(codeCash, "350")
	suite.assertBalance(codeRevenue, "350")

	entry, err := suite.svc.Journal.GetEntry(suite.ctx, testWorkplace, *ct.JournalEntryID)
	suite.Require().NoError(err)
	suite.Equal(domain.TxnCashReceipt, entry.TransactionType)
	suite.True(entry.IsPosted)
	suite.Require().NotNil(entry.DocumentNumber)
	suite.Equal("RCPT-001", *entry.DocumentNumber)

	ct, err = suite.svc.CashTransaction.VoidCashTransaction(suite.ctx, testWorkplace, ct.CashTransactionID, testUser)
	suite.Require().NoError(err)
	suite.Equal(domain.CashVoid, ct.Status)
	suite.Require().NotNil(ct.ReversalEntryID)
	suite.assertBalance(codeCash, "0")
	suite.assertBalance(codeRevenue, "0")

	_, err = suite.svc.CashTransaction.VoidCashTransaction(suite.ctx, testWorkplace, ct.CashTransactionID, testUser)
	suite.True(apperrors.IsInvalidState(err), "got %v", err)
}

func (suite *CashTransactionServiceTestSuite) TestDisbursementCreditsCash() {
	ct := suite.create(domain.Disbursement, codeExpense, "120")
	_, err := suite.svc.CashTransaction.SubmitCashTransaction(suite.ctx, testWorkplace, ct.CashTransactionID, testUser)
	suite.Require().NoError(err)
	_, err = suite.svc.CashTransaction.ApproveCashTransaction(suite.ctx, testWorkplace, ct.CashTransactionID, testUser)
	suite.Require().NoError(err)

	suite.assertBalance(codeCash, "-120")
	suite.assertBalance(codeExpense, "120")
}

func (suite *CashTransactionServiceTestSuite) TestRejectRequiresReasonAndBlocksApproval() {
	ct := suite.create(domain.Disbursement, codeExpense, "50")
	_, err := suite.svc.CashTransaction.SubmitCashTransaction(suite.ctx, testWorkplace, ct.CashTransactionID, testUser)
	suite.Require().NoError(err)

	_, err = suite.svc.CashTransaction.RejectCashTransaction(suite.ctx, testWorkplace, ct.CashTransactionID, "  ", testUser)
	suite.True(apperrors.IsValidation(err), "got %v", err)

	rejected, err := suite.svc.CashTransaction.RejectCashTransaction(suite.ctx, testWorkplace, ct.CashTransactionID, "missing receipt", testUser)
	suite.Require().NoError(err)
	suite.Equal(domain.CashRejected, rejected.Status)
	suite.Equal("missing receipt", rejected.RejectionReason)

	_, err = suite.svc.CashTransaction.ApproveCashTransaction(suite.ctx, testWorkplace, ct.CashTransactionID, testUser)
	suite.True(apperrors.IsInvalidState(err), "got %v", err)
	suite.assertBalance(codeCash, "0")
}

func (suite *CashTransactionServiceTestSuite) TestApproveRollsBackWhenPostingFails() {
	ct := suite.create(domain.Receipt, codeRevenue, "80")
	_, err := suite.svc.CashTransaction.SubmitCashTransaction(suite.ctx, testWorkplace, ct.CashTransactionID, testUser)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.SetAccountActive(testWorkplace, codeRevenue, false))

	_, err = suite.svc.CashTransaction.ApproveCashTransaction(suite.ctx, testWorkplace, ct.CashTransactionID, testUser)
	suite.True(apperrors.IsValidation(err), "got %v", err)

	stored, err := suite.svc.CashTransaction.GetCashTransaction(suite.ctx, testWorkplace, ct.CashTransactionID)
	suite.Require().NoError(err)
	suite.Equal(domain.CashSubmitted, stored.Status)
	suite.Nil(stored.JournalEntryID)

	entries, err := suite.svc.Journal.ListEntries(suite.ctx, testWorkplace, dto.ListEntriesParams{})
	suite.Require().NoError(err)
	suite.Empty(entries.Entries)
}

func (suite *CashTransactionServiceTestSuite) TestCreateValidation() {
	testCases := []struct {
		name string
		req  dto.CreateCashTransactionRequest
	}{
		{"same accounts", dto.CreateCashTransactionRequest{Kind: domain.Receipt, CashAccountCode: codeCash, OffsetAccountCode: codeCash, Amount: amount("1")}},
		{"zero amount", dto.CreateCashTransactionRequest{Kind: domain.Receipt, CashAccountCode: codeCash, OffsetAccountCode: codeRevenue, Amount: amount("0")}},
		{"header offset", dto.CreateCashTransactionRequest{Kind: domain.Receipt, CashAccountCode: codeCash, OffsetAccountCode: codeAssets, Amount: amount("1")}},
		{"unknown kind", dto.CreateCashTransactionRequest{Kind: "BARTER", CashAccountCode: codeCash, OffsetAccountCode: codeRevenue, Amount: amount("1")}},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			req := tc.req
			req.TransactionDate = date(time.March, 1)
			req.Description = tc.name
			_, err := suite.svc.CashTransaction.CreateCashTransaction(suite.ctx, testWorkplace, req, testUser)
			suite.True(apperrors.IsValidation(err), "got %v", err)
		})
	}
}

func (suite *CashTransactionServiceTestSuite) TestDeleteOnlyDrafts() {
	draft := suite.create(domain.Receipt, codeRevenue, "10")
	submitted := suite.create(domain.Receipt, codeRevenue, "20")
	_, err := suite.svc.CashTransaction.SubmitCashTransaction(suite.ctx, testWorkplace, submitted.CashTransactionID, testUser)
	suite.Require().NoError(err)

	suite.NoError(suite.svc.CashTransaction.DeleteCashTransaction(suite.ctx, testWorkplace, draft.CashTransactionID, testUser))
	err = suite.svc.CashTransaction.DeleteCashTransaction(suite.ctx, testWorkplace, submitted.CashTransactionID, testUser)
	suite.True(apperrors.IsInvalidState(err), "got %v", err)

	status := domain.CashSubmitted
	list, err := suite.svc.CashTransaction.ListCashTransactions(suite.ctx, testWorkplace, &status)
	suite.Require().NoError(err)
	suite.Len(list, 1)
}

func TestCashTransactionService(t *testing.T) {
	suite.Run(t, new(CashTransactionServiceTestSuite))
}
