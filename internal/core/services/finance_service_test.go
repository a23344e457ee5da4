package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/finance_dashboard/internal/apperrors"
	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	"github.com/SscSPs/finance_dashboard/internal/core/ledger"
	"github.com/SscSPs/finance_dashboard/internal/core/services"
	"github.com/SscSPs/finance_dashboard/internal/repositories/kv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type FinanceServiceTestSuite struct {
	suite.Suite
	store   *kv.NotifyingStore
	repo    *kv.LedgerStateRepository
	service *services.FinanceService
	ctx     context.Context
}

func (suite *FinanceServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = kv.NewNotifyingStore(kv.NewMemoryStore())
	suite.repo = kv.NewLedgerStateRepository(suite.store, nil)
	suite.service = services.NewFinanceService(suite.repo, services.WithFinanceIDGenerator(sequentialIDs("id")))
}

func (suite *FinanceServiceTestSuite) TearDownTest() {
	suite.service.Close()
}

func (suite *FinanceServiceTestSuite) TestInitialize_SeedsFirstRun() {
	suite.Require().NoError(suite.service.Initialize(suite.ctx))

	state := suite.service.State(suite.ctx)
	suite.Len(state.Accounts, 4)
	suite.Len(state.Transactions, 3)
	suite.Len(state.Goals, 3)
	// 8459.45-999 + 2850+4500 + 15230.80-15.99 - 1200
	suite.Equal("28825.26", state.TotalBalance.StringFixed(2))
	suite.Equal("Netflix Subscription", state.Transactions[0].Title, "newest first")
	suite.Equal(domain.StatusPending, state.Transactions[0].Status)
	suite.Equal(state.Accounts[2].ID, state.Transactions[0].AccountID, "round-robin assignment")

	stored, ok := suite.repo.Load(suite.ctx)
	suite.Require().True(ok, "seed is persisted")
	suite.Equal(state.TotalBalance.String(), stored.TotalBalance.String())
}

func (suite *FinanceServiceTestSuite) TestInitialize_RehydratesWithoutSeeding() {
	stored := domain.NewLedgerState()
	stored.Accounts = []domain.Account{{ID: "a1", Title: "Only", Balance: decimal.NewFromInt(42), Type: domain.Checking}}
	suite.repo.Save(suite.ctx, stored)

	suite.Require().NoError(suite.service.Initialize(suite.ctx))

	state := suite.service.State(suite.ctx)
	suite.Len(state.Accounts, 1)
	suite.Empty(state.Transactions)
	suite.Equal("42", state.TotalBalance.String(), "total is recomputed on load")
}

func (suite *FinanceServiceTestSuite) TestInitialize_SeedingDisabled() {
	svc := services.NewFinanceService(suite.repo, services.WithSampleData(false))
	defer svc.Close()

	suite.Require().NoError(svc.Initialize(suite.ctx))

	state := svc.State(suite.ctx)
	suite.Empty(state.Accounts)
	suite.Equal(domain.DefaultProfile(), state.Profile)
}

func (suite *FinanceServiceTestSuite) TestInitialize_WithoutStorage() {
	svc := services.NewFinanceService(kv.NewLedgerStateRepository(nil, nil))
	defer svc.Close()

	suite.Require().NoError(svc.Initialize(suite.ctx))
	suite.Len(svc.State(suite.ctx).Accounts, 4, "seeds in memory when nothing can be stored")
}

func (suite *FinanceServiceTestSuite) TestCRUDHelpers_PersistEveryChange() {
	svc := services.NewFinanceService(suite.repo, services.WithSampleData(false), services.WithFinanceIDGenerator(sequentialIDs("x")))
	defer svc.Close()
	suite.Require().NoError(svc.Initialize(suite.ctx))

	account, err := svc.CreateAccount(suite.ctx, domain.Account{Title: "Wallet", Balance: decimal.NewFromInt(100), Type: domain.Checking})
	suite.Require().NoError(err)
	suite.Equal("x-1", account.ID)

	txn, err := svc.CreateTransaction(suite.ctx, domain.Transaction{
		Title: "Coffee", Amount: decimal.NewFromInt(30), Direction: domain.Outgoing,
		Status: domain.StatusCompleted, AccountID: account.ID, Timestamp: time.Now(),
	})
	suite.Require().NoError(err)

	stored, ok := suite.repo.Load(suite.ctx)
	suite.Require().True(ok)
	suite.Equal("70", stored.TotalBalance.String())

	txn.Amount = decimal.NewFromInt(80)
	_, err = svc.UpdateTransaction(suite.ctx, *txn)
	suite.Require().NoError(err)
	suite.Equal("20", svc.State(suite.ctx).TotalBalance.String())

	suite.Require().NoError(svc.DeleteTransaction(suite.ctx, txn.ID))
	suite.Equal("100", svc.State(suite.ctx).TotalBalance.String())

	goal, err := svc.CreateGoal(suite.ctx, domain.Goal{Title: "Trip", Status: domain.GoalPending})
	suite.Require().NoError(err)
	goal.Status = domain.GoalCompleted
	updatedGoal, err := svc.UpdateGoal(suite.ctx, *goal)
	suite.Require().NoError(err)
	suite.Equal(domain.GoalCompleted, updatedGoal.Status)
	suite.Require().NoError(svc.DeleteGoal(suite.ctx, goal.ID))

	name := "Grace"
	profile, err := svc.UpdateProfile(suite.ctx, domain.ProfilePatch{Name: &name})
	suite.Require().NoError(err)
	suite.Equal("Grace", profile.Name)
	suite.Equal(domain.DefaultProfile().Role, profile.Role)

	suite.Require().NoError(svc.DeleteAccount(suite.ctx, account.ID))
	stored, ok = suite.repo.Load(suite.ctx)
	suite.Require().True(ok)
	suite.Empty(stored.Accounts)
	suite.Empty(stored.Goals)
	suite.Equal("Grace", stored.Profile.Name)
}

func (suite *FinanceServiceTestSuite) TestDispatch_RejectedActionLeavesStateUntouched() {
	suite.Require().NoError(suite.service.Initialize(suite.ctx))
	before := suite.service.State(suite.ctx)

	_, err := suite.service.CreateTransaction(suite.ctx, domain.Transaction{
		Title: "Ghost", Amount: decimal.NewFromInt(5), Direction: domain.Incoming,
		Status: domain.StatusCompleted, AccountID: "missing",
	})
	suite.ErrorIs(err, apperrors.ErrAccountNotFound)

	err = suite.service.DeleteGoal(suite.ctx, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.Dispatch(suite.ctx, nil)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.Equal(before, suite.service.State(suite.ctx))
}

func (suite *FinanceServiceTestSuite) TestReset_ReseedsAfterClear() {
	suite.Require().NoError(suite.service.Initialize(suite.ctx))
	_, err := suite.service.Dispatch(suite.ctx, ledger.DeleteAccount{AccountID: suite.service.State(suite.ctx).Accounts[0].ID})
	suite.Require().NoError(err)
	suite.Len(suite.service.State(suite.ctx).Accounts, 3)

	state, err := suite.service.Reset(suite.ctx)

	suite.Require().NoError(err)
	suite.Len(state.Accounts, 4)
	suite.Equal("28825.26", state.TotalBalance.StringFixed(2))
}

func (suite *FinanceServiceTestSuite) TestOnExternalChange_ReportsOtherWriters() {
	suite.Require().NoError(suite.service.Initialize(suite.ctx))

	var received []domain.LedgerState
	unsubscribe := suite.service.OnExternalChange(func(state domain.LedgerState) {
		received = append(received, state)
	})
	defer unsubscribe()

	// Own writes are not reported.
	_, err := suite.service.CreateGoal(suite.ctx, domain.Goal{Title: "Mine", Status: domain.GoalPending})
	suite.Require().NoError(err)
	suite.Empty(received)

	other := services.NewFinanceService(kv.NewLedgerStateRepository(suite.store, nil), services.WithFinanceIDGenerator(sequentialIDs("other")))
	defer other.Close()
	suite.Require().NoError(other.Initialize(suite.ctx))
	_, err = other.CreateGoal(suite.ctx, domain.Goal{Title: "Theirs", Status: domain.GoalPending})
	suite.Require().NoError(err)

	suite.Require().Len(received, 1)
	suite.Len(received[0].Goals, 5)
	suite.Len(suite.service.State(suite.ctx).Goals, 4, "in-memory ledger is not replaced")
}

func TestFinanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FinanceServiceTestSuite))
}
