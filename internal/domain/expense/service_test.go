package expense_test

import (
	"context"
	"testing"

	"github.com/rpggio/showbill/internal/domain/activity"
	"github.com/rpggio/showbill/internal/domain/expense"
	"github.com/rpggio/showbill/internal/domain/show"
	"github.com/rpggio/showbill/internal/repository"
	"github.com/rpggio/showbill/internal/repository/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpenseService_AddDefaults(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ExpenseRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)
	shows := &mocks.ShowToucher{}
	shows.On("Touch", ctx, "s1").Return(nil)
	acts := &mocks.ActivityRepository{}
	acts.On("Log", ctx, mock.Anything).Return(nil)

	exp, err := expense.NewService(repo, shows, acts, nil, nil).Add(ctx, "s1", expense.AddRequest{Amount: decimal.NewFromInt(30)})
	require.NoError(t, err)
	require.Equal(t, expense.CategoryPerDiem, exp.Category)
	require.Equal(t, "Per Diem", exp.Description)
	require.NotEmpty(t, exp.Date)

	acts.AssertCalled(t, "Log", ctx, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeExpenseAdded && *e.RecordID == exp.ID
	}))
}

func TestExpenseService_DescriptionFollowsCategory(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ExpenseRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)
	shows := &mocks.ShowToucher{}
	shows.On("Touch", ctx, "s1").Return(nil)

	exp, err := expense.NewService(repo, shows, nil, nil, nil).Add(ctx, "s1", expense.AddRequest{Category: expense.CategoryHotel})
	require.NoError(t, err)
	require.Equal(t, "Hotel", exp.Description)
	require.True(t, exp.Amount.IsZero())
}

func TestExpenseService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := expense.NewService(&mocks.ExpenseRepository{}, &mocks.ShowToucher{}, nil, nil, nil)

	_, err := svc.Add(ctx, "s1", expense.AddRequest{Category: "Champagne"})
	require.ErrorIs(t, err, expense.ErrInvalidInput)
	_, err = svc.Add(ctx, "s1", expense.AddRequest{Amount: decimal.RequireFromString("-5")})
	require.ErrorIs(t, err, expense.ErrInvalidInput)
	_, err = svc.Add(ctx, "", expense.AddRequest{})
	require.ErrorIs(t, err, expense.ErrInvalidInput)
}

func TestExpenseService_AddMissingShow(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ExpenseRepository{}
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrForeignKeyViolation)

	_, err := expense.NewService(repo, &mocks.ShowToucher{}, nil, nil, nil).Add(ctx, "nope", expense.AddRequest{})
	require.ErrorIs(t, err, show.ErrShowNotFound)
}

func TestExpenseService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	existing := &expense.Expense{ID: "e1", ShowID: "s1", Date: "2024-03-01", Category: expense.CategoryTaxi, Description: "Airport", Amount: decimal.NewFromInt(40)}
	repo := &mocks.ExpenseRepository{}
	repo.On("Get", ctx, "e1").Return(existing, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)
	repo.On("Delete", ctx, "e1").Return(nil)
	shows := &mocks.ShowToucher{}
	shows.On("Touch", ctx, "s1").Return(nil)

	svc := expense.NewService(repo, shows, nil, nil, nil)
	amount := decimal.RequireFromString("42.50")
	exp, err := svc.Update(ctx, "e1", expense.UpdateRequest{Amount: &amount})
	require.NoError(t, err)
	require.Equal(t, "Airport", exp.Description)
	require.Equal(t, "42.50", exp.Amount.StringFixed(2))

	require.NoError(t, svc.Delete(ctx, "e1"))
	shows.AssertNumberOfCalls(t, "Touch", 2)
}
