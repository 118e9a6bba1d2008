package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/showbill/internal/domain/receipt"
	"github.com/rpggio/showbill/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestReceiptRepository_CRUD(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	sh := insertShow(t, db, "Expo", "Acme", time.Now())
	repo := NewReceiptRepository(db)

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &receipt.Receipt{
		ID: "r2", ShowID: sh.ID, FileName: "b.png", ContentType: "image/png", ImageData: "Ag==", CreatedAt: base.Add(time.Minute),
	}))
	require.NoError(t, repo.Create(ctx, &receipt.Receipt{
		ID: "r1", ShowID: sh.ID, FileName: "a.png", ContentType: "image/png", ImageData: "AQ==", CreatedAt: base,
	}))

	list, err := repo.ListByShow(ctx, sh.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "r1", list[0].ID)
	require.Nil(t, list[0].ExpenseID)
	require.Equal(t, "AQ==", list[0].ImageData)

	require.NoError(t, repo.Delete(ctx, "r1"))
	_, err = repo.Get(ctx, "r1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.Create(ctx, &receipt.Receipt{ID: "r3", ShowID: "nope", FileName: "x", ContentType: "image/png", ImageData: "AA==", CreatedAt: base})
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}
