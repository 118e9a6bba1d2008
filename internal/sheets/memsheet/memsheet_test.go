package memsheet

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/showbill/internal/invoice"
	"github.com/stretchr/testify/require"
)

func TestStore_CopyWriteClear(t *testing.T) {
	ctx := context.Background()
	store := New()
	store.AddDocument("tmpl", "Template")
	require.NoError(t, store.BatchWrite(ctx, "tmpl", []invoice.ValueRange{{Range: "Invoice!A1", Values: [][]any{{"INVOICE"}}}}))

	docID, err := store.CopyDocument(ctx, "tmpl", "Acme - Expo (12345678)")
	require.NoError(t, err)
	name, ok := store.Document(docID)
	require.True(t, ok)
	require.Equal(t, "Acme - Expo (12345678)", name)
	require.Equal(t, "INVOICE", store.Value(docID, "Invoice!A1"))

	require.NoError(t, store.BatchWrite(ctx, docID, []invoice.ValueRange{
		{Range: "Invoice!A14:C15", Values: [][]any{{1, "a", "b"}, {2, "c", "d"}}},
	}))
	require.Equal(t, [][]any{{1, "a", "b"}, {2, "c", "d"}}, store.RowsIn(docID, "Invoice!A14:C40"))

	require.NoError(t, store.BatchClear(ctx, docID, []string{"Invoice!A15:J40"}))
	require.Equal(t, [][]any{{1, "a", "b"}}, store.RowsIn(docID, "Invoice!A14:C40"))

	// the template is untouched
	require.Nil(t, store.Value("tmpl", "Invoice!A14"))
}

func TestStore_AppendStacksRows(t *testing.T) {
	ctx := context.Background()
	store := New()
	store.AddDocument("log", "Log")

	require.NoError(t, store.Append(ctx, "log", "Hours!A:Z", [][]any{{"s1", 1}, {"s1", 2}}))
	require.NoError(t, store.Append(ctx, "log", "Hours!A:Z", [][]any{{"s1", 3}}))

	require.Equal(t, [][]any{{"s1", 1}, {"s1", 2}, {"s1", 3}}, store.Rows("log", "Hours"))
	require.Len(t, store.Calls("Append"), 2)
}

func TestStore_Failures(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, err := store.CopyDocument(ctx, "missing", "x")
	require.Error(t, err)

	store.AddDocument("d", "D")
	boom := errors.New("quota exceeded")
	store.FailOn("BatchClear", boom)
	require.ErrorIs(t, store.BatchClear(ctx, "d", []string{"A1:B2"}), boom)
	store.FailOn("BatchClear", nil)
	require.NoError(t, store.BatchClear(ctx, "d", []string{"A1:B2"}))
}
