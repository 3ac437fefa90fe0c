package validation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"budget-recon/internal/parsererror"
	"budget-recon/internal/tabular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireColumns(t *testing.T) {
	table := &tabular.Table{
		Path:   "Unimarket Export.csv",
		Header: []string{"RequisitionNumber", "OrderNumber", "OrderLineAmount"},
	}

	err := RequireColumns(table, "purchasing", PurchasingColumns)
	require.Error(t, err)

	var mce *parsererror.MissingColumnError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, "AcctPart4", mce.Column)
	assert.Equal(t, "purchasing", mce.Dataset)
	assert.Equal(t, "Unimarket Export.csv", mce.FilePath)

	table.Header = append(table.Header, "AcctPart4", "Extra")
	assert.NoError(t, RequireColumns(table, "purchasing", PurchasingColumns))
}

func TestRequireColumns_CaseSensitive(t *testing.T) {
	table := &tabular.Table{Header: []string{"doc_code", "TRANS_AMT", "DR_CR_IND", "ACCT_CODE"}}
	assert.Error(t, RequireColumns(table, "ledger", LedgerColumns))
}

func TestMissingColumns(t *testing.T) {
	table := &tabular.Table{Header: []string{"TRANS_AMT"}}
	assert.Equal(t, []string{"DOC_CODE", "DR_CR_IND", "ACCT_CODE"}, MissingColumns(table, LedgerColumns))
	assert.Nil(t, MissingColumns(&tabular.Table{Header: LedgerColumns}, LedgerColumns))
}

func TestIsReadableFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(file, []byte("a\n"), 0600))

	assert.NoError(t, IsReadableFile(file))

	var verr *parsererror.ValidationError
	require.True(t, errors.As(IsReadableFile(filepath.Join(dir, "missing.csv")), &verr))
	assert.Equal(t, "file does not exist", verr.Reason)

	require.True(t, errors.As(IsReadableFile(dir), &verr))
	assert.Equal(t, "not a regular file", verr.Reason)

	require.True(t, errors.As(IsReadableFile(""), &verr))
}

func TestIsValidDelimiter(t *testing.T) {
	assert.NoError(t, IsValidDelimiter(","))
	assert.NoError(t, IsValidDelimiter(";"))
	assert.NoError(t, IsValidDelimiter("\t"))
	assert.Error(t, IsValidDelimiter(""))
	assert.Error(t, IsValidDelimiter(",,"))
	assert.Error(t, IsValidDelimiter("\""))
	assert.Error(t, IsValidDelimiter("\n"))
}
