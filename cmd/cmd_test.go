package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"crm-sync/core/fingerprint"
	"crm-sync/core/utils"
	"crm-sync/feature/ingest"
	"crm-sync/feature/products"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmDestructiveAction(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Yes", "yes\n", true},
		{"YesWithoutNewline", "yes", true},
		{"Padded", "  yes  \n", true},
		{"No", "no\n", false},
		{"Y", "y\n", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Equal(t, tt.want, confirmDestructiveAction(strings.NewReader(tt.input), &out))
			assert.Contains(t, out.String(), "Type 'yes'")
		})
	}
}

func writeProducts(t *testing.T, dir string) string {
	t.Helper()
	cols := utils.Unique(append(products.Scope().FullFields(), products.Mapping().Sources()...))
	var filtered []string
	for _, c := range cols {
		if c != fingerprint.ColumnFull && c != fingerprint.ColumnBusiness {
			filtered = append(filtered, c)
		}
	}
	values := make([]string, len(filtered))
	for i := range values {
		values[i] = "v"
	}
	body := strings.Join(filtered, ",") + "\n" + strings.Join(values, ",") + "\n"

	path := filepath.Join(dir, "products.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetArgs(nil)
		fingerprintOut = ""
	})
	return RootCmd.Execute()
}

func TestFingerprintCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeProducts(t, dir)
	out := filepath.Join(dir, "stamped.csv")

	require.NoError(t, execute(t, "fingerprint", "product-create", in, "--out", out, "--dir", dir))

	src, err := ingest.ReadFile(out)
	require.NoError(t, err)
	require.Len(t, src.Table.Rows, 1)
	full, _ := src.Table.Rows[0].Get(fingerprint.ColumnFull)
	business, _ := src.Table.Rows[0].Get(fingerprint.ColumnBusiness)
	assert.Len(t, full, 128)
	assert.Len(t, business, 128)
	assert.NotEqual(t, full, business)
}

func TestFingerprintCommand_IrregularRowsNeedOut(t *testing.T) {
	dir := t.TempDir()
	in := writeProducts(t, dir)
	f, err := os.OpenFile(in, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString(strings.Repeat("w,", len(products.Scope().FullFields())+3) + "extra\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	before, err := os.ReadFile(in)
	require.NoError(t, err)

	assert.Error(t, execute(t, "fingerprint", "product-create", in, "--dir", dir))
	after, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	out := filepath.Join(dir, "stamped.csv")
	require.NoError(t, execute(t, "fingerprint", "product-create", in, "--out", out, "--dir", dir))
	src, err := ingest.ReadFile(out)
	require.NoError(t, err)
	assert.Len(t, src.Table.Rows, 2)
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeProducts(t, dir)

	assert.NoError(t, execute(t, "check", "product-create", in, "--dir", dir))

	t.Run("MissingColumns", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.csv")
		require.NoError(t, os.WriteFile(bad, []byte("商品コード\nP1\n"), 0o600))
		assert.Error(t, execute(t, "check", "product-create", bad, "--dir", dir))
	})

	t.Run("UnknownKind", func(t *testing.T) {
		assert.Error(t, execute(t, "check", "contacts", in, "--dir", dir))
	})
}
