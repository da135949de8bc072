package products_test

import (
	"testing"

	"crm-sync/core/reconcile"
	"crm-sync/core/record"
	"crm-sync/core/schema"
	"crm-sync/feature/deals"
	"crm-sync/feature/products"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportHeader() *record.Header {
	cols := append([]string{}, products.BusinessColumns...)
	return record.NewHeader(append(cols, deals.AuditColumns...))
}

func TestBusinessColumnsCoverMapping(t *testing.T) {
	h := exportHeader()
	require.NoError(t, products.Create(reconcile.Config{}).Check(h))

	audit := map[string]bool{}
	for _, c := range deals.AuditColumns {
		audit[c] = true
	}
	for _, src := range products.Mapping().Sources() {
		if audit[src] || src == "sha512" || src == "sha512_contents" {
			continue
		}
		assert.Contains(t, products.BusinessColumns, src)
	}
}

func TestMapping_Translate(t *testing.T) {
	h := exportHeader()
	row := record.NewRow(h, nil, 2).
		With("商品コード", "P-001").
		With("標準価格（税抜）", "980").
		With("修正日付", "2024/03/05 09:00:00")
	stamped := products.Scope().Stamp(&record.Table{Header: h, Rows: []record.Row{row}})

	props := schema.NewTranslator().Translate(stamped.Rows[0], products.Mapping())
	assert.Equal(t, "980", props["hs_price_jpy"])
	assert.Equal(t, "980", props["hyoujun_kakaku_zeinuki"])
	assert.Equal(t, "P-001", props["shouhin_code"])
	assert.Equal(t, "1709596800000", props["bugyo_shuusei_hizuke_syouhin_master_base"])
	assert.Equal(t, "", props["bugyo_toroku_hizuke_syouhin_master_base"])
	assert.Len(t, props["bugyo_sha512_syouhin_master_base"], 128)
	assert.Len(t, props["bugyo_sha512_contents_syouhin_master_base"], 128)
}

func TestScope_PassesUpstreamDigestsThrough(t *testing.T) {
	h := exportHeader().Extend("sha512", "sha512_contents")
	row := record.NewRow(h, nil, 2).
		With("商品コード", "P-001").
		With("sha512", "upstream-full").
		With("sha512_contents", "upstream-business")
	stamped := products.Scope().Stamp(&record.Table{Header: h, Rows: []record.Row{row}})

	props := schema.NewTranslator().Translate(stamped.Rows[0], products.Mapping())
	assert.Equal(t, "upstream-full", props["bugyo_sha512_syouhin_master_base"])
	assert.Equal(t, "upstream-business", props["bugyo_sha512_contents_syouhin_master_base"])
}
