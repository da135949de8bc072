package lineitems

import (
	"crm-sync/core/fingerprint"
	"crm-sync/core/schema"
	"crm-sync/feature/deals"
)

// BusinessColumns is the business content of a line item row, in digest order.
var BusinessColumns = []string{
	"伝票No.", "売上区分コード", "出荷区分", "商品コード種類コード", "商品コード",
	"商品名", "商品名2", "商品名3", "商品名4", "商品名5", "商品名6", "注文No.", "倉庫コード",
	"単価区分", "入数", "入数2", "箱数", "数量", "単位", "単価", "単位原価", "売単価", "売上金額",
	"売上原価", "売上原価2", "課税区分コード", "取引状態区分コード", "税率種別", "税率区分コード",
	"税率", "税込区分コード", "原価税込区分コード", "入数小数桁", "入数2小数桁", "箱数小数桁",
	"数量小数桁", "単価小数桁", "消費税", "原価消費税", "同時処理コード", "仕入先コード", "備考",
	"付箋色コード", "付箋メモ",
}

// Scope returns the line item fingerprint scope.
func Scope() *fingerprint.Scope {
	return &fingerprint.Scope{Name: "line item", Business: BusinessColumns, Audit: deals.AuditColumns}
}

// Mapping returns the line item field mapping.
func Mapping() schema.Mapping {
	return schema.Mapping{
		Name: "line item",
		Fields: []schema.Field{
			schema.Many("売上金額", "hs_price_jpy", "bugyo_urage_kingaku_urage_denpyo_base"),
			schema.One("単価小数桁", "tanka_shosu_keta"),
			schema.One("箱数小数桁", "hakosuu_shosu_keta"),
			schema.One("商品名", "name"),
			schema.One("入数", "nyuusuu"),
			schema.One("入数2", "nyuusuu_shosu_keta"),
			schema.One("商品コード", "shouhin_code"),
			schema.One("仕入先コード", "shu_shiire_saki_code"),
			schema.One("数量小数桁", "suuryou_shosu_keta"),
			schema.One("単位", "tanni"),
			schema.One("備考", "bugyo_biko"),
			schema.One("注文No.", "bugyo_chumon_no"),
			schema.Many(deals.ColumnSlipNo, deals.LineItemKeyProperty, "no____"),
			schema.One("同時処理コード", "bugyo_douzi_shori_code"),
			schema.One("付箋メモ", "bugyo_fusen_memo"),
			schema.One("付箋色コード", "bugyo_fusenshoku_code"),
			schema.One("原価消費税", "bugyo_genka_shohizei"),
			schema.One("原価税込区分コード", "bugyo_genka_zeikomi_kubun_code"),
			schema.One("箱数", "bugyo_hako_su"),
			schema.One("入数2小数桁", "bugyo_irisu2_shousu_keta"),
			schema.One("課税区分コード", "bugyo_kazeikubun_code"),
			schema.One("商品名2", "bugyo_shohinmei2"),
			schema.One("商品名3", "bugyo_shohinmei3"),
			schema.One("商品名4", "bugyo_shohinmei4"),
			schema.One("商品名5", "bugyo_shohinmei5"),
			schema.One("商品名6", "bugyo_shohinmei6"),
			schema.One("消費税", "bugyo_shohizei"),
			schema.One("出荷区分", "bugyo_shukka_kubun"),
			schema.One("修正日付", "bugyo_shusei_hiduke_uriage_denpyo_base"),
			schema.One("修正者名", "bugyo_shusei_sha_urage_denpyo_base"),
			schema.One("倉庫コード", "bugyo_souko_code"),
			schema.One("商品コード種類コード", "bugyo_syohin_code_shurui_code"),
			schema.One("単位原価", "bugyo_tani_genka_urage_denpyo_base"),
			schema.Many("単価", "bugyo_tanka", "price"),
			schema.One("単価区分", "bugyo_tanka_kubun"),
			schema.One("取引状態区分コード", "bugyo_torihiki_zyotai_kubun_code"),
			schema.One("登録日付", "bugyo_touroku_hiduke_uriage_denpyo_base"),
			schema.One("登録者名", "bugyo_tourokusha_mei_uriage_denpyo_base"),
			schema.One("売上原価", "bugyo_uriage_genka"),
			schema.One("売上区分コード", "bugyo_uriage_kubun_code"),
			schema.One("売単価", "bugyo_uritanka"),
			schema.One("税込区分コード", "bugyo_zeikomi_kubun_code"),
			schema.One("税率", "bugyo_zeiritsu"),
			schema.One("税率区分コード", "bugyo_zeiritsu_kubun_code"),
			schema.One("税率種別", "bugyo_zeiritsu_shubetu"),
			schema.One("売上原価2", "n2"),
			schema.One(fingerprint.ColumnFull, "sha512"),
			schema.One(fingerprint.ColumnBusiness, "sha512_contents"),
			schema.One("数量", "quantity"),
		},
		Transforms: map[string]schema.Transform{
			"bugyo_shusei_hiduke_uriage_denpyo_base":  schema.TransformExact,
			"bugyo_touroku_hiduke_uriage_denpyo_base": schema.TransformExact,
		},
	}
}
