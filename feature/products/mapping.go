package products

import (
	"crm-sync/core/fingerprint"
	"crm-sync/core/schema"
	"crm-sync/feature/deals"
)

// ColumnCode is the product code, the business key of a product row.
const ColumnCode = "商品コード"

// BusinessColumns is the business content of a product row, in digest order.
var BusinessColumns = []string{
	"商品コード", "標準価格（税抜）",
	"売価No.１（税込）", "売価No.１（税抜）", "売価No.２（税込）", "売価No.２（税抜）",
	"売価No.３（税込）", "売価No.３（税抜）", "売価No.４（税込）", "売価No.４（税抜）",
	"売価No.５（税込）", "売価No.５（税抜）", "標準価格（税込）", "仕入原価（税込）", "仕入原価（税抜）",
	"単価小数桁", "単位原価（税込）", "単位原価（税抜）", "在庫単価（税抜）",
	"税区分（販売）", "税区分（仕入）", "税込区分（販売）", "税込区分（仕入）",
	"税率種別（販売）", "税率種別（仕入）", "台帳インデックス", "発注区分", "発注単位数量", "発注点",
	"箱数小数桁", "個別管理", "個別対応", "共用区分", "明細区分", "メモ１", "メモ２", "メモ３",
	"商品名", "入数", "入数小数桁", "利用状態", "最高点", "主仕入先コード", "数量小数桁", "単位",
	"有効期間（開始）", "有効期間（終了）", "在庫管理", "入数２", "入数２小数桁",
	"商品名２", "商品名３", "商品名４", "商品名５", "商品名６",
	"商品区分３コード", "商品区分２コード", "商品区分１コード",
	"商品コード２", "商品コード３", "商品コード４", "商品コード５", "印刷用商品コード",
	"引当管理", "ロット管理", "在庫評価方法", "主倉庫コード", "主ロケーションNo.",
	"出荷予定日設定", "発注納品期日設定", "期限サイクル設定", "期限サイクル（月）", "期限サイクル（日）",
	"単価区分２単位当り単価区分１数", "単価区分２単位", "単価区分２単価区分内容", "単価区分２単価区分備考",
	"単価区分３単位当り単価区分１数", "単価区分３単位", "単価区分３単価区分内容", "単価区分３単価区分備考",
	"単価区分４単位当り単価区分１数", "単価区分４単位", "単価区分４単価区分内容", "単価区分４単価区分備考",
	"単価区分５単位当り単価区分１数", "単価区分５単位", "単価区分５単価区分内容", "単価区分５単価区分備考",
	"売上単価区分", "仕入単価区分", "商品区分１名", "商品区分２名", "商品区分３名",
}

// Scope returns the product fingerprint scope. Digests already in the export are passed through.
func Scope() *fingerprint.Scope {
	return &fingerprint.Scope{Name: "product", Business: BusinessColumns, Audit: deals.AuditColumns, KeepExisting: true}
}

// Mapping returns the product field mapping.
func Mapping() schema.Mapping {
	return schema.Mapping{
		Name: "product",
		Fields: []schema.Field{
			schema.Many("標準価格（税抜）", "hs_price_jpy", "hyoujun_kakaku_zeinuki"),
			schema.One("売価No.１（税込）", "baika_no1_zeikomi"),
			schema.One("売価No.１（税抜）", "baika_no1_zeinuki"),
			schema.One("売価No.２（税込）", "baika_no2_zeikomi"),
			schema.One("売価No.２（税抜）", "baika_no2_zeinuki"),
			schema.One("売価No.３（税込）", "baika_no3_zeikomi"),
			schema.One("売価No.３（税抜）", "baika_no3_zeinuki"),
			schema.One("売価No.４（税込）", "baika_no4_zeikomi"),
			schema.One("売価No.４（税抜）", "baika_no4_zeinuki"),
			schema.One("売価No.５（税込）", "baika_no5_zeikomi"),
			schema.One("売価No.５（税抜）", "baika_no5_zeinuki"),
			schema.One("標準価格（税込）", "hyoujun_kakaku_zeikomi"),
			schema.One("仕入原価（税込）", "siire_genka_zeikomi"),
			schema.One("仕入原価（税抜）", "siire_genka_zeinuki"),
			schema.One("単価小数桁", "tanka_shosu_keta"),
			schema.One("単位原価（税込）", "tanni_genka_zeikomi"),
			schema.One("単位原価（税抜）", "tanni_genka_zeinuki"),
			schema.One("在庫単価（税抜）", "zaiko_tanka_zeinuki"),
			schema.One("税区分（販売）", "zei_kubun_hanbai"),
			schema.One("税区分（仕入）", "zei_kubun_shiire"),
			schema.One("税込区分（販売）", "zeikomi_kubun_hanbai"),
			schema.One("税込区分（仕入）", "zeikomi_kubun_shiire"),
			schema.One("税率種別（販売）", "zeiritsu_shubetsu_hanbai"),
			schema.One("税率種別（仕入）", "zeiritsu_shubetsu_shiire"),
			schema.One("台帳インデックス", "daichou_index"),
			schema.One("発注区分", "hacchuu_kubun"),
			schema.One("発注単位数量", "hacchuu_tanni_suuryou"),
			schema.One("発注点", "hacchuu_ten"),
			schema.One("箱数小数桁", "hakosuu_shosu_keta"),
			schema.One("個別管理", "kobetsu_kanri"),
			schema.One("個別対応", "kobetsu_taiou"),
			schema.One("共用区分", "kyouyou_kubun"),
			schema.One("明細区分", "meisai_kubun"),
			schema.One("メモ１", "memo1"),
			schema.One("メモ２", "memo2"),
			schema.One("メモ３", "memo3"),
			schema.One("商品名", "name"),
			schema.One("入数", "nyuusuu"),
			schema.One("入数小数桁", "nyuusuu_shosu_keta"),
			schema.One("利用状態", "riyou_joutai"),
			schema.One("最高点", "saikou_ten"),
			schema.One("主仕入先コード", "shu_shiire_saki_code"),
			schema.One("数量小数桁", "suuryou_shosu_keta"),
			schema.One("単位", "tanni"),
			schema.One("有効期間（開始）", "yuukou_kikan_kaishi"),
			schema.One("有効期間（終了）", "yuukou_kikan_shuryou"),
			schema.One("在庫管理", "zaiko_kanri"),
			schema.One("入数２", "bugyo_iri_su2"),
			schema.One("入数２小数桁", "bugyo_irisu2_shousu_keta"),
			schema.One("商品名２", "bugyo_shohinmei2"),
			schema.One("商品名３", "bugyo_shohinmei3"),
			schema.One("商品名４", "bugyo_shohinmei4"),
			schema.One("商品名５", "bugyo_shohinmei5"),
			schema.One("商品名６", "bugyo_shohinmei6"),
			schema.One("商品区分３コード", "bugyo_shouhin_kubun_3_code"),
			schema.One("商品区分２コード", "bugyo_shouhin_kubun_2_code"),
			schema.One("商品区分１コード", "bugyo_shouhin_kubun_1_code"),
			schema.One("商品コード２", "bugyo_shouhin_code_2"),
			schema.One("商品コード３", "bugyo_shouhin_code_3"),
			schema.One("商品コード４", "bugyo_shouhin_code_4"),
			schema.One("商品コード５", "bugyo_shouhin_code_5"),
			schema.One("印刷用商品コード", "bugyo_insatsuyou_syouhin_code"),
			schema.One("引当管理", "bugyo_hikiate_kanri"),
			schema.One("ロット管理", "bugyo_lot_kanri"),
			schema.One("在庫評価方法", "bugyo_zaiko_hyouka_houhou"),
			schema.One("主倉庫コード", "bugyo_shu_souko_code"),
			schema.One("主ロケーションNo.", "bugyo_shu_location_no"),
			schema.One("出荷予定日設定", "bugyo_shukka_yoteibi_settei"),
			schema.One("発注納品期日設定", "bugyo_hacchuu_nouhin_kijitsu_settei"),
			schema.One("期限サイクル設定", "bugyo_kigen_cycle_settei"),
			schema.One("期限サイクル（月）", "bugyo_kigen_cycle_month"),
			schema.One("期限サイクル（日）", "bugyo_kigen_cycle_day"),
			schema.One("単価区分２単位当り単価区分１数", "bugyo_tanka_kubun_2_tani_atari_tanka_kubun_1_suu"),
			schema.One("単価区分２単位", "bugyo_tanka_kubun_2_tani"),
			schema.One("単価区分２単価区分内容", "bugyo_tanka_kubun_2_tanka_kubun_naiyou"),
			schema.One("単価区分２単価区分備考", "bugyo_tanka_kubun_2_tanka_kubun_bikou"),
			schema.One("単価区分３単位当り単価区分１数", "bugyo_tanka_kubun_3_tani_atari_tanka_kubun_1_suu"),
			schema.One("単価区分３単位", "bugyo_tanka_kubun_3_tani"),
			schema.One("単価区分３単価区分内容", "bugyo_tanka_kubun_3_tanka_kubun_naiyou"),
			schema.One("単価区分３単価区分備考", "bugyo_tanka_kubun_3_tanka_kubun_bikou"),
			schema.One("単価区分４単位当り単価区分１数", "bugyo_tanka_kubun_4_tani_atari_tanka_kubun_1_suu"),
			schema.One("単価区分４単位", "bugyo_tanka_kubun_4_tani"),
			schema.One("単価区分４単価区分内容", "bugyo_tanka_kubun_4_tanka_kubun_naiyou"),
			schema.One("単価区分４単価区分備考", "bugyo_tanka_kubun_4_tanka_kubun_bikou"),
			schema.One("単価区分５単位当り単価区分１数", "bugyo_tanka_kubun_5_tani_atari_tanka_kubun_1_suu"),
			schema.One("単価区分５単位", "bugyo_tanka_kubun_5_tani"),
			schema.One("単価区分５単価区分内容", "bugyo_tanka_kubun_5_tanka_kubun_naiyou"),
			schema.One("単価区分５単価区分備考", "bugyo_tanka_kubun_5_tanka_kubun_bikou"),
			schema.One("売上単価区分", "bugyo_uriage_tanka_kubun"),
			schema.One("仕入単価区分", "bugyo_shiire_tanka_kubun"),
			schema.One("登録日付", "bugyo_toroku_hizuke_syouhin_master_base"),
			schema.One("登録者名", "bugyo_torokushamei_syouhin_master_base"),
			schema.One("修正日付", "bugyo_shuusei_hizuke_syouhin_master_base"),
			schema.One("修正者名", "bugyo_shuuseishamei_syouhin_master_base"),
			schema.One("商品区分１名", "bugyo_revol_syouhin_shouhin_kubun_1_mei"),
			schema.One("商品区分２名", "bugyo_tasha_maker_syouhin_shouhin_kubun_2_mei"),
			schema.One("商品区分３名", "bugyo_sonota_syouhin_shouhin_kubun_3_mei"),
			schema.One(fingerprint.ColumnFull, "bugyo_sha512_syouhin_master_base"),
			schema.One(fingerprint.ColumnBusiness, "bugyo_sha512_contents_syouhin_master_base"),
			schema.One(ColumnCode, "shouhin_code"),
		},
		Transforms: map[string]schema.Transform{
			"bugyo_toroku_hizuke_syouhin_master_base":  schema.TransformExact,
			"bugyo_shuusei_hizuke_syouhin_master_base": schema.TransformExact,
		},
	}
}
