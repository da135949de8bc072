package deals

import (
	"crm-sync/core/fingerprint"
	"crm-sync/core/schema"
)

// Source columns and remote properties referenced outside the mapping table.
const (
	ColumnSlipNo = "伝票No."

	PropertyKey      = "no_____"
	PropertyStage    = "dealstage"
	PropertyPipeline = "pipeline"
)

// AuditColumns are the modification columns shared by every export.
var AuditColumns = []string{"修正日付", "修正者名", "登録日付", "登録者名"}

// BusinessColumns is the business content of a deal row, in digest order.
var BusinessColumns = []string{
	"伝票区分コード", "売上日付", "請求日付", "伝票No.", "受注ID", "受注明細ID",
	"得意先コード", "得意先名1", "得意先名2", "請求先コード", "税額通知コード", "得意先担当者",
	"部門コード", "担当者コード", "プロジェクトコード", "信販会社コード", "摘要", "摘要2", "摘要3",
	"伝票フラグコード", "直送先コード", "直送先名1", "直送先名2", "直送先担当者", "直送先敬称",
	"直送先役職", "直送先郵便番号", "直送先住所1", "直送先住所2", "直送先電話番号", "直送先FAX番号",
	"回収期日", "信販手数料", "入金摘要", "合計売上",
}

// Scope returns the deal fingerprint scope.
func Scope() *fingerprint.Scope {
	return &fingerprint.Scope{Name: "deal", Business: BusinessColumns, Audit: AuditColumns}
}

// StageLabels maps stage labels of the export to pipeline stage ids.
var StageLabels = map[string]string{
	"FAX受注 (実績)": "149884283",
}

// PipelineLabels maps pipeline labels to pipeline ids.
var PipelineLabels = map[string]string{
	"実績": "79111068",
}

// Mapping returns the deal field mapping. Create and update share it.
func Mapping() schema.Mapping {
	return schema.Mapping{
		Name: "deal",
		Fields: []schema.Field{
			schema.One("取引ステージ", PropertyStage),
			schema.One("パイプライン", PropertyPipeline),
			schema.One("合計売上", "amount"),
			schema.One("クローズ日", "closedate"),
			schema.One("取引名", "dealname"),
			schema.One("部門コード", "bugyo_bumon_code"),
			schema.One("直送先役職", "bugyo_chokusosaki_yakushoku"),
			schema.One("直送先コード", "bugyo_chokusou_saki_code"),
			schema.One("直送先電話番号", "bugyo_chokusou_saki_denwa_bangou"),
			schema.One("直送先FAX番号", "bugyo_chokusou_saki_fax_bangou"),
			schema.One("直送先住所1", "bugyo_chokusou_saki_juusho1"),
			schema.One("直送先住所2", "bugyo_chokusou_saki_juusho2"),
			schema.One("直送先敬称", "bugyo_chokusou_saki_keishou"),
			schema.One("直送先名1", "bugyo_chokusou_saki_mei1"),
			schema.One("直送先名2", "bugyo_chokusou_saki_mei2"),
			schema.One("直送先担当者", "bugyo_chokusou_saki_tantousha"),
			schema.One("直送先郵便番号", "bugyo_chokusou_saki_yuubin_bangou"),
			schema.One("伝票フラグコード", "bugyo_denpyou_flag_code"),
			schema.One("受注ID", "bugyo_juchuu_id"),
			schema.One("受注明細ID", "bugyo_juchuu_meisai_id"),
			schema.One("回収期日", "bugyo_kaishuu_kijitsu"),
			schema.One("入金摘要", "bugyo_nyuukin_tekiyou"),
			schema.One("プロジェクトコード", "bugyo_project_code"),
			schema.One("請求先コード", "bugyo_seikyuu_saki_code"),
			schema.One("信販会社コード", "bugyo_shinpan_kaisha_code"),
			schema.One("信販手数料", "bugyo_shinpan_tesuuryou"),
			schema.One("修正日付", "bugyo_shuusei_hizuke"),
			schema.One("修正者名", "bugyo_shuuseisha_mei"),
			schema.One("担当者コード", "bugyo_tantousha_code"),
			schema.One("摘要", "bugyo_tekiyou"),
			schema.One("摘要2", "bugyo_tekiyou2"),
			schema.One("摘要3", "bugyo_tekiyou3"),
			schema.One("得意先コード", "bugyo_tokuisaki_code"),
			schema.One("得意先名1", "bugyo_tokuisaki_mei1"),
			schema.One("得意先名2", "bugyo_tokuisaki_mei2"),
			schema.One("得意先担当者", "bugyo_tokuisaki_tantousha"),
			schema.One("登録日付", "bugyo_touroku_hizuke"),
			schema.One("登録者名", "bugyo_tourokusha_mei"),
			schema.One("売上日付", "bugyo_uriage_hiduke"),
			schema.One("税額通知コード", "bugyo_zeigaku_tsuuchi_code"),
			schema.One(ColumnSlipNo, PropertyKey),
			schema.One(fingerprint.ColumnFull, "sha512"),
			schema.One(fingerprint.ColumnBusiness, "sha512_contents"),
		},
		Transforms: map[string]schema.Transform{
			"closedate":            schema.TransformMidnight,
			"bugyo_uriage_hiduke":  schema.TransformMidnight,
			"bugyo_touroku_hizuke": schema.TransformExact,
			"bugyo_shuusei_hizuke": schema.TransformExact,
		},
		Labels: map[string]map[string]string{
			PropertyStage:    StageLabels,
			PropertyPipeline: PipelineLabels,
		},
	}
}
