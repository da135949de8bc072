package deals

import (
	"crm-sync/core/crm"
	"crm-sync/core/reconcile"
	"crm-sync/core/schema"
)

// LineItemKeyProperty is the searchable line item property holding the slip number.
const LineItemKeyProperty = "bugyo_denpyo_no"

// Create describes the deal-create pass.
func Create(cfg reconcile.Config) reconcile.Descriptor {
	return reconcile.Descriptor{
		Kind:        reconcile.KindDealCreate,
		ObjectType:  crm.ObjectDeals,
		Operation:   reconcile.OperationCreate,
		Mapping:     configuredMapping(cfg),
		Fingerprint: Scope(),
		KeyColumn:   ColumnSlipNo,
	}
}

// Update describes the deal-update pass. Line items of every listed slip are archived
// before the deals are updated through their slip number.
func Update(cfg reconcile.Config) reconcile.Descriptor {
	return reconcile.Descriptor{
		Kind:        reconcile.KindDealUpdate,
		ObjectType:  crm.ObjectDeals,
		Operation:   reconcile.OperationUpdate,
		Mapping:     configuredMapping(cfg),
		Fingerprint: Scope(),
		KeyColumn:   ColumnSlipNo,
		IDProperty:  PropertyKey,
		ArchiveChildren: &reconcile.ArchiveRule{
			ObjectType:  crm.ObjectLineItems,
			KeyProperty: LineItemKeyProperty,
		},
	}
}

func configuredMapping(cfg reconcile.Config) schema.Mapping {
	return Mapping().
		WithLabels(PropertyStage, cfg.StageLabels).
		WithLabels(PropertyPipeline, cfg.PipelineLabels)
}
