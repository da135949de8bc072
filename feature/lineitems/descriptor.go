package lineitems

import (
	"crm-sync/core/crm"
	"crm-sync/core/reconcile"
	"crm-sync/feature/deals"
)

// Create describes the line-item-create pass.
func Create(_ reconcile.Config) reconcile.Descriptor {
	return reconcile.Descriptor{
		Kind:        reconcile.KindLineItemCreate,
		ObjectType:  crm.ObjectLineItems,
		Operation:   reconcile.OperationCreate,
		Mapping:     Mapping(),
		Fingerprint: Scope(),
		KeyColumn:   deals.ColumnSlipNo,
		Association: &reconcile.AssociationRule{
			ParentObjectType: crm.ObjectDeals,
			ParentIDProperty: deals.PropertyKey,
			ParentKeyColumn:  deals.ColumnSlipNo,
			Category:         crm.CategoryHubSpotDefined,
			TypeID:           crm.AssociationLineItemToDeal,
		},
	}
}
