package products

import (
	"crm-sync/core/crm"
	"crm-sync/core/reconcile"
)

// Create describes the product-create pass.
func Create(_ reconcile.Config) reconcile.Descriptor {
	return reconcile.Descriptor{
		Kind:        reconcile.KindProductCreate,
		ObjectType:  crm.ObjectProducts,
		Operation:   reconcile.OperationCreate,
		Mapping:     Mapping(),
		Fingerprint: Scope(),
		KeyColumn:   ColumnCode,
	}
}
