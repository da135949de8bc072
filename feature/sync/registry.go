package sync

import (
	"crm-sync/core/reconcile"
	"crm-sync/feature/deals"
	"crm-sync/feature/lineitems"
	"crm-sync/feature/products"
)

var builders = map[reconcile.Kind]func(reconcile.Config) reconcile.Descriptor{
	reconcile.KindDealCreate:     deals.Create,
	reconcile.KindDealUpdate:     deals.Update,
	reconcile.KindLineItemCreate: lineitems.Create,
	reconcile.KindProductCreate:  products.Create,
}

// Descriptor returns the descriptor of kind, configured from cfg.
func Descriptor(kind string, cfg reconcile.Config) (reconcile.Descriptor, error) {
	k, err := reconcile.ParseKind(kind)
	if err != nil {
		return reconcile.Descriptor{}, err
	}
	return builders[k](cfg), nil
}
