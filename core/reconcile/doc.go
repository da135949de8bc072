// Package reconcile turns source tables into ordered CRM batch operations.
//
// One Engine serves every entity kind. A Descriptor binds it to a kind: the remote object
// type, whether rows create or update objects, the field mapping, the fingerprint scope,
// the association rule and the child-archive rule.
//
// # Plan and Apply
//
// Work is split in two steps. Plan validates the table against the descriptor, performs
// the read-only lookups (children to archive, parent ids to associate), translates rows
// and chunks them into batches. It never writes. Apply submits the batches of a plan in
// order and requires explicit confirmation.
//
//	engine := reconcile.NewEngine(client, res, cfg.Sync, log, collector)
//	plan, err := engine.Plan(ctx, deals.Update(cfg.Sync), table)
//	if err != nil {
//	    return err
//	}
//	report, err := engine.Apply(ctx, plan, reconcile.Options{Confirmed: true})
//
// # Batches
//
// Batches are at most Config.BatchSize objects. Archive batches always precede write
// batches. A failed batch is recorded in the Report and the next batch is still
// submitted; only context cancellation stops Apply early.
//
// # Kinds
//
//   - deal-create: rows create deals.
//   - deal-update: line items of the listed invoices are archived, then deals are
//     updated through their invoice number property.
//   - line-item-create: rows create line items associated to the deal of their invoice;
//     rows whose deal cannot be resolved are skipped.
//   - product-create: rows create products.
package reconcile
