// Package resolver looks up remote CRM object ids by external business key.
//
// ResolveIDs batch-reads objects through a unique id property (the deal invoice number)
// and returns key to record id. FindMatching runs IN-filter searches and follows the
// paging cursor until the last page. Both split their input into calls the API accepts
// and, on a failed call, return what was gathered so far together with the error.
package resolver
