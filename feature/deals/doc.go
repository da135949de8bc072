// Package deals describes the deal passes: creating deals from the sales slip export and
// updating them in place.
//
// Deals are keyed by the slip number (伝票No.), stored in the unique property no_____.
// An update first archives the line items of the listed slips so that the following
// line item pass recreates them from scratch.
package deals
