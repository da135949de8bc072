// Package lineitems describes the line item pass. Every row becomes a line item
// associated to the deal of its slip number; rows whose deal does not exist are skipped.
package lineitems
