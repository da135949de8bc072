// Package utils provides small helpers shared across crm-sync: loose conversion of
// decoded JSON and query values, and order-preserving slice helpers.
package utils
