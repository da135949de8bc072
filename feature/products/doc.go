// Package products describes the product master pass.
package products
