// Package inventory holds the Stock aggregate: one available-quantity record
// per catalog item, shared by every order that ships that item.
package inventory
