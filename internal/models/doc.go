// Package models defines the core domain models for the receipt splitter.
//
// # Models
//
//   - Bill: a captured receipt (store, date, totals) owning its Items
//   - Item: one line of the receipt; Price is already quantity-adjusted
//   - Participant: a person attached to a receipt, keyed by (ReceiptID, UserID)
//   - Split: the share assignment for one item; its ID is the item ID
//   - Share: one participant's relative weight and computed cost within a Split
//   - Report: per-participant totals with proportional tax
//
// # Relationships
//
// Models never point at each other. Ownership is expressed through explicit
// foreign-key fields (Item.BillID, Share.ItemID, Share.ReceiptID) and resolved
// by store queries:
//
//  1. A Bill owns its Items. Replacing the item list discards every prior Item.
//  2. A Split owns its Shares. Saving a Split again replaces all of its Shares.
//  3. Participants live independently of Bills; a participant id may appear
//     under several receipts.
//
// Monetary values are exact decimals (github.com/shopspring/decimal) and are
// only converted to float64 at the wire boundary.
package models
