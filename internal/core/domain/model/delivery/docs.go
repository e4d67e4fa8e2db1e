// Package delivery tracks the shipment of a confirmed order from the warehouse to
// the recipient. The destination address can only change while the parcel is
// still being prepared.
package delivery
