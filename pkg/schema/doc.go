// Package schema turns out-of-band field layouts into decoders for the
// client's binary configuration format.
//
// The byte stream carries no field names, tags or lengths, so a record's
// layout is contractual: a schema descriptor is an explicit, ordered list of
// typed field slots, and decoding walks that list issuing the matching wire
// reads in order. Field order is an exact contract: transposing two fields
// of the same width decodes without error and silently produces transposed
// values. Golden fixtures are the only practical defense; see the package
// tests and pkg/catalog.
package schema
