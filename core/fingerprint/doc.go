// Package fingerprint computes deterministic content digests over ordered row fields.
//
// A digest is the lowercase hex SHA-512 of the listed field values joined by a comma,
// with absent values rendered as the empty string. Field order is part of the contract:
// the lists are fixed literals owned by each entity kind and must never be derived at
// runtime, otherwise digests computed by earlier runs stop matching.
//
// Every entity kind uses a Scope with two lists. The business list covers the content of
// the record; the audit list adds who touched it and when. The business digest is written
// to the sha512_contents column and the full digest (business followed by audit) to the
// sha512 column, so both travel to the CRM as ordinary properties.
package fingerprint
