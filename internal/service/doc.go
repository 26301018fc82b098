// Package service implements the annotation store.
//
// AnnotationService keeps the ordered address-to-record mapping in memory
// and applies the record rules from the domain package on every write:
// address validation, placeholder defaults, derived numeric form and risk
// tier. Persistence is explicit: nothing reaches disk until Save.
//
// Errors returned by the service wrap the domain sentinels
// (ErrInvalidAddress, ErrFileRead, ErrFileWrite) so front ends can branch
// on them with errors.Is.
package service
