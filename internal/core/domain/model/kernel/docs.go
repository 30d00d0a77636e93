// Package kernel contains shared value objects of the freight domain:
// the caller Identity with its Role, and the generators for order and
// tracking numbers.
//
// Everything in this package is immutable and safe for concurrent use.
package kernel
