// Package overlay serves the user-detail permission view: the per-country
// Pay & Markets attribute records (display-only, governed externally) and the
// per-product feature toggle lists (mutable). The two capabilities are kept
// separate on purpose; they differ in both mutability and keying.
package overlay
