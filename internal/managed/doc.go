// Package managed implements the reference-counted object runtime shared by
// plists, text properties, and any value stored under a managing key.
//
// An object embeds Object and arms it with a destructor via Init. Ref and
// Unref are the only legal ways to share or drop an object; the last Unref
// runs the destructor. Counts are 16-bit and overflow into an extended
// counter so counts >= 65535 remain exact.
//
// A process-global debug registry can be enabled to track every live managed
// object; it is meant for leak hunting in tests and is off by default.
package managed
