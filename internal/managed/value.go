package managed

// Value is satisfied by anything embedding Object. Only Values may be stored
// under a managing key; the store shares ownership through Ref/Unref.
type Value interface {
	Ref()
	Unref() bool
	Count() uint64
}
