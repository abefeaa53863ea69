package scheduler

// Listener observes the progress of a [Run].
//
// All calls come from the goroutine that called Run, never concurrently,
// so implementations need no locking for state only they touch.
type Listener interface {
	// Discovering is called for each repository as discovery yields it.
	Discovering(path string)
	// TotalKnown is called once, when discovery is exhausted, with the
	// number of repositories found.
	TotalKnown(total int)
	// Completed is called as each analysis finishes. index counts
	// completions from 1.
	Completed(index int, path string)
	// Done is called exactly once when Run returns, including on abort.
	Done()
}

// NopListener ignores all events.
type NopListener struct{}

func (NopListener) Discovering(string)    {}
func (NopListener) TotalKnown(int)        {}
func (NopListener) Completed(int, string) {}
func (NopListener) Done()                 {}
