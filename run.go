package lingua

// Run identifies one crawl of one grouping key's paginated section.
type Run struct {
	Key      string
	StartURL string
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Key == "" {
		return Errorf(EINVALID, "run grouping key required")
	}
	if r.StartURL == "" {
		return Errorf(EINVALID, "run start URL required")
	}
	return nil
}

// RunState is the position of a run in its state machine.
type RunState string

// Run states. A run moves STARTING -> PAGE_LOADED -> LINKS_EXTRACTED and
// then either ADVANCING back to PAGE_LOADED, or to COMPLETE or FAILED.
const (
	RunStarting       RunState = "STARTING"
	RunPageLoaded     RunState = "PAGE_LOADED"
	RunLinksExtracted RunState = "LINKS_EXTRACTED"
	RunAdvancing      RunState = "ADVANCING"
	RunComplete       RunState = "COMPLETE"
	RunFailed         RunState = "FAILED"
)

// RunResult holds the outcome of a single run.
type RunResult struct {
	Key   string
	State RunState

	// Pages is the number of pages loaded.
	Pages int

	// Discovered counts every link extracted, including duplicates.
	Discovered int

	// Stored counts links handed to the word store by this run.
	Stored int

	// Seen counts links skipped because a checkpoint already held them.
	Seen int

	// SkippedPages counts pages whose region could not be extracted.
	SkippedPages int

	// SkippedLinks counts anchors that do not name a word entry.
	SkippedLinks int

	// Err is a *RunError when State is RunFailed.
	Err error
}
