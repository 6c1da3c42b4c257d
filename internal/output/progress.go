package output

// Progress emits the line-oriented suite execution events. The uncolored text
// of every line is fixed; color is applied around it only on terminals.
type Progress struct {
	w *Writer
}

// NewProgress creates a Progress that reports through w.
func NewProgress(w *Writer) *Progress {
	return &Progress{w: w}
}

// SuiteSkipped reports a suite that is not executed and why.
func (p *Progress) SuiteSkipped(suite, reason string) {
	p.w.Line(p.w.palette.yellow.Sprint("🚧Skipping suite: " + suite + " because " + reason))
}

// SuiteBegin reports the start of a suite.
func (p *Progress) SuiteBegin(suite string) {
	p.w.Line(p.w.palette.bold.Sprint("🚀Beginning Suite: " + suite))
}

// SuiteEnd reports the end of a suite.
func (p *Progress) SuiteEnd(suite string) {
	p.w.Line(p.w.palette.bold.Sprint("Ending Suite: " + suite))
}

// TestBegin reports the start of a test.
func (p *Progress) TestBegin(test string) {
	p.w.Line("  Beginning Test: " + test)
}

// TestEnd reports the end of a test.
func (p *Progress) TestEnd(test string) {
	p.w.Line("  Ending Test: " + test)
}

// TestSkipped reports a skipped test. An empty reason prints the label alone.
func (p *Progress) TestSkipped(test, reason string) {
	line := "  🚧Skipping Test: " + test
	if reason != "" {
		line += " because " + reason
	}
	p.w.Line(p.w.palette.yellow.Sprint(line))
}

// Passed reports a passing comparison.
func (p *Progress) Passed() {
	p.w.Line(p.w.palette.green.Sprint("    ✅PASSED"))
}

// Failed reports a failing comparison.
func (p *Progress) Failed(message string) {
	p.w.Line(p.w.palette.red.Sprint("    ❌FAILED: " + message))
}

// Errored reports a failure raised by the function under test.
func (p *Progress) Errored(message string) {
	p.w.Line(p.w.palette.red.Sprint("    🔥ERROR: " + message))
}
