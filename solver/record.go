package solver

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// A Recorder logs every derived globally blocked clause to two streams: a
// plain stream holding the clause itself, and an annotated stream that
// repeats the witness literal and appends the antecedent part, as expected
// by external proof tooling.
type Recorder struct {
	plain     *bufio.Writer
	annotated *bufio.Writer
	closers   []io.Closer
}

// NewRecorder builds a recorder over two arbitrary writers. Useful for
// tests; production callers go through OpenRecorder.
func NewRecorder(plain, annotated io.Writer) *Recorder {
	return &Recorder{
		plain:     bufio.NewWriter(plain),
		annotated: bufio.NewWriter(annotated),
	}
}

// OpenRecorder creates the plain stream at path and the annotated stream at
// path + "_pr".
func OpenRecorder(path string) (*Recorder, error) {
	plain, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create record file %q", path)
	}
	annotated, err := os.Create(path + "_pr")
	if err != nil {
		plain.Close()
		return nil, errors.Wrapf(err, "could not create record file %q", path+"_pr")
	}
	rec := NewRecorder(plain, annotated)
	rec.closers = []io.Closer{plain, annotated}
	return rec, nil
}

// record writes one derived clause. The plain stream gets the witness
// literal followed by the negated conditional part; the annotated stream
// additionally repeats the witness and lists the antecedent literals.
func (r *Recorder) record(lit Lit, negConditional, antecedents []Lit) error {
	write := func(w *bufio.Writer, lits ...[]Lit) error {
		if _, err := fmt.Fprintf(w, "%d ", lit.Int()); err != nil {
			return err
		}
		for i, group := range lits {
			for _, l := range group {
				if _, err := fmt.Fprintf(w, "%d ", l.Int()); err != nil {
					return err
				}
			}
			if i == 0 && len(lits) > 1 {
				if _, err := fmt.Fprintf(w, "%d ", lit.Int()); err != nil {
					return err
				}
			}
		}
		_, err := w.WriteString("\n")
		return err
	}
	if err := write(r.plain, negConditional); err != nil {
		return errors.Wrap(err, "could not record clause")
	}
	if err := write(r.annotated, negConditional, antecedents); err != nil {
		return errors.Wrap(err, "could not record annotated clause")
	}
	return nil
}

// Close flushes both streams and closes any underlying files.
func (r *Recorder) Close() error {
	var first error
	if err := r.plain.Flush(); err != nil {
		first = err
	}
	if err := r.annotated.Flush(); err != nil && first == nil {
		first = err
	}
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return errors.Wrap(first, "could not close recorder")
}

// AttachRecorder plugs rec into the solver. While a recorder is attached
// the conditional derivation also scans redundant clauses, so the recorded
// stream justifies every clause the solver knows about.
func (s *Solver) AttachRecorder(rec *Recorder) {
	s.rec = rec
}
