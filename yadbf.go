// Package yadbf decodes DBF tables incrementally. Bytes are pushed in
// arbitrarily sized chunks and typed records are pulled back out one at a
// time, so a file never needs to reside in memory whole.
package yadbf

import (
	"io"

	"github.com/axgle/mahonia"
	"github.com/pkg/errors"
	"github.com/trescube/yadbf/log"
)

const (
	space       = 0x20
	deletedFlag = 0x2A
	eofMarker   = 0x1A
	nul         = 0x00
)

// OutcomeKind tags the result of one Next call.
type OutcomeKind uint8

const (
	// OutcomeNeedMoreInput means the held bytes do not complete the header
	// or the current record; push another chunk and call Next again.
	OutcomeNeedMoreInput OutcomeKind = iota
	// OutcomeHeader delivers the parsed header, exactly once, before any
	// record.
	OutcomeHeader
	// OutcomeRecord delivers one decoded record.
	OutcomeRecord
	// OutcomeDone means the end-of-file marker was verified. Terminal.
	OutcomeDone
	// OutcomeFailed means decoding aborted. Terminal; Err is set.
	OutcomeFailed
)

// Outcome is the tagged result of advancing the decoder. Exactly one of
// Header, Record, and Err is set, according to Kind.
type Outcome struct {
	Kind   OutcomeKind
	Header *Header
	Record *Record
	Err    error
}

// Decoder is an incremental DBF decoder. It owns its accumulation buffer
// and counters exclusively; concurrent decoders over independent inputs
// need no coordination, but a single Decoder must not be shared across
// goroutines.
type Decoder struct {
	opts    Options
	textDec mahonia.Decoder
	lgr     log.Logger

	buf    accumulator
	header *Header

	// consumed counts records structurally taken from the stream;
	// eligible counts the subset that passed the deletion filter.
	consumed uint32
	eligible int

	done bool
	err  error
}

// NewDecoder validates opts and returns a fresh decoder. A nil opts uses
// the defaults. Invalid option values fail here, before any byte is
// processed.
func NewDecoder(opts *Options) (*Decoder, error) {
	resolved := DefaultOptions()
	if opts != nil {
		resolved = *opts
	}
	textDec, err := resolved.validate()
	if err != nil {
		return nil, err
	}
	return &Decoder{
		opts:    resolved,
		textDec: textDec,
		lgr:     log.WithModule("yadbf"),
	}, nil
}

// Push appends a chunk to the accumulation buffer. No decoding happens
// until Next is called.
func (d *Decoder) Push(chunk []byte) {
	if d.done || d.err != nil {
		return
	}
	d.buf.append(chunk)
}

// Next advances the decoder by at most one event. Records filtered out by
// the deletion or pagination rules are consumed silently within a single
// call; at most one record is delivered per call, so a slow consumer never
// has decoded records buffered ahead of it. After OutcomeDone or
// OutcomeFailed the same terminal outcome is returned forever.
func (d *Decoder) Next() Outcome {
	if d.err != nil {
		return Outcome{Kind: OutcomeFailed, Err: d.err}
	}
	if d.done {
		return Outcome{Kind: OutcomeDone}
	}

	if d.header == nil {
		if !d.buf.hasHeader() {
			return Outcome{Kind: OutcomeNeedMoreInput}
		}
		header, err := parseHeader(d.buf.peek(d.buf.size()), d.textDec, d.opts.Quirks)
		if err != nil {
			return d.fail(err)
		}
		d.buf.take(int(header.NumberOfHeaderBytes))
		d.header = header
		d.lgr.Debug(
			"parsed header",
			"version", header.Version,
			"fields", len(header.Fields),
			"records", header.NumberOfRecords,
		)
		return Outcome{Kind: OutcomeHeader, Header: header}
	}

	for d.consumed < d.header.NumberOfRecords {
		if !d.buf.hasRecord(d.header) {
			return Outcome{Kind: OutcomeNeedMoreInput}
		}
		record, err := d.decodeRecord(d.buf.take(int(d.header.NumberOfBytesInRecord)))
		if err != nil {
			return d.fail(err)
		}
		d.consumed++
		if record.Deleted && !d.opts.IncludeDeleted {
			continue
		}
		index := d.eligible
		d.eligible++
		if index < d.opts.Offset {
			continue
		}
		if d.opts.Size != SizeUnbounded && index >= d.opts.Offset+d.opts.Size {
			continue
		}
		return Outcome{Kind: OutcomeRecord, Record: record}
	}

	if d.buf.size() == 0 {
		return Outcome{Kind: OutcomeNeedMoreInput}
	}
	if marker := d.buf.take(1); marker[0] != eofMarker {
		return d.fail(errors.Wrapf(ErrMissingEOFMarker, "got 0x%02X", marker[0]))
	}
	d.done = true
	d.lgr.Debug("stream complete", "records", d.consumed, "emitted", d.eligible)
	return Outcome{Kind: OutcomeDone}
}

// Close signals end of input. It returns nil when the stream already
// completed normally, the stream's error if it already failed, and a
// completion error when input ran out early: ErrTruncated before a header
// was parsed, ErrMissingEOFMarker afterwards.
func (d *Decoder) Close() error {
	if d.err != nil {
		return d.err
	}
	if d.done {
		return nil
	}
	if d.header == nil {
		d.err = errors.Wrap(ErrTruncated, "no header")
		return d.err
	}
	d.err = errors.Wrapf(ErrMissingEOFMarker, "stream ended after %d of %d records", d.consumed, d.header.NumberOfRecords)
	return d.err
}

func (d *Decoder) fail(err error) Outcome {
	d.err = err
	d.lgr.Trace("decode failed", "err", err)
	return Outcome{Kind: OutcomeFailed, Err: err}
}

// Sink receives decoded events from Run. Returning a non-nil error stops
// consumption immediately; no further input is read.
type Sink interface {
	HandleHeader(h *Header) error
	HandleRecord(r *Record) error
}

// Run drives the decoder from an io.Reader, forwarding the header and each
// record to sink. It returns nil on a verified end-of-file marker, the
// first decode or sink error otherwise.
func (d *Decoder) Run(r io.Reader, sink Sink) error {
	chunk := make([]byte, 4096)
	for {
		done, err := d.forward(sink)
		if err != nil || done {
			return err
		}
		n, readErr := r.Read(chunk)
		if n > 0 {
			d.Push(chunk[:n])
		}
		if readErr == io.EOF {
			done, err := d.forward(sink)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
			return d.Close()
		}
		if readErr != nil {
			return readErr
		}
	}
}

// forward drains outcomes into sink until more input is needed or the
// stream terminates.
func (d *Decoder) forward(sink Sink) (bool, error) {
	for {
		out := d.Next()
		switch out.Kind {
		case OutcomeNeedMoreInput:
			return false, nil
		case OutcomeHeader:
			if err := sink.HandleHeader(out.Header); err != nil {
				return false, err
			}
		case OutcomeRecord:
			if err := sink.HandleRecord(out.Record); err != nil {
				return false, err
			}
		case OutcomeDone:
			return true, nil
		case OutcomeFailed:
			return false, out.Err
		}
	}
}
