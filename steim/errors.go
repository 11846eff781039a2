package steim

import (
	"errors"
	"fmt"

	"github.com/seisgo/mseed/errs"
)

// DecodeErrorKind classifies why Steim decoding failed.
type DecodeErrorKind int

const (
	BadLength DecodeErrorKind = iota
	BadNibble
	BadDnib
	ShortPayload
	CountMismatch
)

func (k DecodeErrorKind) String() string {
	switch k {
	case BadLength:
		return "BadLength"
	case BadNibble:
		return "BadNibble"
	case BadDnib:
		return "BadDnib"
	case ShortPayload:
		return "ShortPayload"
	case CountMismatch:
		return "CountMismatch"
	default:
		return "Unknown"
	}
}

// DecodeError reports a Steim1/Steim2 decode failure together with
// the frame/word position that triggered it.
type DecodeError struct {
	Kind      DecodeErrorKind
	Frame     int
	WordIndex int
	sentinel  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("steim: decode error %s at frame %d word %d: %v", e.Kind, e.Frame, e.WordIndex, e.sentinel)
}

func (e *DecodeError) Unwrap() error { return e.sentinel }

func newDecodeError(kind DecodeErrorKind, frame, word int) *DecodeError {
	var sentinel error
	switch kind {
	case BadLength:
		sentinel = errs.ErrBadLength
	case BadNibble:
		sentinel = errs.ErrBadNibble
	case BadDnib:
		sentinel = errs.ErrBadDnib
	case ShortPayload:
		sentinel = errs.ErrShortPayload
	case CountMismatch:
		sentinel = errs.ErrCountMismatch
	default:
		sentinel = errors.New("steim: unknown decode error")
	}

	return &DecodeError{Kind: kind, Frame: frame, WordIndex: word, sentinel: sentinel}
}

// EncodeErrorKind classifies why Steim encoding failed.
type EncodeErrorKind int

const (
	Empty EncodeErrorKind = iota
	NegativeFrameCap
	OffsetOutOfRange
	FloatInputToSteim
	ValueTooWide
)

func (k EncodeErrorKind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case NegativeFrameCap:
		return "NegativeFrameCap"
	case OffsetOutOfRange:
		return "OffsetOutOfRange"
	case FloatInputToSteim:
		return "FloatInputToSteim"
	case ValueTooWide:
		return "ValueTooWide"
	default:
		return "Unknown"
	}
}

// EncodeError reports a Steim1/Steim2 encode failure.
type EncodeError struct {
	Kind      EncodeErrorKind
	SampleIdx int
	sentinel  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("steim: encode error %s at sample %d: %v", e.Kind, e.SampleIdx, e.sentinel)
}

func (e *EncodeError) Unwrap() error { return e.sentinel }

func newEncodeError(kind EncodeErrorKind, sampleIdx int) *EncodeError {
	var sentinel error
	switch kind {
	case Empty:
		sentinel = errs.ErrEmptyInput
	case NegativeFrameCap:
		sentinel = errs.ErrNegativeFrameCap
	case OffsetOutOfRange:
		sentinel = errs.ErrOffsetOutOfRange
	case FloatInputToSteim:
		sentinel = errors.New("steim: float input cannot be Steim encoded")
	case ValueTooWide:
		sentinel = errs.ErrValueTooWide
	default:
		sentinel = errors.New("steim: unknown encode error")
	}

	return &EncodeError{Kind: kind, SampleIdx: sampleIdx, sentinel: sentinel}
}
