package capture

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Writer appends transaction records to a capture stream.
// Records are written as a sequence of self-delimiting CBOR items.
type Writer struct {
	enc *cbor.Encoder
}

// NewWriter creates a capture writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: cbor.NewEncoder(w)}
}

// WriteTransaction appends one record to the stream.
func (w *Writer) WriteTransaction(rec TransactionRecord) error {
	if err := validateTransaction(&rec); err != nil {
		return err
	}

	if err := w.enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to encode capture record: %w", err)
	}

	return nil
}

// Reader consumes transaction records from a capture stream.
type Reader struct {
	dec *cbor.Decoder
}

// NewReader creates a capture reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: cbor.NewDecoder(r)}
}

// ReadTransaction reads the next record. It returns io.EOF at the end of the
// stream and ErrInvalidRecord for a record that decodes but fails validation.
func (r *Reader) ReadTransaction() (TransactionRecord, error) {
	var rec TransactionRecord
	if err := r.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return TransactionRecord{}, io.EOF
		}

		return TransactionRecord{}, fmt.Errorf("failed to decode capture record: %w", err)
	}

	if err := validateTransaction(&rec); err != nil {
		return TransactionRecord{}, err
	}

	return rec, nil
}

// ReadAll reads records until the end of the stream.
func (r *Reader) ReadAll() ([]TransactionRecord, error) {
	var recs []TransactionRecord
	for {
		rec, err := r.ReadTransaction()
		if errors.Is(err, io.EOF) {
			return recs, nil
		}
		if err != nil {
			return recs, err
		}

		recs = append(recs, rec)
	}
}

func validateTransaction(rec *TransactionRecord) error {
	if rec.Bus > 1 {
		return fmt.Errorf("%w: bus bit %d", ErrInvalidRecord, rec.Bus)
	}
	if len(rec.Command) == 0 {
		return fmt.Errorf("%w: empty command payload", ErrInvalidRecord)
	}

	return nil
}

// MarshalStats encodes a statistics report as a single CBOR document.
func MarshalStats(recs []StatsRecord) ([]byte, error) {
	data, err := cbor.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stats report: %w", err)
	}

	return data, nil
}

// UnmarshalStats decodes a statistics report produced by MarshalStats.
func UnmarshalStats(data []byte) ([]StatsRecord, error) {
	var recs []StatsRecord
	if err := cbor.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode stats report: %w", err)
	}

	return recs, nil
}
