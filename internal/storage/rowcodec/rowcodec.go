// Package rowcodec is the binary row format used by on-disk storage.
//
// A row is a sequence of values, each a one-byte type tag followed by a
// little-endian payload:
//
//	smallint  int16
//	integer   int32
//	bigint    int64
//	char      uint32 width, uint32 byte length, bytes
//	varchar   uint32 byte length, bytes
//	boolean   one byte, 0 or 1
package rowcodec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"godbtypes/internal/sql"
)

// ErrTruncated is returned when the input ends in the middle of a row.
var ErrTruncated = errors.New("rowcodec: truncated row")

// WriteRow encodes row to w.
func WriteRow(w io.Writer, row sql.Row) error {
	for _, v := range row {
		if err := binary.Write(w, binary.LittleEndian, uint8(v.Type)); err != nil {
			return err
		}

		var err error
		switch v.Type {
		case sql.TypeSmallInt:
			err = binary.Write(w, binary.LittleEndian, int16(v.I64))
		case sql.TypeInteger:
			err = binary.Write(w, binary.LittleEndian, int32(v.I64))
		case sql.TypeBigInt:
			err = binary.Write(w, binary.LittleEndian, v.I64)
		case sql.TypeChar:
			if err = binary.Write(w, binary.LittleEndian, v.Width); err == nil {
				err = writeString(w, v.S)
			}
		case sql.TypeVarChar:
			err = writeString(w, v.S)
		case sql.TypeBool:
			var b byte
			if v.B {
				b = 1
			}
			err = binary.Write(w, binary.LittleEndian, b)
		default:
			return fmt.Errorf("rowcodec: unsupported value type %v", v.Type)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeString(w io.Writer, s string) error {
	if uint64(len(s)) > math.MaxUint32 {
		return fmt.Errorf("rowcodec: string too long (%d bytes)", len(s))
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// ReadRow decodes one row of numCols values. It returns io.EOF when r is
// exhausted before the first value and ErrTruncated when it ends mid-row.
func ReadRow(r io.Reader, numCols int) (sql.Row, error) {
	row := make(sql.Row, numCols)

	for i := 0; i < numCols; i++ {
		var t uint8
		if err := binary.Read(r, binary.LittleEndian, &t); err != nil {
			if err == io.EOF && i == 0 {
				return nil, io.EOF
			}
			return nil, truncated(err)
		}

		v, err := readValue(r, sql.TypeKind(t))
		if err != nil {
			return nil, truncated(err)
		}
		row[i] = v
	}

	return row, nil
}

func readValue(r io.Reader, kind sql.TypeKind) (sql.Value, error) {
	switch kind {
	case sql.TypeSmallInt:
		var v int16
		err := binary.Read(r, binary.LittleEndian, &v)
		return sql.SmallIntValue(v), err
	case sql.TypeInteger:
		var v int32
		err := binary.Read(r, binary.LittleEndian, &v)
		return sql.IntegerValue(v), err
	case sql.TypeBigInt:
		var v int64
		err := binary.Read(r, binary.LittleEndian, &v)
		return sql.BigIntValue(v), err
	case sql.TypeChar:
		var width uint32
		if err := binary.Read(r, binary.LittleEndian, &width); err != nil {
			return sql.Value{}, err
		}
		s, err := readString(r)
		return sql.Value{Type: sql.TypeChar, S: s, Width: width}, err
	case sql.TypeVarChar:
		s, err := readString(r)
		return sql.VarCharValue(s), err
	case sql.TypeBool:
		var b byte
		err := binary.Read(r, binary.LittleEndian, &b)
		return sql.BoolValue(b != 0), err
	default:
		return sql.Value{}, fmt.Errorf("rowcodec: unsupported value type %v", kind)
	}
}

func readString(r io.Reader) (string, error) {
	var l uint32
	if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
		return "", err
	}
	buf := make([]byte, l)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func truncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrTruncated
	}
	return err
}

// EncodeRow encodes a row into a byte slice.
func EncodeRow(row sql.Row) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteRow(&buf, row); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeRow decodes exactly one row of numCols values from buf.
func DecodeRow(buf []byte, numCols int) (sql.Row, error) {
	r := bytes.NewReader(buf)
	row, err := ReadRow(r, numCols)
	if err == io.EOF {
		return nil, ErrTruncated
	}
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("rowcodec: %d trailing bytes after row", r.Len())
	}
	return row, nil
}
