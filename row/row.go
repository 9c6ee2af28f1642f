// Package row implements the fixed-width binary codec for table rows and
// the layout arithmetic derived from the field sizes.
package row

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// bin is the byte order used for the id field.
var bin = binary.LittleEndian

// Row is one record of the fixed schema. Username and Email are fixed
// capacity buffers; values shorter than the column are NUL padded, values
// that exactly fill the column carry no terminator.
type Row struct {
	ID       uint32
	Username [UsernameSize]byte
	Email    [EmailSize]byte
}

// New builds a row from strings, truncating values that do not fit in their
// column. Width validation is the caller's job; see repl.Prepare.
func New(id uint32, username, email string) Row {
	r := Row{ID: id}
	copy(r.Username[:], username)
	copy(r.Email[:], email)
	return r
}

// UsernameString returns the username up to the first NUL byte, or the
// whole column when it is completely filled.
func (r Row) UsernameString() string { return cString(r.Username[:]) }

// EmailString returns the email up to the first NUL byte, or the whole
// column when it is completely filled.
func (r Row) EmailString() string { return cString(r.Email[:]) }

func (r Row) String() string {
	return fmt.Sprintf("(%d, %s, %s)", r.ID, r.UsernameString(), r.EmailString())
}

// Encode writes the row into dst at the positions given by the layout. dst
// must be at least l.RowSize bytes. Encode performs no validation.
func Encode(l Layout, r Row, dst []byte) {
	_ = dst[l.RowSize-1]

	bin.PutUint32(dst[l.IDOffset:l.IDOffset+l.IDSize], r.ID)
	copy(dst[l.UsernameOffset:l.UsernameOffset+l.UsernameSize], r.Username[:])
	copy(dst[l.EmailOffset:l.EmailOffset+l.EmailSize], r.Email[:])
}

// Decode reads a row from src at the positions given by the layout.
func Decode(l Layout, src []byte) Row {
	_ = src[l.RowSize-1]

	var r Row
	r.ID = bin.Uint32(src[l.IDOffset : l.IDOffset+l.IDSize])
	copy(r.Username[:], src[l.UsernameOffset:l.UsernameOffset+l.UsernameSize])
	copy(r.Email[:], src[l.EmailOffset:l.EmailOffset+l.EmailSize])
	return r
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}
