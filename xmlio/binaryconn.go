package xmlio

import (
	"encoding/binary"
	"fmt"
	"log"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/emer/spinesplit/model"
)

// BinaryConnRecord is one decoded record from a <BinaryFile> connection
// list: src (u32), dst (u32), delay (u32 only if the delay flag is set).
type BinaryConnRecord struct {
	Src uint32
	Dst uint32
	Delay uint32
}

// ReadBinaryConnections reads exactly numConnections little-endian records
// from path, each 8 or 12 bytes depending on withDelay. A
// truncated file is a fatal I/O error.
func ReadBinaryConnections(path string, numConnections int, withDelay bool, silent bool) ([]BinaryConnRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, model.Fatalf(0, model.ErrIO, "cannot open binary connection file %q: %v", path, err)
	}
	defer f.Close()

	recSize := 8
	if withDelay {
		recSize = 12
	}
	want := int64(recSize * numConnections)

	if info, err := f.Stat(); err == nil && !silent {
		log.Printf("reading %s (%s, %d records expected)", path, datasize.ByteSize(info.Size()).HumanReadable(), numConnections)
	}

	buf := make([]byte, want)
	if _, err := readFull(f, buf); err != nil {
		return nil, model.Fatalf(0, model.ErrIO, "binary connection file %q: %v", path, err)
	}

	out := make([]BinaryConnRecord, numConnections)
	off := 0
	for i := range out {
		out[i].Src = binary.LittleEndian.Uint32(buf[off: off+4])
		out[i].Dst = binary.LittleEndian.Uint32(buf[off+4: off+8])
		off += 8
		if withDelay {
			out[i].Delay = binary.LittleEndian.Uint32(buf[off: off+4])
			off += 4
		}
	}
	return out, nil
}

// readFull reads until buf is completely filled, reporting premature EOF
// with the byte counts involved rather than the bare io.ErrUnexpectedEOF.
func readFull(f *os.File, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := f.Read(buf[n:])
		n += m
		if err != nil {
			if n < len(buf) {
				return n, fmt.Errorf("expected %d bytes, got %d before error: %w", len(buf), n, err)
			}
			break
		}
	}
	return n, nil
}
