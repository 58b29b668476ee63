package chipqc

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType compares the leading bytes of a stream against known
// compression signatures. Short inputs (fewer bytes than a signature) are
// treated as uncompressed. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(head []byte) DataType {
Outer:
	for dt, sig := range byteCodeSigs {
		if len(head) < len(sig) {
			continue
		}
		for position := range sig {
			if head[position] != sig[position] {
				continue Outer
			}
		}
		return dt
	}

	return DataTypeNoCompression
}

// MaybeDecompress wraps r in the decompressor matching its leading bytes. The
// returned ReadCloser closes the decompressor only; the caller still owns r.
func MaybeDecompress(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)

	// Peek returns what it could read along with io.EOF for tiny files, which
	// is fine: those cannot be compressed.
	head, err := br.Peek(6)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, pfx.Err(err)
	}

	switch DetectDataType(head) {
	case DataTypeGzip:
		return gzip.NewReader(br)
	case DataTypeZip:
		zr := zipstream.NewReader(br)
		if _, err := zr.Next(); err != nil {
			return nil, pfx.Err(err)
		}
		return &readCloserFaker{zr}, nil
	case DataTypeBZip2:
		return &readCloserFaker{bzip2.NewReader(br)}, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(br, 0)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return &readCloserFaker{reader}, nil
	case DataTypeZ:
		return zlib.NewReader(br)
	}

	return &readCloserFaker{br}, nil
}

// readCloserFaker "upgrades" readers that don't need to be closed
type readCloserFaker struct {
	io.Reader
}

func (c *readCloserFaker) Close() error {
	return nil
}
