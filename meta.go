package boolidx

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

var metaMagic = [4]byte{'B', 'I', 'D', 'X'}

const metaVersion uint32 = 1

// encodeMeta serialises the "meta" file: magic, format version,
// document count, page size.
func encodeMeta(docCount DocID, pageSize uint32) []byte {
	buf := make([]byte, 0, 4+4+maxVbyteLen+4)
	buf = append(buf, metaMagic[:]...)
	var v [4]byte
	binary.LittleEndian.PutUint32(v[:], metaVersion)
	buf = append(buf, v[:]...)
	buf = appendVbyte(buf, docCount)
	var ps [4]byte
	binary.LittleEndian.PutUint32(ps[:], pageSize)
	return append(buf, ps[:]...)
}

type metaInfo struct {
	Version    uint32
	DocCount   DocID
	PageSize   uint32
}

func decodeMeta(buf []byte) (metaInfo, error) {
	if len(buf) < 8 {
		return metaInfo{}, errors.Wrap(ErrBadMagic, "meta: too short")
	}
	if string(buf[:4]) != string(metaMagic[:]) {
		return metaInfo{}, ErrBadMagic
	}
	version := binary.LittleEndian.Uint32(buf[4:8])
	if version != metaVersion {
		return metaInfo{}, errors.Wrapf(ErrUnsupportedVersion, "version %d", version)
	}
	docCount, n, err := readVbyte(buf[8:])
	if err != nil {
		return metaInfo{}, errors.Wrap(err, "meta: document count")
	}
	rest := buf[8+n:]
	if len(rest) < 4 {
		return metaInfo{}, errors.Wrap(ErrBadMagic, "meta: missing page size")
	}
	pageSize := binary.LittleEndian.Uint32(rest[:4])
	return metaInfo{Version: version, DocCount: docCount, PageSize: pageSize}, nil
}
