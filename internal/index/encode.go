package index

import (
	"bytes"
	"encoding/binary"
)

// key = invTime(8) + 0x00 + slug, so a forward cursor walks newest first
// and equal dates fall back to slug order.
func makeDateSlugKey(unixNano int64, slug string) []byte {
	buf := make([]byte, 8, 8+1+len(slug))
	binary.BigEndian.PutUint64(buf, ^uint64(unixNano))
	buf = append(buf, 0x00)
	buf = append(buf, slug...)
	return buf
}

func slugFromDateSlugKey(k []byte) string {
	if len(k) < 8+2 {
		return ""
	}
	if k[8] != 0x00 {
		return ""
	}
	if bytes.IndexByte(k[9:], 0x00) >= 0 {
		return ""
	}
	return string(k[9:])
}
