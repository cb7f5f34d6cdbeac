package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Dependency-free ULID generator: 26 Crockford Base32 characters, a
// 48-bit millisecond timestamp followed by 80 bits of randomness. Job
// IDs sort by creation time.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

func generateULID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	// Timestamp in the first 6 bytes, big-endian.
	b[0] = byte(ts >> 40)
	b[1] = byte(ts >> 32)
	b[2] = byte(ts >> 24)
	b[3] = byte(ts >> 16)
	b[4] = byte(ts >> 8)
	b[5] = byte(ts)
	rand.Read(b[6:])
	// Sequence counter in bytes 6-7 keeps IDs unique within one ms.
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	// 128 bits read MSB-first, 5 bits per character. The first
	// character carries only 3 data bits.
	var out [26]byte
	bitPos := -2
	for i := range out {
		var v byte
		switch {
		case bitPos < 0:
			v = b[0] >> 5
		default:
			byteIdx := bitPos / 8
			shift := bitPos % 8
			v = b[byteIdx] << shift >> 3
			if shift > 3 && byteIdx+1 < len(b) {
				v |= b[byteIdx+1] >> (11 - shift)
			}
			v &= 31
		}
		out[i] = crockford[v]
		bitPos += 5
	}
	return string(out[:])
}
