package checkout

import (
	"crypto/rand"
	"strconv"
	"strings"
	"time"
)

const orderNumberCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateOrderNumber builds a collision-resistant order number from a
// nanosecond timestamp plus a random suffix, e.g. BB-L9X2K5M8N3P1-7QWD.
// The orders table still enforces uniqueness; the suffix makes a retry on
// collision practically never necessary.
func GenerateOrderNumber() string {
	timestamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixNano(), 36))

	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// fall back to more timestamp bits rather than panicking.
		extra := strings.ToUpper(strconv.FormatInt(time.Now().UnixNano()%1679616, 36))
		return "BB-" + timestamp + "-" + extra
	}
	suffix := make([]byte, 4)
	for i, b := range buf {
		suffix[i] = orderNumberCharset[int(b)%len(orderNumberCharset)]
	}

	return "BB-" + timestamp + "-" + string(suffix)
}
