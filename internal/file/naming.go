package file

import (
	"strconv"
	"strings"
	"time"
)

// splitName splits name at its last dot. A name without a dot has no
// extension.
func splitName(name string) (base, ext string) {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return name, ""
	}
	return name[:i], name[i:]
}

// objectKey prefixes name with folder when one is set.
func objectKey(folder, name string) string {
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// namer produces "<epochMillis>_<base><ext>" names for a single request.
// Timestamps it hands out are strictly increasing, so two parts with the same
// original name never share a key even when they land in the same millisecond.
type namer struct {
	last int64
}

func (n *namer) next(original string, at time.Time) string {
	ms := at.UnixMilli()
	if ms <= n.last {
		ms = n.last + 1
	}
	n.last = ms

	base, ext := splitName(original)
	return strconv.FormatInt(ms, 10) + "_" + base + ext
}

// LimitReport describes the parts dropped by the upload count cap.
type LimitReport struct {
	TotalReceived int
	Uploaded      int
	Discarded     int
}

// applyLimit keeps the first limit parts. The report is nil when nothing was
// dropped.
func applyLimit(parts []Part, limit int) ([]Part, *LimitReport) {
	if limit <= 0 || len(parts) <= limit {
		return parts, nil
	}
	return parts[:limit], &LimitReport{
		TotalReceived: len(parts),
		Uploaded:      limit,
		Discarded:     len(parts) - limit,
	}
}
