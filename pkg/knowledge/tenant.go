package knowledge

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// tenantHashLen is the length of the derived tenant namespace.
const tenantHashLen = 10

// TenantHash derives the toolkit namespace for a tenant: the first 10
// characters of the lower-case hex md5 of the trimmed tenant ID.
// 租户命名空间由 md5 前缀派生，同一租户永远落在同一命名空间。
func TenantHash(tenantID string) string {
	sum := md5.Sum([]byte(strings.TrimSpace(tenantID)))
	return hex.EncodeToString(sum[:])[:tenantHashLen]
}
