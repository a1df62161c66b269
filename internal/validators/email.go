package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that the part after the last @ actually
// resolves, catching typo domains at signup before a verification mail
// would bounce. MX is authoritative; a bare A/AAAA record still counts.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
