package services

// serviceKey is a composite key for port + protocol lookup.
type serviceKey struct {
	port  int
	proto string // "tcp" or "udp"
}

// wellKnown maps common port/protocol pairs to service names shown in
// place of the numeric port.
var wellKnown = map[serviceKey]string{
	{21, "tcp"}:    "ftp",
	{22, "tcp"}:    "ssh",
	{23, "tcp"}:    "telnet",
	{25, "tcp"}:    "smtp",
	{53, "tcp"}:    "dns",
	{53, "udp"}:    "dns",
	{67, "udp"}:    "dhcp",
	{68, "udp"}:    "dhcp",
	{80, "tcp"}:    "http",
	{110, "tcp"}:   "pop3",
	{123, "udp"}:   "ntp",
	{143, "tcp"}:   "imap",
	{161, "udp"}:   "snmp",
	{443, "tcp"}:   "https",
	{445, "tcp"}:   "smb",
	{465, "tcp"}:   "smtps",
	{514, "udp"}:   "syslog",
	{587, "tcp"}:   "submission",
	{636, "tcp"}:   "ldaps",
	{853, "tcp"}:   "dns-tls",
	{993, "tcp"}:   "imaps",
	{995, "tcp"}:   "pop3s",
	{1433, "tcp"}:  "mssql",
	{3306, "tcp"}:  "mysql",
	{3389, "tcp"}:  "rdp",
	{5353, "udp"}:  "mdns",
	{5432, "tcp"}:  "postgresql",
	{5900, "tcp"}:  "vnc",
	{6379, "tcp"}:  "redis",
	{6443, "tcp"}:  "k8s-api",
	{8080, "tcp"}:  "http-alt",
	{8443, "tcp"}:  "https-alt",
	{9200, "tcp"}:  "elasticsearch",
	{27017, "tcp"}: "mongodb",
}

// Lookup returns the service name for a port/protocol combination, or
// the empty string when the port is not well known.
func Lookup(port int, proto string) string {
	return wellKnown[serviceKey{port, proto}]
}
