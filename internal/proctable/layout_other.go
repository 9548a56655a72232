//go:build !freebsd || !(amd64 || arm64 || riscv64 || 386)

package proctable

// Native is the kinfo_proc layout of the running system. There is none here.
var Native = Layout{}
