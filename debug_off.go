//go:build !segdeque_debug

package segdeque

const debug = false
