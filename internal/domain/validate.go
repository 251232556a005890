package domain

import "regexp"

var (
	addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	txHashPattern  = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
	orderIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

func ValidWalletAddress(addr string) bool {
	return addressPattern.MatchString(addr)
}

func ValidTransactionHash(hash string) bool {
	return txHashPattern.MatchString(hash)
}

func ValidOrderID(id string) bool {
	return orderIDPattern.MatchString(id)
}
