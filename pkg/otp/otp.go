package otp

import (
	"github.com/xlzd/gotp"
)

const (
	secretLength = 16
	interval     = 30
)

// Generator produces numeric one-time codes.
type Generator interface {
	RandomCode(length int) string
}

type GOTPGenerator struct{}

func NewGOTPGenerator() *GOTPGenerator {
	return &GOTPGenerator{}
}

// RandomCode returns a numeric code of length digits derived from a fresh
// random secret, so consecutive codes are unrelated. The first digit is
// never zero: four digit codes fall in 1000-9999.
func (g *GOTPGenerator) RandomCode(length int) string {
	for {
		code := gotp.NewTOTP(gotp.RandomSecret(secretLength), length, interval, nil).Now()
		if length <= 1 || code[0] != '0' {
			return code
		}
	}
}
