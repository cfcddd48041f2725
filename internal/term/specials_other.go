//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package term

import "github.com/dshills/vicore/internal/input/key"

func readSpecials(int) (key.SpecialChars, error) {
	return DefaultSpecialChars(), nil
}
