// Copyright (c) 2017 Mattermost, Inc. All Rights Reserved.
// See License.txt for license information

package randutil

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

type Choice struct {
	Weight int
	Item   string
}

// IntRange returns a random int in [min, max).
func IntRange(min, max int) (int, error) {
	var result int
	switch {
	case min > max:
		// Fail with error
		return result, fmt.Errorf("bad params")
	case max == min:
		result = max
	case max > min:
		maxRand := max - min
		b, err := rand.Int(rand.Reader, big.NewInt(int64(maxRand)))
		if err != nil {
			return result, err
		}
		result = min + int(b.Int64())
	}
	return result, nil
}

// Letters returns n random upper case ASCII letters.
func Letters(n int) (string, error) {
	letters := make([]byte, n)
	for i := range letters {
		offset, err := IntRange(0, 26)
		if err != nil {
			return "", err
		}
		letters[i] = byte('A' + offset)
	}
	return string(letters), nil
}

// Modified version of weighted choice from https://github.com/jmcvetta/randutil
func WeightedChoice(choices []Choice) (Choice, error) {
	// Based on this algorithm:
	//     http://eli.thegreenplace.net/2010/01/22/weighted-random-generation-in-python/
	var ret Choice

	if len(choices) == 0 {
		return ret, fmt.Errorf("Was given no choices! %v", choices)
	}
	if len(choices) == 1 {
		return choices[0], nil
	}

	sum := 0
	for _, c := range choices {
		sum += c.Weight
	}
	r, err := IntRange(0, sum)
	if err != nil {
		return ret, err
	}
	for _, c := range choices {
		r -= c.Weight
		if r < 0 {
			return c, nil
		}
	}
	err = errors.New("Internal error - code should not reach this point")
	return ret, err
}
