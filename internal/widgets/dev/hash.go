package dev

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"strings"

	"github.com/mesh-intelligence/toolbox/internal/widgets"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// Hash algorithm names in display order.
var HashAlgorithms = []string{"MD5", "SHA-1", "SHA-256", "SHA-512"}

var hashers = map[string]func() hash.Hash{
	"MD5":     md5.New,
	"SHA-1":   sha1.New,
	"SHA-256": sha256.New,
	"SHA-512": sha512.New,
}

// Digest returns the lowercase hex digest of data under algorithm.
func Digest(algorithm string, data []byte) (string, error) {
	h, ok := hashers[algorithm]
	if !ok {
		return "", types.InputError("unknown algorithm %q", algorithm)
	}
	d := h()
	d.Write(data)
	return hex.EncodeToString(d.Sum(nil)), nil
}

// HashGenerator returns the hash-generator widget. It hashes the uploaded
// file when one is present, otherwise the text field, and lists every
// algorithm's digest.
func HashGenerator() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		var data []byte
		if f, ok := in.File("file"); ok {
			data = f.Data
		} else if v := in.Raw("text"); v != "" {
			data = []byte(v)
		} else {
			return types.Result{}, types.InputError("enter text or choose a file")
		}
		algorithm, err := widgets.OneOf(in, "algorithm", "SHA-256", HashAlgorithms...)
		if err != nil {
			return types.Result{}, err
		}
		upper := in.Bool("uppercase")

		var res types.Result
		for _, name := range HashAlgorithms {
			sum, _ := Digest(name, data)
			if upper {
				sum = strings.ToUpper(sum)
			}
			if name == algorithm {
				res.Output = sum
			}
			res.Add(name, sum)
		}
		return res, nil
	})
}
